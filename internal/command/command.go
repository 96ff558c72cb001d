// Package command implements the named-command registry and the numeric
// prefix-argument accumulator that feeds it. Command bodies are written
// against the narrow EditorAPI interface so this package never imports the
// editor controller that implements it.
package command

import (
	"fmt"

	"github.com/dshills/remux/internal/buffer"
)

// Interactive describes how a command expects its argument, if any.
type Interactive int

const (
	// InteractiveNone means the command takes no argument beyond the
	// consumed numeric prefix.
	InteractiveNone Interactive = iota
	// InteractiveInt means the command's sole argument is the numeric
	// prefix; Arg.HasInt is false when none was typed, and Arg.Repeat then
	// yields 1.
	InteractiveInt
	// InteractiveStr means the command needs a string read from the
	// minibuffer before it can run; the controller intercepts this at
	// dispatch time rather than calling Body directly.
	InteractiveStr
)

// Arg is the consumed prefix argument handed to a command body.
type Arg struct {
	HasInt bool
	Int    int
}

// Repeat returns the prefix count to use for a repeatable motion/edit: the
// consumed integer if present and non-zero, otherwise 1.
func (a Arg) Repeat() int {
	if a.HasInt && a.Int != 0 {
		return a.Int
	}
	return 1
}

// Direction names which way an incremental search runs.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// EditorAPI is the narrow surface a command body needs from the editor
// controller. internal/editor.Editor implements it.
type EditorAPI interface {
	Buffer() *buffer.TextBuffer
	Message(text string)
	KillRingSet(text string)
	KillRingGet() (string, bool)
	RequestQuit()
	NotifyBufferSaved(path string)
	ToggleWrapMode()
	ScrollUpCommand()
	ScrollDownCommand()
	ScrollLeftCommand()
	ScrollRightCommand()
	IsearchStart(dir Direction)
	IsearchAbort()
	PrefixDigit(d int)
	PrefixUniversal()
}

// Context is passed to a command Body: the editor it may act on, and the
// consumed prefix argument.
type Context struct {
	Editor EditorAPI
	Arg    Arg
}

// Body is a command's implementation.
type Body func(ctx Context) error

// Command is one named, registered command.
type Command struct {
	Name        string
	Interactive Interactive
	Prompt      string // only meaningful when Interactive == InteractiveStr
	Body        Body
	// ModifiesPrefix is true for commands that mutate PrefixState instead of
	// consuming it (universal-argument, digit-argument-*).
	ModifiesPrefix bool
}

// Registry maps command name to its registered Command.
type Registry struct {
	commands map[string]Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds or replaces a command.
func (r *Registry) Register(c Command) {
	r.commands[c.Name] = c
}

// Lookup returns the command named name, if registered.
func (r *Registry) Lookup(name string) (Command, bool) {
	c, ok := r.commands[name]
	return c, ok
}

// ErrUnknownCommand is returned (wrapped with the attempted name) when a
// name has no registered command.
var ErrUnknownCommand = fmt.Errorf("unknown command")

// Run looks up name and, for a non-interactive-string command, invokes its
// body with arg. Callers are responsible for routing InteractiveStr commands
// through the minibuffer instead of calling Run directly.
func (r *Registry) Run(name string, arg Arg, ed EditorAPI) error {
	c, ok := r.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if c.Body == nil {
		return nil
	}
	return c.Body(Context{Editor: ed, Arg: arg})
}
