// Package editor implements the top-level Editor Controller: the state
// machine that owns the text buffer, the shared keymap and scripting
// configuration, the command and hook registries, the minibuffer, the
// single-slot kill ring, and the scrolling/viewport state, and that routes
// input events into all of them. internal/editor implements
// command.EditorAPI so command bodies registered in internal/command can act
// on it without that package importing this one.
//
// The controller runs on a single goroutine. Each Tick (1) dispatches one
// input event, (2) drains the event queue, (3) ticks the minibuffer, and
// (4) keeps the cursor visible unless the user scrolled. Scripted hooks and script-exposed helpers
// post Events to the FIFO queue with Enqueue rather than mutating the
// controller while a command or hook is still running; ProcessEvents
// applies them on the next drain.
package editor

import (
	"fmt"

	"github.com/dshills/remux/internal/app"
	"github.com/dshills/remux/internal/buffer"
	"github.com/dshills/remux/internal/command"
	"github.com/dshills/remux/internal/hook"
	"github.com/dshills/remux/internal/keymap"
	"github.com/dshills/remux/internal/minibuffer"
)

// InputMode names which of the two top-level input modes is active.
type InputMode int

const (
	Normal InputMode = iota
	Minibuffer
)

// ScrollIntent distinguishes automatic cursor-following scroll from a scroll
// the user drove manually (which ensure_cursor_visible must not override).
type ScrollIntent int

const (
	FollowCursor ScrollIntent = iota
	Manual
)

// Default viewport dimensions used until the backend reports a real size.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Editor is the top-level controller. Exactly one TextBuffer is held open at
// a time; the controller does not multiplex windows or buffers.
type Editor struct {
	buf      *buffer.TextBuffer
	keys     *keymap.KeyMap
	config   *keymap.UserConfig
	commands *command.Registry
	hooks    *hook.Registry
	mini     *minibuffer.Minibuffer
	logger   *app.Logger

	killText string
	killSet  bool

	mode       InputMode
	shouldQuit bool

	events []Event

	wrap             buffer.WrapMode
	scrollX, scrollY int
	width, height    int

	pendingPrefix  keymap.PendingPrefix
	prefix         command.PrefixState
	pendingCommand string

	lastCursor buffer.Position

	scrollIntent ScrollIntent

	isearch *ISearchState
}

// New returns a controller wrapping buf, with a fresh KeyMap, UserConfig,
// CommandRegistry (built-ins pre-registered), HookRegistry, and Minibuffer.
// logger may be nil, in which case app.NullLogger is used.
func New(buf *buffer.TextBuffer, logger *app.Logger) *Editor {
	if logger == nil {
		logger = app.NullLogger
	}
	commands := command.NewRegistry()
	command.RegisterBuiltins(commands)

	return &Editor{
		buf:          buf,
		keys:         keymap.NewKeyMap(),
		config:       keymap.NewUserConfig(),
		commands:     commands,
		hooks:        hook.New(),
		mini:         minibuffer.New(),
		logger:       logger.WithComponent("editor"),
		wrap:         buffer.Wrap,
		width:        defaultWidth,
		height:       defaultHeight,
		scrollIntent: FollowCursor,
	}
}

// Buffer returns the single open text buffer.
func (e *Editor) Buffer() *buffer.TextBuffer { return e.buf }

// Minibuffer returns the minibuffer state machine, for renderers to read.
func (e *Editor) Minibuffer() *minibuffer.Minibuffer { return e.mini }

// KeyMap returns the shared keymap, for the scripting bridge to populate.
func (e *Editor) KeyMap() *keymap.KeyMap { return e.keys }

// Config returns the shared UserConfig, for the scripting bridge to
// populate at load time and the input resolver to read on every keystroke.
func (e *Editor) Config() *keymap.UserConfig { return e.config }

// Commands returns the command registry, for the scripting bridge to query
// via execute().
func (e *Editor) Commands() *command.Registry { return e.commands }

// Hooks returns the hook registry, for the scripting bridge to populate via
// add_hook.
func (e *Editor) Hooks() *hook.Registry { return e.hooks }

// Logger returns the component-tagged logger this controller was built with.
func (e *Editor) Logger() *app.Logger { return e.logger }

// Mode returns the current top-level input mode.
func (e *Editor) Mode() InputMode { return e.mode }

// WrapMode returns the buffer's current wrap mode, for renderers.
func (e *Editor) WrapMode() buffer.WrapMode { return e.wrap }

// Viewport returns the last-known text-area size (excluding the minibuffer
// row and any border row).
func (e *Editor) Viewport() (width, height int) { return e.width, e.height }

// ScrollOffsets returns the current visual scroll position.
func (e *Editor) ScrollOffsets() (scrollX, scrollY int) { return e.scrollX, e.scrollY }

// ShouldQuit reports whether a command or script has requested the run loop
// exit.
func (e *Editor) ShouldQuit() bool { return e.shouldQuit }

// SetViewport updates the controller's notion of the text viewport from a
// reported terminal size. The bottom screen row always belongs to the
// minibuffer, and one more row separates it from the text when buffer
// borders are enabled; both are subtracted here so the scrolling and
// cursor-visibility math agrees with the rows the renderer actually paints
// text into.
func (e *Editor) SetViewport(width, height int) {
	height--
	if e.config.BufferBorders {
		height--
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	e.width, e.height = width, height
	e.buf.Visual.Dirty = true
}

// Message activates the minibuffer with a transient status message.
// Implements command.EditorAPI.
func (e *Editor) Message(text string) { e.mini.Message(text) }

// KillRingSet replaces the single kill-ring slot. Implements
// command.EditorAPI.
func (e *Editor) KillRingSet(text string) {
	e.killText = text
	e.killSet = true
}

// KillRingGet reads the kill-ring slot. Implements command.EditorAPI.
func (e *Editor) KillRingGet() (string, bool) { return e.killText, e.killSet }

// RequestQuit sets the should-quit flag read by the run loop. Implements
// command.EditorAPI.
func (e *Editor) RequestQuit() { e.shouldQuit = true }

// NotifyBufferSaved fires the buffer-saved hook after a successful write.
// Implements command.EditorAPI.
func (e *Editor) NotifyBufferSaved(path string) { e.hooks.Run("buffer-saved", path) }

// ToggleWrapMode flips between Wrap and Truncate and invalidates the visual
// cache. Implements command.EditorAPI.
func (e *Editor) ToggleWrapMode() {
	if e.wrap == buffer.Wrap {
		e.wrap = buffer.Truncate
	} else {
		e.wrap = buffer.Wrap
	}
	e.buf.Visual.Dirty = true
}

// PrefixDigit feeds a typed digit into the prefix-argument accumulator.
// Implements command.EditorAPI.
func (e *Editor) PrefixDigit(d int) { e.prefix.Digit(d) }

// PrefixUniversal feeds a universal-argument invocation into the prefix
// accumulator. Implements command.EditorAPI.
func (e *Editor) PrefixUniversal() { e.prefix.Universal() }

// fireCursorMoved compares the buffer's cursor against the last-observed
// position and fires cursor-moved at most once per change.
func (e *Editor) fireCursorMoved() {
	cur := e.buf.Cursor()
	if cur != e.lastCursor {
		e.lastCursor = cur
		e.hooks.Run("cursor-moved", fmt.Sprintf("%d,%d", cur.X, cur.Y))
	}
}

// setMode transitions the top-level input mode, firing mode-changed exactly
// once per actual transition (a no-op assignment to the mode already active
// fires nothing).
func (e *Editor) setMode(m InputMode) {
	if e.mode == m {
		return
	}
	e.mode = m
	e.hooks.Run("mode-changed", modeArg(m))
}

func modeArg(m InputMode) string {
	if m == Minibuffer {
		return "minibuffer"
	}
	return "normal"
}
