package editor

import (
	"fmt"

	"github.com/dshills/remux/internal/hook"
)

// Event is one entry on the controller's FIFO event queue. Scripted hooks
// and script-exposed helpers post these instead of re-entering the editor
// directly (see the package doc for why).
type Event interface {
	debugForm() string
}

// ExecuteCommandEvent requests that a named command run as if dispatched
// from the keymap, with no prefix argument.
type ExecuteCommandEvent struct{ Name string }

func (e ExecuteCommandEvent) debugForm() string { return fmt.Sprintf("execute-command(%s)", e.Name) }

// MessageEvent requests a minibuffer status message.
type MessageEvent struct{ Text string }

func (e MessageEvent) debugForm() string { return fmt.Sprintf("message(%q)", e.Text) }

// OpenFileEvent requests that the buffer load path, replacing its contents.
type OpenFileEvent struct{ Path string }

func (e OpenFileEvent) debugForm() string { return fmt.Sprintf("open-file(%s)", e.Path) }

// AddHookEvent requests that callable be registered under name.
type AddHookEvent struct {
	Name     string
	Callable hook.Callable
}

func (e AddHookEvent) debugForm() string { return fmt.Sprintf("add-hook(%s)", e.Name) }

// Enqueue appends ev to the event queue. Safe to call from within a hook
// callable or a command body; the event is processed on a later drain, not
// re-entrantly.
func (e *Editor) Enqueue(ev Event) {
	e.events = append(e.events, ev)
}

// ProcessEvents drains the current queue snapshot, applying each event and
// firing on-event for it. Events enqueued while draining (e.g. a hook that
// itself posts an event) are left for the next drain rather than processed
// immediately, so one tick can never recurse indefinitely.
func (e *Editor) ProcessEvents() {
	if len(e.events) == 0 {
		return
	}
	pending := e.events
	e.events = nil

	for _, ev := range pending {
		switch v := ev.(type) {
		case ExecuteCommandEvent:
			e.ExecuteNamed(v.Name)
		case MessageEvent:
			e.mini.Message(v.Text)
		case OpenFileEvent:
			if err := e.buf.OpenFile(v.Path); err != nil {
				e.logger.Debug("open-file event failed: %v", err)
				e.mini.Message(err.Error())
			} else {
				e.hooks.Run("buffer-loaded", v.Path)
				e.hooks.Run("buffer-changed", "open-file")
			}
		case AddHookEvent:
			e.hooks.Add(v.Name, v.Callable)
		}
		e.hooks.Run("on-event", ev.debugForm())
	}
}
