package editor

import (
	"unicode"

	"github.com/dshills/remux/internal/command"
	"github.com/dshills/remux/internal/keymap"
)

// InputEvent is one event polled from the terminal backend. Exactly one of
// the concrete types below is ever active at a time.
type InputEvent interface {
	isInputEvent()
}

// KeyEvent is a single keystroke: a rune plus the physical modifiers the
// backend reported alongside it. Control characters (Enter, Backspace,
// Escape) travel as their usual ASCII control-code runes.
type KeyEvent struct {
	Rune rune
	Mods keymap.PhysicalModifiers
}

func (KeyEvent) isInputEvent() {}

// ResizeEvent reports a new terminal size.
type ResizeEvent struct{ Width, Height int }

func (ResizeEvent) isInputEvent() {}

// PasteEvent carries a bracketed-paste payload, inserted as literal text
// rather than interpreted as keystrokes.
type PasteEvent struct{ Text string }

func (PasteEvent) isInputEvent() {}

// WheelEvent is a mouse-wheel step: Delta visual rows, negative up.
type WheelEvent struct{ Delta int }

func (WheelEvent) isInputEvent() {}

// Control-character runes used to recognize Enter/Backspace/Escape from a
// KeyEvent's rune, matching what a terminal backend reports for those keys.
const (
	runeEnter     = '\r'
	runeBackspace = 0x7f
	runeEscape    = 0x1b
	runeCtrlC     = 0x03
)

// HandleInput dispatches one polled input event to the mode-specific
// handler (step 1 of the per-tick sequence in the package doc).
func (e *Editor) HandleInput(ev InputEvent) {
	switch v := ev.(type) {
	case KeyEvent:
		e.handleKey(v)
	case ResizeEvent:
		e.SetViewport(v.Width, v.Height)
	case PasteEvent:
		e.insertText(v.Text)
	case WheelEvent:
		e.handleWheel(v.Delta)
	}
}

func (e *Editor) handleKey(k KeyEvent) {
	mods, swallowed := keymap.Resolve(k.Mods, k.Rune, e.config, &e.pendingPrefix)
	if swallowed {
		return
	}
	switch e.mode {
	case Normal:
		e.handleNormalKey(mods, k.Rune)
	case Minibuffer:
		e.handleMinibufferKey(mods, k.Rune)
	}
}

// handleNormalKey implements the Normal-mode branch: look up a command for
// the resolved logical mods; if none is bound and the key carries no
// modifier and is printable, insert it as a character instead.
func (e *Editor) handleNormalKey(mods keymap.Mods, r rune) {
	if name, ok := e.keys.Lookup(mods, r); ok {
		e.ExecuteNamed(name)
		return
	}
	// Unless a binding claimed it above, Ctrl-C exits in Normal mode, even in
	// an unconfigured session where init.lua bound nothing.
	if r == runeCtrlC {
		e.RequestQuit()
		return
	}
	if mods == keymap.ModNone && unicode.IsPrint(r) {
		e.insertChar(r)
	}
}

// handleMinibufferKey reads minibuffer input. Enter submits, Escape aborts
// (restoring the pre-search cursor when an ISearch session is active), and
// Backspace edits the typed text. While an ISearch session is active, a key
// that resolves to isearch-forward/backward advances the session instead of
// being inserted, mirroring Emacs's repeated C-s/C-r.
func (e *Editor) handleMinibufferKey(mods keymap.Mods, r rune) {
	switch r {
	case runeEnter:
		e.ExecuteMinibuffer()
		return
	case runeEscape:
		if e.isearch != nil {
			e.IsearchAbort()
		} else {
			e.mini.Deactivate()
			e.setMode(Normal)
		}
		return
	case runeBackspace:
		e.mini.Pop()
		if e.isearch != nil {
			e.isearchUpdate()
		}
		return
	}

	if e.isearch != nil {
		if name, ok := e.keys.Lookup(mods, r); ok {
			switch name {
			case "isearch-forward":
				e.IsearchStart(command.Forward)
				return
			case "isearch-backward":
				e.IsearchStart(command.Backward)
				return
			}
		}
	}

	if mods == keymap.ModNone && unicode.IsPrint(r) {
		e.mini.Push(r)
		if e.isearch != nil {
			e.isearchUpdate()
		}
	}
}

// handleWheel scrolls the viewport one visual row per wheel step, leaving
// the cursor where it is.
func (e *Editor) handleWheel(delta int) {
	for ; delta < 0; delta++ {
		e.ScrollUp()
	}
	for ; delta > 0; delta-- {
		e.ScrollDown()
	}
}

// insertChar runs the scripted before/after-insert-char hooks around a
// single character insertion and fires cursor-moved if it moved the cursor.
// Character insertion and file opens are the only buffer-changed sources;
// deletes, kills, yanks, and undo notify through the command hooks instead.
func (e *Editor) insertChar(r rune) {
	arg := string(r)
	e.hooks.Run("before-insert-char", arg)
	e.buf.InsertChar(r)
	e.hooks.Run("after-insert-char", arg)
	e.fireCursorMoved()
	e.hooks.Run("buffer-changed", "insert-char")
}

// insertText inserts a pasted block as a single yank, matching the buffer's
// multi-line-paste-is-one-undo-entry contract.
func (e *Editor) insertText(text string) {
	e.buf.Yank(text)
	e.fireCursorMoved()
	e.hooks.Run("buffer-changed", "insert-char")
}
