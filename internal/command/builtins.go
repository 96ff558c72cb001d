package command

import (
	"errors"
	"fmt"

	"github.com/dshills/remux/internal/buffer"
)

// RegisterBuiltins registers every built-in command name user config can
// bind keys to. Commands whose Interactive is
// InteractiveStr have a nil or no-op Body: the controller intercepts them
// before a body would ever run, routing through the minibuffer instead.
func RegisterBuiltins(reg *Registry) {
	motion := func(name string, m buffer.Motion) {
		reg.Register(Command{Name: name, Interactive: InteractiveInt, Body: func(ctx Context) error {
			buf := ctx.Editor.Buffer()
			for i := 0; i < ctx.Arg.Repeat(); i++ {
				buf.MoveCursor(m)
			}
			return nil
		}})
	}
	motion("move-left", buffer.Left)
	motion("move-right", buffer.Right)
	motion("move-up", buffer.Up)
	motion("move-down", buffer.Down)
	motion("move-beginning-of-line", buffer.Bol)
	motion("move-end-of-line", buffer.Eol)
	motion("move-beginning-of-buffer", buffer.BufferStart)
	motion("move-end-of-buffer", buffer.BufferEnd)
	motion("move-word-left", buffer.WordLeft)
	motion("move-word-right", buffer.WordRight)

	reg.Register(Command{Name: "undo", Body: func(ctx Context) error {
		ctx.Editor.Buffer().Undo()
		return nil
	}})

	reg.Register(Command{Name: "keyboard-quit", Body: func(ctx Context) error {
		buf := ctx.Editor.Buffer()
		if buf.HasMark() {
			buf.ClearMark()
		}
		ctx.Editor.IsearchAbort()
		ctx.Editor.Message("Quit")
		return nil
	}})

	reg.Register(Command{Name: "kill-remux", Body: func(ctx Context) error {
		ctx.Editor.RequestQuit()
		return nil
	}})

	reg.Register(Command{Name: "delete-char", Body: func(ctx Context) error {
		if _, ok := ctx.Editor.Buffer().DeleteForward(); !ok {
			ctx.Editor.Message("End of buffer")
		}
		return nil
	}})

	reg.Register(Command{Name: "backward-delete-char", Body: func(ctx Context) error {
		if _, ok := ctx.Editor.Buffer().DeleteBackward(); !ok {
			ctx.Editor.Message("Beginning of buffer")
		}
		return nil
	}})

	reg.Register(Command{Name: "set-mark-command", Body: func(ctx Context) error {
		ctx.Editor.Buffer().SetMark()
		ctx.Editor.Message("Mark set")
		return nil
	}})

	reg.Register(Command{Name: "newline", Body: func(ctx Context) error {
		ctx.Editor.Buffer().InsertNewline()
		return nil
	}})

	killOp := func(name string, op func(*buffer.TextBuffer) (string, error)) {
		reg.Register(Command{Name: name, Body: func(ctx Context) error {
			text, err := op(ctx.Editor.Buffer())
			if err != nil {
				ctx.Editor.Message(messageFor(err))
				return nil
			}
			ctx.Editor.KillRingSet(text)
			return nil
		}})
	}
	killOp("kill-word", (*buffer.TextBuffer).KillWord)
	killOp("kill-backward-word", (*buffer.TextBuffer).KillBackwardWord)
	killOp("kill-sentence", (*buffer.TextBuffer).KillSentence)
	killOp("kill-line", (*buffer.TextBuffer).KillLine)
	killOp("kill-region", (*buffer.TextBuffer).KillRegion)

	reg.Register(Command{Name: "kill-ring-save", Body: func(ctx Context) error {
		text, err := ctx.Editor.Buffer().CopyRegion()
		if err != nil {
			ctx.Editor.Message(messageFor(err))
			return nil
		}
		ctx.Editor.KillRingSet(text)
		return nil
	}})

	reg.Register(Command{Name: "yank", Body: func(ctx Context) error {
		text, ok := ctx.Editor.KillRingGet()
		if !ok {
			ctx.Editor.Message(messageFor(buffer.ErrEmptyKillText))
			return nil
		}
		ctx.Editor.Buffer().Yank(text)
		return nil
	}})

	reg.Register(Command{Name: "save-buffer", Body: func(ctx Context) error {
		buf := ctx.Editor.Buffer()
		if err := buf.Save(); err != nil {
			ctx.Editor.Message(messageFor(err))
			return nil
		}
		ctx.Editor.NotifyBufferSaved(buf.FilePath)
		return nil
	}})

	// Interactive::Str commands: the controller short-circuits these before
	// Body would run (find-file/save-buffer-as/goto-line/execute-command
	// route through the generic minibuffer prompt; isearch-forward/backward
	// route through IsearchStart, which activates its own prompt mode).
	reg.Register(Command{Name: "save-buffer-as", Interactive: InteractiveStr, Prompt: "Save buffer as: "})
	reg.Register(Command{Name: "execute-command", Interactive: InteractiveStr, Prompt: "M-x "})
	reg.Register(Command{Name: "find-file", Interactive: InteractiveStr, Prompt: "Find file: "})
	reg.Register(Command{Name: "goto-line", Interactive: InteractiveStr, Prompt: "Goto line: "})

	// execute_named special-cases these two by name before Body would ever
	// run, calling IsearchStart directly so a repeated isearch-forward while
	// already searching advances to the next match instead of restarting.
	reg.Register(Command{Name: "isearch-forward", Interactive: InteractiveStr, Prompt: "I-search: "})
	reg.Register(Command{Name: "isearch-backward", Interactive: InteractiveStr, Prompt: "I-search backward: "})

	reg.Register(Command{Name: "toggle-line-wrap", Body: func(ctx Context) error {
		ctx.Editor.ToggleWrapMode()
		return nil
	}})

	reg.Register(Command{Name: "scroll-up-command", Body: func(ctx Context) error {
		ctx.Editor.ScrollUpCommand()
		return nil
	}})
	reg.Register(Command{Name: "scroll-down-command", Body: func(ctx Context) error {
		ctx.Editor.ScrollDownCommand()
		return nil
	}})
	reg.Register(Command{Name: "scroll-left-command", Body: func(ctx Context) error {
		ctx.Editor.ScrollLeftCommand()
		return nil
	}})
	reg.Register(Command{Name: "scroll-right-command", Body: func(ctx Context) error {
		ctx.Editor.ScrollRightCommand()
		return nil
	}})

	for d := 0; d <= 9; d++ {
		digit := d
		reg.Register(Command{
			Name:           fmt.Sprintf("digit-argument-%d", digit),
			ModifiesPrefix: true,
			Body: func(ctx Context) error {
				ctx.Editor.PrefixDigit(digit)
				return nil
			},
		})
	}

	reg.Register(Command{Name: "universal-argument", ModifiesPrefix: true, Body: func(ctx Context) error {
		ctx.Editor.PrefixUniversal()
		return nil
	}})
}

// messageFor renders a sentinel error as the short text shown in the
// minibuffer; errors.Is lets callers match it regardless of any %w wrapping
// a caller added.
func messageFor(err error) string {
	switch {
	case errors.Is(err, buffer.ErrNoSelection):
		return "No active region"
	case errors.Is(err, buffer.ErrNothingToKill):
		return "Nothing to kill"
	case errors.Is(err, buffer.ErrEmptyKillText):
		return "Kill ring is empty"
	case errors.Is(err, buffer.ErrNoFilePath):
		return "No file name"
	case errors.Is(err, buffer.ErrEmptySavePath):
		return "Save aborted: empty file name"
	default:
		return err.Error()
	}
}
