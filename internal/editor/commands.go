package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/remux/internal/command"
	"github.com/dshills/remux/internal/minibuffer"
)

// minibufferModeFor maps an Interactive::Str command name to the minibuffer
// mode ExecuteNamed activates for it; any name not listed gets Command mode.
func minibufferModeFor(name string) minibuffer.Mode {
	switch name {
	case "find-file":
		return minibuffer.FindFile
	case "save-buffer-as":
		return minibuffer.SaveBuffer
	case "goto-line":
		return minibuffer.GotoLine
	default:
		return minibuffer.Command
	}
}

// ExecuteNamed looks up name in the command registry and runs it, handling
// the three distinct dispatch shapes: prefix-modifying commands
// (universal-argument, digit-argument-*), Interactive::Str commands (which
// switch to Minibuffer mode instead of running a body), and ordinary
// commands (which consume the accumulated prefix argument).
func (e *Editor) ExecuteNamed(name string) {
	e.hooks.Run("before-command", name)

	cmd, ok := e.commands.Lookup(name)
	if !ok {
		e.mini.Message(fmt.Sprintf("Unknown command: %s", name))
		e.hooks.Run("after-command", name)
		return
	}

	if cmd.ModifiesPrefix {
		if cmd.Body != nil {
			_ = cmd.Body(command.Context{Editor: e})
		}
		e.mini.Message(fmt.Sprintf("C-u %d", e.prefix.Value()))
		e.hooks.Run("after-command", name)
		return
	}

	if cmd.Interactive == command.InteractiveStr {
		switch name {
		case "isearch-forward":
			e.IsearchStart(command.Forward)
		case "isearch-backward":
			e.IsearchStart(command.Backward)
		default:
			// minibuffer_prompt is the only case where a pending command name
			// is consulted at submission time; execute-command (M-x) must
			// leave it empty so the typed text itself names the command.
			e.pendingCommand = ""
			mode := minibufferModeFor(name)
			e.setMode(Minibuffer)
			e.mini.Activate(mode.Prompt(), mode)
		}
		return
	}

	val, has := e.prefix.Consume()
	arg := command.Arg{}
	if has {
		arg.HasInt = true
		arg.Int = val
	}

	var err error
	if cmd.Body != nil {
		err = cmd.Body(command.Context{Editor: e, Arg: arg})
	}
	if err != nil {
		e.logger.Debug("command %s failed: %v", name, err)
		e.mini.Message(err.Error())
	}
	// The before-/after- pair brackets exactly the command's body;
	// cursor-moved fires after the bracket closes.
	e.hooks.Run("after-command", name)
	e.fireCursorMoved()
	e.ensureCursorVisible()
	e.scrollIntent = FollowCursor
}

// PromptMinibuffer activates the minibuffer in Command mode with a
// caller-supplied prompt and remembers onSubmit as the command to run once
// Enter is pressed; the typed text is not passed to that command — the
// script surface's minibuffer_prompt(prompt, on_submit_command).
func (e *Editor) PromptMinibuffer(prompt, onSubmit string) {
	e.pendingCommand = onSubmit
	e.setMode(Minibuffer)
	e.mini.Activate(prompt, minibuffer.Command)
}

// ExecuteMinibuffer handles submission of the current minibuffer input,
// dispatching by the mode that was active when Enter was pressed.
func (e *Editor) ExecuteMinibuffer() {
	mode := e.mini.Mode()
	input := e.mini.Input()
	e.mini.Deactivate()
	e.setMode(Normal)

	switch mode {
	case minibuffer.FindFile:
		if err := e.buf.OpenFile(input); err != nil {
			e.logger.Debug("find-file failed: %v", err)
			e.mini.Message(err.Error())
		} else {
			e.hooks.Run("buffer-loaded", input)
			e.hooks.Run("buffer-changed", "open-file")
		}

	case minibuffer.SaveBuffer:
		if input == "" {
			e.mini.Message("Save aborted: empty file name")
		} else if err := e.buf.SaveAs(input); err != nil {
			e.logger.Debug("save-buffer-as failed: %v", err)
			e.mini.Message(err.Error())
		} else {
			e.hooks.Run("buffer-saved", input)
		}

	case minibuffer.GotoLine:
		e.gotoLine(input)

	case minibuffer.ISearchForward, minibuffer.ISearchBackward:
		e.isearchFinish()

	case minibuffer.Command:
		// pendingCommand is set by minibuffer_prompt (the script surface's
		// generic "ask then run a specific command" helper); execute-command
		// (M-x) leaves it unset, so the typed text is itself the command
		// name to run.
		target := e.pendingCommand
		e.pendingCommand = ""
		if target != "" {
			e.ExecuteNamed(target)
		} else {
			e.ExecuteNamed(input)
		}
	}

	e.fireCursorMoved()
}

func (e *Editor) gotoLine(input string) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 {
		e.mini.Message("Invalid line number")
		return
	}
	y := n - 1
	if y >= e.buf.LineCount() {
		y = e.buf.LineCount() - 1
	}
	e.buf.CursorY = y
	e.buf.CursorX = 0
	e.ensureCursorVisible()
}
