package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/remux/internal/editor"
	"github.com/dshills/remux/internal/keymap"
)

// Install wires remux's script-exposed globals into state, all operating
// against ed. Commands and messages are queued via ed.Enqueue rather than
// applied directly, per the controller's event-passing model (see the
// internal/editor doc comment); KeyMap/UserConfig are configured directly
// since they are
// shared, mutable-at-load-time state rather than something a tick needs to
// serialize access to.
func Install(state *State, ed *editor.Editor) *Bridge {
	b := NewBridge(state.L)

	state.RegisterFunc("bind", luaBind(ed))
	state.RegisterFunc("bind_mod", luaBindMod(ed))
	state.RegisterFunc("execute", luaExecute(ed))
	state.RegisterFunc("message", luaMessage(ed))
	state.RegisterFunc("save_buffer", luaSaveBuffer(ed))
	state.RegisterFunc("exit_editor", luaExitEditor(ed))
	state.RegisterFunc("add_hook", luaAddHook(ed, state))
	state.RegisterFunc("minibuffer_prompt", luaMinibufferPrompt(ed))
	state.RegisterFunc("set_buffer_borders", luaSetBufferBorders(ed))
	state.RegisterFunc("set_isearch_highlight", luaSetISearchHighlight(ed))
	state.RegisterFunc("buffer_modified", luaBufferModified(ed))
	state.RegisterFunc("current_buffer_path", luaCurrentBufferPath(ed))

	return b
}

// luaBind implements bind(mod_str, key, command_name): registers a logical
// binding into the shared KeyMap.
func luaBind(ed *editor.Editor) lua.LGFunction {
	return func(L *lua.LState) int {
		modStr, err := ArgString(L, "bind", 1)
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		key, err := ArgString(L, "bind", 2)
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		name, err := ArgString(L, "bind", 3)
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		r := []rune(key)
		if len(r) != 1 {
			L.RaiseError("bind: key must be exactly one character, got %q", key)
			return 0
		}
		ed.KeyMap().Bind(keymap.ParseLogicalCombo(modStr), r[0], name)
		return 0
	}
}

// luaBindMod implements bind_mod(index, combo): parses combo as a
// "+"-separated physical modifier list with an optional trailing prefix
// character, and assigns it to UserConfig slot index.
func luaBindMod(ed *editor.Editor) lua.LGFunction {
	return func(L *lua.LState) int {
		index, err := ArgInt(L, "bind_mod", 1)
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		combo, err := ArgString(L, "bind_mod", 2)
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		if index < 0 || index > 2 {
			L.RaiseError("bind_mod: index must be 0, 1, or 2, got %d", index)
			return 0
		}
		slot := keymap.Slot(index)
		mods, key := keymap.ParsePhysicalCombo(combo)
		if key != 0 {
			ed.Config().SetPrefixKey(slot, key, mods)
		} else {
			ed.Config().SetModMask(slot, mods)
		}
		return 0
	}
}

// luaExecute implements execute(command_name): enqueues a command to run on
// the next event-queue drain.
func luaExecute(ed *editor.Editor) lua.LGFunction {
	return func(L *lua.LState) int {
		name, err := ArgString(L, "execute", 1)
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		ed.Enqueue(editor.ExecuteCommandEvent{Name: name})
		return 0
	}
}

// luaMessage implements message(text): enqueues a minibuffer message.
func luaMessage(ed *editor.Editor) lua.LGFunction {
	return func(L *lua.LState) int {
		text, err := ArgString(L, "message", 1)
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		ed.Enqueue(editor.MessageEvent{Text: text})
		return 0
	}
}

// luaSaveBuffer implements save_buffer(): enqueues the save-buffer command.
func luaSaveBuffer(ed *editor.Editor) lua.LGFunction {
	return func(L *lua.LState) int {
		ed.Enqueue(editor.ExecuteCommandEvent{Name: "save-buffer"})
		return 0
	}
}

// luaExitEditor implements exit_editor(): enqueues the quit command.
func luaExitEditor(ed *editor.Editor) lua.LGFunction {
	return func(L *lua.LState) int {
		ed.Enqueue(editor.ExecuteCommandEvent{Name: "kill-remux"})
		return 0
	}
}

// luaAddHook implements add_hook(name, fn): enqueues an AddHookEvent that
// registers fn, kept alive as a Lua function value referenced by the closure
// below, against the editor's hook registry on the next event-queue drain.
func luaAddHook(ed *editor.Editor, state *State) lua.LGFunction {
	return func(L *lua.LState) int {
		name, err := ArgString(L, "add_hook", 1)
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		fnVal := L.Get(2)
		fn, ok := fnVal.(*lua.LFunction)
		if !ok {
			L.RaiseError("add_hook: argument 2 must be a function, got %s", fnVal.Type())
			return 0
		}
		ed.Enqueue(editor.AddHookEvent{Name: name, Callable: &luaHook{state: state.L, fn: fn}})
		return 0
	}
}

// luaMinibufferPrompt implements minibuffer_prompt(prompt, on_submit_command).
func luaMinibufferPrompt(ed *editor.Editor) lua.LGFunction {
	return func(L *lua.LState) int {
		prompt, err := ArgString(L, "minibuffer_prompt", 1)
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		onSubmit, err := ArgString(L, "minibuffer_prompt", 2)
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		ed.PromptMinibuffer(prompt, onSubmit)
		return 0
	}
}

// luaSetBufferBorders implements set_buffer_borders(enabled).
func luaSetBufferBorders(ed *editor.Editor) lua.LGFunction {
	return func(L *lua.LState) int {
		ed.Config().BufferBorders = bool(L.ToBool(1))
		return 0
	}
}

// luaSetISearchHighlight implements set_isearch_highlight(enabled).
func luaSetISearchHighlight(ed *editor.Editor) lua.LGFunction {
	return func(L *lua.LState) int {
		ed.Config().ISearchHighlight = bool(L.ToBool(1))
		return 0
	}
}

// luaBufferModified implements buffer_modified(): a pure read, safe to
// expose directly since it cannot desync editor state.
func luaBufferModified(ed *editor.Editor) lua.LGFunction {
	return func(L *lua.LState) int {
		L.Push(lua.LBool(ed.Buffer().IsModified()))
		return 1
	}
}

// luaCurrentBufferPath implements current_buffer_path(): a pure read.
func luaCurrentBufferPath(ed *editor.Editor) lua.LGFunction {
	return func(L *lua.LState) int {
		if !ed.Buffer().HasFilePath() {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LString(ed.Buffer().FilePath))
		return 1
	}
}

// luaHook adapts a Lua function into hook.Callable, calling it with the
// hook's string argument and interpreting its return value.
type luaHook struct {
	state *lua.LState
	fn    *lua.LFunction
}

func (h *luaHook) Call(arg string) (str string, strOK bool, boolVal bool, boolOK bool) {
	h.state.Push(h.fn)
	h.state.Push(lua.LString(arg))
	if err := h.state.PCall(1, 1, nil); err != nil {
		return "", false, false, false
	}
	ret := h.state.Get(-1)
	h.state.Pop(1)
	switch v := ret.(type) {
	case lua.LString:
		return string(v), true, false, false
	case lua.LBool:
		return "", false, bool(v), true
	default:
		return "", false, false, false
	}
}
