package lua

import (
	"testing"

	"github.com/dshills/remux/internal/buffer"
	"github.com/dshills/remux/internal/editor"
	"github.com/dshills/remux/internal/keymap"
)

func newTestEditor() *editor.Editor {
	return editor.New(buffer.New(), nil)
}

func TestLuaBindRegistersKeymapEntry(t *testing.T) {
	ed := newTestEditor()
	state := NewState()
	defer state.Close()
	Install(state, ed)

	if err := state.DoString(`bind("mod0", "f", "move-right")`); err != nil {
		t.Fatalf("DoString: %v", err)
	}

	got, ok := ed.KeyMap().Lookup(keymap.ParseLogicalCombo("mod0"), 'f')
	if !ok || got != "move-right" {
		t.Fatalf("Lookup(mod0, 'f') = %q, %v, want move-right, true", got, ok)
	}
}

func TestLuaBindRejectsMultiCharKey(t *testing.T) {
	ed := newTestEditor()
	state := NewState()
	defer state.Close()
	Install(state, ed)

	if err := state.DoString(`bind("mod0", "fo", "move-right")`); err == nil {
		t.Fatal("expected error for multi-character key, got nil")
	}
}

func TestLuaMessageEnqueuesAndDrains(t *testing.T) {
	ed := newTestEditor()
	state := NewState()
	defer state.Close()
	Install(state, ed)

	if err := state.DoString(`message("hello from init.lua")`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	ed.Tick(nil)

	if got := ed.Minibuffer().Text(); got != "hello from init.lua" {
		t.Errorf("minibuffer text: got %q", got)
	}
}

func TestLuaExecuteEnqueuesCommand(t *testing.T) {
	ed := newTestEditor()
	lines := []string{"hello"}
	b := buffer.New()
	b.Lines = make([]*buffer.Line, len(lines))
	for i, l := range lines {
		b.Lines[i] = buffer.NewLine(l)
	}
	ed = editor.New(b, nil)

	state := NewState()
	defer state.Close()
	Install(state, ed)

	if err := state.DoString(`execute("move-right")`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	ed.Tick(nil)

	if cur := ed.Buffer().Cursor(); cur.X != 1 {
		t.Errorf("cursor after move-right: got %+v, want X=1", cur)
	}
}

func TestLuaExitEditorRequestsQuit(t *testing.T) {
	ed := newTestEditor()
	state := NewState()
	defer state.Close()
	Install(state, ed)

	if err := state.DoString(`exit_editor()`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	ed.Tick(nil)

	if !ed.ShouldQuit() {
		t.Error("expected ShouldQuit() true after exit_editor()")
	}
}

func TestLuaBufferModifiedAndCurrentPath(t *testing.T) {
	ed := newTestEditor()
	state := NewState()
	defer state.Close()
	Install(state, ed)

	if err := state.DoString(`
		modified = buffer_modified()
		path = current_buffer_path()
	`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	if got := state.L.GetGlobal("modified").String(); got != "false" {
		t.Errorf("modified: got %q, want false", got)
	}
	if got := state.L.GetGlobal("path").String(); got != "nil" {
		t.Errorf("path: got %q, want nil", got)
	}
}

func TestLuaSetBufferBordersAndISearchHighlight(t *testing.T) {
	ed := newTestEditor()
	state := NewState()
	defer state.Close()
	Install(state, ed)

	if err := state.DoString(`
		set_buffer_borders(true)
		set_isearch_highlight(false)
	`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	if !ed.Config().BufferBorders {
		t.Error("BufferBorders: got false, want true")
	}
	if ed.Config().ISearchHighlight {
		t.Error("ISearchHighlight: got true, want false")
	}
}

func TestLuaAddHookInvokedOnFire(t *testing.T) {
	ed := newTestEditor()
	state := NewState()
	defer state.Close()
	Install(state, ed)

	if err := state.DoString(`
		seen = nil
		add_hook("cursor-moved", function(arg)
			seen = arg
		end)
	`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	ed.Tick(nil) // drain AddHookEvent

	ed.Hooks().Run("cursor-moved", "1,0")

	if got := state.L.GetGlobal("seen").String(); got != "1,0" {
		t.Errorf("seen: got %q, want 1,0", got)
	}
}
