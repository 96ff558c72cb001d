package lua

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/remux/internal/buffer"
	"github.com/dshills/remux/internal/editor"
	"github.com/dshills/remux/internal/hook"
)

func TestLoadInitFileFiresAfterInitOnceWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	ed := editor.New(buffer.New(), nil)
	count := 0
	ed.Hooks().Add("after-init-once", hook.Func(func(arg string) { count++ }))

	LoadInitFile(ed, nil)

	if count != 1 {
		t.Fatalf("after-init-once fired %d times, want 1", count)
	}
}

func TestLoadInitFileFromRunsScriptThenFiresAfterInitOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "init.lua")
	if err := os.WriteFile(path, []byte(`set_buffer_borders(false)`), 0o644); err != nil {
		t.Fatalf("write init.lua: %v", err)
	}

	ed := editor.New(buffer.New(), nil)
	var order []string
	bordersAtHook := true
	ed.Hooks().Add("after-init-once", hook.Func(func(arg string) {
		order = append(order, "after-init-once")
		bordersAtHook = ed.Config().BufferBorders
	}))

	LoadInitFileFrom(ed, nil, path)

	if bordersAtHook {
		t.Error("expected init.lua's set_buffer_borders(false) to have run before after-init-once fired")
	}
	if len(order) != 1 {
		t.Fatalf("after-init-once fired %d times, want 1", len(order))
	}
}

func TestLoadInitFileRunsHookRegisteredByTheScriptItself(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "init.lua")
	script := `
		ran = false
		add_hook("after-init-once", function(arg)
			ran = true
		end)
	`
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatalf("write init.lua: %v", err)
	}

	ed := editor.New(buffer.New(), nil)
	state := LoadInitFileFrom(ed, nil, path)

	if got := state.L.GetGlobal("ran").String(); got != "true" {
		t.Errorf("ran = %q, want true — after-init-once should invoke a hook the script registered via add_hook", got)
	}
}
