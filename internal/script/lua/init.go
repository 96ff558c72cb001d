package lua

import (
	"os"
	"path/filepath"

	"github.com/dshills/remux/internal/app"
	"github.com/dshills/remux/internal/editor"
)

// initFileName is the config file init.lua loads from
// $XDG_CONFIG_HOME/remux (or ~/.config/remux if XDG_CONFIG_HOME is unset).
const initFileName = "init.lua"

// ConfigDir returns the directory init.lua is expected to live in.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "remux")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "remux")
}

// LoadInitFile installs the script globals against ed and runs init.lua if
// present, returning the live State so the caller can keep it around for the
// editor's lifetime (add_hook callables reference it). A missing init.lua is
// not an error — most users never write one. A syntax or runtime error in an
// existing init.lua is logged and reported as a minibuffer message rather
// than aborting startup. Either way, after-init-once fires exactly once
// (via hook.Registry.RunOnce) once
// loading is finished, so a callback the script itself registered via
// add_hook("after-init-once", fn) still runs.
func LoadInitFile(ed *editor.Editor, logger *app.Logger) *State {
	return loadScript(ed, logger, filepath.Join(ConfigDir(), initFileName))
}

// LoadInitFileFrom behaves like LoadInitFile but runs the script at path
// instead of the XDG default location, for the CLI's -config override.
func LoadInitFileFrom(ed *editor.Editor, logger *app.Logger, path string) *State {
	return loadScript(ed, logger, path)
}

func loadScript(ed *editor.Editor, logger *app.Logger, path string) *State {
	if logger == nil {
		logger = app.NullLogger
	}
	logger = logger.WithComponent("lua")

	state := NewState()
	Install(state, ed)

	if _, err := os.Stat(path); err != nil {
		logger.Debug("no init script at %s, skipping", path)
	} else if err := state.DoFile(path); err != nil {
		logger.Error("init script failed: %v", err)
		ed.Message("init.lua: " + err.Error())
	}

	// Drain whatever the script enqueued (add_hook in particular) before
	// firing after-init-once, so a hook the script just registered for that
	// very name is already live to receive it.
	ed.ProcessEvents()
	ed.Hooks().RunOnce("after-init-once", "")
	return state
}
