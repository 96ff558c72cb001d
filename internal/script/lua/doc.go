// Package lua provides the Lua scripting bridge for remux's user
// configuration and runtime extension surface.
//
// init.lua is loaded once at startup and configures key bindings, display
// toggles, and hook callbacks by calling a fixed set of globals this package
// installs (bind, bind_mod, execute, message, add_hook, and friends — see
// Install). Most of those globals enqueue editor.Event values or write into
// the shared KeyMap/UserConfig, matching the single-threaded tick model
// described in internal/editor; minibuffer_prompt opens the prompt
// immediately, and buffer_modified/current_buffer_path read the editor's
// state directly.
package lua
