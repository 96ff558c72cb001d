package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// State wraps a gopher-lua LState configured with only the safe standard
// libraries init.lua needs (base, table, string, math). It deliberately
// never opens io/os/debug/package: init.lua configures the editor, it
// doesn't need filesystem or process access.
//
// gopher-lua's LState is not goroutine-safe, but remux's tick loop is
// single-threaded (see internal/editor), so no mutex is needed here.
type State struct {
	L      *lua.LState
	closed bool
}

// NewState returns a sandboxed Lua state ready for Install to wire globals
// into.
func NewState() *State {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
	return &State{L: L}
}

// DoFile executes a Lua file, recovering from any Lua panic as an error.
func (s *State) DoFile(path string) (err error) {
	if s.closed {
		return ErrStateClosed
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return s.L.DoFile(path)
}

// DoString executes Lua source, recovering from any Lua panic as an error.
func (s *State) DoString(code string) (err error) {
	if s.closed {
		return ErrStateClosed
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return s.L.DoString(code)
}

// RegisterFunc installs fn as a global Lua function named name.
func (s *State) RegisterFunc(name string, fn lua.LGFunction) {
	s.L.SetGlobal(name, s.L.NewFunction(fn))
}

// Close releases the underlying Lua state. Safe to call more than once.
func (s *State) Close() {
	if s.closed {
		return
	}
	s.L.Close()
	s.closed = true
}
