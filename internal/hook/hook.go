// Package hook implements the editor's named fan-out extension points.
// Callables are invoked synchronously, in registration order; they must not
// re-enter the editor directly (see the controller's event queue) — the
// Callable interface only ever hands them a string argument and lets them
// return an optional result.
package hook

// Callable is anything that can be registered against a hook name: a
// scripted Lua function wrapped by internal/script/lua, or a plain Go
// closure for built-in hooks and tests.
type Callable interface {
	// Call invokes the callable with arg and returns an optional string and
	// an optional bool result. Either return may be left zero-valued; which
	// one callers look at depends on whether they used Run, RunCollect, or
	// RunCollectBool.
	Call(arg string) (str string, strOK bool, boolVal bool, boolOK bool)
}

// Func adapts a plain Go function into a Callable that produces no return
// value, for built-in hooks that only want the side effect.
type Func func(arg string)

func (f Func) Call(arg string) (string, bool, bool, bool) {
	f(arg)
	return "", false, false, false
}

// Registry maps hook name to an ordered list of Callables.
type Registry struct {
	hooks map[string][]Callable
}

// New returns an empty hook registry.
func New() *Registry {
	return &Registry{hooks: make(map[string][]Callable)}
}

// Add appends callable to the list registered under name.
func (r *Registry) Add(name string, callable Callable) {
	r.hooks[name] = append(r.hooks[name], callable)
}

// Count returns the number of callables registered under name.
func (r *Registry) Count(name string) int {
	return len(r.hooks[name])
}

// Run invokes every callable registered under name, in registration order,
// ignoring individual failures and discarding return values.
func (r *Registry) Run(name, arg string) {
	for _, c := range r.hooks[name] {
		c.Call(arg)
	}
}

// RunOnce behaves like Run, then removes the hook's callable list so it
// never fires again under this name.
func (r *Registry) RunOnce(name, arg string) {
	r.Run(name, arg)
	delete(r.hooks, name)
}

// RunCollect behaves like Run but collects every non-empty string a
// callable returns, in registration order.
func (r *Registry) RunCollect(name, arg string) []string {
	var out []string
	for _, c := range r.hooks[name] {
		if s, ok, _, _ := c.Call(arg); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// RunCollectBool behaves like Run but collects every boolean a callable
// returns, in registration order.
func (r *Registry) RunCollectBool(name, arg string) []bool {
	var out []bool
	for _, c := range r.hooks[name] {
		if _, _, b, ok := c.Call(arg); ok {
			out = append(out, b)
		}
	}
	return out
}
