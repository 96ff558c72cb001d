package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// Bridge provides Go<->Lua value conversion for the small set of shapes the
// script surface actually needs: scalars, strings, and string-keyed or
// array-like tables. There is no struct/reflection path here — remux's
// globals only ever exchange primitives and flat tables with scripts,
// never arbitrary Go values.
type Bridge struct {
	L *lua.LState
}

// NewBridge wraps an existing Lua state.
func NewBridge(L *lua.LState) *Bridge {
	return &Bridge{L: L}
}

// ToGoValue converts a Lua value into its natural Go representation.
func (b *Bridge) ToGoValue(lv lua.LValue) interface{} {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		return b.tableToGo(v)
	case *lua.LNilType, nil:
		return nil
	default:
		return nil
	}
}

// tableToGo converts a Lua table into a []interface{} when it is a
// contiguous 1-based array, or a map[string]interface{} otherwise.
func (b *Bridge) tableToGo(t *lua.LTable) interface{} {
	maxN, count := 0, 0
	isArray := true
	t.ForEach(func(k, _ lua.LValue) {
		count++
		if kn, ok := k.(lua.LNumber); ok {
			if n := int(kn); float64(n) == float64(kn) && n > 0 {
				if n > maxN {
					maxN = n
				}
				return
			}
		}
		isArray = false
	})

	if isArray && maxN > 0 && maxN == count {
		arr := make([]interface{}, maxN)
		for i := 1; i <= maxN; i++ {
			arr[i-1] = b.ToGoValue(t.RawGetInt(i))
		}
		return arr
	}

	m := make(map[string]interface{})
	t.ForEach(func(k, v lua.LValue) {
		m[k.String()] = b.ToGoValue(v)
	})
	return m
}

// ToLuaValue converts a Go value into a Lua value.
func (b *Bridge) ToLuaValue(v interface{}) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []string:
		t := b.L.NewTable()
		for i, s := range val {
			t.RawSetInt(i+1, lua.LString(s))
		}
		return t
	case map[string]interface{}:
		t := b.L.NewTable()
		for k, v := range val {
			t.RawSetString(k, b.ToLuaValue(v))
		}
		return t
	default:
		return lua.LString(fmt.Sprintf("%v", val))
	}
}

// ArgString returns the string at Lua stack position n, or an error naming
// fn if the argument is missing or not a string.
func ArgString(L *lua.LState, fn string, n int) (string, error) {
	v := L.Get(n)
	s, ok := v.(lua.LString)
	if !ok {
		return "", fmt.Errorf("%s: argument %d must be a string, got %s", fn, n, v.Type())
	}
	return string(s), nil
}

// ArgInt returns the integer at Lua stack position n.
func ArgInt(L *lua.LState, fn string, n int) (int, error) {
	v := L.Get(n)
	num, ok := v.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("%s: argument %d must be a number, got %s", fn, n, v.Type())
	}
	return int(num), nil
}
