package selene

import (
	"fmt"
	"strconv"

	lua "github.com/yuin/gopher-lua"
)

// ToLua converts a Go value to its VM representation. Slices become
// 1-indexed array tables, string-keyed maps become record tables, and
// anything unrecognized falls back to its formatted string form.
func ToLua(l *lua.LState, val interface{}) lua.LValue {
	if val == nil {
		return lua.LNil
	}

	switch v := val.(type) {
	case lua.LValue:
		return v
	case bool:
		return lua.LBool(v)
	case int:
		return lua.LNumber(float64(v))
	case int64:
		return lua.LNumber(float64(v))
	case float64:
		return lua.LNumber(v)
	case string:
		return lua.LString(v)
	case []byte:
		return lua.LString(v)
	case []interface{}:
		tbl := l.NewTable()
		for i, item := range v {
			l.RawSetInt(tbl, i+1, ToLua(l, item))
		}
		return tbl
	case map[string]interface{}:
		tbl := l.NewTable()
		for k, item := range v {
			l.SetField(tbl, k, ToLua(l, item))
		}
		return tbl
	case map[interface{}]interface{}:
		tbl := l.NewTable()
		for k, item := range v {
			l.SetField(tbl, fmt.Sprintf("%v", k), ToLua(l, item))
		}
		return tbl
	default:
		return lua.LString(fmt.Sprintf("%v", v))
	}
}

// FromLua converts a VM value to a host value. Dense tables with only
// numeric keys become slices; everything else, sparse numeric tables
// included, becomes a string-keyed map.
func FromLua(val lua.LValue) interface{} {
	switch v := val.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		return float64(v)
	case lua.LString:
		return string(v)
	case *lua.LTable:
		numericKeys := 0
		hasStringKeys := false
		maxN := 0
		v.ForEach(func(key, _ lua.LValue) {
			switch k := key.(type) {
			case lua.LNumber:
				numericKeys++
				if int(k) > maxN {
					maxN = int(k)
				}
			case lua.LString:
				hasStringKeys = true
			}
		})

		// A table like {[1000000000]=1} must not allocate a billion
		// slots; only a contiguous 1..n run qualifies as an array.
		if numericKeys > 0 && !hasStringKeys && maxN == numericKeys {
			arr := make([]interface{}, maxN)
			for i := 1; i <= maxN; i++ {
				arr[i-1] = FromLua(v.RawGetInt(i))
			}
			return arr
		}

		m := make(map[string]interface{})
		v.ForEach(func(key, value lua.LValue) {
			switch k := key.(type) {
			case lua.LString:
				m[string(k)] = FromLua(value)
			case lua.LNumber:
				m[strconv.FormatFloat(float64(k), 'g', -1, 64)] = FromLua(value)
			}
		})
		return m
	default:
		return nil
	}
}
