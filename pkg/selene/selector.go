package selene

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Selector addresses a nested VM value by a chain of dotted names, e.g.
// "config.net.port". It borrows the State's handle, registry and reporter
// without taking ownership of any of them. All Selector operations are
// stack-neutral.
type Selector struct {
	s        *State
	registry *Registry
	reporter *reporter
	path     []string
}

// Global returns a Selector for the dotted path rooted at the global
// table.
func (s *State) Global(path string) *Selector {
	return &Selector{
		s:        s,
		registry: s.registry,
		reporter: s.reporter,
		path:     strings.Split(path, "."),
	}
}

// Path returns the dotted path this Selector addresses.
func (sel *Selector) Path() string {
	return strings.Join(sel.path, ".")
}

// resolve walks the path without invoking metamethods. Missing segments or
// non-table intermediates yield false.
func (sel *Selector) resolve() (lua.LValue, bool) {
	l := sel.s.l
	if l == nil {
		return lua.LNil, false
	}
	v := l.GetGlobal(sel.path[0])
	for _, seg := range sel.path[1:] {
		tbl, ok := v.(*lua.LTable)
		if !ok {
			return lua.LNil, false
		}
		v = tbl.RawGetString(seg)
	}
	if v == lua.LNil {
		return lua.LNil, false
	}
	return v, true
}

// Get retrieves the addressed value converted to a host value.
func (sel *Selector) Get() (interface{}, bool) {
	v, ok := sel.resolve()
	if !ok {
		return nil, false
	}
	return FromLua(v), true
}

// Pin anchors the addressed value in the State's registry so it stays
// retrievable independent of later stack activity. The zero Ref is
// returned when the path does not resolve.
func (sel *Selector) Pin() Ref {
	v, ok := sel.resolve()
	if !ok || sel.registry == nil {
		return Ref{}
	}
	return sel.registry.Pin(v)
}

// Set writes a host value at the addressed path, creating intermediate
// tables as needed. A non-table intermediate blocks the write; that is
// reported and Set returns false.
func (sel *Selector) Set(val interface{}) bool {
	l := sel.s.l
	if l == nil {
		return false
	}
	lv := ToLua(l, val)

	if len(sel.path) == 1 {
		l.SetGlobal(sel.path[0], lv)
		return true
	}

	cur := l.GetGlobal(sel.path[0])
	if cur == lua.LNil {
		tbl := l.NewTable()
		l.SetGlobal(sel.path[0], tbl)
		cur = tbl
	}
	for i, seg := range sel.path[1:] {
		tbl, ok := cur.(*lua.LTable)
		if !ok {
			sel.reporter.report(lua.ApiErrorRun,
				fmt.Sprintf("%s: %s is not a table", sel.Path(), strings.Join(sel.path[:i+1], ".")), nil)
			return false
		}
		if i == len(sel.path)-2 {
			tbl.RawSetString(seg, lv)
			return true
		}
		next := tbl.RawGetString(seg)
		if next == lua.LNil {
			nt := l.NewTable()
			tbl.RawSetString(seg, nt)
			next = nt
		}
		cur = next
	}
	return false
}

// Call invokes the addressed value as a function with the given host
// arguments and returns its first result. VM failures are reported
// through the State's reporter and also returned as an error.
func (sel *Selector) Call(args ...interface{}) (interface{}, error) {
	l := sel.s.l
	if l == nil {
		return nil, fmt.Errorf("%s: no VM handle", sel.Path())
	}
	fn, ok := sel.resolve()
	if !ok {
		return nil, fmt.Errorf("%s: not found", sel.Path())
	}
	if fn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("%s: not a function", sel.Path())
	}

	defer newStackGuard(l).restore()
	l.Push(fn)
	for _, arg := range args {
		l.Push(ToLua(l, arg))
	}
	if err := l.PCall(len(args), 1, nil); err != nil {
		sel.reporter.reportTopOfStack(codeOf(err), l, sel.Path()+": call failed", err)
		return nil, err
	}
	return FromLua(l.Get(-1)), nil
}

// Str returns the addressed value as a string, or "" when the path does
// not resolve to one.
func (sel *Selector) Str() string {
	v, ok := sel.resolve()
	if !ok {
		return ""
	}
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// Int returns the addressed value as an int64, or 0.
func (sel *Selector) Int() int64 {
	v, ok := sel.resolve()
	if !ok {
		return 0
	}
	if n, ok := v.(lua.LNumber); ok {
		return int64(n)
	}
	return 0
}

// Float returns the addressed value as a float64, or 0.
func (sel *Selector) Float() float64 {
	v, ok := sel.resolve()
	if !ok {
		return 0
	}
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// Bool returns the addressed value as a bool, or false.
func (sel *Selector) Bool() bool {
	v, ok := sel.resolve()
	if !ok {
		return false
	}
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return false
}
