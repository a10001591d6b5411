package selene

import (
	"strconv"

	lua "github.com/yuin/gopher-lua"
)

// GlobalNames walks the VM's global table and returns the textual form of
// every string- and number-keyed entry. The sequence is computed fresh on
// each call; order follows the table's own iteration order and is not
// contractually fixed. The walk has no VM-visible side effect and a net
// stack effect of zero.
func (s *State) GlobalNames() []string {
	globals := []string{}
	if s.l == nil {
		return globals
	}
	defer newStackGuard(s.l).restore()

	s.l.Push(s.l.Get(lua.GlobalsIndex)) // global table
	tbl := s.l.Get(-1).(*lua.LTable)
	s.l.Push(lua.LNil) // no key yet

	for {
		// The previous key on the stack top is replaced by the next one,
		// with the associated value pushed above it.
		key := s.l.Get(-1)
		s.l.Pop(1)
		nextKey, value := tbl.Next(key)
		if nextKey == lua.LNil {
			break
		}
		s.l.Push(nextKey)
		s.l.Push(value)

		switch nextKey.Type() {
		case lua.LTString:
			globals = append(globals, string(nextKey.(lua.LString)))
		case lua.LTNumber:
			globals = append(globals, strconv.FormatFloat(float64(nextKey.(lua.LNumber)), 'g', -1, 64))
		}

		// Pop the value, keep the key: the iteration protocol requires
		// exactly the key on top for the next step.
		s.l.Pop(1)
	}

	s.l.Pop(1) // remove the global table
	return globals
}
