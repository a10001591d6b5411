package selene

import lua "github.com/yuin/gopher-lua"

// stackGuard records the VM stack depth at acquisition and restores it on
// release. Every public operation that touches the stack acquires one and
// releases it on all exit paths, which is what makes "stack-neutral" a
// hard guarantee independent of success or failure.
type stackGuard struct {
	l     *lua.LState
	depth int
}

func newStackGuard(l *lua.LState) *stackGuard {
	return &stackGuard{l: l, depth: l.GetTop()}
}

// restore discards everything pushed during the guarded span. Values below
// the recorded depth are never touched.
func (g *stackGuard) restore() {
	g.l.SetTop(g.depth)
}
