package selene

import (
	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"
)

// Registry keeps VM values alive independent of the VM's own stack. The
// VM's values are host-managed, so anchoring them on the host side is
// sufficient to keep them collectable only through the registry. Each
// State owns one Registry and lends it, by reference, to its Selectors.
type Registry struct {
	refs map[string]lua.LValue
}

func newRegistry() *Registry {
	return &Registry{refs: make(map[string]lua.LValue)}
}

// Ref identifies one pinned value. The zero Ref is released.
type Ref struct {
	id  string
	reg *Registry
}

// Pin anchors a value and returns a Ref that retrieves it later,
// independent of any stack resets in between.
func (r *Registry) Pin(v lua.LValue) Ref {
	id := uuid.NewString()
	r.refs[id] = v
	return Ref{id: id, reg: r}
}

// Len reports the number of currently pinned values.
func (r *Registry) Len() int {
	return len(r.refs)
}

// Value returns the pinned value, or LNil after release.
func (ref Ref) Value() lua.LValue {
	if ref.reg == nil {
		return lua.LNil
	}
	if v, ok := ref.reg.refs[ref.id]; ok {
		return v
	}
	return lua.LNil
}

// Release drops the pin. Releasing twice is a no-op.
func (ref Ref) Release() {
	if ref.reg != nil {
		delete(ref.reg.refs, ref.id)
	}
}
