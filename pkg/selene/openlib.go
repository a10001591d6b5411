package selene

import (
	lua "github.com/yuin/gopher-lua"
)

// Generation selects which of the two historical module-registration ABIs
// OpenLib uses. It is resolved once at construction time, not per call.
type Generation int

const (
	// GenerationModern registers through the require-and-cache primitive:
	// the loader result is stored in the loaded-modules table and bound as
	// a global under the module name.
	GenerationModern Generation = iota
	// GenerationLegacy uses the older two-step sequence: push the loader,
	// push the name, invoke with one argument and discard results. The
	// loader is expected to publish the module itself.
	GenerationLegacy
)

// loadedTableName is the registry key of the loaded-modules cache shared
// with the VM's require implementation.
const loadedTableName = "_LOADED"

// OpenLib registers a native module under name. Registration failure is
// not reported: a missing module becomes observable only when later code
// tries to use it. The stack is restored after either ABI path.
func (s *State) OpenLib(name string, loader lua.LGFunction) {
	if s.l == nil {
		return
	}
	defer newStackGuard(s.l).restore()

	switch s.gen {
	case GenerationLegacy:
		s.l.Push(s.l.NewFunction(loader))
		s.l.Push(lua.LString(name))
		_ = s.l.PCall(1, 0, nil)
	default:
		s.requireAndCache(name, loader)
	}
}

// requireAndCache mirrors the modern VM primitive: consult the
// loaded-modules cache first, otherwise run the loader with the module
// name as its argument, cache the result and bind it globally.
func (s *State) requireAndCache(name string, loader lua.LGFunction) {
	loaded, _ := s.l.GetField(s.l.Get(lua.RegistryIndex), loadedTableName).(*lua.LTable)
	if loaded != nil {
		if mod := s.l.GetField(loaded, name); mod != lua.LNil {
			s.l.SetGlobal(name, mod)
			return
		}
	}

	s.l.Push(s.l.NewFunction(loader))
	s.l.Push(lua.LString(name))
	if err := s.l.PCall(1, 1, nil); err != nil {
		return
	}
	mod := s.l.Get(-1)
	if loaded != nil {
		s.l.SetField(loaded, name, mod)
	}
	s.l.SetGlobal(name, mod)
}
