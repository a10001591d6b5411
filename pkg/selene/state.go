// Package selene is a high-level binding layer around an embedded Lua VM.
//
// A State wraps a single *lua.LState and guarantees that every operation
// leaves the VM's value stack exactly as it found it, funnels all VM
// failures through one replaceable error reporter, and keeps ownership of
// the underlying handle unambiguous: exactly one State owns a handle and
// only the owner finalizes it.
package selene

import (
	"fmt"
	"runtime"

	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"
)

// Options configures a State at construction time.
type Options struct {
	// OpenLibraries bootstraps the Lua standard library surface.
	OpenLibraries bool
	// Generation selects which module-registration ABI OpenLib uses.
	Generation Generation
	// Reporter installs an error reporter at construction time. Nil
	// keeps the default, which prints the message to standard output.
	Reporter ReporterFunc
}

// State drives one Lua VM handle. The zero value is not usable; construct
// with New, NewWithOptions, Wrap or WrapWithOptions. A State must not be
// copied by value; Move is the only sanctioned ownership transfer.
type State struct {
	l        *lua.LState
	owner    bool
	gen      Generation
	id       string
	registry *Registry
	reporter *reporter
}

// New creates a State that owns a fresh VM instance, using the modern
// module-registration generation.
func New(openLibs bool) *State {
	return NewWithOptions(Options{OpenLibraries: openLibs})
}

// NewWithOptions creates an owning State. If the VM cannot be allocated
// the underlying runtime panics; there is no VM to report through, so the
// fault is unrecoverable by design of the VM itself.
func NewWithOptions(o Options) *State {
	l := lua.NewState(lua.Options{SkipOpenLibs: !o.OpenLibraries})
	s := &State{
		l:        l,
		owner:    true,
		gen:      o.Generation,
		id:       uuid.NewString(),
		registry: newRegistry(),
		reporter: newReporter(),
	}
	s.reporter.replace(o.Reporter)
	return s
}

// Wrap borrows an externally owned handle. The caller remains responsible
// for closing it; Close on the returned State never finalizes the VM.
func Wrap(l *lua.LState) *State {
	return WrapWithOptions(l, Options{})
}

// WrapWithOptions borrows a handle with explicit options. OpenLibraries is
// ignored: the owner decides which libraries exist.
func WrapWithOptions(l *lua.LState, o Options) *State {
	s := &State{
		l:        l,
		owner:    false,
		gen:      o.Generation,
		id:       uuid.NewString(),
		registry: newRegistry(),
		reporter: newReporter(),
	}
	s.reporter.replace(o.Reporter)
	return s
}

// Move transfers the handle, ownership flag and collaborators to a new
// State. The source becomes inert: every operation on it is a safe no-op
// and its Close never finalizes the handle.
func (s *State) Move() *State {
	dst := &State{
		l:        s.l,
		owner:    s.owner,
		gen:      s.gen,
		id:       s.id,
		registry: s.registry,
		reporter: s.reporter,
	}
	s.l = nil
	s.owner = false
	s.registry = nil
	s.reporter = nil
	return dst
}

// Close finalizes the VM if this State owns it, after forcing a full
// collection cycle. Borrowing and moved-from States never finalize.
// Close is idempotent.
func (s *State) Close() {
	if s.l != nil && s.owner {
		s.ForceCollect()
		s.l.Close()
	}
	s.l = nil
}

// Raw exposes the underlying VM handle for advanced use. Callers that
// manipulate the stack directly are responsible for leaving it balanced.
func (s *State) Raw() *lua.LState {
	return s.l
}

// Depth reports the current depth of the VM's value stack.
func (s *State) Depth() int {
	if s.l == nil {
		return 0
	}
	return s.l.GetTop()
}

// Registry returns the value registry associated with this State, or nil
// for a moved-from State.
func (s *State) Registry() *Registry {
	return s.registry
}

// ForceCollect runs a full garbage-collection cycle. It prefers the VM's
// own collectgarbage primitive when the base library is open and falls
// back to a host collection otherwise.
func (s *State) ForceCollect() {
	if s.l == nil {
		return
	}
	defer newStackGuard(s.l).restore()
	if fn, ok := s.l.GetGlobal("collectgarbage").(*lua.LFunction); ok {
		s.l.Push(fn)
		s.l.Push(lua.LString("collect"))
		_ = s.l.PCall(1, 0, nil)
		return
	}
	runtime.GC()
}

// String returns a debug representation exposing the handle's identity.
func (s *State) String() string {
	return fmt.Sprintf("selene.State(%p, %s)", s.l, s.id)
}
