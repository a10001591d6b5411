package selene

import (
	lua "github.com/yuin/gopher-lua"
)

// LoadFile compiles and runs a script file. Failure is communicated
// through the boolean result and the installed reporter; no error crosses
// this boundary and the stack is restored to its pre-call depth
// unconditionally. Compile failures other than syntax and file errors
// are reported too, under the generic load fallback.
func (s *State) LoadFile(path string) bool {
	if s.l == nil {
		return false
	}
	defer newStackGuard(s.l).restore()

	fn, err := s.l.LoadFile(path)
	if err != nil {
		code := codeOf(err)
		switch code {
		case lua.ApiErrorSyntax:
			s.reporter.reportTopOfStack(code, s.l, path+": syntax error", err)
		case lua.ApiErrorFile:
			s.reporter.reportTopOfStack(code, s.l, path+": file error", err)
		default:
			s.reporter.reportTopOfStack(code, s.l, path+": load error", err)
		}
		return false
	}

	s.l.Push(fn)
	if err := s.l.PCall(0, lua.MultRet, nil); err != nil {
		s.reporter.reportTopOfStack(codeOf(err), s.l, path+": dofile failed", err)
		return false
	}
	return true
}

// Execute compiles and runs inline source in one step. Any non-success
// code is reported via the stack-top convention. Stack-neutral regardless
// of outcome.
func (s *State) Execute(source string) bool {
	if s.l == nil {
		return false
	}
	defer newStackGuard(s.l).restore()

	if err := s.l.DoString(source); err != nil {
		s.reporter.reportTopOfStack(codeOf(err), s.l, "script error", err)
		return false
	}
	return true
}
