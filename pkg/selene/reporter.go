package selene

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// ReporterFunc receives every VM failure: the VM's failure code, a
// human-readable message and the causing error when one exists.
type ReporterFunc func(code lua.ApiErrorType, msg string, cause error)

// reporter holds the single replaceable callback. Replacing it does not
// affect an invocation already in progress; every subsequent failure uses
// the new callback.
type reporter struct {
	fn ReporterFunc
}

func newReporter() *reporter {
	r := &reporter{}
	r.replace(nil)
	return r
}

func (r *reporter) replace(fn ReporterFunc) {
	if fn == nil {
		fn = func(code lua.ApiErrorType, msg string, cause error) {
			fmt.Println(msg)
		}
	}
	r.fn = fn
}

func (r *reporter) report(code lua.ApiErrorType, msg string, cause error) {
	r.fn(code, msg, cause)
}

// reportTopOfStack reads the error message from the top of the VM's own
// stack, following the VM convention of pushing an error string before
// returning a failure code. When the VM supplies none, the message is
// taken from the causing error, then from the fallback text.
func (r *reporter) reportTopOfStack(code lua.ApiErrorType, l *lua.LState, fallback string, cause error) {
	msg := ""
	if l != nil && l.GetTop() > 0 {
		if s, ok := l.Get(-1).(lua.LString); ok {
			msg = string(s)
		}
	}
	if msg == "" {
		msg = messageOf(cause)
	}
	if msg == "" {
		msg = fallback
	}
	r.report(code, msg, cause)
}

// ReplaceReporter installs a new error reporter. Passing nil restores the
// default, which prints the message to standard output. Each State keeps
// its own reporter so multiple VM instances stay independently
// configurable. On a moved-from State this is a no-op.
func (s *State) ReplaceReporter(fn ReporterFunc) {
	if s.reporter == nil {
		return
	}
	s.reporter.replace(fn)
}

// messageOf extracts the VM-supplied error text from an execution error.
func messageOf(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *lua.ApiError
	if errors.As(err, &apiErr) {
		if str, ok := apiErr.Object.(lua.LString); ok {
			return string(str)
		}
		if apiErr.Object != nil && apiErr.Object != lua.LNil {
			return apiErr.Object.String()
		}
	}
	return err.Error()
}

// codeOf maps an execution error to the VM's failure code. Errors that did
// not originate in the VM count as runtime failures.
func codeOf(err error) lua.ApiErrorType {
	var apiErr *lua.ApiError
	if errors.As(err, &apiErr) {
		return apiErr.Type
	}
	return lua.ApiErrorRun
}
