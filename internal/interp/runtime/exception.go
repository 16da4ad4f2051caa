package runtime

import "github.com/brewin-lang/brewin/internal/lexer"

// TypeException is the sentinel Type() returned by ExceptionSignal. A
// Brewin exception is not a host error: it is recoverable by a
// matching try/catch, so it travels through the same Value-returning
// calls as ordinary values rather than as a Go error.
const TypeException = "EXCEPTION_SIGNAL"

// ExceptionSignal represents a raised-but-not-yet-caught Brewin
// exception. Its Name is matched verbatim against a catcher's
// exception_type string.
type ExceptionSignal struct {
	Name string
}

func (e *ExceptionSignal) Type() string    { return TypeException }
func (e *ExceptionSignal) Inspect() string { return e.Name }
func (e *ExceptionSignal) Evaluated() bool { return true }

// IsException reports whether v is an in-flight Brewin exception.
func IsException(v Value) bool {
	return v != nil && v.Type() == TypeException
}

// TypeHostError is the sentinel Type() for a terminal host error
// (NAME_ERROR/TYPE_ERROR/FAULT_ERROR). Unlike ExceptionSignal, a
// HostErrorValue is never caught by try/catch; every evaluation site
// that can produce one must propagate it unconditionally, including out
// of a try block.
const TypeHostError = "HOST_ERROR_SIGNAL"

// HostErrorValue carries a terminal host error so it can flow through
// the same Value-returning evaluation functions as everything else,
// without needing a parallel Go-error return channel at every call
// site.
type HostErrorValue struct {
	Kind    string
	Message string
	Pos     lexer.Position
}

func (e *HostErrorValue) Type() string    { return TypeHostError }
func (e *HostErrorValue) Inspect() string { return e.Kind + ": " + e.Message }
func (e *HostErrorValue) Evaluated() bool { return true }

// IsHostError reports whether v is a terminal host error.
func IsHostError(v Value) bool {
	return v != nil && v.Type() == TypeHostError
}
