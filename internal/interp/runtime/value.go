// Package runtime holds the Value model, environment, and struct
// registry the evaluator operates on. It is kept free of any
// dependency on the AST visitor so it can be exercised by unit tests
// in isolation.
package runtime

import "fmt"

// Type names used for built-in types plus every declared struct name.
const (
	TypeInt    = "int"
	TypeBool   = "bool"
	TypeString = "string"
	TypeVoid   = "void"
	TypeNil    = "nil"
)

// Value is the tagged-variant interface every runtime value implements
// (an interface playing the role Go has no sum type for).
type Value interface {
	// Type returns the value's declared/runtime type name: one of the
	// built-ins or a struct type name.
	Type() string
	// Inspect renders the value's printable form. Calling Inspect on a
	// Void value is a programming error in this interpreter; callers
	// must reject Void before printing.
	Inspect() string
	// Evaluated reports whether this value is already resolved.
	// Non-Lazy values are always true; *LazyValue overrides this.
	Evaluated() bool
}

// IntValue wraps an int64.
type IntValue struct{ V int64 }

func (v *IntValue) Type() string    { return TypeInt }
func (v *IntValue) Inspect() string { return fmt.Sprintf("%d", v.V) }
func (v *IntValue) Evaluated() bool { return true }

// StringValue wraps a string.
type StringValue struct{ V string }

func (v *StringValue) Type() string    { return TypeString }
func (v *StringValue) Inspect() string { return v.V }
func (v *StringValue) Evaluated() bool { return true }

// BoolValue wraps a bool.
type BoolValue struct{ V bool }

func (v *BoolValue) Type() string { return TypeBool }
func (v *BoolValue) Inspect() string {
	if v.V {
		return "true"
	}
	return "false"
}
func (v *BoolValue) Evaluated() bool { return true }

// NilValue is the single nil value. Every NilValue instance compares
// equal in meaning; interpreter code need not special-case a singleton.
type NilValue struct{}

func (v *NilValue) Type() string    { return TypeNil }
func (v *NilValue) Inspect() string { return "nil" }
func (v *NilValue) Evaluated() bool { return true }

// VoidValue is produced by statement-form calls and rejected anywhere a
// concrete value is required (print arguments, storage).
type VoidValue struct{}

func (v *VoidValue) Type() string    { return TypeVoid }
func (v *VoidValue) Inspect() string { return "<void>" }
func (v *VoidValue) Evaluated() bool { return true }

var theNil = &NilValue{}

// Nil returns the shared nil value.
func Nil() *NilValue { return theNil }
