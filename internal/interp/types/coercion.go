// Package types centralizes type validation, default-value
// construction, and implicit coercions: a small object holding the
// registries the evaluator needs type-level decisions from, kept
// separate from execution concerns.
package types

import (
	"fmt"

	"github.com/brewin-lang/brewin/internal/interp/runtime"
)

// Engine validates declared type names, computes per-type defaults, and
// applies the two implicit coercions Brewin supports (int->bool,
// nil->struct). It consults a StructRegistry for struct-typed names.
type Engine struct {
	Structs *runtime.StructRegistry
}

// NewEngine creates a type/coercion Engine backed by the given struct
// registry.
func NewEngine(structs *runtime.StructRegistry) *Engine {
	return &Engine{Structs: structs}
}

// IsValidVarType reports whether name is a type a Variable may declare:
// one of int/bool/string/nil, or a declared struct name. void is
// excluded — it is only valid as a function return type.
func (e *Engine) IsValidVarType(name string) bool {
	switch name {
	case runtime.TypeInt, runtime.TypeBool, runtime.TypeString, runtime.TypeNil:
		return true
	default:
		return e.Structs.Has(name)
	}
}

// IsValidReturnType reports whether name is a legal function return
// type: any valid variable type, plus void.
func (e *Engine) IsValidReturnType(name string) bool {
	return name == runtime.TypeVoid || e.IsValidVarType(name)
}

// DefaultValue returns the zero value for a declared type: 0 for int,
// false for bool, "" for string, a null handle (nil) for struct types,
// and Void for void (used only for function results that are never
// materialized into a variable).
func (e *Engine) DefaultValue(declaredType string) runtime.Value {
	switch declaredType {
	case runtime.TypeInt:
		return &runtime.IntValue{V: 0}
	case runtime.TypeBool:
		return &runtime.BoolValue{V: false}
	case runtime.TypeString:
		return &runtime.StringValue{V: ""}
	case runtime.TypeVoid:
		return &runtime.VoidValue{}
	default:
		// Struct-typed (or declared nil): the null handle.
		return runtime.Nil()
	}
}

// Coerce applies Brewin's two implicit coercions when storing val into
// a location declared as declaredType:
//
//   - int -> bool: 0 is false, any other int is true.
//   - nil -> a declared struct type: the null handle of that type.
//
// Any other type mismatch is reported as a TYPE_ERROR via ok=false; the
// caller is responsible for turning that into a runtime.HostErrorValue
// with source position context.
func (e *Engine) Coerce(val runtime.Value, declaredType string) (runtime.Value, bool) {
	if val.Type() == declaredType {
		return val, true
	}

	if declaredType == runtime.TypeBool && val.Type() == runtime.TypeInt {
		iv := val.(*runtime.IntValue)
		return &runtime.BoolValue{V: iv.V != 0}, true
	}

	if val.Type() == runtime.TypeNil && e.Structs.Has(declaredType) {
		return runtime.Nil(), true
	}

	return nil, false
}

// CoerceToBool applies int->bool coercion for contexts that require a
// boolean (if/for conditions, && ||, unary !). It reports ok=false for
// any other type.
func (e *Engine) CoerceToBool(val runtime.Value) (bool, bool) {
	switch v := val.(type) {
	case *runtime.BoolValue:
		return v.V, true
	case *runtime.IntValue:
		return v.V != 0, true
	default:
		return false, false
	}
}

// TypeErrorf is a small helper for constructing a TYPE_ERROR message
// consistently across the evaluator.
func TypeErrorf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
