package types

import (
	"testing"

	"github.com/brewin-lang/brewin/internal/interp/runtime"
)

func newTestEngine() *Engine {
	structs := runtime.NewStructRegistry()
	structs.DeclareName("Point")
	structs.SetFields("Point", []runtime.FieldDef{{Name: "x", Type: "int"}})
	return NewEngine(structs)
}

func TestIsValidVarTypeExcludesVoid(t *testing.T) {
	e := newTestEngine()
	for _, ty := range []string{"int", "bool", "string", "nil", "Point"} {
		if !e.IsValidVarType(ty) {
			t.Errorf("expected %q to be a valid variable type", ty)
		}
	}
	if e.IsValidVarType("void") {
		t.Error("expected void to be rejected as a variable type")
	}
	if e.IsValidVarType("Unknown") {
		t.Error("expected an undeclared struct name to be rejected")
	}
}

func TestIsValidReturnTypeIncludesVoid(t *testing.T) {
	e := newTestEngine()
	if !e.IsValidReturnType("void") {
		t.Error("expected void to be a valid return type")
	}
}

func TestDefaultValue(t *testing.T) {
	e := newTestEngine()
	cases := map[string]string{"int": "int", "bool": "bool", "string": "string", "Point": "nil"}
	for ty, wantType := range cases {
		got := e.DefaultValue(ty)
		if got.Type() != wantType {
			t.Errorf("DefaultValue(%q).Type() = %q, want %q", ty, got.Type(), wantType)
		}
	}
}

func TestCoerceIntToBool(t *testing.T) {
	e := newTestEngine()
	got, ok := e.Coerce(&runtime.IntValue{V: 0}, "bool")
	if !ok || got.(*runtime.BoolValue).V != false {
		t.Fatalf("expected 0 to coerce to false, got %#v ok=%v", got, ok)
	}
	got, ok = e.Coerce(&runtime.IntValue{V: 5}, "bool")
	if !ok || got.(*runtime.BoolValue).V != true {
		t.Fatalf("expected 5 to coerce to true, got %#v ok=%v", got, ok)
	}
}

func TestCoerceNilToStructType(t *testing.T) {
	e := newTestEngine()
	got, ok := e.Coerce(runtime.Nil(), "Point")
	if !ok {
		t.Fatal("expected nil to coerce to a declared struct type")
	}
	if _, isNil := got.(*runtime.NilValue); !isNil {
		t.Fatalf("expected coerced value to remain the null handle, got %#v", got)
	}
}

func TestCoerceRejectsIncompatibleTypes(t *testing.T) {
	e := newTestEngine()
	if _, ok := e.Coerce(&runtime.StringValue{V: "hi"}, "int"); ok {
		t.Error("expected string-to-int coercion to fail")
	}
	if _, ok := e.Coerce(&runtime.BoolValue{V: true}, "string"); ok {
		t.Error("expected bool-to-string coercion to fail")
	}
}

func TestCoerceToBool(t *testing.T) {
	e := newTestEngine()
	if b, ok := e.CoerceToBool(&runtime.BoolValue{V: true}); !ok || !b {
		t.Error("expected bool passthrough")
	}
	if b, ok := e.CoerceToBool(&runtime.IntValue{V: 3}); !ok || !b {
		t.Error("expected nonzero int to coerce to true")
	}
	if _, ok := e.CoerceToBool(&runtime.StringValue{V: "x"}); ok {
		t.Error("expected string to be rejected for bool coercion")
	}
}
