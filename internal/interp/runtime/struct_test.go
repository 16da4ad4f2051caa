package runtime

import "testing"

func TestStructRegistryDeclareThenSetFieldsAllowsSelfReference(t *testing.T) {
	reg := NewStructRegistry()
	if !reg.DeclareName("Node") {
		t.Fatal("expected first DeclareName to succeed")
	}
	if reg.DeclareName("Node") {
		t.Fatal("expected second DeclareName of the same name to fail")
	}

	reg.SetFields("Node", []FieldDef{{Name: "val", Type: "int"}, {Name: "next", Type: "Node"}})

	fields, ok := reg.Fields("Node")
	if !ok || len(fields) != 2 {
		t.Fatalf("unexpected fields: %+v, ok=%v", fields, ok)
	}
	if fields[1].Type != "Node" {
		t.Fatalf("expected self-referential field type Node, got %q", fields[1].Type)
	}
}

func TestSameHandleIdentity(t *testing.T) {
	inst := &StructInstance{TypeName: "Point", Fields: map[string]*Variable{}}
	a := &StructValue{Instance: inst}
	b := &StructValue{Instance: inst}
	c := &StructValue{Instance: &StructInstance{TypeName: "Point", Fields: map[string]*Variable{}}}

	if !SameHandle(a, b) {
		t.Error("expected two StructValues wrapping the same instance to be the same handle")
	}
	if SameHandle(a, c) {
		t.Error("expected StructValues wrapping distinct instances to differ")
	}
}
