package runtime

// FieldDef is one (name, declared type) pair of a struct definition.
type FieldDef struct {
	Name string
	Type string
}

// StructRegistry records struct definitions by name. The name is
// registered before its fields are validated so self-referential
// fields (a struct with a field of its own type) resolve correctly.
type StructRegistry struct {
	order  []string
	fields map[string][]FieldDef
}

// NewStructRegistry creates an empty registry.
func NewStructRegistry() *StructRegistry {
	return &StructRegistry{fields: make(map[string][]FieldDef)}
}

// DeclareName registers name with no fields yet. It reports false if
// name is already declared.
func (r *StructRegistry) DeclareName(name string) bool {
	if _, exists := r.fields[name]; exists {
		return false
	}
	r.fields[name] = nil
	r.order = append(r.order, name)
	return true
}

// SetFields finalizes the field list for an already-declared name.
func (r *StructRegistry) SetFields(name string, fields []FieldDef) {
	r.fields[name] = fields
}

// Has reports whether name is a declared struct type.
func (r *StructRegistry) Has(name string) bool {
	_, ok := r.fields[name]
	return ok
}

// Fields returns the ordered field definitions for a declared struct
// type.
func (r *StructRegistry) Fields(name string) ([]FieldDef, bool) {
	f, ok := r.fields[name]
	return f, ok
}

// Names returns struct type names in declaration order.
func (r *StructRegistry) Names() []string {
	return r.order
}

// StructInstance is the shared, mutable backing store for one `new T`
// allocation: a cell per declared field. Two StructValues wrapping the
// same *StructInstance are the same handle — assignment copies the
// handle, not the instance.
type StructInstance struct {
	TypeName string
	Fields   map[string]*Variable
}

// StructValue is a Value wrapping a live struct handle. The null-handle
// state is represented by a plain *NilValue rather than a StructValue
// with a nil Instance, so that Type()/Inspect never need to
// special-case a null *StructInstance.
type StructValue struct {
	Instance *StructInstance
}

func (v *StructValue) Type() string    { return v.Instance.TypeName }
func (v *StructValue) Inspect() string { return "nil" } // struct Inspect never called directly on a print (TYPE_ERROR; see evaluator)
func (v *StructValue) Evaluated() bool { return true }

// SameHandle reports whether a and b refer to the same struct
// allocation: equality of two struct values is identity of the
// underlying instance.
func SameHandle(a, b *StructValue) bool {
	return a.Instance == b.Instance
}
