package evaluator

import (
	"strings"

	"github.com/brewin-lang/brewin/internal/ast"
	"github.com/brewin-lang/brewin/internal/errors"
	"github.com/brewin-lang/brewin/internal/interp/runtime"
	"github.com/brewin-lang/brewin/internal/lexer"
)

// eval evaluates expr immediately to a concrete (forced) value. Use
// this wherever a concrete value is required right now: operands of an
// operator, a branch condition, a print/raise argument. (A statement-form
// call bypasses eval: execFCallStatement calls callFunction directly and
// never forces the result.) A call reached through eval always runs its body now;
// only its own return expression may come back lazy, which eval forces
// before returning.
func (ev *Evaluator) eval(expr ast.Expression) runtime.Value {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		return &runtime.IntValue{V: e.Value}
	case *ast.StringLiteral:
		return &runtime.StringValue{V: e.Value}
	case *ast.BoolLiteral:
		return &runtime.BoolValue{V: e.Value}
	case *ast.NilLiteral:
		return runtime.Nil()
	case *ast.VarExpression:
		v, errVal := ev.resolveDotted(e.Name, e.Pos())
		if errVal != nil {
			return errVal
		}
		return runtime.Force(v.Value)
	case *ast.NewExpression:
		return ev.allocStruct(e)
	case *ast.UnaryExpression:
		return ev.evalUnary(e)
	case *ast.BinaryExpression:
		return ev.evalBinary(e)
	case *ast.FCallExpression:
		return runtime.Force(ev.callFunction(e.Name, e.Args, e.Pos()))
	default:
		return ev.hostErrorAt(errors.FaultError, expr.Pos(), "unknown expression node")
	}
}

// evalLazy evaluates expr the way an assignment right-hand side or a
// return expression does. A literal needs no environment-dependent
// work, so it is computed immediately; a bare variable read returns
// whatever value the variable currently holds, forced or not, so an
// already-shared thunk keeps its identity instead of being re-wrapped.
// Anything else — an operator, a struct allocation, a call — is
// deferred as a thunk over a snapshot of the current environment, to be
// forced only where a typed assignment, a condition, or some other
// forcing point actually needs the concrete value. The snapshot holds
// copies of the variable cells, so the thunk reads each variable's value
// as of capture time; this keeps `i = i + 1` from making a thunk that
// reads itself.
func (ev *Evaluator) evalLazy(expr ast.Expression) runtime.Value {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		return &runtime.IntValue{V: e.Value}
	case *ast.StringLiteral:
		return &runtime.StringValue{V: e.Value}
	case *ast.BoolLiteral:
		return &runtime.BoolValue{V: e.Value}
	case *ast.NilLiteral:
		return runtime.Nil()
	case *ast.VarExpression:
		v, errVal := ev.resolveDotted(e.Name, e.Pos())
		if errVal != nil {
			return errVal
		}
		return v.Value
	default:
		captured := ev.env.SnapshotCurrent()
		for _, b := range captured {
			for name, cell := range b {
				copied := *cell
				b[name] = &copied
			}
		}
		return runtime.NewLazyValue(expr, func() runtime.Value {
			ev.env.PushFunc(captured)
			v := ev.eval(expr)
			ev.env.PopFunc()
			return v
		})
	}
}

// resolveDotted walks a (possibly dotted) name, such as "a.b.c", to the
// *Variable cell the final segment names. Every intermediate segment
// must force to a non-nil struct handle; the final cell is returned
// unforced, so a bare read preserves laziness and an assignment can
// write straight into it.
func (ev *Evaluator) resolveDotted(name string, pos lexer.Position) (*runtime.Variable, runtime.Value) {
	parts := strings.Split(name, ".")

	v, ok := ev.env.Get(parts[0])
	if !ok {
		return nil, ev.hostErrorAt(errors.NameError, pos, "variable %q is not defined", parts[0])
	}

	for _, field := range parts[1:] {
		cur := runtime.Force(v.Value)
		if runtime.IsException(cur) || runtime.IsHostError(cur) {
			return nil, cur
		}
		if _, isNil := cur.(*runtime.NilValue); isNil {
			return nil, ev.hostErrorAt(errors.FaultError, pos, "attempt to access field %q of a nil struct handle", field)
		}
		sv, ok := cur.(*runtime.StructValue)
		if !ok {
			return nil, ev.hostErrorAt(errors.TypeError, pos, "cannot access field %q of a %s value", field, cur.Type())
		}
		fv, ok := sv.Instance.Fields[field]
		if !ok {
			return nil, ev.hostErrorAt(errors.NameError, pos, "struct %q has no field %q", sv.Instance.TypeName, field)
		}
		v = fv
	}
	return v, nil
}

// allocStruct builds a fresh *runtime.StructInstance with every field
// set to its type's default value: `new` never leaves a field
// uninitialized.
func (ev *Evaluator) allocStruct(e *ast.NewExpression) runtime.Value {
	fields, ok := ev.structs.Fields(e.VarType)
	if !ok {
		return ev.hostErrorAt(errors.TypeError, e.Pos(), "unknown struct type %q in new expression", e.VarType)
	}
	inst := &runtime.StructInstance{
		TypeName: e.VarType,
		Fields:   make(map[string]*runtime.Variable, len(fields)),
	}
	for _, f := range fields {
		inst.Fields[f.Name] = &runtime.Variable{
			Name:         f.Name,
			DeclaredType: f.Type,
			Value:        ev.types.DefaultValue(f.Type),
		}
	}
	return &runtime.StructValue{Instance: inst}
}

func (ev *Evaluator) evalUnary(e *ast.UnaryExpression) runtime.Value {
	operand := ev.eval(e.Operand)
	if runtime.IsException(operand) || runtime.IsHostError(operand) {
		return operand
	}
	switch e.Op {
	case "neg":
		iv, ok := operand.(*runtime.IntValue)
		if !ok {
			return ev.hostErrorAt(errors.TypeError, e.Pos(), "unary - requires an int operand, got %s", operand.Type())
		}
		return &runtime.IntValue{V: -iv.V}
	case "!":
		b, ok := ev.types.CoerceToBool(operand)
		if !ok {
			return ev.hostErrorAt(errors.TypeError, e.Pos(), "unary ! requires a bool or int operand, got %s", operand.Type())
		}
		return &runtime.BoolValue{V: !b}
	default:
		return ev.hostErrorAt(errors.FaultError, e.Pos(), "unknown unary operator %q", e.Op)
	}
}

func (ev *Evaluator) evalBinary(e *ast.BinaryExpression) runtime.Value {
	switch e.Op {
	case "&&", "||":
		return ev.evalLogical(e)
	}

	left := ev.eval(e.Left)
	if runtime.IsException(left) || runtime.IsHostError(left) {
		return left
	}
	right := ev.eval(e.Right)
	if runtime.IsException(right) || runtime.IsHostError(right) {
		return right
	}

	switch e.Op {
	case "+":
		return ev.evalAdd(left, right, e.Pos())
	case "-", "*", "/":
		return ev.evalArith(e.Op, left, right, e.Pos())
	case "==", "!=":
		return ev.evalEquality(e.Op, left, right)
	case "<", "<=", ">", ">=":
		return ev.evalCompare(e.Op, left, right, e.Pos())
	default:
		return ev.hostErrorAt(errors.FaultError, e.Pos(), "unknown binary operator %q", e.Op)
	}
}

// evalLogical implements short-circuit && and ||: the right operand is
// only evaluated (and so only has a chance to raise or fault) when its
// value is actually needed.
func (ev *Evaluator) evalLogical(e *ast.BinaryExpression) runtime.Value {
	left := ev.eval(e.Left)
	if runtime.IsException(left) || runtime.IsHostError(left) {
		return left
	}
	lb, ok := ev.types.CoerceToBool(left)
	if !ok {
		return ev.hostErrorAt(errors.TypeError, e.Pos(), "%s requires bool or int operands, got %s", e.Op, left.Type())
	}
	if e.Op == "&&" && !lb {
		return &runtime.BoolValue{V: false}
	}
	if e.Op == "||" && lb {
		return &runtime.BoolValue{V: true}
	}

	right := ev.eval(e.Right)
	if runtime.IsException(right) || runtime.IsHostError(right) {
		return right
	}
	rb, ok := ev.types.CoerceToBool(right)
	if !ok {
		return ev.hostErrorAt(errors.TypeError, e.Pos(), "%s requires bool or int operands, got %s", e.Op, right.Type())
	}
	return &runtime.BoolValue{V: rb}
}

func (ev *Evaluator) evalAdd(left, right runtime.Value, pos lexer.Position) runtime.Value {
	if l, ok := left.(*runtime.IntValue); ok {
		r, ok := right.(*runtime.IntValue)
		if !ok {
			return ev.hostErrorAt(errors.TypeError, pos, "+ requires two ints or two strings, got int and %s", right.Type())
		}
		return &runtime.IntValue{V: l.V + r.V}
	}
	if l, ok := left.(*runtime.StringValue); ok {
		r, ok := right.(*runtime.StringValue)
		if !ok {
			return ev.hostErrorAt(errors.TypeError, pos, "+ requires two ints or two strings, got string and %s", right.Type())
		}
		return &runtime.StringValue{V: l.V + r.V}
	}
	return ev.hostErrorAt(errors.TypeError, pos, "+ requires two ints or two strings, got %s", left.Type())
}

func (ev *Evaluator) evalArith(op string, left, right runtime.Value, pos lexer.Position) runtime.Value {
	l, lok := left.(*runtime.IntValue)
	r, rok := right.(*runtime.IntValue)
	if !lok || !rok {
		return ev.hostErrorAt(errors.TypeError, pos, "%s requires int operands", op)
	}
	switch op {
	case "-":
		return &runtime.IntValue{V: l.V - r.V}
	case "*":
		return &runtime.IntValue{V: l.V * r.V}
	case "/":
		if r.V == 0 {
			return &runtime.ExceptionSignal{Name: "div0"}
		}
		return &runtime.IntValue{V: l.V / r.V}
	default:
		return ev.hostErrorAt(errors.FaultError, pos, "unreachable arithmetic operator %q", op)
	}
}

func (ev *Evaluator) evalEquality(op string, left, right runtime.Value) runtime.Value {
	eq := ev.valuesEqual(left, right)
	if op == "==" {
		return &runtime.BoolValue{V: eq}
	}
	return &runtime.BoolValue{V: !eq}
}

// valuesEqual implements the identity rule for structs (two struct
// values are equal iff they are the same handle) alongside ordinary
// scalar equality. A live struct handle is never equal to the null
// handle, and nil == nil regardless of which struct type either side
// was declared as.
func (ev *Evaluator) valuesEqual(left, right runtime.Value) bool {
	lsv, lIsStruct := left.(*runtime.StructValue)
	rsv, rIsStruct := right.(*runtime.StructValue)
	_, lIsNil := left.(*runtime.NilValue)
	_, rIsNil := right.(*runtime.NilValue)

	switch {
	case lIsStruct && rIsStruct:
		return runtime.SameHandle(lsv, rsv)
	case lIsStruct && rIsNil, lIsNil && rIsStruct:
		return false
	case lIsNil && rIsNil:
		return true
	}

	_, lIsInt := left.(*runtime.IntValue)
	_, rIsInt := right.(*runtime.IntValue)
	_, lIsBool := left.(*runtime.BoolValue)
	_, rIsBool := right.(*runtime.BoolValue)
	if lIsInt && rIsBool || lIsBool && rIsInt {
		lb, _ := ev.types.CoerceToBool(left)
		rb, _ := ev.types.CoerceToBool(right)
		return lb == rb
	}

	if left.Type() != right.Type() {
		return false
	}
	switch l := left.(type) {
	case *runtime.IntValue:
		return l.V == right.(*runtime.IntValue).V
	case *runtime.StringValue:
		return l.V == right.(*runtime.StringValue).V
	case *runtime.BoolValue:
		return l.V == right.(*runtime.BoolValue).V
	default:
		return false
	}
}

func (ev *Evaluator) evalCompare(op string, left, right runtime.Value, pos lexer.Position) runtime.Value {
	l, lok := left.(*runtime.IntValue)
	r, rok := right.(*runtime.IntValue)
	if !lok || !rok {
		return ev.hostErrorAt(errors.TypeError, pos, "%s requires int operands", op)
	}
	var b bool
	switch op {
	case "<":
		b = l.V < r.V
	case "<=":
		b = l.V <= r.V
	case ">":
		b = l.V > r.V
	case ">=":
		b = l.V >= r.V
	}
	return &runtime.BoolValue{V: b}
}
