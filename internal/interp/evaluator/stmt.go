package evaluator

import (
	"github.com/brewin-lang/brewin/internal/ast"
	"github.com/brewin-lang/brewin/internal/errors"
	"github.com/brewin-lang/brewin/internal/interp/runtime"
)

// execBlock runs stmts in order. It stops at the first statement that
// either raises (an *runtime.ExceptionSignal or *runtime.HostErrorValue)
// or returns, and reports that outcome to the caller; a block that runs
// to completion reports (StatusContinue, nil).
func (ev *Evaluator) execBlock(stmts []ast.Statement) (Status, runtime.Value) {
	for _, st := range stmts {
		status, val := ev.execStmt(st)
		if runtime.IsException(val) || runtime.IsHostError(val) {
			return status, val
		}
		if status == StatusReturn {
			return status, val
		}
	}
	return StatusContinue, nil
}

func (ev *Evaluator) execStmt(st ast.Statement) (Status, runtime.Value) {
	switch s := st.(type) {
	case *ast.VarDefStatement:
		return StatusContinue, ev.execVarDef(s)
	case *ast.AssignStatement:
		return StatusContinue, ev.execAssign(s)
	case *ast.FCallStatement:
		return StatusContinue, ev.execFCallStatement(s)
	case *ast.IfStatement:
		return ev.execIf(s)
	case *ast.ForStatement:
		return ev.execFor(s)
	case *ast.ReturnStatement:
		return ev.execReturn(s)
	case *ast.RaiseStatement:
		return StatusContinue, ev.execRaise(s)
	case *ast.TryStatement:
		return ev.execTry(s)
	default:
		return StatusContinue, ev.hostErrorAt(errors.FaultError, st.Pos(), "unknown statement node")
	}
}

func (ev *Evaluator) execVarDef(s *ast.VarDefStatement) runtime.Value {
	if s.VarType != "" && !ev.types.IsValidVarType(s.VarType) {
		return ev.hostErrorAt(errors.TypeError, s.Pos(), "unknown type %q for variable %q", s.VarType, s.Name)
	}
	v := &runtime.Variable{Name: s.Name, DeclaredType: s.VarType, Value: ev.types.DefaultValue(s.VarType)}
	if !ev.env.Create(s.Name, v) {
		return ev.hostErrorAt(errors.NameError, s.Pos(), "variable %q is already defined in this scope", s.Name)
	}
	return nil
}

// execAssign resolves the (possibly dotted) assignment target, then
// binds the right-hand side: a typed target forces and coerces
// immediately (this is the only place types.Coerce is applied;
// conditions and logical operators use CoerceToBool instead), an
// untyped target simply stores whatever value or thunk the right-hand
// side produced, preserving laziness.
func (ev *Evaluator) execAssign(s *ast.AssignStatement) runtime.Value {
	target, errVal := ev.resolveDotted(s.Name, s.Pos())
	if errVal != nil {
		return errVal
	}

	rhs := ev.evalLazy(s.Expression)

	if target.DeclaredType == "" {
		target.Value = rhs
		return nil
	}

	forced := runtime.Force(rhs)
	if runtime.IsException(forced) || runtime.IsHostError(forced) {
		return forced
	}
	coerced, ok := ev.types.Coerce(forced, target.DeclaredType)
	if !ok {
		return ev.hostErrorAt(errors.TypeError, s.Pos(), "cannot assign a %s value to %q, declared %s", forced.Type(), s.Name, target.DeclaredType)
	}
	target.Value = coerced
	return nil
}

// execFCallStatement runs a call for its side effects only. The return
// value is discarded without being forced, so a lazy return expression
// that was never otherwise needed never runs.
func (ev *Evaluator) execFCallStatement(s *ast.FCallStatement) runtime.Value {
	result := ev.callFunction(s.Call.Name, s.Call.Args, s.Pos())
	if runtime.IsException(result) || runtime.IsHostError(result) {
		return result
	}
	return nil
}

func (ev *Evaluator) execIf(s *ast.IfStatement) (Status, runtime.Value) {
	cond := ev.eval(s.Condition)
	if runtime.IsException(cond) || runtime.IsHostError(cond) {
		return StatusContinue, cond
	}
	b, ok := ev.types.CoerceToBool(cond)
	if !ok {
		return StatusContinue, ev.hostErrorAt(errors.TypeError, s.Pos(), "if condition must be bool or int, got %s", cond.Type())
	}

	ev.env.PushBlock()
	var status Status
	var val runtime.Value
	switch {
	case b:
		status, val = ev.execBlock(s.Statements)
	case s.ElseStatements != nil:
		status, val = ev.execBlock(s.ElseStatements)
	default:
		status, val = StatusContinue, nil
	}
	ev.env.PopBlock()
	return status, val
}

func (ev *Evaluator) execFor(s *ast.ForStatement) (Status, runtime.Value) {
	if errVal := ev.execAssign(s.Init); runtime.IsException(errVal) || runtime.IsHostError(errVal) {
		return StatusContinue, errVal
	}

	for {
		cond := ev.eval(s.Condition)
		if runtime.IsException(cond) || runtime.IsHostError(cond) {
			return StatusContinue, cond
		}
		b, ok := ev.types.CoerceToBool(cond)
		if !ok {
			return StatusContinue, ev.hostErrorAt(errors.TypeError, s.Pos(), "for condition must be bool or int, got %s", cond.Type())
		}
		if !b {
			return StatusContinue, nil
		}

		ev.env.PushBlock()
		status, val := ev.execBlock(s.Statements)
		ev.env.PopBlock()
		if runtime.IsException(val) || runtime.IsHostError(val) {
			return status, val
		}
		if status == StatusReturn {
			return status, val
		}

		if errVal := ev.execAssign(s.Update); runtime.IsException(errVal) || runtime.IsHostError(errVal) {
			return StatusContinue, errVal
		}
	}
}

func (ev *Evaluator) execReturn(s *ast.ReturnStatement) (Status, runtime.Value) {
	if s.Expression == nil {
		return StatusReturn, runtime.Nil()
	}
	return StatusReturn, ev.evalLazy(s.Expression)
}

func (ev *Evaluator) execRaise(s *ast.RaiseStatement) runtime.Value {
	val := ev.eval(s.ExceptionType)
	if runtime.IsException(val) || runtime.IsHostError(val) {
		return val
	}
	sv, ok := val.(*runtime.StringValue)
	if !ok {
		return ev.hostErrorAt(errors.TypeError, s.Pos(), "raise requires a string exception name, got %s", val.Type())
	}
	return &runtime.ExceptionSignal{Name: sv.V}
}

// execTry runs the body, and on an uncaught *runtime.ExceptionSignal
// scans the catchers in order for an exact name match. A
// *runtime.HostErrorValue is never caught — it propagates straight
// through.
func (ev *Evaluator) execTry(s *ast.TryStatement) (Status, runtime.Value) {
	ev.env.PushBlock()
	status, val := ev.execBlock(s.Statements)
	ev.env.PopBlock()

	if !runtime.IsException(val) {
		return status, val
	}

	exc := val.(*runtime.ExceptionSignal)
	for _, c := range s.Catchers {
		if c.ExceptionType != exc.Name {
			continue
		}
		ev.env.PushBlock()
		cstatus, cval := ev.execBlock(c.Statements)
		ev.env.PopBlock()
		return cstatus, cval
	}
	return status, val
}
