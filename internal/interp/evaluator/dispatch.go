package evaluator

import (
	"github.com/brewin-lang/brewin/internal/ast"
	"github.com/brewin-lang/brewin/internal/errors"
	"github.com/brewin-lang/brewin/internal/interp/runtime"
	"github.com/brewin-lang/brewin/internal/lexer"
)

// callFunction resolves name by (name, arity) — builtins first, then
// user functions — and invokes it immediately: calling this function
// always runs the callee's body now. Whether a call actually happens
// "now" from a Brewin program's point of view is decided one level up,
// by whether the call site reached here through eval (forced: an
// operator operand, a condition, a print argument), through
// execFCallStatement (a statement-form call: the body runs now and its
// return value is discarded unforced), or is sitting inside a thunk
// built by evalLazy (deferred:
// an assignment to an untyped local, a return value, nothing has forced
// it yet). Each argument is itself bound as its own thunk over the
// caller's environment, and is never forced at call time, independent
// of whether the call itself was deferred.
func (ev *Evaluator) callFunction(name string, argExprs []ast.Expression, pos lexer.Position) runtime.Value {
	if v, handled := ev.callBuiltin(name, argExprs, pos); handled {
		return v
	}

	fd, ok := ev.funcs[funcKey{name: name, arity: len(argExprs)}]
	if !ok {
		return ev.hostErrorAt(errors.NameError, pos, "function %s taking %d argument(s) is not defined", name, len(argExprs))
	}

	var captured runtime.Activation
	if len(argExprs) > 0 {
		captured = ev.env.SnapshotCurrent()
	}
	block := runtime.Block{}
	for i, ae := range argExprs {
		arg := fd.Args[i]
		argExpr := ae
		block[arg.Name] = &runtime.Variable{
			Name:         arg.Name,
			DeclaredType: arg.VarType,
			Value: runtime.NewLazyValue(argExpr, func() runtime.Value {
				ev.env.PushFunc(captured)
				v := ev.eval(argExpr)
				ev.env.PopFunc()
				return v
			}),
		}
	}

	ev.env.PushFunc(runtime.Activation{block})
	status, result := ev.execBlock(fd.Statements)
	ev.env.PopFunc()

	if runtime.IsException(result) || runtime.IsHostError(result) {
		return result
	}
	if status == StatusReturn {
		return result
	}
	return ev.types.DefaultValue(fd.ReturnType)
}
