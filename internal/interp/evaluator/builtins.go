package evaluator

import (
	"strconv"
	"strings"

	"github.com/brewin-lang/brewin/internal/ast"
	"github.com/brewin-lang/brewin/internal/errors"
	"github.com/brewin-lang/brewin/internal/interp/runtime"
	"github.com/brewin-lang/brewin/internal/lexer"
)

// callBuiltin intercepts the three names the host interface exposes
// directly to Brewin programs, ahead of user function lookup:
// print/inputi/inputs are always available and cannot be shadowed by a
// same-named user function.
func (ev *Evaluator) callBuiltin(name string, argExprs []ast.Expression, pos lexer.Position) (runtime.Value, bool) {
	switch name {
	case "print":
		return ev.builtinPrint(argExprs, pos), true
	case "inputi":
		return ev.builtinInput(argExprs, pos, true), true
	case "inputs":
		return ev.builtinInput(argExprs, pos, false), true
	default:
		return nil, false
	}
}

// builtinPrint forces every argument to a concrete, printable value
// before emitting anything: a mid-argument exception or host error
// leaves the line unprinted entirely, rather than emitting a partial
// line.
func (ev *Evaluator) builtinPrint(argExprs []ast.Expression, pos lexer.Position) runtime.Value {
	parts := make([]string, 0, len(argExprs))
	for _, ae := range argExprs {
		v := ev.eval(ae)
		if runtime.IsException(v) || runtime.IsHostError(v) {
			return v
		}
		if _, isVoid := v.(*runtime.VoidValue); isVoid {
			return ev.hostErrorAt(errors.TypeError, pos, "print cannot accept a void value")
		}
		if _, isStruct := v.(*runtime.StructValue); isStruct {
			return ev.hostErrorAt(errors.TypeError, pos, "print cannot accept a struct value")
		}
		parts = append(parts, v.Inspect())
	}
	ev.host.Output(strings.Join(parts, ""))
	return &runtime.VoidValue{}
}

// builtinInput accepts an optional single string prompt argument,
// printed before the read, and parses the resulting line as an int
// (inputi) or returns it verbatim (inputs).
func (ev *Evaluator) builtinInput(argExprs []ast.Expression, pos lexer.Position, asInt bool) runtime.Value {
	if len(argExprs) > 1 {
		return ev.hostErrorAt(errors.NameError, pos, "input functions take at most one prompt argument")
	}
	if len(argExprs) == 1 {
		prompt := ev.eval(argExprs[0])
		if runtime.IsException(prompt) || runtime.IsHostError(prompt) {
			return prompt
		}
		sv, ok := prompt.(*runtime.StringValue)
		if !ok {
			return ev.hostErrorAt(errors.TypeError, pos, "input prompt must be a string, got %s", prompt.Type())
		}
		ev.host.Output(sv.V)
	}

	line := ev.host.GetInput()
	if !asInt {
		return &runtime.StringValue{V: line}
	}
	n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return ev.hostErrorAt(errors.TypeError, pos, "inputi received non-integer input %q", line)
	}
	return &runtime.IntValue{V: n}
}
