// Package evaluator implements the interpreter core: expression
// evaluation, statement execution, function dispatch, and exception
// propagation. It drives an internal/interp/runtime.Environment and
// internal/interp/types.Engine to execute a parsed internal/ast.Program.
package evaluator

import (
	"fmt"

	"github.com/brewin-lang/brewin/internal/ast"
	"github.com/brewin-lang/brewin/internal/errors"
	"github.com/brewin-lang/brewin/internal/host"
	"github.com/brewin-lang/brewin/internal/interp/runtime"
	"github.com/brewin-lang/brewin/internal/interp/types"
	"github.com/brewin-lang/brewin/internal/lexer"
)

// funcKey identifies a user function by (name, arity); dispatch
// resolves by this pair, not by name alone.
type funcKey struct {
	name  string
	arity int
}

// Status reports how a statement sequence finished. A raised exception
// or host error travels as a sentinel runtime.Value instead (checked
// with runtime.IsException/IsHostError), so only the continue/return
// distinction needs its own type.
type Status int

const (
	StatusContinue Status = iota
	StatusReturn
)

// Evaluator ties the environment, struct registry, type engine, and
// function table together to execute a Program.
type Evaluator struct {
	env     *runtime.Environment
	structs *runtime.StructRegistry
	types   *types.Engine
	funcs   map[funcKey]*ast.FunctionDef
	host    host.Host
}

// New creates an Evaluator that reports I/O and fatal errors through h.
func New(h host.Host) *Evaluator {
	structs := runtime.NewStructRegistry()
	return &Evaluator{
		env:     runtime.NewEnvironment(),
		structs: structs,
		types:   types.NewEngine(structs),
		funcs:   make(map[funcKey]*ast.FunctionDef),
		host:    h,
	}
}

// Run sets up the struct and function tables from program, then invokes
// main() with no arguments. An uncaught Brewin exception at the end of
// main is reported as a FAULT_ERROR.
func (ev *Evaluator) Run(program *ast.Program) {
	if herr := ev.setUpStructs(program); herr != nil {
		ev.host.Error(herr)
		return
	}
	if herr := ev.setUpFunctions(program); herr != nil {
		ev.host.Error(herr)
		return
	}

	result := ev.callFunction("main", nil, lexer.Position{Line: 1, Column: 1})

	if runtime.IsHostError(result) {
		he := result.(*runtime.HostErrorValue)
		ev.host.Error(errors.NewAt(kindFromString(he.Kind), he.Message, he.Pos))
		return
	}
	if runtime.IsException(result) {
		exc := result.(*runtime.ExceptionSignal)
		ev.host.Error(errors.New(errors.FaultError, fmt.Sprintf("Exception %s not caught!", exc.Name)))
		return
	}
}

func kindFromString(s string) errors.Kind {
	switch s {
	case "NAME_ERROR":
		return errors.NameError
	case "TYPE_ERROR":
		return errors.TypeError
	default:
		return errors.FaultError
	}
}

// setUpStructs registers every struct name before validating any
// struct's fields, so self-referential field types resolve.
func (ev *Evaluator) setUpStructs(program *ast.Program) *errors.HostError {
	for _, sd := range program.Structs {
		switch sd.Name {
		case runtime.TypeInt, runtime.TypeBool, runtime.TypeString, runtime.TypeVoid, runtime.TypeNil:
			return errors.NewAt(errors.NameError, fmt.Sprintf("struct name %q collides with a primitive type", sd.Name), sd.Pos())
		}
		if !ev.structs.DeclareName(sd.Name) {
			return errors.NewAt(errors.NameError, fmt.Sprintf("duplicate struct definition %q", sd.Name), sd.Pos())
		}
	}
	for _, sd := range program.Structs {
		fields := make([]runtime.FieldDef, 0, len(sd.Fields))
		for _, f := range sd.Fields {
			if !ev.types.IsValidVarType(f.VarType) {
				return errors.NewAt(errors.TypeError, fmt.Sprintf("unknown field type %q for field %q of struct %q", f.VarType, f.Name, sd.Name), f.Pos())
			}
			fields = append(fields, runtime.FieldDef{Name: f.Name, Type: f.VarType})
		}
		ev.structs.SetFields(sd.Name, fields)
	}
	return nil
}

func (ev *Evaluator) setUpFunctions(program *ast.Program) *errors.HostError {
	for _, fd := range program.Functions {
		key := funcKey{name: fd.Name, arity: len(fd.Args)}
		if _, exists := ev.funcs[key]; exists {
			return errors.NewAt(errors.NameError, fmt.Sprintf("duplicate definition of function %q taking %d argument(s)", fd.Name, len(fd.Args)), fd.Pos())
		}
		ev.funcs[key] = fd
	}
	return nil
}

// hostErrorAt builds a *runtime.HostErrorValue with a formatted message
// and source position, for use at any evaluation site that detects a
// NAME_ERROR/TYPE_ERROR/FAULT_ERROR condition.
func (ev *Evaluator) hostErrorAt(kind errors.Kind, pos lexer.Position, format string, args ...any) *runtime.HostErrorValue {
	return &runtime.HostErrorValue{Kind: kind.String(), Message: fmt.Sprintf(format, args...), Pos: pos}
}
