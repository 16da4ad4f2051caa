// Package ast defines the node schema consumed by the interpreter.
// Production of these nodes (lexing/parsing) is a separate concern;
// this package only fixes their shape so internal/interp has something
// concrete to walk.
package ast

import "github.com/brewin-lang/brewin/internal/lexer"

// Node is implemented by every AST node so the interpreter can report
// source positions in error messages.
type Node interface {
	Pos() lexer.Position
}

// Program is the root node: a set of struct definitions and functions.
type Program struct {
	Structs   []*StructDef
	Functions []*FunctionDef
}

func (p *Program) Pos() lexer.Position { return lexer.Position{Line: 1, Column: 1} }

// Arg is a formal parameter or struct field: a name with a declared type.
type Arg struct {
	Name    string
	VarType string
	Token   lexer.Token
}

func (a *Arg) Pos() lexer.Position { return a.Token.Pos }

// StructDef declares a record type and its ordered fields.
type StructDef struct {
	Name   string
	Fields []*Arg
	Token  lexer.Token
}

func (s *StructDef) Pos() lexer.Position { return s.Token.Pos }

// FunctionDef declares a function: a name, arity, declared return type,
// and a body of statements. Functions are resolved by (Name, len(Args)).
type FunctionDef struct {
	Name       string
	Args       []*Arg
	ReturnType string
	Statements []Statement
	Token      lexer.Token
}

func (f *FunctionDef) Pos() lexer.Position { return f.Token.Pos }

// Statement is implemented by every statement node.
type Statement interface {
	Node
	statementNode()
}

// Expression is implemented by every expression node.
type Expression interface {
	Node
	expressionNode()
}

// ---- Statements ----

// VarDefStatement declares a local variable with its default value.
type VarDefStatement struct {
	Name    string
	VarType string
	Token   lexer.Token
}

func (s *VarDefStatement) statementNode()      {}
func (s *VarDefStatement) Pos() lexer.Position { return s.Token.Pos }

// AssignStatement assigns the value of Expression to the (possibly
// dotted) variable named Name.
type AssignStatement struct {
	Name       string
	Expression Expression
	Token      lexer.Token
}

func (s *AssignStatement) statementNode()      {}
func (s *AssignStatement) Pos() lexer.Position { return s.Token.Pos }

// FCallStatement invokes a function for its side effects, discarding the
// return value.
type FCallStatement struct {
	Call  *FCallExpression
	Token lexer.Token
}

func (s *FCallStatement) statementNode()      {}
func (s *FCallStatement) Pos() lexer.Position { return s.Token.Pos }

// IfStatement runs Statements when Condition is true, else ElseStatements
// (which may be nil).
type IfStatement struct {
	Condition      Expression
	Statements     []Statement
	ElseStatements []Statement
	Token          lexer.Token
}

func (s *IfStatement) statementNode()      {}
func (s *IfStatement) Pos() lexer.Position { return s.Token.Pos }

// ForStatement is a C-style counted loop: Init runs once, Condition is
// checked before every iteration, Update runs after every iteration body.
type ForStatement struct {
	Init       *AssignStatement
	Condition  Expression
	Update     *AssignStatement
	Statements []Statement
	Token      lexer.Token
}

func (s *ForStatement) statementNode()      {}
func (s *ForStatement) Pos() lexer.Position { return s.Token.Pos }

// ReturnStatement yields Expression (nil for a bare `return`).
type ReturnStatement struct {
	Expression Expression
	Token      lexer.Token
}

func (s *ReturnStatement) statementNode()      {}
func (s *ReturnStatement) Pos() lexer.Position { return s.Token.Pos }

// RaiseStatement raises the exception whose name is produced by
// ExceptionType (must evaluate to a string).
type RaiseStatement struct {
	ExceptionType Expression
	Token         lexer.Token
}

func (s *RaiseStatement) statementNode()      {}
func (s *RaiseStatement) Pos() lexer.Position { return s.Token.Pos }

// Catcher is one `catch "name" { ... }` clause of a TryStatement.
type Catcher struct {
	ExceptionType string
	Statements    []Statement
	Token         lexer.Token
}

func (c *Catcher) Pos() lexer.Position { return c.Token.Pos }

// TryStatement runs Statements; on an uncaught exception it scans
// Catchers in order for an exact string match.
type TryStatement struct {
	Statements []Statement
	Catchers   []*Catcher
	Token      lexer.Token
}

func (s *TryStatement) statementNode()      {}
func (s *TryStatement) Pos() lexer.Position { return s.Token.Pos }

// ---- Expressions ----

// IntLiteral is a decimal integer literal.
type IntLiteral struct {
	Value int64
	Token lexer.Token
}

func (e *IntLiteral) expressionNode()     {}
func (e *IntLiteral) Pos() lexer.Position { return e.Token.Pos }

// StringLiteral is a quoted string literal.
type StringLiteral struct {
	Value string
	Token lexer.Token
}

func (e *StringLiteral) expressionNode()     {}
func (e *StringLiteral) Pos() lexer.Position { return e.Token.Pos }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Value bool
	Token lexer.Token
}

func (e *BoolLiteral) expressionNode()     {}
func (e *BoolLiteral) Pos() lexer.Position { return e.Token.Pos }

// NilLiteral is the `nil` literal.
type NilLiteral struct {
	Token lexer.Token
}

func (e *NilLiteral) expressionNode()     {}
func (e *NilLiteral) Pos() lexer.Position { return e.Token.Pos }

// VarExpression reads a (possibly dotted) variable, e.g. `a` or `a.b.c`.
type VarExpression struct {
	Name  string
	Token lexer.Token
}

func (e *VarExpression) expressionNode()     {}
func (e *VarExpression) Pos() lexer.Position { return e.Token.Pos }

// FCallExpression is a function call used as an expression.
type FCallExpression struct {
	Name  string
	Args  []Expression
	Token lexer.Token
}

func (e *FCallExpression) expressionNode()     {}
func (e *FCallExpression) Pos() lexer.Position { return e.Token.Pos }

// NewExpression allocates a fresh struct instance of the named type.
type NewExpression struct {
	VarType string
	Token   lexer.Token
}

func (e *NewExpression) expressionNode()     {}
func (e *NewExpression) Pos() lexer.Position { return e.Token.Pos }

// BinaryExpression is any of the binary operators: + - * / == != < <= >
// >= || &&.
type BinaryExpression struct {
	Op    string
	Left  Expression
	Right Expression
	Token lexer.Token
}

func (e *BinaryExpression) expressionNode()     {}
func (e *BinaryExpression) Pos() lexer.Position { return e.Token.Pos }

// UnaryExpression is `neg` (arithmetic negation) or `!` (logical not).
type UnaryExpression struct {
	Op      string
	Operand Expression
	Token   lexer.Token
}

func (e *UnaryExpression) expressionNode()     {}
func (e *UnaryExpression) Pos() lexer.Position { return e.Token.Pos }
