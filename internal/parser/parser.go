// Package parser builds the internal/ast tree from a token stream for
// the small Brewin grammar. Like internal/lexer, this is ambient
// plumbing that feeds internal/interp, which does the interesting work.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brewin-lang/brewin/internal/ast"
	"github.com/brewin-lang/brewin/internal/lexer"
)

// Parser is a hand-written recursive-descent parser with a single token
// of lookahead.
type Parser struct {
	l *lexer.Lexer

	cur  lexer.Token
	peek lexer.Token

	errs []string
}

// New creates a Parser reading tokens from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	return p
}

// Errors returns all parse errors collected so far.
func (p *Parser) Errors() []string { return p.errs }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(format string, args ...any) {
	p.errs = append(p.errs, fmt.Sprintf("line %d: %s", p.cur.Pos.Line, fmt.Sprintf(format, args...)))
}

func (p *Parser) expect(t lexer.TokenType, what string) lexer.Token {
	tok := p.cur
	if p.cur.Type != t {
		p.errorf("expected %s, got %q", what, p.cur.Literal)
	}
	p.next()
	return tok
}

// ParseProgram parses an entire source file into a Program node.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.cur.Type != lexer.EOF {
		switch p.cur.Type {
		case lexer.STRUCT:
			prog.Structs = append(prog.Structs, p.parseStructDef())
		case lexer.FUNC:
			prog.Functions = append(prog.Functions, p.parseFunctionDef())
		default:
			p.errorf("expected 'func' or 'struct', got %q", p.cur.Literal)
			p.next()
		}
	}
	return prog
}

func (p *Parser) parseTypeName() string {
	name := p.cur.Literal
	if p.cur.Type != lexer.IDENT {
		p.errorf("expected type name, got %q", p.cur.Literal)
	}
	p.next()
	return name
}

func (p *Parser) parseStructDef() *ast.StructDef {
	tok := p.cur
	p.next() // 'struct'
	name := p.expect(lexer.IDENT, "struct name").Literal
	p.expect(lexer.LBRACE, "{")

	s := &ast.StructDef{Name: name, Token: tok}
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		fieldTok := p.cur
		fieldName := p.expect(lexer.IDENT, "field name").Literal
		p.expect(lexer.COLON, ":")
		fieldType := p.parseTypeName()
		p.expect(lexer.SEMI, ";")
		s.Fields = append(s.Fields, &ast.Arg{Name: fieldName, VarType: fieldType, Token: fieldTok})
	}
	p.expect(lexer.RBRACE, "}")
	return s
}

func (p *Parser) parseFunctionDef() *ast.FunctionDef {
	tok := p.cur
	p.next() // 'func'
	name := p.expect(lexer.IDENT, "function name").Literal
	p.expect(lexer.LPAREN, "(")

	f := &ast.FunctionDef{Name: name, Token: tok}
	for p.cur.Type != lexer.RPAREN {
		argTok := p.cur
		argName := p.expect(lexer.IDENT, "parameter name").Literal
		argType := ""
		if p.cur.Type == lexer.COLON {
			p.next()
			argType = p.parseTypeName()
		}
		f.Args = append(f.Args, &ast.Arg{Name: argName, VarType: argType, Token: argTok})
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RPAREN, ")")

	if p.cur.Type == lexer.COLON {
		p.next()
		f.ReturnType = p.parseTypeName()
	}

	p.expect(lexer.LBRACE, "{")
	f.Statements = p.parseStatements()
	p.expect(lexer.RBRACE, "}")
	return f
}

func (p *Parser) parseStatements() []ast.Statement {
	var stmts []ast.Statement
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		stmts = append(stmts, p.parseStatement())
	}
	return stmts
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case lexer.VAR:
		return p.parseVarDef()
	case lexer.IF:
		return p.parseIf()
	case lexer.FOR:
		return p.parseFor()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.RAISE:
		return p.parseRaise()
	case lexer.TRY:
		return p.parseTry()
	case lexer.IDENT:
		return p.parseIdentStatement()
	default:
		p.errorf("unexpected token %q at start of statement", p.cur.Literal)
		p.next()
		return &ast.VarDefStatement{}
	}
}

func (p *Parser) parseVarDef() ast.Statement {
	tok := p.cur
	p.next() // 'var'
	name := p.expect(lexer.IDENT, "variable name").Literal
	varType := ""
	if p.cur.Type == lexer.COLON {
		p.next()
		varType = p.parseTypeName()
	}
	p.expect(lexer.SEMI, ";")
	return &ast.VarDefStatement{Name: name, VarType: varType, Token: tok}
}

// parseIdentStatement disambiguates assignment (`a.b = expr;`) from a
// statement-form function call (`f(args);`).
func (p *Parser) parseIdentStatement() ast.Statement {
	tok := p.cur
	name := p.parseDottedName()

	if p.cur.Type == lexer.LPAREN {
		args := p.parseArgList()
		p.expect(lexer.SEMI, ";")
		return &ast.FCallStatement{Token: tok, Call: &ast.FCallExpression{Name: name, Args: args, Token: tok}}
	}

	p.expect(lexer.ASSIGN, "=")
	expr := p.parseExpression(lowest)
	p.expect(lexer.SEMI, ";")
	return &ast.AssignStatement{Name: name, Expression: expr, Token: tok}
}

func (p *Parser) parseDottedName() string {
	var sb strings.Builder
	sb.WriteString(p.expect(lexer.IDENT, "identifier").Literal)
	for p.cur.Type == lexer.DOT {
		p.next()
		sb.WriteString(".")
		sb.WriteString(p.expect(lexer.IDENT, "field name").Literal)
	}
	return sb.String()
}

func (p *Parser) parseArgList() []ast.Expression {
	p.expect(lexer.LPAREN, "(")
	var args []ast.Expression
	for p.cur.Type != lexer.RPAREN {
		args = append(args, p.parseExpression(lowest))
		if p.cur.Type == lexer.COMMA {
			p.next()
		}
	}
	p.expect(lexer.RPAREN, ")")
	return args
}

func (p *Parser) parseIf() ast.Statement {
	tok := p.cur
	p.next() // 'if'
	p.expect(lexer.LPAREN, "(")
	cond := p.parseExpression(lowest)
	p.expect(lexer.RPAREN, ")")
	p.expect(lexer.LBRACE, "{")
	body := p.parseStatements()
	p.expect(lexer.RBRACE, "}")

	stmt := &ast.IfStatement{Condition: cond, Statements: body, Token: tok}
	if p.cur.Type == lexer.ELSE {
		p.next()
		p.expect(lexer.LBRACE, "{")
		stmt.ElseStatements = p.parseStatements()
		p.expect(lexer.RBRACE, "}")
	}
	return stmt
}

func (p *Parser) parseFor() ast.Statement {
	tok := p.cur
	p.next() // 'for'
	p.expect(lexer.LPAREN, "(")
	init := p.parseIdentStatement().(*ast.AssignStatement)
	// parseIdentStatement already consumed the trailing ';'
	cond := p.parseExpression(lowest)
	p.expect(lexer.SEMI, ";")
	update := p.parseAssignNoSemi()
	p.expect(lexer.RPAREN, ")")
	p.expect(lexer.LBRACE, "{")
	body := p.parseStatements()
	p.expect(lexer.RBRACE, "}")
	return &ast.ForStatement{Init: init, Condition: cond, Update: update, Statements: body, Token: tok}
}

// parseAssignNoSemi parses `name = expr` without requiring a trailing
// semicolon, for use as a for-loop's update clause.
func (p *Parser) parseAssignNoSemi() *ast.AssignStatement {
	tok := p.cur
	name := p.parseDottedName()
	p.expect(lexer.ASSIGN, "=")
	expr := p.parseExpression(lowest)
	return &ast.AssignStatement{Name: name, Expression: expr, Token: tok}
}

func (p *Parser) parseReturn() ast.Statement {
	tok := p.cur
	p.next() // 'return'
	if p.cur.Type == lexer.SEMI {
		p.next()
		return &ast.ReturnStatement{Token: tok}
	}
	expr := p.parseExpression(lowest)
	p.expect(lexer.SEMI, ";")
	return &ast.ReturnStatement{Expression: expr, Token: tok}
}

func (p *Parser) parseRaise() ast.Statement {
	tok := p.cur
	p.next() // 'raise'
	expr := p.parseExpression(lowest)
	p.expect(lexer.SEMI, ";")
	return &ast.RaiseStatement{ExceptionType: expr, Token: tok}
}

func (p *Parser) parseTry() ast.Statement {
	tok := p.cur
	p.next() // 'try'
	p.expect(lexer.LBRACE, "{")
	body := p.parseStatements()
	p.expect(lexer.RBRACE, "}")

	stmt := &ast.TryStatement{Statements: body, Token: tok}
	for p.cur.Type == lexer.CATCH {
		catchTok := p.cur
		p.next()
		excType := p.expect(lexer.STRING, "exception name string").Literal
		p.expect(lexer.LBRACE, "{")
		catchBody := p.parseStatements()
		p.expect(lexer.RBRACE, "}")
		stmt.Catchers = append(stmt.Catchers, &ast.Catcher{ExceptionType: excType, Statements: catchBody, Token: catchTok})
	}
	return stmt
}

// ---- Expressions: precedence climbing ----

type precedence int

const (
	lowest precedence = iota
	orPrec
	andPrec
	equalsPrec
	compPrec
	sumPrec
	productPrec
	unaryPrec
)

var precedences = map[lexer.TokenType]precedence{
	lexer.OR:     orPrec,
	lexer.AND:    andPrec,
	lexer.EQ:     equalsPrec,
	lexer.NOTEQ:  equalsPrec,
	lexer.LT:     compPrec,
	lexer.LTEQ:   compPrec,
	lexer.GT:     compPrec,
	lexer.GTEQ:   compPrec,
	lexer.PLUS:   sumPrec,
	lexer.MINUS:  sumPrec,
	lexer.STAR:   productPrec,
	lexer.SLASH:  productPrec,
}

func (p *Parser) peekPrecedence() precedence {
	if pr, ok := precedences[p.cur.Type]; ok {
		return pr
	}
	return lowest
}

func (p *Parser) parseExpression(prec precedence) ast.Expression {
	left := p.parsePrefix()
	for prec < p.peekPrecedence() {
		left = p.parseBinary(left)
	}
	return left
}

func (p *Parser) parsePrefix() ast.Expression {
	switch p.cur.Type {
	case lexer.INT:
		return p.parseIntLiteral()
	case lexer.STRING:
		tok := p.cur
		p.next()
		return &ast.StringLiteral{Value: tok.Literal, Token: tok}
	case lexer.TRUE, lexer.FALSE:
		tok := p.cur
		p.next()
		return &ast.BoolLiteral{Value: tok.Type == lexer.TRUE, Token: tok}
	case lexer.NIL:
		tok := p.cur
		p.next()
		return &ast.NilLiteral{Token: tok}
	case lexer.MINUS:
		tok := p.cur
		p.next()
		operand := p.parseExpression(unaryPrec)
		return &ast.UnaryExpression{Op: "neg", Operand: operand, Token: tok}
	case lexer.NOT:
		tok := p.cur
		p.next()
		operand := p.parseExpression(unaryPrec)
		return &ast.UnaryExpression{Op: "!", Operand: operand, Token: tok}
	case lexer.LPAREN:
		p.next()
		expr := p.parseExpression(lowest)
		p.expect(lexer.RPAREN, ")")
		return expr
	case lexer.NEW:
		tok := p.cur
		p.next()
		typeName := p.parseTypeName()
		return &ast.NewExpression{VarType: typeName, Token: tok}
	case lexer.IDENT:
		tok := p.cur
		name := p.parseDottedName()
		if p.cur.Type == lexer.LPAREN {
			args := p.parseArgList()
			return &ast.FCallExpression{Name: name, Args: args, Token: tok}
		}
		return &ast.VarExpression{Name: name, Token: tok}
	default:
		p.errorf("unexpected token %q in expression", p.cur.Literal)
		tok := p.cur
		p.next()
		return &ast.NilLiteral{Token: tok}
	}
}

func (p *Parser) parseIntLiteral() ast.Expression {
	tok := p.cur
	v, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.errorf("invalid integer literal %q", tok.Literal)
	}
	p.next()
	return &ast.IntLiteral{Value: v, Token: tok}
}

func (p *Parser) parseBinary(left ast.Expression) ast.Expression {
	tok := p.cur
	op := tok.Literal
	prec := p.peekPrecedence()
	p.next()
	right := p.parseExpression(prec)
	return &ast.BinaryExpression{Op: op, Left: left, Right: right, Token: tok}
}
