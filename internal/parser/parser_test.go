package parser

import (
	"testing"

	"github.com/brewin-lang/brewin/internal/ast"
	"github.com/brewin-lang/brewin/internal/lexer"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src))
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	return prog
}

func TestParseUntypedFunction(t *testing.T) {
	prog := parseProgram(t, `func main() {
  var x;
  x = 5;
  print(x);
}`)
	if len(prog.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(prog.Functions))
	}
	f := prog.Functions[0]
	if f.Name != "main" || len(f.Args) != 0 || f.ReturnType != "" {
		t.Errorf("unexpected function header: %+v", f)
	}
	if len(f.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(f.Statements))
	}
	if _, ok := f.Statements[0].(*ast.VarDefStatement); !ok {
		t.Errorf("statement 0: expected VarDefStatement, got %T", f.Statements[0])
	}
}

func TestParseTypedFunctionAndStruct(t *testing.T) {
	prog := parseProgram(t, `struct Point {
  x: int;
  y: int;
}

func dist(p: Point): int {
  return p.x + p.y;
}`)
	if len(prog.Structs) != 1 {
		t.Fatalf("expected 1 struct, got %d", len(prog.Structs))
	}
	sd := prog.Structs[0]
	if sd.Name != "Point" || len(sd.Fields) != 2 {
		t.Fatalf("unexpected struct: %+v", sd)
	}

	f := prog.Functions[0]
	if f.ReturnType != "int" || len(f.Args) != 1 || f.Args[0].VarType != "Point" {
		t.Fatalf("unexpected function header: %+v", f)
	}
	ret, ok := f.Statements[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("expected ReturnStatement, got %T", f.Statements[0])
	}
	bin, ok := ret.Expression.(*ast.BinaryExpression)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected + binary expression, got %#v", ret.Expression)
	}
	if v, ok := bin.Left.(*ast.VarExpression); !ok || v.Name != "p.x" {
		t.Fatalf("expected dotted var p.x, got %#v", bin.Left)
	}
}

func TestParseIfForTryRaise(t *testing.T) {
	prog := parseProgram(t, `func f() {
  for (i = 0; i < 10; i = i + 1) {
    if (i == 5) {
      raise "found";
    } else {
      print(i);
    }
  }
}

func g() {
  try {
    f();
  } catch "found" {
    print("caught");
  }
}`)
	if len(prog.Functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(prog.Functions))
	}
	forStmt, ok := prog.Functions[0].Statements[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("expected ForStatement, got %T", prog.Functions[0].Statements[0])
	}
	if forStmt.Init.Name != "i" || forStmt.Update.Name != "i" {
		t.Fatalf("unexpected for-loop clauses: %+v", forStmt)
	}
	ifStmt, ok := forStmt.Statements[0].(*ast.IfStatement)
	if !ok || len(ifStmt.ElseStatements) != 1 {
		t.Fatalf("expected if/else, got %#v", forStmt.Statements[0])
	}

	tryStmt, ok := prog.Functions[1].Statements[0].(*ast.TryStatement)
	if !ok {
		t.Fatalf("expected TryStatement, got %T", prog.Functions[1].Statements[0])
	}
	if len(tryStmt.Catchers) != 1 || tryStmt.Catchers[0].ExceptionType != "found" {
		t.Fatalf("unexpected catchers: %+v", tryStmt.Catchers)
	}
}

func TestParseNewAndUnary(t *testing.T) {
	prog := parseProgram(t, `struct Node {
  val: int;
}

func make(): Node {
  var n: Node;
  n = new Node;
  return n;
}

func neg(x: int): int {
  return -x;
}

func not(b: bool): bool {
  return !b;
}`)
	makeFn := prog.Functions[0]
	assign, ok := makeFn.Statements[1].(*ast.AssignStatement)
	if !ok {
		t.Fatalf("expected AssignStatement, got %T", makeFn.Statements[1])
	}
	newExpr, ok := assign.Expression.(*ast.NewExpression)
	if !ok || newExpr.VarType != "Node" {
		t.Fatalf("expected new Node, got %#v", assign.Expression)
	}

	negFn := prog.Functions[1]
	ret := negFn.Statements[0].(*ast.ReturnStatement)
	unary, ok := ret.Expression.(*ast.UnaryExpression)
	if !ok || unary.Op != "neg" {
		t.Fatalf("expected neg unary, got %#v", ret.Expression)
	}

	notFn := prog.Functions[2]
	ret2 := notFn.Statements[0].(*ast.ReturnStatement)
	unary2, ok := ret2.Expression.(*ast.UnaryExpression)
	if !ok || unary2.Op != "!" {
		t.Fatalf("expected ! unary, got %#v", ret2.Expression)
	}
}
