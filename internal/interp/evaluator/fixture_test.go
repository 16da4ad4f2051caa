package evaluator

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestFixtures runs a handful of whole-program Brewin scripts and
// snapshots their captured output, one snapshot per fixture name.
func TestFixtures(t *testing.T) {
	fixtures := []struct {
		name string
		src  string
	}{
		{
			name: "FibonacciRecursion",
			src: `func fib(n: int): int {
  if (n < 2) {
    return n;
  }
  return fib(n - 1) + fib(n - 2);
}

func main() {
  var i;
  for (i = 0; i < 8; i = i + 1) {
    print(fib(i));
  }
}`,
		},
		{
			name: "StructLinkedList",
			src: `struct Node {
  val: int;
  next: Node;
}

func sum(n: Node): int {
  if (n == nil) {
    return 0;
  }
  return n.val + sum(n.next);
}

func main() {
  var head: Node;
  head = new Node;
  head.val = 1;
  head.next = new Node;
  head.next.val = 2;
  head.next.next = new Node;
  head.next.next.val = 3;
  print(sum(head));
}`,
		},
		{
			name: "TryCatchDivideByZeroGuard",
			src: `func safeDivide(a: int, b: int): int {
  if (b == 0) {
    raise "div_by_zero";
  }
  return a / b;
}

func main() {
  var results;
  results = 0;
  try {
    print(safeDivide(10, 2));
    print(safeDivide(10, 0));
    print("unreachable");
  } catch "div_by_zero" {
    print("caught div by zero");
  }
}`,
		},
		{
			name: "LazyArgumentsOnlyForceWhenRead",
			src: `func noisy(label: string): int {
  print(label);
  return 1;
}

func firstOnly(a: int, b: int): int {
  return a;
}

func main() {
  print(firstOnly(noisy("a evaluated"), noisy("b evaluated")));
}`,
		},
	}

	for _, f := range fixtures {
		rec := run(t, f.src)
		var out string
		if rec.Fatal != nil {
			out = "FATAL: " + rec.Fatal.Error()
		} else {
			out = strings.Join(rec.Lines, "\n")
		}
		snaps.MatchSnapshot(t, f.name, out)
	}
}
