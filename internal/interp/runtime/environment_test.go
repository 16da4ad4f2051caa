package runtime

import "testing"

func TestCreateGetSetWithinActivation(t *testing.T) {
	env := NewEnvironment()
	env.PushFunc(nil)

	if !env.Create("x", &Variable{Name: "x", Value: &IntValue{V: 1}}) {
		t.Fatal("expected Create to succeed on first declaration")
	}
	if env.Create("x", &Variable{Name: "x", Value: &IntValue{V: 2}}) {
		t.Fatal("expected Create to fail on redeclaration in the same block")
	}

	v, ok := env.Get("x")
	if !ok || v.Value.(*IntValue).V != 1 {
		t.Fatalf("unexpected Get result: %+v, ok=%v", v, ok)
	}

	if !env.Set("x", &IntValue{V: 42}) {
		t.Fatal("expected Set to succeed")
	}
	v, _ = env.Get("x")
	if v.Value.(*IntValue).V != 42 {
		t.Errorf("expected updated value 42, got %d", v.Value.(*IntValue).V)
	}

	if env.Set("undefined", &IntValue{V: 1}) {
		t.Error("expected Set on an undeclared name to fail")
	}
}

func TestBlockScopingShadowsInnerToOuter(t *testing.T) {
	env := NewEnvironment()
	env.PushFunc(nil)
	env.Create("x", &Variable{Name: "x", Value: &IntValue{V: 1}})

	env.PushBlock()
	env.Create("x", &Variable{Name: "x", Value: &IntValue{V: 2}})
	v, _ := env.Get("x")
	if v.Value.(*IntValue).V != 2 {
		t.Fatalf("expected inner shadow value 2, got %d", v.Value.(*IntValue).V)
	}
	env.PopBlock()

	v, _ = env.Get("x")
	if v.Value.(*IntValue).V != 1 {
		t.Fatalf("expected outer value 1 restored, got %d", v.Value.(*IntValue).V)
	}
}

func TestActivationsDoNotCrossFunctionBoundaries(t *testing.T) {
	env := NewEnvironment()
	env.PushFunc(nil)
	env.Create("x", &Variable{Name: "x", Value: &IntValue{V: 1}})

	env.PushFunc(nil)
	if _, ok := env.Get("x"); ok {
		t.Fatal("expected a fresh activation to have no access to the caller's locals")
	}
	env.PopFunc()

	if _, ok := env.Get("x"); !ok {
		t.Fatal("expected caller's activation to still see its own locals after PopFunc")
	}
}

func TestSnapshotCurrentIsIndependentOfLaterPushPop(t *testing.T) {
	env := NewEnvironment()
	env.PushFunc(nil)
	cell := &Variable{Name: "x", Value: &IntValue{V: 1}}
	env.Create("x", cell)

	snap := env.SnapshotCurrent()

	env.PushBlock()
	env.Create("y", &Variable{Name: "y", Value: &IntValue{V: 2}})
	env.PopBlock()

	if len(snap) != 1 {
		t.Fatalf("expected snapshot to retain its original block count, got %d", len(snap))
	}
	if _, ok := snap[0]["y"]; ok {
		t.Fatal("expected snapshot to be unaffected by later pushes in the live environment")
	}

	cell.Value = &IntValue{V: 99}
	if snap[0]["x"].Value.(*IntValue).V != 99 {
		t.Fatal("expected snapshot to share Variable cells so live mutation remains visible")
	}
}
