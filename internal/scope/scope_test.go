package scope

import "testing"

func TestEnterExit(t *testing.T) {
	tr := New("a.ts")
	tr.Enter("Widget", KindClass)
	tr.Enter("render", KindFunction)
	if tr.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", tr.Depth())
	}
	if got := tr.GetNearestNamed(); got != "render" {
		t.Fatalf("got %q want render", got)
	}
	tr.Exit()
	if got := tr.GetNearestNamed(); got != "Widget" {
		t.Fatalf("got %q want Widget", got)
	}
	tr.Exit()
	if got := tr.GetNearestNamed(); got != "" {
		t.Fatalf("got %q want empty", got)
	}
}

func TestEnterCounted_PerParentPerKind(t *testing.T) {
	tr := New("a.ts")
	tr.Enter("render", KindFunction)

	_, k0 := tr.EnterCounted(KindIf)
	tr.Exit()
	_, k1 := tr.EnterCounted(KindIf)
	tr.Exit()
	if k0 != 0 || k1 != 1 {
		t.Fatalf("got k0=%d k1=%d want 0,1", k0, k1)
	}

	// A different kind under the same parent restarts its own sequence.
	_, kFor := tr.EnterCounted(KindFor)
	tr.Exit()
	if kFor != 0 {
		t.Fatalf("got %d want 0 for unrelated kind", kFor)
	}
}

func TestEnterCounted_DoesNotAffectNamedParentOfSiblings(t *testing.T) {
	// Regression for the wrapping-if stability property: entering and
	// exiting an anonymous scope must not change GetNearestNamed for a
	// sibling entity declared afterward in the same named parent.
	tr := New("a.ts")
	tr.Enter("outer", KindFunction)

	tr.EnterCounted(KindIf)
	tr.Exit()

	if got := tr.GetNearestNamed(); got != "outer" {
		t.Fatalf("got %q want outer", got)
	}
}

func TestNextItemCounter(t *testing.T) {
	tr := New("a.ts")
	tr.Enter("render", KindFunction)
	if c := tr.NextItemCounter("CALL:foo"); c != 0 {
		t.Fatalf("got %d want 0", c)
	}
	if c := tr.NextItemCounter("CALL:foo"); c != 1 {
		t.Fatalf("got %d want 1", c)
	}
	if c := tr.NextItemCounter("CALL:bar"); c != 0 {
		t.Fatalf("got %d want 0 for different item type", c)
	}
}

func TestGetContext(t *testing.T) {
	tr := New("a.ts")
	tr.Enter("Widget", KindClass)
	tr.Enter("render", KindFunction)
	ctx := tr.GetContext()
	if ctx.File != "a.ts" {
		t.Fatalf("got file %q", ctx.File)
	}
	if len(ctx.ScopePath) != 2 || ctx.ScopePath[0] != "Widget" || ctx.ScopePath[1] != "render" {
		t.Fatalf("got scope path %v", ctx.ScopePath)
	}
}

func TestExitOnEmptyStackDoesNotPanic(t *testing.T) {
	tr := New("a.ts")
	tr.Exit()
	if tr.Depth() != 0 {
		t.Fatalf("expected depth 0")
	}
}
