package datalog

import (
	"context"
	"testing"

	"github.com/termfx/grafema/internal/graph"
	"github.com/termfx/grafema/internal/store"
)

func TestEvaluator_NodeEdgeAttrFacts(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	a, err := graph.New("a", graph.TypeFunction, "main", "x.go", 1, 0, nil)
	if err != nil {
		t.Fatalf("build node a: %v", err)
	}
	b, err := graph.New("b", graph.TypeFunction, "helper", "x.go", 2, 0, nil)
	if err != nil {
		t.Fatalf("build node b: %v", err)
	}
	if err := st.AddNode(ctx, a); err != nil {
		t.Fatal(err)
	}
	if err := st.AddNode(ctx, b); err != nil {
		t.Fatal(err)
	}
	edge, err := graph.CreateEdge(a.ID, b.ID, graph.EdgeCalls, nil)
	if err != nil {
		t.Fatalf("build edge: %v", err)
	}
	if err := st.AddEdge(ctx, edge); err != nil {
		t.Fatal(err)
	}

	ev, err := NewEvaluator()
	if err != nil {
		t.Fatalf("new evaluator: %v", err)
	}
	if err := ev.LoadRules(`calls_helper(X) :- edge(X, Y, "CALLS"), node(Y, "FUNCTION"), attr(Y, "name", "helper").`); err != nil {
		t.Fatalf("load rules: %v", err)
	}
	if err := ev.AssertFacts(ctx, st); err != nil {
		t.Fatalf("assert facts: %v", err)
	}

	result, err := ev.Query(ctx, "calls_helper(X)", 0, 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(result.Rows) != 1 || result.Rows[0]["X"] != a.ID {
		t.Fatalf("unexpected rows: %+v", result.Rows)
	}
}

func TestEvaluator_ViolationGoal_EvalCall(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	evilCall, err := graph.New("call-eval", graph.TypeCall, "eval", "x.js", 5, 0, map[string]any{"callee": "eval"})
	if err != nil {
		t.Fatalf("build call node: %v", err)
	}
	safeCall, err := graph.New("call-log", graph.TypeCall, "log", "x.js", 6, 0, map[string]any{"callee": "log"})
	if err != nil {
		t.Fatalf("build call node: %v", err)
	}
	if err := st.AddNode(ctx, evilCall); err != nil {
		t.Fatal(err)
	}
	if err := st.AddNode(ctx, safeCall); err != nil {
		t.Fatal(err)
	}

	ev, err := NewEvaluator()
	if err != nil {
		t.Fatalf("new evaluator: %v", err)
	}
	rule := `Decl violation(X).
violation(X) :- node(X, "CALL"), attr(X, "callee", "eval").`
	if err := ev.LoadRules(rule); err != nil {
		t.Fatalf("load rules: %v", err)
	}
	if err := ev.AssertFacts(ctx, st); err != nil {
		t.Fatalf("assert facts: %v", err)
	}

	ids, err := ev.Violations(ctx)
	if err != nil {
		t.Fatalf("violations: %v", err)
	}
	if len(ids) != 1 || ids[0] != evilCall.ID {
		t.Fatalf("expected exactly the eval call to violate, got %+v", ids)
	}
}

func TestEvaluator_Pagination(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	for i := 0; i < 5; i++ {
		n, err := graph.New(string(rune('a'+i)), graph.TypeFunction, "fn", "x.go", 1, 0, nil)
		if err != nil {
			t.Fatalf("build node: %v", err)
		}
		if err := st.AddNode(ctx, n); err != nil {
			t.Fatal(err)
		}
	}

	ev, err := NewEvaluator()
	if err != nil {
		t.Fatalf("new evaluator: %v", err)
	}
	if err := ev.AssertFacts(ctx, st); err != nil {
		t.Fatalf("assert facts: %v", err)
	}

	result, err := ev.Query(ctx, `node(X, "FUNCTION")`, 2, 1)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows after limit/offset, got %d", len(result.Rows))
	}
	if result.Total != 5 {
		t.Errorf("expected total 5, got %d", result.Total)
	}
}

func TestEvaluator_UndeclaredPredicateRejected(t *testing.T) {
	ev, err := NewEvaluator()
	if err != nil {
		t.Fatalf("new evaluator: %v", err)
	}
	if err := ev.insertFact("not_a_real_predicate", idTerm("x")); err == nil {
		t.Error("expected an error inserting an undeclared predicate")
	}
}
