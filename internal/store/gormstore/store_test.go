package gormstore

import (
	"context"
	"testing"

	"github.com/termfx/grafema/internal/graph"
	"github.com/termfx/grafema/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := ConnectSQLite(":memory:", false)
	if err != nil {
		t.Fatalf("unexpected error connecting: %v", err)
	}
	return New(db)
}

func TestStore_AddAndGetNode(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := graph.New("src/app.ts->MODULE->app.ts", graph.TypeModule, "app.ts", "src/app.ts", 1, 0, map[string]any{
		"contentHash": "abcd",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddNode(ctx, n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := s.GetNode(ctx, n.ID)
	if err != nil || !ok {
		t.Fatalf("expected node, err=%v ok=%v", err, ok)
	}
	if got.Fields["contentHash"] != "abcd" {
		t.Fatalf("expected round-tripped fields, got %+v", got.Fields)
	}
}

func TestStore_UpsertIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	n, _ := graph.New("a->MODULE->a", graph.TypeModule, "a", "a", 1, 0, map[string]any{"contentHash": "0001"})
	if err := s.AddNode(ctx, n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddNode(ctx, n); err != nil {
		t.Fatalf("unexpected error on re-add: %v", err)
	}
	count, err := s.NodeCount(ctx)
	if err != nil || count != 1 {
		t.Fatalf("expected count 1, got %d err=%v", count, err)
	}
}

func TestStore_EdgeUniqueTriple(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	e, err := graph.CreateEdge("a", "b", graph.EdgeCalls, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddEdge(ctx, e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddEdge(ctx, e); err != nil {
		t.Fatalf("unexpected error on re-add: %v", err)
	}
	count, err := s.EdgeCount(ctx)
	if err != nil || count != 1 {
		t.Fatalf("expected count 1, got %d err=%v", count, err)
	}
}

func TestStore_OutgoingIncoming(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	e1, _ := graph.CreateEdge("a", "b", graph.EdgeCalls, nil)
	e2, _ := graph.CreateEdge("a", "c", graph.EdgeReadsFrom, nil)
	if err := s.AddEdges(ctx, []graph.Edge{e1, e2}, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := s.GetOutgoingEdges(ctx, "a", nil)
	if err != nil || len(out) != 2 {
		t.Fatalf("expected 2 outgoing, got %d err=%v", len(out), err)
	}
	in, err := s.GetIncomingEdges(ctx, "b", []graph.EdgeType{graph.EdgeCalls})
	if err != nil || len(in) != 1 {
		t.Fatalf("expected 1 filtered incoming, got %d err=%v", len(in), err)
	}
}

func TestStore_QueryNodesFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	m, _ := graph.New("a->MODULE->a", graph.TypeModule, "a", "src/a.ts", 1, 0, map[string]any{"contentHash": "0001"})
	c, _ := graph.New("a->CALL->fetch", graph.TypeCall, "fetch", "src/a.ts", 2, 0, map[string]any{"callee": "fetch"})
	if err := s.AddNodes(ctx, []graph.Node{m, c}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stream, err := s.QueryNodes(ctx, store.Filter{Types: []graph.Type{graph.TypeCall}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer stream.Close()
	var found int
	for {
		n, ok, err := stream.Next(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			break
		}
		if n.Type != graph.TypeCall {
			t.Fatalf("unexpected node type %q in filtered results", n.Type)
		}
		found++
	}
	if found != 1 {
		t.Fatalf("expected 1 CALL node, got %d", found)
	}
}

func TestStore_ClearRemovesEverything(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	m, _ := graph.New("a->MODULE->a", graph.TypeModule, "a", "a", 1, 0, map[string]any{"contentHash": "0001"})
	_ = s.AddNode(ctx, m)
	e, _ := graph.CreateEdge("a", "b", graph.EdgeCalls, nil)
	_ = s.AddEdge(ctx, e)

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nc, _ := s.NodeCount(ctx)
	ec, _ := s.EdgeCount(ctx)
	if nc != 0 || ec != 0 {
		t.Fatalf("expected empty store, got nodes=%d edges=%d", nc, ec)
	}
}
