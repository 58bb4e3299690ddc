package query

import (
	"context"
	"testing"

	"github.com/termfx/grafema/internal/graph"
	"github.com/termfx/grafema/internal/store"
)

func mustNode(t *testing.T, typ graph.Type, name, file string, fields map[string]any) graph.Node {
	t.Helper()
	if fields == nil {
		fields = map[string]any{}
	}
	switch typ {
	case graph.TypeModule:
		if _, ok := fields["contentHash"]; !ok {
			fields["contentHash"] = "abcd"
		}
	case graph.TypeCall:
		if _, ok := fields["callee"]; !ok {
			fields["callee"] = name
		}
	case graph.TypeVariableDeclaration:
		if _, ok := fields["declarationKind"]; !ok {
			fields["declarationKind"] = "const"
		}
	}
	n, err := graph.New(file+"->"+string(typ)+"->"+name, typ, name, file, 1, 0, fields)
	if err != nil {
		t.Fatalf("build node: %v", err)
	}
	return n
}

func mustEdge(t *testing.T, from, to string, typ graph.EdgeType) graph.Edge {
	t.Helper()
	e, err := graph.CreateEdge(from, to, typ, nil)
	if err != nil {
		t.Fatalf("build edge: %v", err)
	}
	return e
}

func TestService_NodesPagination(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		n := mustNode(t, graph.TypeFunction, "fn"+string(rune('a'+i)), "a.go", nil)
		if err := st.AddNode(ctx, n); err != nil {
			t.Fatalf("add node: %v", err)
		}
	}

	svc := New(st)
	page1, err := svc.Nodes(ctx, store.Filter{Types: []graph.Type{graph.TypeFunction}}, 2, "")
	if err != nil {
		t.Fatalf("nodes: %v", err)
	}
	if len(page1.Items) != 2 || !page1.HasNextPage || page1.HasPreviousPage {
		t.Fatalf("unexpected first page: %+v", page1)
	}
	if page1.TotalCount != 5 {
		t.Errorf("expected total count 5, got %d", page1.TotalCount)
	}

	page2, err := svc.Nodes(ctx, store.Filter{Types: []graph.Type{graph.TypeFunction}}, 2, page1.EndCursor)
	if err != nil {
		t.Fatalf("nodes page2: %v", err)
	}
	if len(page2.Items) != 2 || !page2.HasPreviousPage {
		t.Fatalf("unexpected second page: %+v", page2)
	}
}

func TestService_BFSAndReachability(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	a := mustNode(t, graph.TypeFunction, "a", "x.go", nil)
	b := mustNode(t, graph.TypeFunction, "b", "x.go", nil)
	c := mustNode(t, graph.TypeFunction, "c", "x.go", nil)
	for _, n := range []graph.Node{a, b, c} {
		if err := st.AddNode(ctx, n); err != nil {
			t.Fatalf("add node: %v", err)
		}
	}
	if err := st.AddEdge(ctx, mustEdge(t, a.ID, b.ID, graph.EdgeCalls)); err != nil {
		t.Fatal(err)
	}
	if err := st.AddEdge(ctx, mustEdge(t, b.ID, c.ID, graph.EdgeCalls)); err != nil {
		t.Fatal(err)
	}

	svc := New(st)
	visited, err := svc.BFS(ctx, []string{a.ID}, 0, []graph.EdgeType{graph.EdgeCalls})
	if err != nil {
		t.Fatalf("bfs: %v", err)
	}
	if len(visited) != 3 {
		t.Errorf("expected 3 visited nodes, got %d: %+v", len(visited), visited)
	}

	reachable, err := svc.Reachability(ctx, a.ID, c.ID, []graph.EdgeType{graph.EdgeCalls}, 0)
	if err != nil || !reachable {
		t.Errorf("expected a to reach c, got reachable=%v err=%v", reachable, err)
	}

	reachable, err = svc.Reachability(ctx, c.ID, a.ID, []graph.EdgeType{graph.EdgeCalls}, 0)
	if err != nil || reachable {
		t.Errorf("expected c not to reach a over directed CALLS edges, got reachable=%v err=%v", reachable, err)
	}
}

func TestService_FindCallsAndGetFunctionDetails(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	caller := mustNode(t, graph.TypeFunction, "main", "x.go", nil)
	callee := mustNode(t, graph.TypeFunction, "greet", "x.go", nil)
	call := mustNode(t, graph.TypeCall, "greet", "x.go", map[string]any{"callee": "greet"})
	for _, n := range []graph.Node{caller, callee, call} {
		if err := st.AddNode(ctx, n); err != nil {
			t.Fatalf("add node: %v", err)
		}
	}
	if err := st.AddEdge(ctx, mustEdge(t, caller.ID, call.ID, graph.EdgeCalls)); err != nil {
		t.Fatal(err)
	}
	if err := st.AddEdge(ctx, mustEdge(t, call.ID, callee.ID, graph.EdgeCalls)); err != nil {
		t.Fatal(err)
	}

	svc := New(st)
	sites, err := svc.FindCalls(ctx, "greet", "", 0)
	if err != nil {
		t.Fatalf("findcalls: %v", err)
	}
	if len(sites) != 1 || !sites[0].Resolved || sites[0].Target.ID != callee.ID {
		t.Fatalf("unexpected call sites: %+v", sites)
	}

	details, found, err := svc.GetFunctionDetails(ctx, "greet", "", false)
	if err != nil || !found {
		t.Fatalf("getfunctiondetails: found=%v err=%v", found, err)
	}
	if len(details.Callers) != 1 || details.Callers[0].ID != call.ID {
		t.Errorf("unexpected callers: %+v", details.Callers)
	}
}

func TestService_TraceAlias(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	logDecl := mustNode(t, graph.TypeVariableDeclaration, "log", "x.js", nil)
	consoleLog := mustNode(t, graph.TypeCall, "console.log", "x.js", map[string]any{"callee": "console.log"})
	if err := st.AddNode(ctx, logDecl); err != nil {
		t.Fatal(err)
	}
	if err := st.AddNode(ctx, consoleLog); err != nil {
		t.Fatal(err)
	}
	if err := st.AddEdge(ctx, mustEdge(t, logDecl.ID, consoleLog.ID, graph.EdgeAssignedFrom)); err != nil {
		t.Fatal(err)
	}

	svc := New(st)
	chain, err := svc.TraceAlias(ctx, "log", "x.js")
	if err != nil {
		t.Fatalf("tracealias: %v", err)
	}
	if len(chain) != 2 || chain[len(chain)-1].ID != consoleLog.ID {
		t.Fatalf("unexpected alias chain: %+v", chain)
	}
}

func TestService_TraceDataFlow_CycleTerminates(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	a := mustNode(t, graph.TypeVariableDeclaration, "a", "x.js", nil)
	b := mustNode(t, graph.TypeVariableDeclaration, "b", "x.js", nil)
	if err := st.AddNode(ctx, a); err != nil {
		t.Fatal(err)
	}
	if err := st.AddNode(ctx, b); err != nil {
		t.Fatal(err)
	}
	if err := st.AddEdge(ctx, mustEdge(t, a.ID, b.ID, graph.EdgeAssignedFrom)); err != nil {
		t.Fatal(err)
	}
	if err := st.AddEdge(ctx, mustEdge(t, b.ID, a.ID, graph.EdgeAssignedFrom)); err != nil {
		t.Fatal(err)
	}

	svc := New(st)
	visited, err := svc.TraceDataFlow(ctx, a.ID, DirectionBoth, 10)
	if err != nil {
		t.Fatalf("tracedataflow: %v", err)
	}
	if len(visited) != 2 {
		t.Fatalf("expected cycle to terminate visiting exactly 2 nodes, got %+v", visited)
	}
}

func TestService_FindGuards(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	fn := mustNode(t, graph.TypeFunction, "handler", "x.js", nil)
	scopeNode := mustNode(t, graph.TypeScope, "if_1", "x.js", map[string]any{"scopeType": string(graph.ScopeIf)})
	branch := mustNode(t, graph.TypeBranch, "if_1", "x.js", nil)
	for _, n := range []graph.Node{fn, scopeNode, branch} {
		if err := st.AddNode(ctx, n); err != nil {
			t.Fatal(err)
		}
	}
	if err := st.AddEdge(ctx, mustEdge(t, fn.ID, scopeNode.ID, graph.EdgeContains)); err != nil {
		t.Fatal(err)
	}
	if err := st.AddEdge(ctx, mustEdge(t, scopeNode.ID, branch.ID, graph.EdgeContains)); err != nil {
		t.Fatal(err)
	}

	svc := New(st)
	guards, err := svc.FindGuards(ctx, branch.ID)
	if err != nil {
		t.Fatalf("findguards: %v", err)
	}
	if len(guards) != 1 || guards[0].ScopeType != string(graph.ScopeIf) {
		t.Fatalf("unexpected guards: %+v", guards)
	}
}
