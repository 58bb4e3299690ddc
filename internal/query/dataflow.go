package query

import (
	"context"

	"github.com/termfx/grafema/internal/graph"
	"github.com/termfx/grafema/internal/store"
)

// aliasEdgeTypes are the edges traceAlias follows outward (spec.md §4.7
// "follows ASSIGNED_FROM edges").
var aliasEdgeTypes = []graph.EdgeType{graph.EdgeAssignedFrom}

// TraceAlias resolves variable's declaration in file, then follows
// ASSIGNED_FROM edges until it reaches a node that isn't itself a
// VARIABLE/VARIABLE_DECLARATION (spec.md §4.7 "follows ASSIGNED_FROM
// edges until a non-variable source is hit"), returning the full chain
// including the starting node.
func (s *Service) TraceAlias(ctx context.Context, variable, file string) ([]graph.Node, error) {
	start, found, err := s.findVariableByName(ctx, variable, file)
	if err != nil || !found {
		return nil, err
	}

	chain := []graph.Node{start}
	visited := map[string]bool{start.ID: true}
	current := start

	for isVariableLike(current.Type) {
		edges, err := s.st.GetOutgoingEdges(ctx, current.ID, aliasEdgeTypes)
		if err != nil {
			return nil, err
		}
		if len(edges) == 0 {
			break
		}
		next, found, err := s.st.GetNode(ctx, edges[0].To)
		if err != nil || !found || visited[next.ID] {
			break
		}
		visited[next.ID] = true
		chain = append(chain, next)
		current = next
	}
	return chain, nil
}

func isVariableLike(t graph.Type) bool {
	return t == graph.TypeVariable || t == graph.TypeVariableDeclaration
}

func (s *Service) findVariableByName(ctx context.Context, name, file string) (graph.Node, bool, error) {
	for _, typ := range []graph.Type{graph.TypeVariableDeclaration, graph.TypeVariable} {
		f := store.Filter{Types: []graph.Type{typ}, NameSubstring: name, FileSubstring: file}
		stream, err := s.st.QueryNodes(ctx, f)
		if err != nil {
			return graph.Node{}, false, err
		}
		for {
			n, ok, err := stream.Next(ctx)
			if err != nil {
				stream.Close()
				return graph.Node{}, false, err
			}
			if !ok {
				break
			}
			if n.Name == name {
				stream.Close()
				return n, true, nil
			}
		}
		stream.Close()
	}
	return graph.Node{}, false, nil
}

// Direction selects which way TraceDataFlow follows edges.
type Direction string

const (
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
	DirectionBoth     Direction = "both"
)

// dataFlowEdgeTypes are the edges traceDataFlow enumerates (spec.md
// §4.7 "ASSIGNED_FROM/PASSES_ARGUMENT/FLOWS_INTO paths").
var dataFlowEdgeTypes = []graph.EdgeType{graph.EdgeAssignedFrom, graph.EdgeFlowsInto, graph.EdgePassesArgument, graph.EdgeReadsFrom}

// TraceDataFlow enumerates every node reachable from source within
// maxDepth hops along data-flow edges, in the requested direction.
// Cycles are visited once (spec.md §4.2 edge case: "a = b; b = a" must
// terminate and include both exactly once).
func (s *Service) TraceDataFlow(ctx context.Context, source string, direction Direction, maxDepth int) ([]string, error) {
	visited := map[string]bool{source: true}
	order := []string{source}
	queue := []idDepth{{id: source, depth: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if maxDepth > 0 && cur.depth >= maxDepth {
			continue
		}

		var neighbors []string
		if direction == DirectionForward || direction == DirectionBoth {
			edges, err := s.st.GetOutgoingEdges(ctx, cur.id, dataFlowEdgeTypes)
			if err != nil {
				return nil, err
			}
			for _, e := range edges {
				neighbors = append(neighbors, e.To)
			}
		}
		if direction == DirectionBackward || direction == DirectionBoth {
			edges, err := s.st.GetIncomingEdges(ctx, cur.id, dataFlowEdgeTypes)
			if err != nil {
				return nil, err
			}
			for _, e := range edges {
				neighbors = append(neighbors, e.From)
			}
		}

		for _, id := range neighbors {
			if visited[id] {
				continue
			}
			visited[id] = true
			order = append(order, id)
			queue = append(queue, idDepth{id: id, depth: cur.depth + 1})
		}
	}
	return order, nil
}
