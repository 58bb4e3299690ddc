package query

import (
	"context"

	"github.com/termfx/grafema/internal/graph"
	"github.com/termfx/grafema/internal/store"
)

// CallSite is one resolved call matching a findCalls lookup.
type CallSite struct {
	Call     graph.Node
	Target   graph.Node
	Resolved bool
}

// FindCalls resolves call sites by static callee name, optionally
// narrowed to calls whose callee is exactly "className.target" (member
// calls store their receiver expression as part of the callee name —
// spec.md §4.5 "member calls synthesize obj.method"). limit <= 0 means
// unbounded.
func (s *Service) FindCalls(ctx context.Context, target, className string, limit int) ([]CallSite, error) {
	stream, err := s.st.QueryNodes(ctx, store.Filter{Types: []graph.Type{graph.TypeCall}})
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	var out []CallSite
	for {
		n, ok, err := stream.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		callee, _ := n.Fields["callee"].(string)
		if !matchesCallTarget(callee, target, className) {
			continue
		}

		site := CallSite{Call: n}
		edges, err := s.st.GetOutgoingEdges(ctx, n.ID, []graph.EdgeType{graph.EdgeCalls, graph.EdgeUnresolvedCall})
		if err != nil {
			return nil, err
		}
		for _, e := range edges {
			if e.Type == graph.EdgeCalls {
				if tgt, found, err := s.st.GetNode(ctx, e.To); err == nil && found {
					site.Target = tgt
					site.Resolved = true
				}
				break
			}
		}
		out = append(out, site)

		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// matchesCallTarget checks callee against target, optionally requiring
// className as the member-call receiver prefix ("receiver.target").
func matchesCallTarget(callee, target, className string) bool {
	if callee == "" || target == "" {
		return false
	}
	if className == "" {
		return callee == target || hasSuffixDotName(callee, target)
	}
	return callee == className+"."+target
}

func hasSuffixDotName(callee, name string) bool {
	suffix := "." + name
	if len(callee) <= len(suffix) {
		return false
	}
	return callee[len(callee)-len(suffix):] == suffix
}

// FunctionDetails bundles a FUNCTION/METHOD node with its immediate (or
// transitive, capped at depth 5 per spec.md §4.7) callers and callees.
type FunctionDetails struct {
	Function graph.Node
	Callers  []graph.Node
	Callees  []graph.Node
}

// maxFunctionDetailsDepth bounds transitive traversal (spec.md §4.7
// "optionally transitive, capped at depth 5").
const maxFunctionDetailsDepth = 5

// GetFunctionDetails finds the FUNCTION/METHOD named name (optionally
// scoped to file) and its CALLS neighborhood. transitive expands the
// search to depth 5 instead of one hop.
func (s *Service) GetFunctionDetails(ctx context.Context, name, file string, transitive bool) (FunctionDetails, bool, error) {
	fn, found, err := s.findFunctionByName(ctx, name, file)
	if err != nil || !found {
		return FunctionDetails{}, false, err
	}

	depth := 1
	if transitive {
		depth = maxFunctionDetailsDepth
	}

	callerIDs, err := s.incomingNeighborhood(ctx, fn.ID, depth, []graph.EdgeType{graph.EdgeCalls})
	if err != nil {
		return FunctionDetails{}, false, err
	}
	calleeIDs, err := s.BFS(ctx, []string{fn.ID}, depth, []graph.EdgeType{graph.EdgeCalls})
	if err != nil {
		return FunctionDetails{}, false, err
	}

	details := FunctionDetails{Function: fn}
	for _, id := range callerIDs {
		if n, ok, err := s.st.GetNode(ctx, id); err == nil && ok {
			details.Callers = append(details.Callers, n)
		}
	}
	for _, id := range calleeIDs {
		if id == fn.ID {
			continue
		}
		if n, ok, err := s.st.GetNode(ctx, id); err == nil && ok {
			details.Callees = append(details.Callees, n)
		}
	}
	return details, true, nil
}

func (s *Service) findFunctionByName(ctx context.Context, name, file string) (graph.Node, bool, error) {
	for _, typ := range []graph.Type{graph.TypeFunction, graph.TypeMethod} {
		f := store.Filter{Types: []graph.Type{typ}, NameSubstring: name}
		if file != "" {
			f.FileSubstring = file
		}
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

func (s *Service) incomingNeighborhood(ctx context.Context, start string, maxDepth int, edgeTypes []graph.EdgeType) ([]string, error) {
	visited := map[string]bool{start: true}
	queue := []idDepth{{id: start, depth: 0}}
	var order []string

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if maxDepth > 0 && cur.depth >= maxDepth {
			continue
		}
		edges, err := s.st.GetIncomingEdges(ctx, cur.id, edgeTypes)
		if err != nil {
			return nil, err
		}
		for _, e := range edges {
			if visited[e.From] {
				continue
			}
			visited[e.From] = true
			order = append(order, e.From)
			queue = append(queue, idDepth{id: e.From, depth: cur.depth + 1})
		}
	}
	return order, nil
}
