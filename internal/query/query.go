package query

import (
	"context"
	"fmt"

	"github.com/termfx/grafema/internal/graph"
	"github.com/termfx/grafema/internal/store"
)

// Service answers the read-only queries spec.md §4.7 names, over a
// store.Store. It holds no state of its own between calls — every
// traversal re-reads the store, since cross-worker ordering is only
// guaranteed across the orchestrator's phase barriers (spec.md §4.4),
// never mid-query.
type Service struct {
	st store.Store
}

// New builds a Service over st.
func New(st store.Store) *Service {
	return &Service{st: st}
}

// Node looks up a single node by ID.
func (s *Service) Node(ctx context.Context, id string) (graph.Node, bool, error) {
	return s.st.GetNode(ctx, id)
}

// Nodes returns a cursor-paginated, filtered node listing.
func (s *Service) Nodes(ctx context.Context, f store.Filter, first int, after string) (Connection[graph.Node], error) {
	stream, err := s.st.QueryNodes(ctx, f)
	if err != nil {
		return Connection[graph.Node]{}, err
	}
	defer stream.Close()

	var all []graph.Node
	for {
		n, ok, err := stream.Next(ctx)
		if err != nil {
			return Connection[graph.Node]{}, err
		}
		if !ok {
			break
		}
		all = append(all, n)
	}
	return paginate(all, after, first)
}

// BFS visits nodes reachable from startIds breadth-first, bounded by
// maxDepth (0 = unbounded) and restricted to edgeTypes (nil = any edge),
// returning visited IDs in traversal order (spec.md §4.7).
func (s *Service) BFS(ctx context.Context, startIds []string, maxDepth int, edgeTypes []graph.EdgeType) ([]string, error) {
	visited := make(map[string]bool)
	order := make([]string, 0, len(startIds))
	queue := make([]idDepth, 0, len(startIds))

	for _, id := range startIds {
		if !visited[id] {
			visited[id] = true
			order = append(order, id)
			queue = append(queue, idDepth{id: id, depth: 0})
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if maxDepth > 0 && cur.depth >= maxDepth {
			continue
		}

		edges, err := s.st.GetOutgoingEdges(ctx, cur.id, edgeTypes)
		if err != nil {
			return nil, fmt.Errorf("query: bfs outgoing edges of %s: %w", cur.id, err)
		}
		for _, e := range edges {
			if visited[e.To] {
				continue
			}
			visited[e.To] = true
			order = append(order, e.To)
			queue = append(queue, idDepth{id: e.To, depth: cur.depth + 1})
		}
	}
	return order, nil
}

type idDepth struct {
	id    string
	depth int
}

// DFS visits nodes reachable from startIds depth-first, bounded by
// maxDepth and edgeTypes, returning visited IDs in traversal order.
func (s *Service) DFS(ctx context.Context, startIds []string, maxDepth int, edgeTypes []graph.EdgeType) ([]string, error) {
	visited := make(map[string]bool)
	var order []string

	var visit func(id string, depth int) error
	visit = func(id string, depth int) error {
		if visited[id] {
			return nil
		}
		visited[id] = true
		order = append(order, id)

		if maxDepth > 0 && depth >= maxDepth {
			return nil
		}
		edges, err := s.st.GetOutgoingEdges(ctx, id, edgeTypes)
		if err != nil {
			return fmt.Errorf("query: dfs outgoing edges of %s: %w", id, err)
		}
		for _, e := range edges {
			if err := visit(e.To, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	for _, id := range startIds {
		if err := visit(id, 0); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Reachability reports whether to is reachable from from within maxDepth
// hops over edgeTypes (nil = any edge). maxDepth <= 0 means unbounded.
func (s *Service) Reachability(ctx context.Context, from, to string, edgeTypes []graph.EdgeType, maxDepth int) (bool, error) {
	if from == to {
		return true, nil
	}
	visited, err := s.BFS(ctx, []string{from}, maxDepth, edgeTypes)
	if err != nil {
		return false, err
	}
	for _, id := range visited {
		if id == to {
			return true, nil
		}
	}
	return false, nil
}
