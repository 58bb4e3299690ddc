package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/termfx/grafema/internal/graph"
)

// edgeKey identifies an edge by its (type, src, dst, index) tuple, the
// same uniqueness constraint the GORM-backed store enforces at the DB
// level (spec.md §3.6's graph_edges unique index).
type edgeKey struct {
	typ graph.EdgeType
	src string
	dst string
	idx int
}

// edgeKeyOf derives an edgeKey from an edge, folding a nil Index to -1 so
// unordered edges keep their historical (type, src, dst) identity while
// indexed edges (e.g. PASSES_ARGUMENT) stay distinct per position.
func edgeKeyOf(e graph.Edge) edgeKey {
	idx := -1
	if e.Index != nil {
		idx = *e.Index
	}
	return edgeKey{typ: e.Type, src: e.From, dst: e.To, idx: idx}
}

// MemoryStore is an in-process Store implementation for tests, embedding,
// and single-run CLI use without a database dependency. Writes are
// immediately visible; Flush is a no-op since there is no write-behind
// buffer to drain.
type MemoryStore struct {
	mu    sync.RWMutex
	nodes map[string]graph.Node
	edges map[edgeKey]graph.Edge
	// outgoing/incoming index edge keys by endpoint for O(degree) traversal
	// instead of a full edge scan per query.
	outgoing map[string][]edgeKey
	incoming map[string][]edgeKey
}

// NewMemory constructs an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		nodes:    make(map[string]graph.Node),
		edges:    make(map[edgeKey]graph.Edge),
		outgoing: make(map[string][]edgeKey),
		incoming: make(map[string][]edgeKey),
	}
}

func (s *MemoryStore) AddNode(_ context.Context, n graph.Node) error {
	if errs := graph.Validate(n); len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrValidationFailed, errs)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[n.ID] = n
	return nil
}

func (s *MemoryStore) AddNodes(ctx context.Context, nodes []graph.Node) error {
	for _, n := range nodes {
		if err := s.AddNode(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) addEdgeLocked(e graph.Edge) error {
	if errs := graph.ValidateEdge(e); len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrValidationFailed, errs)
	}
	key := edgeKeyOf(e)
	if _, exists := s.edges[key]; !exists {
		s.outgoing[e.From] = append(s.outgoing[e.From], key)
		s.incoming[e.To] = append(s.incoming[e.To], key)
	}
	s.edges[key] = e
	return nil
}

func (s *MemoryStore) AddEdge(_ context.Context, e graph.Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addEdgeLocked(e)
}

func (s *MemoryStore) AddEdges(_ context.Context, edges []graph.Edge, skipValidation bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range edges {
		if skipValidation {
			key := edgeKeyOf(e)
			if _, exists := s.edges[key]; !exists {
				s.outgoing[e.From] = append(s.outgoing[e.From], key)
				s.incoming[e.To] = append(s.incoming[e.To], key)
			}
			s.edges[key] = e
			continue
		}
		if err := s.addEdgeLocked(e); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) DeleteNode(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.nodes, id)
	return nil
}

func (s *MemoryStore) DeleteEdge(_ context.Context, src, dst string, typ graph.EdgeType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var doomed []edgeKey
	for k := range s.edges {
		if k.typ == typ && k.src == src && k.dst == dst {
			doomed = append(doomed, k)
		}
	}
	for _, key := range doomed {
		delete(s.edges, key)
		s.outgoing[src] = removeKey(s.outgoing[src], key)
		s.incoming[dst] = removeKey(s.incoming[dst], key)
	}
	return nil
}

func removeKey(keys []edgeKey, target edgeKey) []edgeKey {
	out := keys[:0]
	for _, k := range keys {
		if k != target {
			out = append(out, k)
		}
	}
	return out
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = make(map[string]graph.Node)
	s.edges = make(map[edgeKey]graph.Edge)
	s.outgoing = make(map[string][]edgeKey)
	s.incoming = make(map[string][]edgeKey)
	return nil
}

// Flush is a no-op: MemoryStore has no write-behind buffer, so writes are
// already visible to subsequent reads within and across workers.
func (s *MemoryStore) Flush(_ context.Context) error { return nil }

func (s *MemoryStore) GetNode(_ context.Context, id string) (graph.Node, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[id]
	return n, ok, nil
}

type memoryStream struct {
	items []graph.Node
	pos   int
}

func (st *memoryStream) Next(_ context.Context) (graph.Node, bool, error) {
	if st.pos >= len(st.items) {
		return graph.Node{}, false, nil
	}
	n := st.items[st.pos]
	st.pos++
	return n, true, nil
}

func (st *memoryStream) Close() error { return nil }

func (s *MemoryStore) QueryNodes(_ context.Context, f Filter) (NodeStream, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]graph.Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		if f.matches(n) {
			matched = append(matched, n)
		}
	}
	return &memoryStream{items: matched}, nil
}

func (s *MemoryStore) edgesForKeys(keys []edgeKey, types []graph.EdgeType) []graph.Edge {
	out := make([]graph.Edge, 0, len(keys))
	for _, k := range keys {
		e, ok := s.edges[k]
		if !ok {
			continue
		}
		if len(types) > 0 && !edgeTypeIn(e.Type, types) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func edgeTypeIn(t graph.EdgeType, types []graph.EdgeType) bool {
	for _, want := range types {
		if t == want {
			return true
		}
	}
	return false
}

func (s *MemoryStore) GetOutgoingEdges(_ context.Context, id string, types []graph.EdgeType) ([]graph.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.edgesForKeys(s.outgoing[id], types), nil
}

func (s *MemoryStore) GetIncomingEdges(_ context.Context, id string, types []graph.EdgeType) ([]graph.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.edgesForKeys(s.incoming[id], types), nil
}

func (s *MemoryStore) NodeCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes), nil
}

func (s *MemoryStore) EdgeCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.edges), nil
}

func (s *MemoryStore) CountNodesByType(_ context.Context, types []graph.Type) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(types) == 0 {
		return len(s.nodes), nil
	}
	count := 0
	for _, n := range s.nodes {
		for _, t := range types {
			if n.Type == t {
				count++
				break
			}
		}
	}
	return count, nil
}

func (s *MemoryStore) CountEdgesByType(_ context.Context, types []graph.EdgeType) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(types) == 0 {
		return len(s.edges), nil
	}
	count := 0
	for _, e := range s.edges {
		if edgeTypeIn(e.Type, types) {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) GetAllNodes(_ context.Context) ([]graph.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]graph.Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, n)
	}
	return out, nil
}

func (s *MemoryStore) GetAllEdges(_ context.Context) ([]graph.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]graph.Edge, 0, len(s.edges))
	for _, e := range s.edges {
		out = append(out, e)
	}
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
