// Package store defines the abstract Graph Store contract (spec.md §4.4)
// that the orchestrator, query surface, and guarantee runner depend on.
// Concrete implementations live in this package (an in-memory store for
// tests and embedding) and in internal/store/gormstore (SQLite/Postgres).
package store

import (
	"context"
	"errors"

	"github.com/termfx/grafema/internal/graph"
)

// Sentinel errors forming the store's failure model (spec.md §4.4). Callers
// use errors.Is against these rather than string-matching.
var (
	ErrStorageUnavailable = errors.New("store: storage unavailable")
	ErrValidationFailed   = errors.New("store: validation failed")
	ErrConflict           = errors.New("store: schema conflict")
	ErrNotFound           = errors.New("store: not found")
)

// Filter narrows queryNodes/countNodesByType results. Zero-value fields are
// unconstrained (matches any value for that dimension).
type Filter struct {
	Types         []graph.Type
	FileSubstring string
	NameSubstring string
}

func (f Filter) matches(n graph.Node) bool {
	if len(f.Types) > 0 {
		ok := false
		for _, t := range f.Types {
			if n.Type == t {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.FileSubstring != "" && !contains(n.File, f.FileSubstring) {
		return false
	}
	if f.NameSubstring != "" && !contains(n.Name, f.NameSubstring) {
		return false
	}
	return true
}

func contains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return indexOf(haystack, needle) >= 0
}

func indexOf(haystack, needle string) int {
	n, m := len(haystack), len(needle)
	if m > n {
		return -1
	}
	for i := 0; i+m <= n; i++ {
		if haystack[i:i+m] == needle {
			return i
		}
	}
	return -1
}

// NodeStream is a finite, non-restartable lazy iterator over query results
// (spec.md §4.4 "queryNodes(filter) → lazy stream"). Callers must call
// Close when done, even after exhausting Next.
type NodeStream interface {
	Next(ctx context.Context) (graph.Node, bool, error)
	Close() error
}

// Store is the Graph Store contract every orchestrator worker, query
// handler, and guarantee evaluator depends on (spec.md §4.4).
type Store interface {
	// Writes (idempotent upsert).
	AddNode(ctx context.Context, n graph.Node) error
	AddNodes(ctx context.Context, nodes []graph.Node) error
	AddEdge(ctx context.Context, e graph.Edge) error
	AddEdges(ctx context.Context, edges []graph.Edge, skipValidation bool) error
	DeleteNode(ctx context.Context, id string) error
	DeleteEdge(ctx context.Context, src, dst string, typ graph.EdgeType) error
	Clear(ctx context.Context) error
	Flush(ctx context.Context) error

	// Reads.
	GetNode(ctx context.Context, id string) (graph.Node, bool, error)
	QueryNodes(ctx context.Context, f Filter) (NodeStream, error)
	GetOutgoingEdges(ctx context.Context, id string, types []graph.EdgeType) ([]graph.Edge, error)
	GetIncomingEdges(ctx context.Context, id string, types []graph.EdgeType) ([]graph.Edge, error)
	NodeCount(ctx context.Context) (int, error)
	EdgeCount(ctx context.Context) (int, error)
	CountNodesByType(ctx context.Context, types []graph.Type) (int, error)
	CountEdgesByType(ctx context.Context, types []graph.EdgeType) (int, error)

	// Optional bulk reads; validators skip whole-graph work when these
	// return ErrNotFound-style emptiness rather than failing the run.
	GetAllNodes(ctx context.Context) ([]graph.Node, error)
	GetAllEdges(ctx context.Context) ([]graph.Edge, error)
}
