// Package extract defines the shared extractor contract (spec.md §4.5):
// extract(sourceText, moduleInfo, collections, tracker) populates typed
// buffers that the orchestrator later drains to the store in batches.
// Extractors never talk to the store directly.
package extract

import (
	"github.com/termfx/grafema/internal/graph"
	"github.com/termfx/grafema/internal/scope"
)

// ModuleInfo identifies the file under extraction.
type ModuleInfo struct {
	File        string
	ModuleID    string
	ContentHash string
}

// Collections is the set of typed buffers one extractor run appends to.
// A single struct (rather than one channel per kind) keeps an extractor's
// signature small and lets the orchestrator drain everything in one pass.
type Collections struct {
	Nodes []graph.Node
	Edges []graph.Edge
}

// AddNode appends n and returns it, so call sites can chain off the
// returned node's ID when wiring an edge in the same statement.
func (c *Collections) AddNode(n graph.Node) graph.Node {
	c.Nodes = append(c.Nodes, n)
	return n
}

// AddEdge appends e, silently dropping it if construction failed; the
// dropped edge is not recorded anywhere (Collections has no logger or
// diagnostics collector of its own).
func (c *Collections) AddEdge(e graph.Edge, err error) {
	if err != nil {
		return
	}
	c.Edges = append(c.Edges, e)
}

// Extractor is implemented once per language package (spec.md §4.5). Each
// orchestrator worker owns one Tracker per file (single-threaded per
// file, per internal/scope's own doc comment), created fresh before the
// call.
type Extractor interface {
	// Language names the language key ("javascript", "typescript",
	// "golang") that the orchestrator's extension table maps discovered
	// files to; Extensions lists the file extensions the language covers.
	Language() string
	Extensions() []string
	Extract(source []byte, mod ModuleInfo, out *Collections, tracker *scope.Tracker) error
}
