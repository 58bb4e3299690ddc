// Package parse abstracts the concrete parser behind three small
// interfaces (Parser, Tree, Node) so extractors never import a tree-sitter
// type directly, per spec.md §4.5 ("receives a parsed AST through a
// pluggable Parser capability, out-of-core"). internal/parse/treesitter
// supplies the only implementation today; a future language backend would
// add another without touching any extractor.
package parse

import "context"

// Point is a (row, column) source position, zero-based to match
// tree-sitter's own convention; callers convert to 1-based line/column
// when minting node Line/Column fields.
type Point struct {
	Row    int
	Column int
}

// Node is the minimal AST node surface extractors walk.
type Node interface {
	Type() string
	StartPoint() Point
	EndPoint() Point
	StartByte() uint32
	EndByte() uint32
	ChildCount() int
	Child(i int) Node
	// NamedChildCount/NamedChild skip anonymous (punctuation/keyword)
	// nodes, which is what most extraction logic actually wants to walk.
	NamedChildCount() int
	NamedChild(i int) Node
	FieldNameForChild(i int) string
	// ChildByFieldName returns the child bound to a grammar-declared field
	// (e.g. "name", "body"), or nil if absent — the accessor extractors
	// lean on most heavily when pulling a declaration's identifier out of
	// its surrounding syntax.
	ChildByFieldName(name string) Node
	IsNamed() bool
	IsError() bool
}

// Tree is a parsed AST plus its source text, closeable to release the
// underlying tree-sitter tree.
type Tree interface {
	RootNode() Node
	Close()
}

// Parser parses source bytes for one language into a Tree.
type Parser interface {
	Parse(ctx context.Context, source []byte) (Tree, error)
	Language() string
}

// Text slices a node's source range out of the original source bytes.
func Text(source []byte, n Node) string {
	start, end := n.StartByte(), n.EndByte()
	if int(end) > len(source) || start > end {
		return ""
	}
	return string(source[start:end])
}

// Line1 converts a zero-based Point row to the 1-based line number the
// graph schema's Node.Line field uses.
func Line1(p Point) int { return p.Row + 1 }
