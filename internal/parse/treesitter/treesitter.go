// Package treesitter is the concrete internal/parse.Parser backend,
// wrapping github.com/smacker/go-tree-sitter the way
// providers/base/provider.go wraps it: one *sitter.Parser per language,
// ParseCtx into a tree, walk with Type()/StartPoint()/ChildCount().
package treesitter

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/termfx/grafema/internal/parse"
)

// Lang identifies a supported grammar.
type Lang string

const (
	LangJavaScript Lang = "javascript"
	LangTypeScript Lang = "typescript"
	LangGo         Lang = "go"
)

func languageFor(l Lang) *sitter.Language {
	switch l {
	case LangJavaScript:
		return javascript.GetLanguage()
	case LangTypeScript:
		return typescript.GetLanguage()
	case LangGo:
		return golang.GetLanguage()
	default:
		return nil
	}
}

// Parser adapts a *sitter.Parser fixed to one language to parse.Parser.
type Parser struct {
	lang   Lang
	parser *sitter.Parser
}

// New builds a Parser for lang, panicking if the grammar fails to load —
// mirroring providers/base/provider.go's New, which treats a missing
// compiled grammar as a programming error rather than a runtime condition.
func New(lang Lang) *Parser {
	sl := languageFor(lang)
	if sl == nil {
		panic(fmt.Sprintf("treesitter: unknown language %q", lang))
	}
	p := sitter.NewParser()
	p.SetLanguage(sl)
	return &Parser{lang: lang, parser: p}
}

func (p *Parser) Language() string { return string(p.lang) }

func (p *Parser) Parse(ctx context.Context, source []byte) (parse.Tree, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil || tree == nil {
		return nil, fmt.Errorf("treesitter: parse %s source: %w", p.lang, err)
	}
	return &Tree{tree: tree, source: source}, nil
}

// Tree adapts *sitter.Tree to parse.Tree.
type Tree struct {
	tree   *sitter.Tree
	source []byte
}

func (t *Tree) RootNode() parse.Node {
	return &Node{node: t.tree.RootNode(), source: t.source}
}

func (t *Tree) Close() { t.tree.Close() }

// Node adapts *sitter.Node to parse.Node.
type Node struct {
	node   *sitter.Node
	source []byte
}

func wrap(n *sitter.Node, source []byte) parse.Node {
	if n == nil {
		return nil
	}
	return &Node{node: n, source: source}
}

func (n *Node) Type() string { return n.node.Type() }

func (n *Node) StartPoint() parse.Point {
	p := n.node.StartPoint()
	return parse.Point{Row: int(p.Row), Column: int(p.Column)}
}

func (n *Node) EndPoint() parse.Point {
	p := n.node.EndPoint()
	return parse.Point{Row: int(p.Row), Column: int(p.Column)}
}

func (n *Node) StartByte() uint32 { return n.node.StartByte() }
func (n *Node) EndByte() uint32   { return n.node.EndByte() }

func (n *Node) ChildCount() int          { return int(n.node.ChildCount()) }
func (n *Node) Child(i int) parse.Node   { return wrap(n.node.Child(i), n.source) }
func (n *Node) NamedChildCount() int     { return int(n.node.NamedChildCount()) }
func (n *Node) NamedChild(i int) parse.Node {
	return wrap(n.node.NamedChild(i), n.source)
}
func (n *Node) FieldNameForChild(i int) string { return n.node.FieldNameForChild(i) }
func (n *Node) IsNamed() bool                  { return n.node.IsNamed() }

// IsError mirrors providers/base/provider.go's findErrors convention: a
// syntax error node is tree-sitter's literal "ERROR" node type, not a
// distinct boolean flag.
func (n *Node) IsError() bool { return n.node.Type() == "ERROR" }

// ChildByFieldName exposes the one sitter.Node accessor extractors lean on
// most heavily (providers/*/config.go's ExtractNodeName), beyond the
// parse.Node interface's positional Child/NamedChild.
func (n *Node) ChildByFieldName(name string) parse.Node {
	return wrap(n.node.ChildByFieldName(name), n.source)
}
