package treesitter

import (
	"context"
	"testing"

	"github.com/termfx/grafema/internal/parse"
)

func findFirst(n parse.Node, typ string) parse.Node {
	if n == nil {
		return nil
	}
	if n.Type() == typ {
		return n
	}
	for i := 0; i < n.ChildCount(); i++ {
		if found := findFirst(n.Child(i), typ); found != nil {
			return found
		}
	}
	return nil
}

func TestParse_JavaScriptFunctionDeclaration(t *testing.T) {
	p := New(LangJavaScript)
	src := []byte("function foo() { return 1; }")
	tree, err := p.Parse(context.Background(), src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.Type() != "program" {
		t.Fatalf("got root type %q", root.Type())
	}

	fn := findFirst(root, "function_declaration")
	if fn == nil {
		t.Fatal("expected to find a function_declaration node")
	}
	name := fn.ChildByFieldName("name")
	if name == nil || parse.Text(src, name) != "foo" {
		t.Fatalf("expected function name %q, got node %+v", "foo", name)
	}
}

func TestParse_TypeScriptInterface(t *testing.T) {
	p := New(LangTypeScript)
	src := []byte("interface Widget { render(): void }")
	tree, err := p.Parse(context.Background(), src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer tree.Close()

	iface := findFirst(tree.RootNode(), "interface_declaration")
	if iface == nil {
		t.Fatal("expected to find an interface_declaration node")
	}
}

func TestParse_Go(t *testing.T) {
	p := New(LangGo)
	src := []byte("package main\n\nfunc main() {}\n")
	tree, err := p.Parse(context.Background(), src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer tree.Close()

	fn := findFirst(tree.RootNode(), "function_declaration")
	if fn == nil {
		t.Fatal("expected to find a function_declaration node")
	}
}

func TestParse_SyntaxErrorNode(t *testing.T) {
	p := New(LangJavaScript)
	src := []byte("function foo( {")
	tree, err := p.Parse(context.Background(), src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer tree.Close()

	errNode := findFirst(tree.RootNode(), "ERROR")
	if errNode == nil {
		t.Fatal("expected an ERROR node for malformed source")
	}
	if !errNode.IsError() {
		t.Fatal("expected IsError() true on ERROR node")
	}
}
