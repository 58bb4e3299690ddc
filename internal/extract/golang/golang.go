// Package golang supplies base.Rules for Go source, the extraction
// analogue of providers/golang.Config.
package golang

import (
	"strings"

	"github.com/termfx/grafema/internal/extract"
	"github.com/termfx/grafema/internal/extract/base"
	"github.com/termfx/grafema/internal/parse"
	"github.com/termfx/grafema/internal/parse/treesitter"
)

func extractName(n parse.Node, source []byte) string {
	switch n.Type() {
	case "function_declaration", "method_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			return parse.Text(source, name)
		}
	case "var_spec", "const_spec":
		if name := n.ChildByFieldName("name"); name != nil {
			return parse.Text(source, name)
		}
		for i := 0; i < n.ChildCount(); i++ {
			if child := n.Child(i); child.Type() == "identifier" {
				return parse.Text(source, child)
			}
		}
	case "short_var_declaration":
		if left := n.ChildByFieldName("left"); left != nil && left.NamedChildCount() > 0 {
			if id := left.NamedChild(0); id.Type() == "identifier" {
				return parse.Text(source, id)
			}
		}
	case "var_declaration", "const_declaration":
		for i := 0; i < n.ChildCount(); i++ {
			child := n.Child(i)
			if child.Type() == "var_spec" || child.Type() == "const_spec" {
				return extractName(child, source)
			}
			if child.Type() == "identifier" {
				return parse.Text(source, child)
			}
		}
	case "parameter_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			return parse.Text(source, name)
		}
	case "import_spec":
		if path := n.ChildByFieldName("path"); path != nil {
			return strings.Trim(parse.Text(source, path), `"`)
		}
	}
	return ""
}

func calleeName(n parse.Node, source []byte) (string, bool) {
	fn := n.ChildByFieldName("function")
	if fn == nil {
		return "", false
	}
	switch fn.Type() {
	case "identifier":
		return parse.Text(source, fn), false
	case "selector_expression":
		operand := fn.ChildByFieldName("operand")
		field := fn.ChildByFieldName("field")
		if operand != nil && field != nil {
			return parse.Text(source, operand) + "." + parse.Text(source, field), false
		}
	}
	return parse.Text(source, fn), false
}

func isExported(name string) bool {
	return len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z'
}

// identifierText returns the name of n if n is a bare identifier, or of its
// single child if n is a one-element wrapper such as expression_list.
func identifierText(n parse.Node, source []byte) (string, bool) {
	if n.Type() == "identifier" {
		return parse.Text(source, n), true
	}
	if n.ChildCount() != 1 {
		return "", false
	}
	return identifierText(n.Child(0), source)
}

// assignmentSource reports the identifier a var/const spec or short variable
// declaration is initialized from, e.g. "y" in "x := y" or "var x = y".
func assignmentSource(n parse.Node, source []byte) (string, bool) {
	switch n.Type() {
	case "var_spec", "const_spec":
		if val := n.ChildByFieldName("value"); val != nil {
			return identifierText(val, source)
		}
	case "short_var_declaration":
		if right := n.ChildByFieldName("right"); right != nil {
			return identifierText(right, source)
		}
	case "var_declaration", "const_declaration":
		for i := 0; i < n.ChildCount(); i++ {
			child := n.Child(i)
			if child.Type() == "var_spec" || child.Type() == "const_spec" {
				return assignmentSource(child, source)
			}
		}
	}
	return "", false
}

// callArguments renders each positional call_expression argument that is a
// bare identifier (or a one-element wrapper around one), "" otherwise.
func callArguments(n parse.Node, source []byte) []string {
	args := n.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	out := make([]string, 0, args.NamedChildCount())
	for i := 0; i < args.NamedChildCount(); i++ {
		name, ok := identifierText(args.NamedChild(i), source)
		if !ok {
			name = ""
		}
		out = append(out, name)
	}
	return out
}

// Rules returns the base.Rules for Go.
func Rules() base.Rules {
	return base.Rules{
		Language:   "go",
		Extensions: []string{".go"},
		Parser:     treesitter.New(treesitter.LangGo),

		IsFunctionLike: func(t string) bool { return t == "function_declaration" },
		IsMethodLike:   func(t string) bool { return t == "method_declaration" },
		IsClassLike:    func(t string) bool { return t == "type_spec" },
		IsCallLike:     func(t string) bool { return t == "call_expression" },
		IsImportLike:   func(t string) bool { return t == "import_spec" },
		IsVariableDecl: func(t string) bool {
			return t == "var_declaration" || t == "const_declaration" || t == "short_var_declaration"
		},
		IsIfLike:     func(t string) bool { return t == "if_statement" },
		IsLoopLike:   func(t string) bool { return t == "for_statement" },
		IsTryLike:    func(t string) bool { return false }, // Go has no try/catch
		IsReturnLike: func(t string) bool { return t == "return_statement" },
		IsThrowLike:  func(t string) bool { return false }, // panic() is a CALL, not a syntactic throw

		ExtractName:      extractName,
		CalleeName:       calleeName,
		IsExported:       isExported,
		AssignmentSource: assignmentSource,
		CallArguments:    callArguments,
		// ClassHeritage is left nil: Go struct/interface type_spec nodes
		// carry no extends/implements clause for base.extractClass to read.
	}
}

// New constructs the Go extract.Extractor.
func New() extract.Extractor {
	return base.New(Rules())
}
