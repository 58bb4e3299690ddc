// Package javascript supplies base.Rules for JavaScript/JSX, the
// extraction analogue of providers/javascript.Config.
package javascript

import (
	"strings"

	"github.com/termfx/grafema/internal/extract"
	"github.com/termfx/grafema/internal/extract/base"
	"github.com/termfx/grafema/internal/parse"
	"github.com/termfx/grafema/internal/parse/treesitter"
)

var functionTypes = map[string]bool{
	"function_declaration": true,
	"function_expression":  true,
	"arrow_function":       true,
}

var methodTypes = map[string]bool{
	"method_definition": true,
}

var callTypes = map[string]bool{
	"call_expression":       true,
	"new_expression":        true,
}

func extractName(n parse.Node, source []byte) string {
	switch n.Type() {
	case "function_declaration", "class_declaration", "class_expression":
		if name := n.ChildByFieldName("name"); name != nil {
			return parse.Text(source, name)
		}
	case "method_definition":
		if key := n.ChildByFieldName("key"); key != nil {
			return parse.Text(source, key)
		}
	case "variable_declarator":
		if id := n.ChildByFieldName("id"); id != nil && id.Type() == "identifier" {
			return parse.Text(source, id)
		}
	case "lexical_declaration", "variable_declaration":
		for i := 0; i < n.ChildCount(); i++ {
			child := n.Child(i)
			if child.Type() == "variable_declarator" {
				return extractName(child, source)
			}
		}
	case "required_parameter", "optional_parameter", "identifier":
		return parse.Text(source, n)
	case "import_statement", "export_statement":
		if src := n.ChildByFieldName("source"); src != nil {
			return strings.Trim(parse.Text(source, src), `"'`)
		}
	}
	for i := 0; i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.Type() == "identifier" {
			return parse.Text(source, child)
		}
	}
	return ""
}

func calleeName(n parse.Node, source []byte) (string, bool) {
	fn := n.ChildByFieldName("function")
	if fn == nil {
		fn = n.ChildByFieldName("constructor")
	}
	if fn == nil {
		return "", false
	}
	switch fn.Type() {
	case "identifier":
		return parse.Text(source, fn), false
	case "member_expression":
		obj := fn.ChildByFieldName("object")
		prop := fn.ChildByFieldName("property")
		if obj != nil && prop != nil {
			return parse.Text(source, obj) + "." + parse.Text(source, prop), false
		}
	case "subscript_expression":
		obj := fn.ChildByFieldName("object")
		if obj != nil {
			return parse.Text(source, obj) + ".<computed>", true
		}
	}
	return parse.Text(source, fn), false
}

func isExported(name string) bool {
	return len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z'
}

// assignmentSource reports the identifier a variable_declarator is
// initialized from, e.g. "y" in "const x = y".
func assignmentSource(n parse.Node, source []byte) (string, bool) {
	switch n.Type() {
	case "variable_declarator":
		if val := n.ChildByFieldName("value"); val != nil && val.Type() == "identifier" {
			return parse.Text(source, val), true
		}
	case "lexical_declaration", "variable_declaration":
		for i := 0; i < n.ChildCount(); i++ {
			child := n.Child(i)
			if child.Type() == "variable_declarator" {
				return assignmentSource(child, source)
			}
		}
	}
	return "", false
}

// childByType returns n's first direct child of the given grammar type, or
// nil if none matches.
func childByType(n parse.Node, typ string) parse.Node {
	for i := 0; i < n.ChildCount(); i++ {
		if c := n.Child(i); c.Type() == typ {
			return c
		}
	}
	return nil
}

// firstIdentifierText returns n's own text when n is itself an identifier
// (plain or typed), else recurses into its first named child, so a
// parenthesized or type-annotated heritage expression ("Base<T>") still
// yields a usable bare name.
func firstIdentifierText(n parse.Node, source []byte) (string, bool) {
	switch n.Type() {
	case "identifier", "type_identifier", "nested_identifier":
		return parse.Text(source, n), true
	}
	if n.NamedChildCount() == 0 {
		return "", false
	}
	return firstIdentifierText(n.NamedChild(0), source)
}

// classHeritage reads a class_declaration/class_expression's class_heritage
// child (shared by the JavaScript and TypeScript grammars: "extends <expr>
// [implements <type>, ...]") and splits it into a superclass name plus an
// implemented-interface list.
func classHeritage(n parse.Node, source []byte) (string, []string) {
	heritage := childByType(n, "class_heritage")
	if heritage == nil {
		return "", nil
	}
	var superclass string
	var interfaces []string
	mode := ""
	for i := 0; i < heritage.ChildCount(); i++ {
		c := heritage.Child(i)
		switch parse.Text(source, c) {
		case "extends":
			mode = "extends"
			continue
		case "implements":
			mode = "implements"
			continue
		}
		if !c.IsNamed() {
			continue
		}
		name, ok := firstIdentifierText(c, source)
		if !ok {
			continue
		}
		switch mode {
		case "extends":
			if superclass == "" {
				superclass = name
			}
		case "implements":
			interfaces = append(interfaces, name)
		}
	}
	return superclass, interfaces
}

// callArguments renders each positional call/new expression argument that
// is a bare identifier, "" otherwise.
func callArguments(n parse.Node, source []byte) []string {
	args := n.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	out := make([]string, 0, args.NamedChildCount())
	for i := 0; i < args.NamedChildCount(); i++ {
		arg := args.NamedChild(i)
		name := ""
		if arg.Type() == "identifier" {
			name = parse.Text(source, arg)
		}
		out = append(out, name)
	}
	return out
}

// Rules returns the base.Rules for JavaScript.
func Rules() base.Rules {
	return base.Rules{
		Language:   "javascript",
		Extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
		Parser:     treesitter.New(treesitter.LangJavaScript),

		IsFunctionLike: func(t string) bool { return functionTypes[t] },
		IsMethodLike:   func(t string) bool { return methodTypes[t] },
		IsClassLike: func(t string) bool {
			return t == "class_declaration" || t == "class_expression"
		},
		IsCallLike:     func(t string) bool { return callTypes[t] },
		IsImportLike:   func(t string) bool { return t == "import_statement" },
		IsVariableDecl: func(t string) bool { return t == "lexical_declaration" || t == "variable_declaration" },
		IsIfLike:       func(t string) bool { return t == "if_statement" },
		IsLoopLike: func(t string) bool {
			return t == "for_statement" || t == "for_in_statement" || t == "while_statement" || t == "do_statement"
		},
		IsTryLike:    func(t string) bool { return t == "try_statement" },
		IsReturnLike: func(t string) bool { return t == "return_statement" },
		IsThrowLike:  func(t string) bool { return t == "throw_statement" },

		ExtractName:      extractName,
		CalleeName:       calleeName,
		IsExported:       isExported,
		AssignmentSource: assignmentSource,
		ClassHeritage:    classHeritage,
		CallArguments:    callArguments,
	}
}

// New constructs the JavaScript extract.Extractor.
func New() extract.Extractor {
	return base.New(Rules())
}
