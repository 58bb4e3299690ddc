// Package graph defines the typed node and edge records of the code
// property graph (spec.md §3.2-§3.3) plus their constructors and
// structural validators (spec.md §4.3). Node kinds form a discriminated
// union keyed by Type; kind-specific fields live in the Fields map rather
// than as a deep inheritance hierarchy, so a single Node type plus a
// per-kind field table expresses the whole schema.
package graph

import (
	"fmt"

	"github.com/termfx/grafema/internal/ident"
)

// Type is the closed set of node kinds from spec.md §3.2.
type Type string

const (
	// Structural
	TypeModule    Type = "MODULE"
	TypeService   Type = "SERVICE"
	TypeClass     Type = "CLASS"
	TypeFunction  Type = "FUNCTION"
	TypeMethod    Type = "METHOD"
	TypeParameter Type = "PARAMETER"
	TypeScope     Type = "SCOPE"

	// Values and declarations
	TypeVariable            Type = "VARIABLE"
	TypeConstant             Type = "CONSTANT"
	TypeVariableDeclaration Type = "VARIABLE_DECLARATION"
	TypeImport              Type = "IMPORT"
	TypeExport              Type = "EXPORT"
	TypeLiteral             Type = "LITERAL"
	TypeObjectLiteral       Type = "OBJECT_LITERAL"
	TypeArrayLiteral        Type = "ARRAY_LITERAL"
	TypeExpression          Type = "EXPRESSION"
	TypePropertyAccess      Type = "PROPERTY_ACCESS"
	TypePropertyAssignment  Type = "PROPERTY_ASSIGNMENT"
	TypeConstructorCall     Type = "CONSTRUCTOR_CALL"
	TypeCall                Type = "CALL"

	// Control flow
	TypeLoop             Type = "LOOP"
	TypeBranch           Type = "BRANCH"
	TypeCase             Type = "CASE"
	TypeTryBlock         Type = "TRY_BLOCK"
	TypeCatchBlock       Type = "CATCH_BLOCK"
	TypeFinallyBlock     Type = "FINALLY_BLOCK"
	TypeUpdateExpression Type = "UPDATE_EXPRESSION"
	TypeReturn           Type = "RETURN"
	TypeYield            Type = "YIELD"
	TypeThrow            Type = "THROW"

	// Namespaced / domain-specific
	TypeHTTPRoute         Type = "http:route"
	TypeHTTPRequest       Type = "http:request"
	TypeSocketIOEmit      Type = "socketio:emit"
	TypeSocketIOOn        Type = "socketio:on"
	TypeSocketIORoom      Type = "socketio:room"
	TypeSocketIOEvent     Type = "socketio:event"
	TypeDBQuery           Type = "db:query"
	TypeReactComponent    Type = "react:component"
	TypeReactHook         Type = "react:hook"
	TypeReactState        Type = "react:state"
	TypeReactEffect       Type = "react:effect"
	TypeGrafemaPlugin     Type = "grafema:plugin"
	TypeGuaranteeQueue    Type = "guarantee:queue"
	TypeGuaranteeAPI      Type = "guarantee:api"
	TypeGuaranteePermission Type = "guarantee:permission"
	TypeIssue             Type = "ISSUE"
	TypeDecorator         Type = "DECORATOR"
	TypeUnknownCallTarget Type = "UNKNOWN_CALL_TARGET"
)

// ScopeType is the closed set of SCOPE node sub-kinds.
type ScopeType string

const (
	ScopeIf           ScopeType = "if"
	ScopeElse         ScopeType = "else"
	ScopeFor          ScopeType = "for"
	ScopeWhile        ScopeType = "while"
	ScopeTry          ScopeType = "try"
	ScopeCatch        ScopeType = "catch"
	ScopeFinally      ScopeType = "finally"
	ScopeMethodBody   ScopeType = "method_body"
	ScopeFunctionBody ScopeType = "function_body"
	ScopePropertyBody ScopeType = "property_body"
	ScopeStaticBlock  ScopeType = "static_block"
	ScopeCallbackBody ScopeType = "callback_body"
)

// Node is the base contract shared by every kind, plus kind-specific
// payload carried in Fields. JSON tags follow the teacher's convention of
// omitting empty optional fields.
type Node struct {
	ID       string         `json:"id"`
	Type     Type           `json:"type"`
	Name     string         `json:"name"`
	File     string         `json:"file,omitempty"`
	Line     int            `json:"line,omitempty"`
	Column   int            `json:"column,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Fields   map[string]any `json:"fields,omitempty"`
}

// fieldSpec declares whether a kind-specific field is required.
type fieldSpec struct {
	name     string
	required bool
}

// fieldTable lists the kind-specific (non-base) fields each Type declares,
// per spec.md §3.2 "Each kind declares a REQUIRED and OPTIONAL field list".
// Kinds not present here (namespaced domain kinds mostly) only enforce the
// base contract plus whatever the Non-goals leave implementation-defined.
var fieldTable = map[Type][]fieldSpec{
	TypeModule: {
		{"contentHash", true},
	},
	TypeService: {
		{"root", true},
	},
	TypeClass: {
		{"exported", false},
	},
	TypeFunction: {
		{"async", false},
		{"generator", false},
		{"exported", false},
	},
	TypeMethod: {
		{"static", false},
		{"async", false},
		{"visibility", false},
	},
	TypeParameter: {
		{"ordinal", true},
		{"defaultValue", false},
		{"rest", false},
	},
	TypeScope: {
		{"scopeType", true},
	},
	TypeVariable: {
		{"kind", false}, // let/var
	},
	TypeConstant: {},
	TypeGuaranteeQueue: {
		{"schema", true},
	},
	TypeGuaranteeAPI: {
		{"schema", true},
	},
	TypeGuaranteePermission: {
		{"schema", true},
	},
	TypeVariableDeclaration: {
		{"declarationKind", true}, // var/let/const
	},
	TypeImport: {
		{"source", true},
		{"importType", true}, // default | namespace | named
	},
	TypeExport: {
		{"exportType", true},
	},
	TypeLiteral: {
		{"literalType", true}, // string/number/bool/...
	},
	TypeObjectLiteral: {},
	TypeArrayLiteral:  {},
	TypeExpression:    {},
	TypePropertyAccess: {
		{"object", true},
		{"property", true},
	},
	TypePropertyAssignment: {
		{"property", true},
	},
	TypeConstructorCall: {
		{"isBuiltin", false},
	},
	TypeCall: {
		{"callee", true},
		{"computed", false},
	},
	TypeLoop: {
		{"loopKind", true}, // for/while/forEach...
	},
	TypeBranch:       {},
	TypeCase:         {},
	TypeTryBlock:     {},
	TypeCatchBlock:   {},
	TypeFinallyBlock: {},
	TypeUpdateExpression: {
		{"operator", true},
	},
	TypeReturn: {},
	TypeYield:  {},
	TypeThrow:  {},
	TypeUnknownCallTarget: {
		{"reason", false},
	},
	TypeIssue: {
		{"severity", true},
		{"code", true},
	},
	TypeDecorator: {
		{"expression", false},
	},
}

// New constructs a node, validating eagerly against fieldTable. Callers
// that already have an ID (e.g. a singleton or external-module sentinel)
// use this directly; extractors normally go through Build, which also
// mints the ID.
func New(id string, typ Type, name, file string, line, column int, fields map[string]any) (Node, error) {
	n := Node{
		ID:     id,
		Type:   typ,
		Name:   name,
		File:   file,
		Line:   line,
		Column: column,
		Fields: fields,
	}
	if errs := Validate(n); len(errs) > 0 {
		return Node{}, fmt.Errorf("graph: invalid %s node %q: %v", typ, name, errs)
	}
	return n, nil
}

// Build mints a v2 compact ID via internal/ident and constructs the node.
func Build(typ Type, name, file string, line, column int, namedParent string, hints ident.Hints, counter int, fields map[string]any) (Node, error) {
	hash := ident.ContentHash(hints)
	id := ident.ComputeCompact(string(typ), name, file, ident.Opts{
		NamedParent: namedParent,
		Hash:        hash,
		Counter:     counter,
	})
	return New(id, typ, name, file, line, column, fields)
}

// Validate performs the post-hoc structural check the store's strict-mode
// write path uses (spec.md §4.3). It never panics; it accumulates and
// returns every violation found.
func Validate(n Node) []string {
	var errs []string
	if n.ID == "" {
		errs = append(errs, "id is required")
	}
	if n.Type == "" {
		errs = append(errs, "type is required")
	}
	if n.Name == "" {
		errs = append(errs, "name is required")
	}

	spec, ok := fieldTable[n.Type]
	if !ok {
		return errs
	}
	for _, f := range spec {
		if !f.required {
			continue
		}
		if n.Fields == nil {
			errs = append(errs, fmt.Sprintf("missing required field %q", f.name))
			continue
		}
		if _, present := n.Fields[f.name]; !present {
			errs = append(errs, fmt.Sprintf("missing required field %q", f.name))
		}
	}
	return errs
}
