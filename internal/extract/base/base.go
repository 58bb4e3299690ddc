// Package base is the common extraction engine every language package in
// internal/extract/{javascript,typescript,golang} wraps, mirroring
// providers/base.Provider's relationship to providers/{javascript,
// typescript,golang}.Config: the walk, node/edge synthesis, and scope
// bookkeeping live here once; each language supplies a small Rules value
// describing its own grammar's node-type names.
package base

import (
	"context"
	"fmt"
	"strings"

	"github.com/termfx/grafema/internal/extract"
	"github.com/termfx/grafema/internal/extract/domain"
	"github.com/termfx/grafema/internal/graph"
	"github.com/termfx/grafema/internal/ident"
	"github.com/termfx/grafema/internal/parse"
	"github.com/termfx/grafema/internal/scope"
)

// literalNodeTypes lists the grammar node type names, across every
// language this package supports, that represent a plain string literal.
// It's used only to recover a call's first literal argument (an express
// route path, a socket.io event name, a SQL query string, ...) for the
// domain detectors in internal/extract/domain; it is not a general
// literal-expression classifier.
var literalNodeTypes = map[string]bool{
	"string":                     true, // javascript/typescript
	"template_string":            true,
	"interpreted_string_literal": true, // go
	"raw_string_literal":         true,
}

// Rules is the per-language configuration Provider needs, the direct
// analogue of providers/base.LanguageConfig.
type Rules struct {
	Language   string
	Extensions []string
	Parser     parse.Parser

	// IsFunctionLike/IsClassLike/... classify a grammar node type into the
	// extractor's abstract vocabulary, replacing providers/*/config.go's
	// MapQueryTypeToNodeTypes alias tables (inverted: grammar type -> kind,
	// not query alias -> grammar types, since extraction walks forward
	// through the whole tree rather than matching a query).
	IsFunctionLike func(nodeType string) bool
	IsMethodLike   func(nodeType string) bool
	IsClassLike    func(nodeType string) bool
	IsCallLike     func(nodeType string) bool
	IsImportLike   func(nodeType string) bool
	IsVariableDecl func(nodeType string) bool
	IsIfLike       func(nodeType string) bool
	IsLoopLike     func(nodeType string) bool
	IsTryLike      func(nodeType string) bool
	IsReturnLike   func(nodeType string) bool
	IsThrowLike    func(nodeType string) bool

	// ExtractName pulls the declared name out of a node whose kind one of
	// the classifiers above accepted, mirroring config.go's
	// ExtractNodeName. It returns "" when no syntactic name exists (the
	// extractor then mints an anonymous[k] name itself).
	ExtractName func(n parse.Node, source []byte) string

	// CalleeName renders a call expression's callee, handling direct
	// (`foo()`), member (`obj.method()`), and computed (`obj[x]()`) shapes.
	// computed is true when the callee has a subscript part (rendered as
	// "<computed>", e.g. "obj.<computed>"); a call whose callee yields no
	// name at all is still emitted, named "<computed>".
	CalleeName func(n parse.Node, source []byte) (name string, computed bool)

	// IsExported reports whether a declared name is part of the module's
	// public surface (providers/*/config.go's IsExported).
	IsExported func(name string) bool

	// AssignmentSource extracts the bare-identifier RHS of a variable
	// declaration node (e.g. "x := y", "let a = b"), returning the
	// identifier's name. ok is false when the declaration has no value,
	// the value isn't a bare identifier, or the grammar doesn't expose
	// one. Nil means the language never reports a resolvable source
	// (extractVariableDecl then skips the ASSIGNED_FROM bookkeeping
	// entirely).
	AssignmentSource func(n parse.Node, source []byte) (name string, ok bool)

	// ClassHeritage extracts a class-like node's superclass name and
	// implemented-interface names from the grammar's heritage clause. Nil
	// means the language has no such concept (e.g. Go structs).
	ClassHeritage func(n parse.Node, source []byte) (superclass string, interfaces []string)

	// CallArguments renders each positional call argument that is a bare
	// identifier, in argument order; non-identifier arguments (literals,
	// nested expressions) get "" so indices stay aligned with position.
	// Nil means the language doesn't support resolving call arguments this
	// way.
	CallArguments func(n parse.Node, source []byte) []string
}

// Provider is the shared extraction engine.
type Provider struct {
	rules Rules
}

// New constructs a Provider from language-specific Rules.
func New(rules Rules) *Provider {
	return &Provider{rules: rules}
}

func (p *Provider) Language() string     { return p.rules.Language }
func (p *Provider) Extensions() []string { return p.rules.Extensions }

// Extract walks the parsed tree once, populating out with MODULE, CLASS,
// FUNCTION/METHOD + PARAMETER, CALL, IMPORT, VARIABLE_DECLARATION, and
// control-flow (SCOPE + BRANCH/LOOP/TRY_BLOCK/CATCH_BLOCK/FINALLY_BLOCK)
// nodes and their structural edges, per spec.md §4.5.
func (p *Provider) Extract(source []byte, mod extract.ModuleInfo, out *extract.Collections, tracker *scope.Tracker) error {
	tree, err := p.rules.Parser.Parse(context.Background(), source)
	if err != nil {
		return fmt.Errorf("base: parse %s: %w", mod.File, err)
	}
	defer tree.Close()

	moduleNode, err := graph.New(mod.ModuleID, graph.TypeModule, mod.File, mod.File, 1, 0, map[string]any{
		"contentHash": mod.ContentHash,
	})
	if err != nil {
		return fmt.Errorf("base: mint module node: %w", err)
	}
	out.AddNode(moduleNode)

	w := &walker{p: p, source: source, mod: mod, out: out, tracker: tracker}
	w.walk(tree.RootNode(), mod.ModuleID)
	return nil
}

// walker holds the mutable state threaded through one recursive walk.
type walker struct {
	p       *Provider
	source  []byte
	mod     extract.ModuleInfo
	out     *extract.Collections
	tracker *scope.Tracker

	// throwableSink, when non-nil, collects the IDs of CALL/THROW nodes
	// minted while walking a try block's body, so extractTry can wire
	// CATCHES_FROM edges from the matching catch block afterward. It is
	// suspended (set to nil) while walking into a nested function/method
	// body, so a try block never claims calls a nested closure makes.
	throwableSink *[]string
}

func (w *walker) text(n parse.Node) string { return parse.Text(w.source, n) }

// firstArgumentLiteral returns a call node's first argument's text, with
// surrounding quotes trimmed, when that argument is a bare string literal.
// It returns "" for any other argument shape (identifier, template
// interpolation, nested call, ...), which the domain detectors treat as
// "no literal available" rather than an error.
func (w *walker) firstArgumentLiteral(n parse.Node) string {
	args := n.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return ""
	}
	arg := args.NamedChild(0)
	if !literalNodeTypes[arg.Type()] {
		return ""
	}
	return strings.Trim(w.text(arg), "\"'`")
}

func (w *walker) mintID(typ graph.Type, name string, n parse.Node, counter int) string {
	namedParent := w.tracker.GetNearestNamed()
	line, col := parse.Line1(n.StartPoint()), n.StartPoint().Column
	hints := ident.Hints{Other: fmt.Sprintf("%d:%d", line, col)}
	hash := ident.ContentHash(hints)
	return ident.ComputeCompact(string(typ), name, w.mod.File, ident.Opts{
		NamedParent: namedParent,
		Hash:        hash,
		Counter:     counter,
	})
}

// walk recursively visits every node, dispatching to extraction logic when
// the rules classify it as one of the extractor's interesting kinds, then
// always recursing into children (extraction never stops the walk short).
func (w *walker) walk(n parse.Node, containerID string) {
	if n == nil {
		return
	}
	r := w.p.rules

	switch {
	case r.IsClassLike(n.Type()):
		w.extractClass(n, containerID)
		return
	case r.IsFunctionLike(n.Type()) && !r.IsMethodLike(n.Type()):
		w.extractFunction(n, containerID, graph.TypeFunction)
		return
	case r.IsMethodLike(n.Type()):
		w.extractFunction(n, containerID, graph.TypeMethod)
		return
	case r.IsCallLike(n.Type()):
		w.extractCall(n, containerID)
	case r.IsImportLike(n.Type()):
		w.extractImport(n, containerID)
	case r.IsVariableDecl(n.Type()):
		w.extractVariableDecl(n, containerID)
	case r.IsIfLike(n.Type()):
		w.extractControlFlow(n, containerID, scope.KindIf, graph.TypeBranch)
		return
	case r.IsLoopLike(n.Type()):
		w.extractControlFlow(n, containerID, scope.KindFor, graph.TypeLoop)
		return
	case r.IsTryLike(n.Type()):
		w.extractTry(n, containerID)
		return
	case r.IsReturnLike(n.Type()):
		w.extractSimple(n, containerID, graph.TypeReturn, "return")
	case r.IsThrowLike(n.Type()):
		w.extractSimple(n, containerID, graph.TypeThrow, "throw")
	}

	for i := 0; i < n.ChildCount(); i++ {
		w.walk(n.Child(i), containerID)
	}
}

// extractClass mints a CLASS node and, when the language supplies
// ClassHeritage, records the superclass/interface names it was declared
// against on the node's Metadata for the ENRICHMENT phase to resolve into
// real EXTENDS/IMPLEMENTS edges once the whole-graph class index exists
// (the same deferred-resolution shape extractVariableDecl uses for
// ASSIGNED_FROM via "assignsFromName").
func (w *walker) extractClass(n parse.Node, containerID string) {
	name := w.p.rules.ExtractName(n, w.source)
	if name == "" {
		_, k := w.tracker.EnterCounted(scope.KindClass)
		name = fmt.Sprintf("anonymous[%d]", k)
		w.tracker.Exit()
	}
	counter := w.tracker.NextItemCounter(string(graph.TypeClass) + ":" + name)
	id := w.mintID(graph.TypeClass, name, n, counter)

	fields := map[string]any{"exported": w.p.rules.IsExported(name)}
	cn, err := graph.New(id, graph.TypeClass, name, w.mod.File, parse.Line1(n.StartPoint()), n.StartPoint().Column, fields)
	if err != nil {
		return
	}
	if w.p.rules.ClassHeritage != nil {
		super, impls := w.p.rules.ClassHeritage(n, w.source)
		meta := map[string]any{}
		if super != "" {
			meta["extendsName"] = super
		}
		if len(impls) > 0 {
			meta["implementsNames"] = impls
		}
		if len(meta) > 0 {
			cn.Metadata = meta
		}
	}
	w.out.AddNode(cn)
	w.out.AddEdge(graph.CreateEdge(containerID, id, graph.EdgeContains, nil))

	w.tracker.Enter(name, scope.KindClass)
	defer w.tracker.Exit()

	for i := 0; i < n.ChildCount(); i++ {
		w.walk(n.Child(i), id)
	}
}

func (w *walker) extractFunction(n parse.Node, containerID string, typ graph.Type) {
	name := w.p.rules.ExtractName(n, w.source)
	if name == "" {
		_, k := w.tracker.EnterCounted(scope.KindFunction)
		name = fmt.Sprintf("anonymous[%d]", k)
		w.tracker.Exit()
	}
	counter := w.tracker.NextItemCounter(string(typ) + ":" + name)
	id := w.mintID(typ, name, n, counter)

	fields := map[string]any{"exported": w.p.rules.IsExported(name)}
	fn, err := graph.New(id, typ, name, w.mod.File, parse.Line1(n.StartPoint()), n.StartPoint().Column, fields)
	if err != nil {
		return
	}
	w.out.AddNode(fn)
	w.out.AddEdge(graph.CreateEdge(containerID, id, graph.EdgeContains, nil))

	if typ == graph.TypeFunction && containerID == w.mod.ModuleID && domain.IsReactFile(w.mod.File) && domain.IsComponentName(name) {
		w.extractReactComponent(n, id, name)
	}

	w.tracker.Enter(name, scope.KindFunction)
	defer w.tracker.Exit()

	w.extractParameters(n, id)

	// A try block's CATCHES_FROM bookkeeping never crosses into a nested
	// function/method body: that closure's calls and throws are its own.
	oldSink := w.throwableSink
	w.throwableSink = nil
	for i := 0; i < n.ChildCount(); i++ {
		w.walk(n.Child(i), id)
	}
	w.throwableSink = oldSink
}

// extractReactComponent mints a react:component node for a PascalCase
// top-level function in a .jsx/.tsx file (spec.md §4.5) and links the
// FUNCTION node to it via INSTANCE_OF: the component is a role this
// particular function plays, not a separate declaration.
func (w *walker) extractReactComponent(n parse.Node, fnID, name string) {
	compID := w.mintID(graph.TypeReactComponent, name, n, w.tracker.NextItemCounter(string(graph.TypeReactComponent)+":"+name))
	cn, err := graph.New(compID, graph.TypeReactComponent, name, w.mod.File, parse.Line1(n.StartPoint()), n.StartPoint().Column, nil)
	if err != nil {
		return
	}
	w.out.AddNode(cn)
	w.out.AddEdge(graph.CreateEdge(fnID, compID, graph.EdgeInstanceOf, nil))
}

func (w *walker) extractParameters(n parse.Node, fnID string) {
	params := n.ChildByFieldName("parameters")
	if params == nil {
		return
	}
	ordinal := 0
	for i := 0; i < params.NamedChildCount(); i++ {
		param := params.NamedChild(i)
		name := w.p.rules.ExtractName(param, w.source)
		if name == "" {
			name = fmt.Sprintf("arg%d", ordinal)
		}
		id := w.mintID(graph.TypeParameter, name, param, 0)
		pn, err := graph.New(id, graph.TypeParameter, name, w.mod.File, parse.Line1(param.StartPoint()), param.StartPoint().Column, map[string]any{
			"ordinal": ordinal,
		})
		if err == nil {
			w.out.AddNode(pn)
			w.out.AddEdge(graph.CreateEdge(fnID, id, graph.EdgeHasParameter, nil))
		}
		ordinal++
	}
}

func (w *walker) extractCall(n parse.Node, containerID string) {
	name, computed := w.p.rules.CalleeName(n, w.source)
	if name == "" {
		name = "<computed>"
	}
	counter := w.tracker.NextItemCounter("CALL:" + name)
	id := w.mintID(graph.TypeCall, name, n, counter)
	cn, err := graph.New(id, graph.TypeCall, name, w.mod.File, parse.Line1(n.StartPoint()), n.StartPoint().Column, map[string]any{
		"callee":   name,
		"computed": computed,
	})
	if err != nil {
		return
	}
	if w.p.rules.CallArguments != nil {
		if args := w.p.rules.CallArguments(n, w.source); hasAnyArgumentName(args) {
			cn.Metadata = map[string]any{"argumentNames": args}
		}
	}
	w.out.AddNode(cn)
	w.out.AddEdge(graph.CreateEdge(containerID, id, graph.EdgeCalls, nil))
	if w.throwableSink != nil {
		*w.throwableSink = append(*w.throwableSink, id)
	}

	w.extractDomainPattern(n, name, id, containerID)
}

// extractDomainPattern runs the spec.md §4.5 "Domain patterns" detectors
// against one CALL node's rendered callee, minting the namespaced node a
// match calls for (http:route, socketio:*, http:request, db:query,
// react:state/effect/hook) plus a CONTAINS edge from the call's own
// container and an AFFECTS edge from the CALL node itself, since the call
// is what realizes the domain effect. A socket.io emit/on whose event name
// resolved to a literal also gets a secondary socketio:event node it's
// linked to via HAS_PROPERTY.
func (w *walker) extractDomainPattern(n parse.Node, callee, callID, containerID string) {
	cls, ok := domain.Classify(callee, w.firstArgumentLiteral(n))
	if !ok {
		return
	}

	domID := w.mintID(cls.Type, callee, n, w.tracker.NextItemCounter(string(cls.Type)+":"+callee))
	dn, err := graph.New(domID, cls.Type, callee, w.mod.File, parse.Line1(n.StartPoint()), n.StartPoint().Column, cls.Fields)
	if err != nil {
		return
	}
	w.out.AddNode(dn)
	w.out.AddEdge(graph.CreateEdge(containerID, domID, graph.EdgeContains, nil))
	w.out.AddEdge(graph.CreateEdge(callID, domID, graph.EdgeAffects, nil))

	if cls.Type != graph.TypeSocketIOEmit && cls.Type != graph.TypeSocketIOOn {
		return
	}
	event, _ := cls.Fields["event"].(string)
	if event == "" {
		return
	}
	eventID := w.mintID(graph.TypeSocketIOEvent, event, n, w.tracker.NextItemCounter(string(graph.TypeSocketIOEvent)+":"+event))
	en, err := graph.New(eventID, graph.TypeSocketIOEvent, event, w.mod.File, parse.Line1(n.StartPoint()), n.StartPoint().Column, map[string]any{"event": event})
	if err != nil {
		return
	}
	w.out.AddNode(en)
	w.out.AddEdge(graph.CreateEdge(domID, eventID, graph.EdgeHasProperty, nil))
}

// hasAnyArgumentName reports whether names has at least one resolvable
// (non-empty) entry, so extractCall skips minting Metadata for calls whose
// arguments are all literals/expressions CallArguments can't name.
func hasAnyArgumentName(names []string) bool {
	for _, n := range names {
		if n != "" {
			return true
		}
	}
	return false
}

func (w *walker) extractImport(n parse.Node, containerID string) {
	name := w.p.rules.ExtractName(n, w.source)
	if name == "" {
		name = "default"
	}
	counter := w.tracker.NextItemCounter("IMPORT:" + name)
	id := w.mintID(graph.TypeImport, name, n, counter)
	in, err := graph.New(id, graph.TypeImport, name, w.mod.File, parse.Line1(n.StartPoint()), n.StartPoint().Column, map[string]any{
		"source":     name,
		"importType": "named",
	})
	if err != nil {
		return
	}
	w.out.AddNode(in)
	w.out.AddEdge(graph.CreateEdge(containerID, id, graph.EdgeImports, nil))
}

func (w *walker) extractVariableDecl(n parse.Node, containerID string) {
	name := w.p.rules.ExtractName(n, w.source)
	if name == "" {
		return
	}
	counter := w.tracker.NextItemCounter("VARIABLE_DECLARATION:" + name)
	id := w.mintID(graph.TypeVariableDeclaration, name, n, counter)
	vn, err := graph.New(id, graph.TypeVariableDeclaration, name, w.mod.File, parse.Line1(n.StartPoint()), n.StartPoint().Column, map[string]any{
		"declarationKind": n.Type(),
	})
	if err != nil {
		return
	}
	if w.p.rules.AssignmentSource != nil {
		if src, ok := w.p.rules.AssignmentSource(n, w.source); ok {
			vn.Metadata = map[string]any{"assignsFromName": src}
		}
	}
	w.out.AddNode(vn)
	w.out.AddEdge(graph.CreateEdge(containerID, id, graph.EdgeDeclares, nil))
}

func (w *walker) extractControlFlow(n parse.Node, containerID string, kind scope.Kind, typ graph.Type) {
	name, _ := w.tracker.EnterCounted(kind)
	id := w.mintID(graph.TypeScope, name, n, 0)
	sn, err := graph.New(id, graph.TypeScope, name, w.mod.File, parse.Line1(n.StartPoint()), n.StartPoint().Column, map[string]any{
		"scopeType": string(kind),
	})
	if err == nil {
		if cond := n.ChildByFieldName("condition"); cond != nil {
			sn.Metadata = map[string]any{"condition": w.text(cond)}
		}
		w.out.AddNode(sn)
		w.out.AddEdge(graph.CreateEdge(containerID, id, graph.EdgeContains, nil))
		w.out.AddEdge(graph.CreateEdge(containerID, id, graph.EdgeHasScope, nil))
	}

	bodyID := w.mintID(typ, name, n, 0)
	bodyFields := map[string]any{}
	if typ == graph.TypeLoop {
		bodyFields["loopKind"] = n.Type()
	}
	bn, err := graph.New(bodyID, typ, name, w.mod.File, parse.Line1(n.StartPoint()), n.StartPoint().Column, bodyFields)
	if err == nil {
		w.out.AddNode(bn)
		w.out.AddEdge(graph.CreateEdge(id, bodyID, graph.EdgeContains, nil))
	}

	for i := 0; i < n.ChildCount(); i++ {
		w.walk(n.Child(i), bodyID)
	}
	w.tracker.Exit()
}

// extractTry handles IsTryLike nodes, a shape extractControlFlow doesn't
// fit: a try statement has a body plus two independent optional branches
// (handler, finalizer) rather than one body, so it gets its own SCOPE +
// TRY_BLOCK/CATCH_BLOCK/FINALLY_BLOCK layout (spec.md §4.5). Every
// CALL/THROW minted while walking the try body is collected via
// throwableSink and linked from the catch block by a CATCHES_FROM edge
// (spec.md §4.5 "CATCHES_FROM edges connect catch blocks to every
// throwable call, constructor, or throw inside the try body").
func (w *walker) extractTry(n parse.Node, containerID string) {
	name, _ := w.tracker.EnterCounted(scope.KindTry)
	scopeID := w.mintID(graph.TypeScope, name, n, 0)
	sn, err := graph.New(scopeID, graph.TypeScope, name, w.mod.File, parse.Line1(n.StartPoint()), n.StartPoint().Column, map[string]any{
		"scopeType": string(scope.KindTry),
	})
	if err == nil {
		w.out.AddNode(sn)
		w.out.AddEdge(graph.CreateEdge(containerID, scopeID, graph.EdgeContains, nil))
		w.out.AddEdge(graph.CreateEdge(containerID, scopeID, graph.EdgeHasScope, nil))
	}

	bodyID := w.mintID(graph.TypeTryBlock, name, n, 0)
	bn, err := graph.New(bodyID, graph.TypeTryBlock, name, w.mod.File, parse.Line1(n.StartPoint()), n.StartPoint().Column, nil)
	if err == nil {
		w.out.AddNode(bn)
		w.out.AddEdge(graph.CreateEdge(scopeID, bodyID, graph.EdgeContains, nil))
	}

	var throwables []string
	oldSink := w.throwableSink
	w.throwableSink = &throwables
	if body := n.ChildByFieldName("body"); body != nil {
		for i := 0; i < body.ChildCount(); i++ {
			w.walk(body.Child(i), bodyID)
		}
	}
	w.throwableSink = oldSink

	if handler := n.ChildByFieldName("handler"); handler != nil {
		w.tracker.Enter(name+"#catch", scope.KindCatch)
		catchID := w.mintID(graph.TypeCatchBlock, name, handler, 0)
		cn, err := graph.New(catchID, graph.TypeCatchBlock, name, w.mod.File, parse.Line1(handler.StartPoint()), handler.StartPoint().Column, nil)
		if err == nil {
			w.out.AddNode(cn)
			w.out.AddEdge(graph.CreateEdge(scopeID, catchID, graph.EdgeContains, nil))
			for _, throwableID := range throwables {
				w.out.AddEdge(graph.CreateEdge(catchID, throwableID, graph.EdgeCatchesFrom, nil))
			}
		}
		if handlerBody := handler.ChildByFieldName("body"); handlerBody != nil {
			for i := 0; i < handlerBody.ChildCount(); i++ {
				w.walk(handlerBody.Child(i), catchID)
			}
		}
		w.tracker.Exit()
	}

	if finalizer := n.ChildByFieldName("finalizer"); finalizer != nil {
		w.tracker.Enter(name+"#finally", scope.KindFinally)
		finID := w.mintID(graph.TypeFinallyBlock, name, finalizer, 0)
		fbn, err := graph.New(finID, graph.TypeFinallyBlock, name, w.mod.File, parse.Line1(finalizer.StartPoint()), finalizer.StartPoint().Column, nil)
		if err == nil {
			w.out.AddNode(fbn)
			w.out.AddEdge(graph.CreateEdge(scopeID, finID, graph.EdgeContains, nil))
		}
		finBody := finalizer.ChildByFieldName("body")
		if finBody == nil {
			finBody = finalizer
		}
		for i := 0; i < finBody.ChildCount(); i++ {
			w.walk(finBody.Child(i), finID)
		}
		w.tracker.Exit()
	}

	w.tracker.Exit()
}

func (w *walker) extractSimple(n parse.Node, containerID string, typ graph.Type, label string) {
	counter := w.tracker.NextItemCounter(string(typ))
	id := w.mintID(typ, label, n, counter)
	sn, err := graph.New(id, typ, label, w.mod.File, parse.Line1(n.StartPoint()), n.StartPoint().Column, nil)
	if err != nil {
		return
	}
	w.out.AddNode(sn)
	var edgeType graph.EdgeType
	switch typ {
	case graph.TypeReturn:
		edgeType = graph.EdgeReturns
	case graph.TypeThrow:
		edgeType = graph.EdgeThrows
	default:
		edgeType = graph.EdgeContains
	}
	w.out.AddEdge(graph.CreateEdge(containerID, id, edgeType, nil))
	if typ == graph.TypeThrow && w.throwableSink != nil {
		*w.throwableSink = append(*w.throwableSink, id)
	}
}

var _ extract.Extractor = (*Provider)(nil)
