// Package datalog wraps google/mangle as the bottom-up evaluator behind
// the graph store's Datalog surface (spec.md §4.8): three fixed
// extensional predicates derived from the store, plus whatever
// intensional rules a caller loads on top (most commonly a violation/1
// goal used by the guarantee runner).
package datalog

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	_ "github.com/google/mangle/builtin"
	mengine "github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	_ "github.com/google/mangle/packages"
	"github.com/google/mangle/parse"
)

// extensionalSchema declares the three predicates §4.8 derives from the
// graph store. Rules loaded on top may reference them freely; the loader
// never lets a caller redeclare them.
const extensionalSchema = `
Decl node(Id, Type).
Decl edge(Src, Dst, Type).
Decl attr(Id, Name, Value).
`

// Evaluator holds the compiled Datalog program (extensional schema plus
// whatever rules have been loaded) and the fact store those rules are
// evaluated against. Facts are asserted fresh per run via AssertFacts,
// which Resets the fact store first, so an Evaluator can be reused across
// runs; there is no persistence hook (contrast with the teacher's file-hash-keyed cache --
// our facts are derived live from the store, never cached to disk).
type Evaluator struct {
	mu              sync.RWMutex
	store           factstore.ConcurrentFactStore
	baseStore       factstore.FactStoreWithRemove
	schemaFragments []parse.SourceUnit
	programInfo     *analysis.ProgramInfo
	queryContext    *mengine.QueryContext
	predicateIndex  map[string]ast.PredicateSym
}

// NewEvaluator returns an Evaluator with the extensional schema already
// loaded; callers add their own rules with LoadRules before AssertFacts.
func NewEvaluator() (*Evaluator, error) {
	base := factstore.NewSimpleInMemoryStore()
	e := &Evaluator{
		baseStore:      base,
		store:          factstore.NewConcurrentFactStore(base),
		predicateIndex: make(map[string]ast.PredicateSym),
	}
	if err := e.LoadRules(extensionalSchema); err != nil {
		return nil, fmt.Errorf("datalog: load extensional schema: %w", err)
	}
	return e, nil
}

// LoadRules parses and appends a Datalog source fragment (declarations
// and/or rules) to the program, then reanalyzes the whole thing. The
// loader rejects cyclic negation (spec.md §4.8 "termination") by
// surfacing whatever error analysis.AnalyzeOneUnit returns for it; it
// does not attempt to diagnose the cycle itself.
func (e *Evaluator) LoadRules(source string) error {
	unit, err := parse.Unit(bytes.NewReader([]byte(source)))
	if err != nil {
		return fmt.Errorf("datalog: parse rules: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	fragments := append(append([]parse.SourceUnit{}, e.schemaFragments...), unit)
	if err := e.rebuildProgramLocked(fragments); err != nil {
		return fmt.Errorf("datalog: analyze rules: %w", err)
	}
	e.schemaFragments = fragments
	return nil
}

func (e *Evaluator) rebuildProgramLocked(fragments []parse.SourceUnit) error {
	var clauses []ast.Clause
	var decls []ast.Decl
	for _, f := range fragments {
		clauses = append(clauses, f.Clauses...)
		decls = append(decls, f.Decls...)
	}

	info, err := analysis.AnalyzeOneUnit(parse.SourceUnit{Clauses: clauses, Decls: decls}, nil)
	if err != nil {
		return err
	}

	predicateIndex := make(map[string]ast.PredicateSym, len(info.Decls))
	predToDecl := make(map[ast.PredicateSym]*ast.Decl, len(info.Decls))
	for sym, decl := range info.Decls {
		predicateIndex[sym.Symbol] = sym
		predToDecl[sym] = decl
	}

	predToRules := make(map[ast.PredicateSym][]ast.Clause)
	for _, clause := range info.Rules {
		predToRules[clause.Head.Predicate] = append(predToRules[clause.Head.Predicate], clause)
	}

	e.programInfo = info
	e.predicateIndex = predicateIndex
	e.queryContext = &mengine.QueryContext{
		PredToRules: predToRules,
		PredToDecl:  predToDecl,
		Store:       e.store,
	}
	return nil
}

// Reset drops every asserted fact (but keeps the loaded program), so an
// Evaluator can be reused across repeated analysis runs without
// re-parsing its rule set.
func (e *Evaluator) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.baseStore = factstore.NewSimpleInMemoryStore()
	e.store = factstore.NewConcurrentFactStore(e.baseStore)
	if e.queryContext != nil {
		e.queryContext.Store = e.store
	}
}

// evaluate runs the naive/semi-naive bottom-up fixed point (spec.md
// §4.8 "Evaluation") over the current fact store. AssertFacts calls this
// once after bulk-loading extensional facts rather than per fact.
func (e *Evaluator) evaluate(ctx context.Context) error {
	if e.programInfo == nil {
		return fmt.Errorf("datalog: no rules loaded")
	}
	done := make(chan error, 1)
	go func() {
		_, err := mengine.EvalProgramWithStats(e.programInfo, e.store)
		done <- err
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
