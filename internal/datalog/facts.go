package datalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/mangle/ast"

	"github.com/termfx/grafema/internal/graph"
	"github.com/termfx/grafema/internal/store"
)

// AssertFacts wipes any previously asserted facts and repopulates the
// evaluator's extensional predicates from the current state of st:
// node(Id, Type) for every node, edge(Src, Dst, Type) for every edge, and
// attr(Id, Name, Value) for every node's name, file, line and column and
// for every scalar field/metadata entry on it (spec.md §4.8). It then runs the bottom-up fixed point once, so
// any loaded violation/1 rules are ready to Query immediately.
func (e *Evaluator) AssertFacts(ctx context.Context, st store.Store) error {
	e.Reset()

	nodes, err := st.GetAllNodes(ctx)
	if err != nil {
		return fmt.Errorf("datalog: load nodes: %w", err)
	}
	edges, err := st.GetAllEdges(ctx)
	if err != nil {
		return fmt.Errorf("datalog: load edges: %w", err)
	}

	for _, n := range nodes {
		if err := e.insertFact("node", idTerm(n.ID), nameTerm(string(n.Type))); err != nil {
			return err
		}
		for name, val := range map[string]any{"name": n.Name, "file": n.File, "line": n.Line, "column": n.Column} {
			if err := e.assertAttr(n.ID, name, val); err != nil {
				return err
			}
		}
		for name, val := range n.Fields {
			if err := e.assertAttr(n.ID, name, val); err != nil {
				return err
			}
		}
		for name, val := range n.Metadata {
			if err := e.assertAttr(n.ID, name, val); err != nil {
				return err
			}
		}
	}

	for _, ed := range edges {
		if err := e.insertFact("edge", idTerm(ed.From), idTerm(ed.To), nameTerm(string(ed.Type))); err != nil {
			return err
		}
	}

	return e.evaluate(ctx)
}

func (e *Evaluator) assertAttr(id, name string, val any) error {
	term, ok := valueToTerm(val)
	if !ok {
		return nil // non-scalar field (map/slice/struct); spec.md §4.8 attr/3 is scalar-only
	}
	return e.insertFact("attr", idTerm(id), nameTerm(name), term)
}

// insertFact validates predicate/arity against the compiled program (like
// the teacher's factToAtomLocked) before adding the atom to the store.
func (e *Evaluator) insertFact(predicate string, args ...ast.BaseTerm) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	sym, ok := e.predicateIndex[predicate]
	if !ok {
		return fmt.Errorf("datalog: predicate %s is not declared", predicate)
	}
	if len(args) != sym.Arity {
		return fmt.Errorf("datalog: predicate %s expects %d args, got %d", predicate, sym.Arity, len(args))
	}

	e.store.Add(ast.NewAtom(predicate, args...))
	return nil
}

func idTerm(id string) ast.BaseTerm  { return ast.String(id) }
func nameTerm(n string) ast.BaseTerm { return ast.String(n) }

// valueToTerm converts a graph.Node field/metadata value into a Mangle
// term, following the same string/number/bool mapping the teacher's
// Fact.String and convertToTerm use. Maps, slices, and nil are rejected
// (ok=false) since attr/3's Value column is scalar-only.
func valueToTerm(v any) (ast.BaseTerm, bool) {
	switch x := v.(type) {
	case string:
		if strings.HasPrefix(x, "/") {
			name, err := ast.Name(x)
			if err != nil {
				return ast.String(x), true
			}
			return name, true
		}
		return ast.String(x), true
	case int:
		return ast.Number(int64(x)), true
	case int64:
		return ast.Number(x), true
	case float64:
		return ast.Float64(x), true
	case bool:
		if x {
			return ast.TrueConstant, true
		}
		return ast.FalseConstant, true
	case graph.Type:
		return ast.String(string(x)), true
	case graph.EdgeType:
		return ast.String(string(x)), true
	default:
		return nil, false
	}
}
