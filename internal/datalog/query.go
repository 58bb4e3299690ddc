package datalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/mangle/ast"
	"github.com/google/mangle/parse"
	"github.com/google/mangle/unionfind"
)

// Row is one binding of a query's variables, keyed by variable name.
type Row map[string]any

// Result is the outcome of a single Query call (spec.md §6.2 DatalogResult).
type Result struct {
	Rows     []Row
	Total    int // rows before limit/offset was applied
	Duration time.Duration
}

// defaultQueryTimeout bounds evaluation when ctx carries no deadline;
// spec.md §5 leaves Datalog's complexity bound to the API shell, but an
// unbounded goroutine leak is never acceptable from the core itself.
const defaultQueryTimeout = 30 * time.Second

// Query evaluates goal (an atom, optionally with a leading '?' and/or
// trailing '.', e.g. "?violation(X)." or "violation(X)") against the
// currently asserted facts plus loaded rules, returning rows ordered
// lexicographically by argument tuple (spec.md §4.8 "Result ordering"),
// with limit/offset applied after ordering. limit <= 0 means unbounded;
// offset < 0 is treated as 0.
func (e *Evaluator) Query(ctx context.Context, goal string, limit, offset int) (*Result, error) {
	shape, err := parseGoal(goal)
	if err != nil {
		return nil, err
	}

	e.mu.RLock()
	qc := e.queryContext
	if qc == nil {
		e.mu.RUnlock()
		return nil, fmt.Errorf("datalog: no rules loaded")
	}
	decl, ok := qc.PredToDecl[shape.atom.Predicate]
	if !ok {
		e.mu.RUnlock()
		return nil, fmt.Errorf("datalog: predicate %s is not declared", shape.atom.Predicate.Symbol)
	}
	modes := decl.Modes()
	if len(modes) == 0 {
		e.mu.RUnlock()
		return nil, fmt.Errorf("datalog: predicate %s has no modes declared", shape.atom.Predicate.Symbol)
	}
	mode := modes[0]
	e.mu.RUnlock()

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultQueryTimeout)
		defer cancel()
	}

	start := time.Now()
	type outcome struct {
		rows []Row
		err  error
	}
	done := make(chan outcome, 1)

	go func() {
		var rows []Row
		err := qc.EvalQuery(shape.atom, mode, unionfind.New(), func(fact ast.Atom) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			row := make(Row, len(shape.variables))
			for _, v := range shape.variables {
				if v.index >= len(fact.Args) {
					continue
				}
				row[v.name] = termToValue(fact.Args[v.index])
			}
			rows = append(rows, row)
			return nil
		})
		done <- outcome{rows, err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return nil, out.err
		}
		sortRows(out.rows, shape.variables)
		total := len(out.rows)
		return &Result{Rows: paginateRows(out.rows, limit, offset), Total: total, Duration: time.Since(start)}, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("datalog: query timed out after %v: %w", time.Since(start), ctx.Err())
	}
}

type queryVariable struct {
	name  string
	index int
}

type queryGoal struct {
	atom      ast.Atom
	variables []queryVariable
}

func parseGoal(goal string) (*queryGoal, error) {
	clean := strings.TrimSpace(goal)
	if clean == "" {
		return nil, fmt.Errorf("datalog: empty query")
	}
	clean = strings.TrimPrefix(clean, "?")
	clean = strings.TrimSpace(clean)
	clean = strings.TrimSuffix(clean, ".")
	clean = strings.TrimSpace(clean)

	atom, err := parse.Atom(clean)
	if err != nil {
		return nil, fmt.Errorf("datalog: parse query %q: %w", goal, err)
	}

	vars := make([]queryVariable, 0, len(atom.Args))
	for i, arg := range atom.Args {
		if v, ok := arg.(ast.Variable); ok {
			vars = append(vars, queryVariable{name: v.Symbol, index: i})
		}
	}
	return &queryGoal{atom: atom, variables: vars}, nil
}

// sortRows applies spec.md §4.8's "lexicographic by the head argument
// tuple" ordering, comparing bound variables in declaration order.
func sortRows(rows []Row, vars []queryVariable) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, v := range vars {
			a, b := fmt.Sprintf("%v", rows[i][v.name]), fmt.Sprintf("%v", rows[j][v.name])
			if a != b {
				return a < b
			}
		}
		return false
	})
}

func paginateRows(rows []Row, limit, offset int) []Row {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return []Row{}
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

func termToValue(term ast.BaseTerm) any {
	switch t := term.(type) {
	case ast.Constant:
		switch t.Type {
		case ast.StringType, ast.NameType, ast.BytesType:
			return t.Symbol
		case ast.NumberType:
			return t.NumValue
		case ast.Float64Type:
			return t.Float64Value
		default:
			return t.String()
		}
	case ast.Variable:
		return t.Symbol
	default:
		return fmt.Sprintf("%v", term)
	}
}
