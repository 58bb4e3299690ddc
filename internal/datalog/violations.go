package datalog

import (
	"context"
	"fmt"
)

// Violations evaluates the user-defined violation/1 goal (spec.md §4.9
// "Running a guarantee evaluates its violation/1 via §4.8") and returns
// the bound node IDs in the engine's result order. The caller is
// expected to have loaded a rule set containing a violation/1 clause
// via LoadRules and populated facts via AssertFacts first.
func (e *Evaluator) Violations(ctx context.Context) ([]string, error) {
	result, err := e.Query(ctx, "violation(X)", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("datalog: evaluate violation/1: %w", err)
	}
	ids := make([]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		if id, ok := row["X"].(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
