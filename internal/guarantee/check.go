package guarantee

import (
	"context"
	"fmt"

	"github.com/termfx/grafema/internal/datalog"
	"github.com/termfx/grafema/internal/diagnostics"
	"github.com/termfx/grafema/internal/graph"
)

// CheckGuarantee evaluates guarantee id and returns one diagnostic per
// violating tuple or governed-node schema failure (spec.md §4.9
// "Running a guarantee... reports each tuple as a diagnostic" /
// "validation errors become diagnostics").
func (r *Runner) CheckGuarantee(ctx context.Context, id string) ([]diagnostics.Diagnostic, error) {
	rec, found, err := r.GetGuarantee(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("guarantee: %s not found", id)
	}
	return r.check(ctx, rec)
}

// CheckAllGuarantees evaluates every persisted guarantee.
func (r *Runner) CheckAllGuarantees(ctx context.Context) ([]diagnostics.Diagnostic, error) {
	recs, err := r.FindGuarantees(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	var all []diagnostics.Diagnostic
	for _, rec := range recs {
		diags, err := r.check(ctx, rec)
		if err != nil {
			return nil, fmt.Errorf("guarantee: check %s: %w", rec.ID, err)
		}
		all = append(all, diags...)
	}
	return all, nil
}

func (r *Runner) check(ctx context.Context, rec Record) ([]diagnostics.Diagnostic, error) {
	if Family(rec.Family).IsContract() {
		return r.checkContract(ctx, rec)
	}
	return r.checkDatalog(ctx, rec)
}

func (r *Runner) checkDatalog(ctx context.Context, rec Record) ([]diagnostics.Diagnostic, error) {
	ev, err := datalog.NewEvaluator()
	if err != nil {
		return nil, fmt.Errorf("guarantee: new evaluator: %w", err)
	}
	if err := ev.LoadRules(rec.Rule); err != nil {
		return nil, fmt.Errorf("guarantee: load rule for %s: %w", rec.ID, err)
	}
	if err := ev.AssertFacts(ctx, r.st); err != nil {
		return nil, fmt.Errorf("guarantee: assert facts for %s: %w", rec.ID, err)
	}
	ids, err := ev.Violations(ctx)
	if err != nil {
		return nil, fmt.Errorf("guarantee: evaluate %s: %w", rec.ID, err)
	}

	diags := make([]diagnostics.Diagnostic, 0, len(ids))
	for _, id := range ids {
		diags = append(diags, diagnostics.Diagnostic{
			Code:       diagnostics.CodeGuaranteeViolation,
			Severity:   diagnostics.Severity(rec.Severity),
			Message:    fmt.Sprintf("guarantee %s (%s) violated by %s", rec.ID, rec.Name, id),
			Phase:      "guarantee",
			Plugin:     rec.ID,
			Suggestion: rec.Description,
		})
	}
	return diags, nil
}

func (r *Runner) checkContract(ctx context.Context, rec Record) ([]diagnostics.Diagnostic, error) {
	schema, err := r.schemas.get(rec.ID, rec.Schema)
	if err != nil {
		return nil, err
	}

	nodeID := contractNodeID(rec.ID)
	edges, err := r.st.GetOutgoingEdges(ctx, nodeID, []graph.EdgeType{graph.EdgeGoverns})
	if err != nil {
		return nil, fmt.Errorf("guarantee: list governed targets for %s: %w", rec.ID, err)
	}

	var diags []diagnostics.Diagnostic
	for _, e := range edges {
		target, found, err := r.st.GetNode(ctx, e.To)
		if err != nil {
			return nil, fmt.Errorf("guarantee: load governed node %s: %w", e.To, err)
		}
		if !found {
			continue
		}
		if err := schema.Validate(nodeToDoc(target)); err != nil {
			diags = append(diags, diagnostics.Diagnostic{
				Code:       diagnostics.CodeGuaranteeViolation,
				Severity:   diagnostics.Severity(rec.Severity),
				Message:    fmt.Sprintf("guarantee %s (%s): node %s failed schema: %v", rec.ID, rec.Name, target.ID, err),
				File:       target.File,
				Line:       target.Line,
				Phase:      "guarantee",
				Plugin:     rec.ID,
				Suggestion: rec.Description,
			})
		}
	}
	return diags, nil
}

// nodeToDoc flattens a graph.Node into the plain map[string]any shape a
// compiled JSON schema validates against: base fields plus every
// kind-specific entry from Fields.
func nodeToDoc(n graph.Node) map[string]any {
	doc := map[string]any{
		"id":     n.ID,
		"type":   string(n.Type),
		"name":   n.Name,
		"file":   n.File,
		"line":   n.Line,
		"column": n.Column,
	}
	for k, v := range n.Fields {
		doc[k] = v
	}
	return doc
}
