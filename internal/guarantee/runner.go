package guarantee

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/termfx/grafema/internal/graph"
	"github.com/termfx/grafema/internal/store"
)

// Runner owns guarantee CRUD and the two check paths (spec.md §4.9). It
// holds both the guarantee table (db) and the code property graph (st)
// because a contract guarantee's GOVERNS edges live in the graph, while
// its definition lives in the guarantee table.
type Runner struct {
	db *gorm.DB
	st store.Store

	schemas *schemaCache
}

// NewRunner returns a Runner backed by db (already migrated via Migrate)
// and st.
func NewRunner(db *gorm.DB, st store.Store) *Runner {
	return &Runner{db: db, st: st, schemas: newSchemaCache()}
}

func contractNodeID(guaranteeID string) string { return "guarantee:" + guaranteeID }

// CreateGuarantee persists def and, for contract families, materializes
// its graph node plus one GOVERNS edge per target (spec.md §4.9 "a
// JSON-schema and a set of GOVERNS-edged target nodes").
func (r *Runner) CreateGuarantee(ctx context.Context, def Definition) error {
	if def.ID == "" {
		return fmt.Errorf("guarantee: id is required")
	}
	if def.Family == "" {
		return fmt.Errorf("guarantee: family is required")
	}

	targets, err := json.Marshal(def.Targets)
	if err != nil {
		return fmt.Errorf("guarantee: marshal targets: %w", err)
	}

	rec := Record{
		ID:          def.ID,
		Name:        def.Name,
		Family:      string(def.Family),
		Severity:    def.Severity,
		Description: def.Description,
		Rule:        def.Rule,
		Schema:      def.Schema,
		Targets:     targets,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("guarantee: create record: %w", err)
	}

	if def.Family.IsContract() {
		if err := r.materializeContractNode(ctx, def); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) materializeContractNode(ctx context.Context, def Definition) error {
	n, err := graph.New(contractNodeID(def.ID), graph.Type(def.Family), def.Name, "", 0, 0,
		map[string]any{"schema": string(def.Schema)})
	if err != nil {
		return fmt.Errorf("guarantee: build contract node: %w", err)
	}
	if err := r.st.AddNode(ctx, n); err != nil {
		return fmt.Errorf("guarantee: add contract node: %w", err)
	}
	for _, target := range def.Targets {
		e, err := graph.CreateEdge(n.ID, target, graph.EdgeGoverns, nil)
		if err != nil {
			return fmt.Errorf("guarantee: build GOVERNS edge: %w", err)
		}
		if err := r.st.AddEdge(ctx, e); err != nil {
			return fmt.Errorf("guarantee: add GOVERNS edge: %w", err)
		}
	}
	return nil
}

// GetGuarantee loads a single guarantee by ID.
func (r *Runner) GetGuarantee(ctx context.Context, id string) (Record, bool, error) {
	var rec Record
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if err != nil {
		if isNotFound(err) {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf("guarantee: get %s: %w", id, err)
	}
	return rec, true, nil
}

// Filter narrows FindGuarantees; zero-value fields are unconstrained.
type Filter struct {
	Family   Family
	Severity string
}

// FindGuarantees lists guarantees matching filter.
func (r *Runner) FindGuarantees(ctx context.Context, f Filter) ([]Record, error) {
	q := r.db.WithContext(ctx).Model(&Record{})
	if f.Family != "" {
		q = q.Where("family = ?", string(f.Family))
	}
	if f.Severity != "" {
		q = q.Where("severity = ?", f.Severity)
	}
	var recs []Record
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("guarantee: find: %w", err)
	}
	return recs, nil
}

// UpdateGuarantee applies patch to guarantee id by deleting its current
// graph node/edges and record, then recreating them from the patched
// definition (spec.md §4.9 "delete-then-insert to preserve edges" --
// patched targets replace the old GOVERNS set rather than being merged
// into it). The schema compiler cache entry for id is invalidated.
func (r *Runner) UpdateGuarantee(ctx context.Context, id string, patch Patch) error {
	existing, found, err := r.GetGuarantee(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("guarantee: %s not found", id)
	}

	var existingTargets []string
	_ = json.Unmarshal(existing.Targets, &existingTargets)

	def := Definition{
		ID:          id,
		Name:        existing.Name,
		Family:      Family(existing.Family),
		Severity:    existing.Severity,
		Description: existing.Description,
		Rule:        existing.Rule,
		Schema:      existing.Schema,
		Targets:     existingTargets,
	}
	if patch.Name != nil {
		def.Name = *patch.Name
	}
	if patch.Severity != nil {
		def.Severity = *patch.Severity
	}
	if patch.Description != nil {
		def.Description = *patch.Description
	}
	if patch.Rule != nil {
		def.Rule = *patch.Rule
	}
	if patch.Schema != nil {
		def.Schema = patch.Schema
	}
	if patch.Targets != nil {
		def.Targets = patch.Targets
	}

	if err := r.deleteGraphSide(ctx, id); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&Record{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("guarantee: delete record %s: %w", id, err)
	}
	r.schemas.invalidate(id)

	return r.CreateGuarantee(ctx, def)
}

// DeleteGuarantee removes guarantee id, cascading its GOVERNS edges and
// contract node (spec.md §4.9 "cascades GOVERNS edges").
func (r *Runner) DeleteGuarantee(ctx context.Context, id string) error {
	if err := r.deleteGraphSide(ctx, id); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&Record{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("guarantee: delete record %s: %w", id, err)
	}
	r.schemas.invalidate(id)
	return nil
}

func (r *Runner) deleteGraphSide(ctx context.Context, id string) error {
	nodeID := contractNodeID(id)
	edges, err := r.st.GetOutgoingEdges(ctx, nodeID, []graph.EdgeType{graph.EdgeGoverns})
	if err != nil {
		return fmt.Errorf("guarantee: list GOVERNS edges for %s: %w", id, err)
	}
	for _, e := range edges {
		if err := r.st.DeleteEdge(ctx, e.From, e.To, e.Type); err != nil {
			return fmt.Errorf("guarantee: delete GOVERNS edge %s->%s: %w", e.From, e.To, err)
		}
	}
	if _, found, err := r.st.GetNode(ctx, nodeID); err != nil {
		return fmt.Errorf("guarantee: lookup contract node %s: %w", nodeID, err)
	} else if found {
		if err := r.st.DeleteNode(ctx, nodeID); err != nil {
			return fmt.Errorf("guarantee: delete contract node %s: %w", nodeID, err)
		}
	}
	return nil
}

func isNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}
