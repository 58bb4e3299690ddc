package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/termfx/grafema/internal/graph"
	"github.com/termfx/grafema/internal/store"
)

// Store is the GORM-backed implementation of store.Store.
type Store struct {
	db *gorm.DB
}

// New wraps an already-connected, already-migrated *gorm.DB (see
// ConnectSQLite / ConnectPostgres) as a store.Store.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func marshalJSON(v map[string]any) (datatypes.JSON, error) {
	if v == nil {
		return datatypes.JSON([]byte("null")), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func unmarshalJSON(raw datatypes.JSON) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

func toRow(n graph.Node) (NodeRow, error) {
	meta, err := marshalJSON(n.Metadata)
	if err != nil {
		return NodeRow{}, err
	}
	fields, err := marshalJSON(n.Fields)
	if err != nil {
		return NodeRow{}, err
	}
	return NodeRow{
		ID:       n.ID,
		Type:     string(n.Type),
		Name:     n.Name,
		File:     n.File,
		Line:     n.Line,
		Column:   n.Column,
		Metadata: meta,
		Fields:   fields,
	}, nil
}

func fromRow(r NodeRow) graph.Node {
	return graph.Node{
		ID:       r.ID,
		Type:     graph.Type(r.Type),
		Name:     r.Name,
		File:     r.File,
		Line:     r.Line,
		Column:   r.Column,
		Metadata: unmarshalJSON(r.Metadata),
		Fields:   unmarshalJSON(r.Fields),
	}
}

func toEdgeRow(e graph.Edge) (EdgeRow, error) {
	meta, err := marshalJSON(e.Metadata)
	if err != nil {
		return EdgeRow{}, err
	}
	return EdgeRow{
		ID:       edgeRowID(string(e.Type), e.From, e.To, e.Index),
		Type:     string(e.Type),
		Src:      e.From,
		Dst:      e.To,
		Index:    e.Index,
		Metadata: meta,
	}, nil
}

func fromEdgeRow(r EdgeRow) graph.Edge {
	return graph.Edge{
		From:     r.Src,
		To:       r.Dst,
		Type:     graph.EdgeType(r.Type),
		Index:    r.Index,
		Metadata: unmarshalJSON(r.Metadata),
	}
}

func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return fmt.Errorf("%w: %v", store.ErrStorageUnavailable, err)
}

func (s *Store) AddNode(ctx context.Context, n graph.Node) error {
	if errs := graph.Validate(n); len(errs) > 0 {
		return fmt.Errorf("%w: %v", store.ErrValidationFailed, errs)
	}
	row, err := toRow(n)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrValidationFailed, err)
	}
	// Upsert on primary key, matching the "idempotent upsert" write
	// contract (spec.md §4.4).
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&row).Error
	return wrapErr(err)
}

func (s *Store) AddNodes(ctx context.Context, nodes []graph.Node) error {
	for _, n := range nodes {
		if err := s.AddNode(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) addEdgeRow(ctx context.Context, e graph.Edge, skipValidation bool) error {
	if !skipValidation {
		if errs := graph.ValidateEdge(e); len(errs) > 0 {
			return fmt.Errorf("%w: %v", store.ErrValidationFailed, errs)
		}
	}
	row, err := toEdgeRow(e)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrValidationFailed, err)
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&row).Error
	return wrapErr(err)
}

func (s *Store) AddEdge(ctx context.Context, e graph.Edge) error {
	return s.addEdgeRow(ctx, e, false)
}

func (s *Store) AddEdges(ctx context.Context, edges []graph.Edge, skipValidation bool) error {
	for _, e := range edges {
		if err := s.addEdgeRow(ctx, e, skipValidation); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) DeleteNode(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Delete(&NodeRow{}, "id = ?", id).Error
	return wrapErr(err)
}

func (s *Store) DeleteEdge(ctx context.Context, src, dst string, typ graph.EdgeType) error {
	err := s.db.WithContext(ctx).Delete(&EdgeRow{}, "type = ? AND src = ? AND dst = ?", string(typ), src, dst).Error
	return wrapErr(err)
}

func (s *Store) Clear(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	if err := db.Exec("DELETE FROM graph_edges").Error; err != nil {
		return wrapErr(err)
	}
	if err := db.Exec("DELETE FROM graph_nodes").Error; err != nil {
		return wrapErr(err)
	}
	return nil
}

// Flush is a no-op: every write above is already committed synchronously.
// It exists to satisfy store.Store for callers (the orchestrator's phase
// barrier) that call it unconditionally regardless of backend.
func (s *Store) Flush(_ context.Context) error { return nil }

func (s *Store) GetNode(ctx context.Context, id string) (graph.Node, bool, error) {
	var row NodeRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return graph.Node{}, false, nil
	}
	if err != nil {
		return graph.Node{}, false, wrapErr(err)
	}
	return fromRow(row), true, nil
}

type rowStream struct {
	rows []NodeRow
	pos  int
}

func (rs *rowStream) Next(_ context.Context) (graph.Node, bool, error) {
	if rs.pos >= len(rs.rows) {
		return graph.Node{}, false, nil
	}
	r := rs.rows[rs.pos]
	rs.pos++
	return fromRow(r), true, nil
}

func (rs *rowStream) Close() error { return nil }

func (s *Store) QueryNodes(ctx context.Context, f store.Filter) (store.NodeStream, error) {
	q := s.db.WithContext(ctx).Model(&NodeRow{})
	if len(f.Types) > 0 {
		types := make([]string, len(f.Types))
		for i, t := range f.Types {
			types[i] = string(t)
		}
		q = q.Where("type IN ?", types)
	}
	if f.FileSubstring != "" {
		q = q.Where("file LIKE ?", "%"+f.FileSubstring+"%")
	}
	if f.NameSubstring != "" {
		q = q.Where("name LIKE ?", "%"+f.NameSubstring+"%")
	}
	var rows []NodeRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &rowStream{rows: rows}, nil
}

func (s *Store) getEdges(ctx context.Context, column, id string, types []graph.EdgeType) ([]graph.Edge, error) {
	q := s.db.WithContext(ctx).Model(&EdgeRow{}).Where(column+" = ?", id)
	if len(types) > 0 {
		ts := make([]string, len(types))
		for i, t := range types {
			ts[i] = string(t)
		}
		q = q.Where("type IN ?", ts)
	}
	var rows []EdgeRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, wrapErr(err)
	}
	out := make([]graph.Edge, len(rows))
	for i, r := range rows {
		out[i] = fromEdgeRow(r)
	}
	return out, nil
}

func (s *Store) GetOutgoingEdges(ctx context.Context, id string, types []graph.EdgeType) ([]graph.Edge, error) {
	return s.getEdges(ctx, "src", id, types)
}

func (s *Store) GetIncomingEdges(ctx context.Context, id string, types []graph.EdgeType) ([]graph.Edge, error) {
	return s.getEdges(ctx, "dst", id, types)
}

func (s *Store) NodeCount(ctx context.Context) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&NodeRow{}).Count(&count).Error
	return int(count), wrapErr(err)
}

func (s *Store) EdgeCount(ctx context.Context) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&EdgeRow{}).Count(&count).Error
	return int(count), wrapErr(err)
}

func (s *Store) CountNodesByType(ctx context.Context, types []graph.Type) (int, error) {
	q := s.db.WithContext(ctx).Model(&NodeRow{})
	if len(types) > 0 {
		ts := make([]string, len(types))
		for i, t := range types {
			ts[i] = string(t)
		}
		q = q.Where("type IN ?", ts)
	}
	var count int64
	err := q.Count(&count).Error
	return int(count), wrapErr(err)
}

func (s *Store) CountEdgesByType(ctx context.Context, types []graph.EdgeType) (int, error) {
	q := s.db.WithContext(ctx).Model(&EdgeRow{})
	if len(types) > 0 {
		ts := make([]string, len(types))
		for i, t := range types {
			ts[i] = string(t)
		}
		q = q.Where("type IN ?", ts)
	}
	var count int64
	err := q.Count(&count).Error
	return int(count), wrapErr(err)
}

func (s *Store) GetAllNodes(ctx context.Context) ([]graph.Node, error) {
	var rows []NodeRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, wrapErr(err)
	}
	out := make([]graph.Node, len(rows))
	for i, r := range rows {
		out[i] = fromRow(r)
	}
	return out, nil
}

func (s *Store) GetAllEdges(ctx context.Context) ([]graph.Edge, error) {
	var rows []EdgeRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, wrapErr(err)
	}
	out := make([]graph.Edge, len(rows))
	for i, r := range rows {
		out[i] = fromEdgeRow(r)
	}
	return out, nil
}

var _ store.Store = (*Store)(nil)
