// Package gormstore is the GORM-backed implementation of the Graph Store
// contract (internal/store), mirroring the teacher's db/models package
// shape: one struct per persisted table, datatypes.JSON payload columns,
// explicit TableName methods.
package gormstore

import (
	"strconv"
	"time"

	"gorm.io/datatypes"
)

// NodeRow persists one graph.Node (spec.md §3.6 graph_nodes).
type NodeRow struct {
	ID       string         `gorm:"primaryKey;type:varchar(512)"`
	Type     string         `gorm:"type:varchar(64);index"`
	Name     string         `gorm:"type:varchar(255);index"`
	File     string         `gorm:"type:varchar(512);index"`
	Line     int            `gorm:"type:integer"`
	Column   int            `gorm:"type:integer"`
	Metadata datatypes.JSON `gorm:"type:jsonb"`
	Fields   datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (NodeRow) TableName() string { return "graph_nodes" }

// EdgeRow persists one graph.Edge (spec.md §3.6 graph_edges). ID is a
// surrogate key derived from type|src|dst (plus |index for indexed edges)
// so the unique index also serves as the idempotent-upsert primary key.
type EdgeRow struct {
	ID       string         `gorm:"primaryKey;type:varchar(1100)"`
	Type     string         `gorm:"type:varchar(64);uniqueIndex:idx_edge_triple"`
	Src      string         `gorm:"type:varchar(512);uniqueIndex:idx_edge_triple;index"`
	Dst      string         `gorm:"type:varchar(512);uniqueIndex:idx_edge_triple;index"`
	Index    *int           `gorm:"column:index;uniqueIndex:idx_edge_triple"`
	Metadata datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (EdgeRow) TableName() string { return "graph_edges" }

// RunRow persists one orchestrator run, used by analysisStatus (spec.md
// §6.2 / SPEC_FULL.md §3.6).
type RunRow struct {
	ID         string `gorm:"primaryKey;type:varchar(64)"`
	Service    string `gorm:"type:varchar(255)"`
	Phase      string `gorm:"type:varchar(32)"`
	StartedAt  time.Time
	FinishedAt *time.Time
	Fatal      bool `gorm:"default:false"`
}

func (RunRow) TableName() string { return "graph_runs" }

func edgeRowID(typ, src, dst string, index *int) string {
	id := typ + "|" + src + "|" + dst
	if index != nil {
		id += "|" + strconv.Itoa(*index)
	}
	return id
}
