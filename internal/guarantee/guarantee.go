// Package guarantee implements the Guarantee Runner (spec.md §4.9): a
// CRUD-managed set of persisted invariants, each either a Datalog rule
// yielding violations (driving internal/datalog) or a JSON-schema
// contract governing a set of graph nodes.
package guarantee

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Family is the closed set of guarantee kinds spec.md §4.9 names.
type Family string

const (
	FamilyDatalog    Family = "datalog"
	FamilyQueue      Family = "guarantee:queue"
	FamilyAPI        Family = "guarantee:api"
	FamilyPermission Family = "guarantee:permission"
)

// IsContract reports whether f is one of the three JSON-schema contract
// families (spec.md §4.9 "Contract guarantees").
func (f Family) IsContract() bool {
	return f == FamilyQueue || f == FamilyAPI || f == FamilyPermission
}

// Record is the persisted guarantee definition (spec.md §4.9's
// "persisted invariant"), modeled after the teacher's models.Stage: a
// single GORM row per entity with an explicit TableName, datatypes.JSON
// columns for the parts that vary by family, and status/time bookkeeping.
type Record struct {
	ID          string `gorm:"primaryKey;type:varchar(64)"`
	Name        string `gorm:"type:varchar(255);index"`
	Family      string `gorm:"type:varchar(32);not null"`
	Severity    string `gorm:"type:varchar(16);not null"`
	Description string `gorm:"type:text"`

	// Rule holds the Datalog source (including a violation/1 clause) for
	// FamilyDatalog guarantees; empty for contract guarantees.
	Rule string `gorm:"type:text"`

	// Schema holds the JSON schema document for contract guarantees;
	// empty for FamilyDatalog.
	Schema datatypes.JSON `gorm:"type:jsonb"`

	// Targets holds the governed node IDs as a JSON array, mirrored into
	// GOVERNS graph edges by the runner so query-surface traversals see
	// them too; this column is the source of truth updateGuarantee
	// reads before the delete-then-insert.
	Targets datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Record) TableName() string { return "guarantees" }

// Migrate auto-migrates the guarantees table, alongside gormstore.Migrate
// for the graph tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Record{})
}

// Definition is the caller-facing (non-GORM) shape used by
// createGuarantee/updateGuarantee, separating the wire contract from the
// storage row the way models.Stage's JSON tags keep API and column
// concerns apart.
type Definition struct {
	ID          string
	Name        string
	Family      Family
	Severity    string
	Description string
	Rule        string
	Schema      []byte
	Targets     []string
}

// Patch carries the updatable subset of a Definition; nil fields are
// left unchanged by updateGuarantee.
type Patch struct {
	Name        *string
	Severity    *string
	Description *string
	Rule        *string
	Schema      []byte
	Targets     []string
}
