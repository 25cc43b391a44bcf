package session

import (
	"context"

	"github.com/andrescamacho/redcycle-go/internal/domain/material"
	"github.com/andrescamacho/redcycle-go/internal/domain/mission"
	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
	"github.com/andrescamacho/redcycle-go/internal/domain/product"
)

// StockRecord is the persisted form of one inventory stock.
type StockRecord struct {
	Name string
	Kg   float64
}

// ProductRecord is the persisted form of one product.
type ProductRecord struct {
	Name string
	Kg   float64
	Qty  int
}

// Snapshot is the persisted form of a session. A nil field means the field
// was absent (or unreadable) in storage and keeps its default on restore.
// Crew maps an unassigned crew member to "".
type Snapshot struct {
	Inventory      map[material.Key]StockRecord
	WastePool      map[material.Key]float64
	Products       map[product.ID]ProductRecord
	Resources      *mission.Resources
	MissionDay     *int
	Crew           map[mission.CrewID]processing.ModuleID
	RecoveredTotal *float64
	WastedTotal    *float64
}

// IsEmpty reports whether no field was found in storage.
func (s *Snapshot) IsEmpty() bool {
	return s == nil || (s.Inventory == nil && s.WastePool == nil && s.Products == nil &&
		s.Resources == nil && s.MissionDay == nil && s.Crew == nil &&
		s.RecoveredTotal == nil && s.WastedTotal == nil)
}

// Repository persists session snapshots for one player profile.
type Repository interface {
	// Load returns the stored snapshot; an empty Snapshot when nothing is
	// stored. Unreadable fields are returned as nil, never as an error.
	Load(ctx context.Context) (*Snapshot, error)

	// Save replaces the stored snapshot.
	Save(ctx context.Context, snapshot *Snapshot) error

	// Clear removes every stored field.
	Clear(ctx context.Context) error
}
