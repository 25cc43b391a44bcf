package session

import (
	"github.com/andrescamacho/redcycle-go/internal/domain/material"
	"github.com/andrescamacho/redcycle-go/internal/domain/mission"
	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
	"github.com/andrescamacho/redcycle-go/internal/domain/product"
	"github.com/andrescamacho/redcycle-go/pkg/utils"
)

// Session is the whole simulation aggregate of one player profile.
// It is owned by the application controller and handed to collaborators by
// reference; there is no process-wide instance.
//
// Invariants:
// - All kilogram quantities are >= 0
// - RecoveredTotal and WastedTotal never decrease between resets
// - WastePoolTotal equals the sum of pool entries
type Session struct {
	inventory *material.Inventory
	pool      *material.WastePool
	products  *product.Ledger
	resources mission.Resources
	day       int
	crew      *mission.CrewAssignment
	balance   processing.MassBalance
	engine    *processing.Engine
}

// New creates a session populated with catalog defaults.
func New() *Session {
	s := &Session{
		inventory: material.NewInventory(),
		pool:      material.NewWastePool(),
		products:  product.NewLedger(),
		resources: mission.DefaultResources(),
		day:       mission.FirstDay,
		crew:      mission.NewCrewAssignment(),
	}
	s.engine = processing.NewEngine(s.inventory, s.pool, s.products, &s.balance)
	return s
}

// Read side

func (s *Session) Inventory() []material.Stock      { return s.inventory.Stocks() }
func (s *Session) WastePool() []material.PoolEntry  { return s.pool.Entries() }
func (s *Session) WastePoolTotal() float64          { return s.pool.Total() }
func (s *Session) InventoryKg() float64             { return s.inventory.TotalKg() }
func (s *Session) ProductKg() float64               { return s.products.TotalKg() }
func (s *Session) Products() []product.Product      { return s.products.Products() }
func (s *Session) Resources() mission.Resources     { return s.resources }
func (s *Session) MissionDay() int                  { return s.day }
func (s *Session) Crew() []mission.Assignment       { return s.crew.Assignments() }
func (s *Session) Totals() processing.MassBalance   { return s.balance }
func (s *Session) CrewAt(m processing.ModuleID) int { return s.crew.CountAt(m) }

// Stock returns the inventory stock for key.
func (s *Session) Stock(key material.Key) (material.Stock, bool) {
	return s.inventory.Get(key)
}

// PooledKg returns the waste-pool mass held for key.
func (s *Session) PooledKg(key material.Key) float64 {
	return s.pool.Available(key)
}

// KnowsMaterial reports whether key is tracked by inventory or the pool.
func (s *Session) KnowsMaterial(key material.Key) bool {
	return s.inventory.Has(key) || s.pool.Available(key) > 0
}

// Mutations

// ConsumeMaterial removes kg from inventory, floored at zero.
func (s *Session) ConsumeMaterial(key material.Key, kg float64) {
	s.inventory.Consume(key, kg)
}

// UpdateMaterial sets an inventory stock to max(0, kg).
func (s *Session) UpdateMaterial(key material.Key, kg float64) {
	s.inventory.SetQuantity(key, kg)
}

// AssignCrew posts a crew member to module ("" unassigns).
func (s *Session) AssignCrew(crew mission.CrewID, module processing.ModuleID) {
	s.crew.Assign(crew, module)
}

// ToggleCrew posts or unposts a crew member at module and returns the
// resulting post.
func (s *Session) ToggleCrew(crew mission.CrewID, module processing.ModuleID) processing.ModuleID {
	return s.crew.Toggle(crew, module)
}

// ConsumeResources subtracts resources, clamping each at zero.
func (s *Session) ConsumeResources(energy, water, crewHours float64) {
	s.resources.Consume(energy, water, crewHours)
}

// PayFor spends a batch cost from the resource ledger.
func (s *Session) PayFor(cost processing.Cost) {
	s.resources.ConsumeCost(cost)
}

// CrewPost returns the module a crew member is posted to ("" when unassigned).
func (s *Session) CrewPost(crew mission.CrewID) processing.ModuleID {
	return s.crew.ModuleOf(crew)
}

// AdvanceDay moves the mission clock forward by days (values < 1 are ignored).
func (s *Session) AdvanceDay(days int) int {
	if days > 0 {
		s.day += days
	}
	return s.day
}

// Process runs one batch through the processing engine.
func (s *Session) Process(module processing.ModuleID, staged []processing.StagedInput, mode processing.Mode, optimize bool) (*processing.Result, error) {
	return s.engine.Process(module, staged, mode, optimize)
}

// Reset restores catalog defaults, zeroes the totals and clears the crew.
// Stores are reset in place so the engine keeps working on them.
func (s *Session) Reset() {
	s.inventory.Restock()
	s.pool.Clear()
	s.products.Clear()
	s.resources = mission.DefaultResources()
	s.day = mission.FirstDay
	s.crew.Clear()
	s.balance.Reset()
}

// Snapshot captures every field of the session for persistence.
func (s *Session) Snapshot() *Snapshot {
	snap := &Snapshot{
		Inventory: make(map[material.Key]StockRecord),
		WastePool: make(map[material.Key]float64),
		Products:  make(map[product.ID]ProductRecord),
		Crew:      make(map[mission.CrewID]processing.ModuleID),
	}
	for _, stock := range s.inventory.Stocks() {
		snap.Inventory[stock.Key] = StockRecord{Name: stock.Name, Kg: stock.Kg}
	}
	for _, entry := range s.pool.Entries() {
		snap.WastePool[entry.Key] = entry.Kg
	}
	for _, p := range s.products.Products() {
		snap.Products[p.ID] = ProductRecord{Name: p.Name, Kg: p.Kg, Qty: p.Qty}
	}
	for _, a := range s.crew.Assignments() {
		snap.Crew[a.Crew] = a.Module
	}
	resources := s.resources
	day := s.day
	recovered := s.balance.RecoveredTotal
	wasted := s.balance.WastedTotal
	snap.Resources = &resources
	snap.MissionDay = &day
	snap.RecoveredTotal = &recovered
	snap.WastedTotal = &wasted
	return snap
}

// Restore builds a session from a snapshot. Fields missing from the
// snapshot keep their catalog defaults; present fields are clamped to their
// invariants.
func Restore(snap *Snapshot) *Session {
	s := New()
	if snap == nil {
		return s
	}

	for key, rec := range snap.Inventory {
		s.inventory.Put(key, rec.Name, rec.Kg)
	}
	for key, kg := range snap.WastePool {
		s.pool.Add(key, kg)
	}
	for id, rec := range snap.Products {
		s.products.Put(product.Product{ID: id, Name: rec.Name, Kg: rec.Kg, Qty: rec.Qty})
	}
	if snap.Resources != nil {
		s.resources = mission.Resources{
			Energy:    utils.NonNegative(snap.Resources.Energy),
			Water:     utils.NonNegative(snap.Resources.Water),
			CrewHours: utils.NonNegative(snap.Resources.CrewHours),
		}
	}
	if snap.MissionDay != nil && *snap.MissionDay >= mission.FirstDay {
		s.day = *snap.MissionDay
	}
	for crew, module := range snap.Crew {
		s.crew.Assign(crew, module)
	}
	if snap.RecoveredTotal != nil {
		s.balance.RecoveredTotal = utils.NonNegative(*snap.RecoveredTotal)
	}
	if snap.WastedTotal != nil {
		s.balance.WastedTotal = utils.NonNegative(*snap.WastedTotal)
	}
	return s
}
