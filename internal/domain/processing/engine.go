package processing

import (
	"fmt"
	"math"
	"strconv"

	"github.com/andrescamacho/redcycle-go/internal/domain/material"
	"github.com/andrescamacho/redcycle-go/internal/domain/product"
	"github.com/andrescamacho/redcycle-go/pkg/utils"
)

// Efficiency policy
const (
	QuickPenalty        = 0.75
	QuickFloor          = 0.35
	OptimizeBonus       = 0.08
	OptimizeCeiling     = 0.99
	SecondaryEfficiency = 0.40
	SecondaryOptimized  = 0.55
)

// StagedInput is one (material, kilograms) pair submitted to a batch.
type StagedInput struct {
	Key material.Key
	Kg  float64
}

// Draw records where a staged input's mass came from.
type Draw struct {
	Key           material.Key
	Requested     float64
	FromPool      float64
	FromInventory float64
}

// Result is the outcome of one processing batch.
type Result struct {
	BatchID     string
	Module      ModuleID
	Mode        Mode
	Optimized   bool
	TotalIn     float64
	Efficiency  float64
	Product     string
	PrimaryKg   float64
	SecondaryKg float64
	RecoveredKg float64 // primary + secondary
	WastedKg    float64 // remainder after secondary recovery
	Draws       []Draw
	Returned    []material.PoolEntry
	Outputs     []string
}

// MassBalance holds the session's running recovered/wasted sums.
//
// Invariants:
// - Both totals are non-decreasing across processing calls
type MassBalance struct {
	RecoveredTotal float64
	WastedTotal    float64
}

// Reset zeroes both running totals.
func (b *MassBalance) Reset() {
	b.RecoveredTotal = 0
	b.WastedTotal = 0
}

// InventoryDrawer is the primary inventory as seen by the engine.
type InventoryDrawer interface {
	Consume(key material.Key, kg float64)
}

// WasteReservoir is the waste pool as seen by the engine.
type WasteReservoir interface {
	Consume(key material.Key, kg float64) float64
	Add(key material.Key, kg float64)
}

// ProductCreditor is the product ledger as seen by the engine.
type ProductCreditor interface {
	Credit(name string, kg float64) product.Product
}

// Engine turns staged waste into products, salvage and pooled remainder.
type Engine struct {
	inventory  InventoryDrawer
	pool       WasteReservoir
	products   ProductCreditor
	balance    *MassBalance
	newBatchID func(module string) string
}

// NewEngine creates an engine that mutates the given stores.
func NewEngine(inventory InventoryDrawer, pool WasteReservoir, products ProductCreditor, balance *MassBalance) *Engine {
	return &Engine{
		inventory:  inventory,
		pool:       pool,
		products:   products,
		balance:    balance,
		newBatchID: utils.GenerateBatchID,
	}
}

// Efficiency returns the conversion efficiency of a batch: the module's
// baseline, reduced for quick mode, then raised by the optimize bonus.
func Efficiency(module ModuleID, mode Mode, optimize bool) float64 {
	efficiency := BaseEfficiency(module)
	if mode == ModeQuick {
		efficiency = math.Max(QuickFloor, efficiency*QuickPenalty)
	}
	if optimize {
		efficiency = math.Min(OptimizeCeiling, efficiency+OptimizeBonus)
	}
	return efficiency
}

// SecondaryRate returns the salvage fraction applied to primary waste.
func SecondaryRate(optimize bool) float64 {
	if optimize {
		return SecondaryOptimized
	}
	return SecondaryEfficiency
}

// ValidateStaged checks the batch preconditions without touching any store.
func ValidateStaged(staged []StagedInput) error {
	if len(staged) == 0 {
		return ErrNothingStaged
	}
	for i, in := range staged {
		switch {
		case in.Key == "":
			return &InvalidStagedInputError{Index: i, Key: string(in.Key), Kg: in.Kg, Reason: "material key is empty"}
		case math.IsNaN(in.Kg) || math.IsInf(in.Kg, 0):
			return &InvalidStagedInputError{Index: i, Key: string(in.Key), Kg: in.Kg, Reason: "amount is not a finite number"}
		case in.Kg <= 0:
			return &InvalidStagedInputError{Index: i, Key: string(in.Key), Kg: in.Kg, Reason: "amount must be positive"}
		}
	}
	return nil
}

// Process runs one batch. Staged inputs are validated before any store is
// touched, so a rejected batch leaves the session unchanged.
//
// Only one salvage pass runs per batch: waste returned to the pool is not
// salvaged again until a later batch draws it.
func (e *Engine) Process(module ModuleID, staged []StagedInput, mode Mode, optimize bool) (*Result, error) {
	if err := ValidateStaged(staged); err != nil {
		return nil, err
	}
	if mode == "" {
		mode = ModeFull
	}

	totalIn := TotalStaged(staged)

	efficiency := Efficiency(module, mode, optimize)
	recovered := utils.RoundHalfUp(totalIn * efficiency)
	wasted := utils.NonNegative(utils.RoundHalfUp(totalIn - recovered))

	draws := make([]Draw, 0, len(staged))
	for _, in := range staged {
		fromPool := e.pool.Consume(in.Key, in.Kg)
		fromInventory := in.Kg - fromPool
		if fromInventory > 0 {
			e.inventory.Consume(in.Key, fromInventory)
		}
		draws = append(draws, Draw{Key: in.Key, Requested: in.Kg, FromPool: fromPool, FromInventory: fromInventory})
	}

	productName := ProductFor(module)
	e.products.Credit(productName, recovered)
	outputs := []string{fmt.Sprintf("%s kg %s", formatKg(recovered), productName)}

	extra := utils.RoundHalfUp(wasted * SecondaryRate(optimize))
	if extra > 0 {
		e.products.Credit(SecondaryProduct, extra)
		wasted = utils.SaturatingSub(wasted, extra)
		outputs = append(outputs, fmt.Sprintf("%s kg %s", formatKg(extra), SecondaryProduct))
	}

	returned := e.redistribute(staged, totalIn, wasted)
	if wasted > 0 {
		outputs = append(outputs, fmt.Sprintf("%s kg returned to waste pool", formatKg(wasted)))
	}

	e.balance.RecoveredTotal += recovered + extra
	e.balance.WastedTotal += wasted

	return &Result{
		BatchID:     e.newBatchID(string(module)),
		Module:      module,
		Mode:        mode,
		Optimized:   optimize,
		TotalIn:     totalIn,
		Efficiency:  efficiency,
		Product:     productName,
		PrimaryKg:   recovered,
		SecondaryKg: extra,
		RecoveredKg: recovered + extra,
		WastedKg:    wasted,
		Draws:       draws,
		Returned:    returned,
		Outputs:     outputs,
	}, nil
}

// redistribute returns unsalvaged waste to the pool in proportion to each
// input's share of the batch. Zero shares are skipped.
func (e *Engine) redistribute(staged []StagedInput, totalIn, wasted float64) []material.PoolEntry {
	if wasted <= 0 || totalIn <= 0 {
		return nil
	}
	returned := make([]material.PoolEntry, 0, len(staged))
	for _, in := range staged {
		share := utils.RoundHalfUp(in.Kg / totalIn * wasted)
		if share <= 0 {
			continue
		}
		e.pool.Add(in.Key, share)
		returned = append(returned, material.PoolEntry{Key: in.Key, Kg: share})
	}
	return returned
}

func formatKg(kg float64) string {
	return strconv.FormatFloat(kg, 'f', -1, 64)
}
