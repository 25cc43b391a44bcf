package mission

import (
	"fmt"

	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
	"github.com/andrescamacho/redcycle-go/pkg/utils"
)

// Default mission resources and starting day
const (
	DefaultEnergy    = 120.0
	DefaultWater     = 120.0
	DefaultCrewHours = 6.0
	FirstDay         = 1
)

// Resources tracks the consumable mission resources.
//
// Invariants:
// - Every field is >= 0
// - Resources only decrease; nothing in the engine replenishes them
type Resources struct {
	Energy    float64 // kWh
	Water     float64 // L
	CrewHours float64 // h
}

// DefaultResources returns the resources a new mission starts with.
func DefaultResources() Resources {
	return Resources{Energy: DefaultEnergy, Water: DefaultWater, CrewHours: DefaultCrewHours}
}

// Consume subtracts each amount, clamping every field at zero. A non-finite
// amount leaves its field unchanged.
func (r *Resources) Consume(energy, water, crewHours float64) {
	r.Energy = consume(r.Energy, energy)
	r.Water = consume(r.Water, water)
	r.CrewHours = consume(r.CrewHours, crewHours)
}

func consume(have, spend float64) float64 {
	if !utils.IsFinite(spend) {
		return have
	}
	return utils.SaturatingSub(have, spend)
}

// ConsumeCost subtracts a processing cost.
func (r *Resources) ConsumeCost(cost processing.Cost) {
	r.Consume(cost.Energy, cost.Water, cost.CrewHours)
}

// Shortfall returns the first blocking resource a cost cannot be paid from,
// or "" when the cost is affordable. Only energy and crew hours block
// processing; water may run dry.
func (r Resources) Shortfall(cost processing.Cost) string {
	if r.Energy < cost.Energy {
		return "energy"
	}
	if r.CrewHours < cost.CrewHours {
		return "crew hours"
	}
	return ""
}

// CanAfford reports whether cost can be paid.
func (r Resources) CanAfford(cost processing.Cost) bool {
	return r.Shortfall(cost) == ""
}

func (r Resources) String() string {
	return fmt.Sprintf("Resources(energy=%.1fkWh water=%.1fL crew=%.1fh)", r.Energy, r.Water, r.CrewHours)
}
