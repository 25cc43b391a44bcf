package processing

import (
	"math"

	"github.com/andrescamacho/redcycle-go/pkg/utils"
)

// Per-kilogram resource rates
const (
	energyPerKgFull     = 0.6
	energyPerKgQuick    = 0.2
	waterPerKgFull      = 0.08
	waterPerKgQuick     = 0.02
	crewHoursPerKgFull  = 0.04
	crewHoursPerKgQuick = 0.01
	recycleEnergyFactor = 1.2
	crewBonusPerMember  = 0.25
	minEnergyCost       = 1
	minCrewHoursCost    = 0.1
)

// Cost is the resource bill of one processing batch.
type Cost struct {
	Energy    float64
	Water     float64
	CrewHours float64
}

// CrewMultiplier returns the divisor applied to batch cost for the crew
// posted at the active module.
func CrewMultiplier(crewCount int) float64 {
	if crewCount < 0 {
		crewCount = 0
	}
	return 1 + crewBonusPerMember*float64(crewCount)
}

// EstimateCost computes the resource bill of a batch of totalIn kilograms.
// Full processing costs more than quick, the recycling plant draws extra
// energy, eco tiers cut energy and water, and each posted crew member
// divides the whole bill.
func EstimateCost(module ModuleID, totalIn float64, mode Mode, tier EcoTier, crewCount int) Cost {
	energyRate, waterRate, crewRate := energyPerKgFull, waterPerKgFull, crewHoursPerKgFull
	if mode == ModeQuick {
		energyRate, waterRate, crewRate = energyPerKgQuick, waterPerKgQuick, crewHoursPerKgQuick
	}
	if module == Recycle {
		energyRate *= recycleEnergyFactor
	}
	crew := CrewMultiplier(crewCount)

	return Cost{
		Energy:    math.Max(minEnergyCost, utils.RoundHalfUp(totalIn*energyRate*tier.energyFactor()/crew)),
		Water:     utils.NonNegative(utils.RoundHalfUp(totalIn * waterRate * tier.waterFactor() / crew)),
		CrewHours: math.Max(minCrewHoursCost, utils.RoundHalfUp(totalIn*crewRate/crew)),
	}
}

// TotalStaged returns the sum of the staged amounts.
func TotalStaged(staged []StagedInput) float64 {
	total := 0.0
	for _, in := range staged {
		total += in.Kg
	}
	return total
}
