package processing

import "github.com/andrescamacho/redcycle-go/pkg/utils"

// stageFraction is the share of a stock moved to the workbench per drop.
const stageFraction = 0.2

// StageAmount returns how many kilograms one drop stages from a stock of
// available kilograms: a fifth of the stock, rounded, at least 1 kg and
// never more than the stock itself. An empty stock stages nothing.
func StageAmount(available float64) float64 {
	if available <= 0 {
		return 0
	}
	take := utils.Max(1, utils.Min(available, utils.RoundHalfUp(available*stageFraction)))
	return utils.Min(take, available)
}
