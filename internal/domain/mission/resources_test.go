package mission

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
)

func TestResources_ConsumeClampsEachField(t *testing.T) {
	r := DefaultResources()

	r.Consume(100, 200, 2.5)

	assert.Equal(t, 20.0, r.Energy)
	assert.Equal(t, 0.0, r.Water)
	assert.Equal(t, 3.5, r.CrewHours)
}

func TestResources_ShortfallIgnoresWater(t *testing.T) {
	r := Resources{Energy: 10, Water: 0, CrewHours: 1}

	assert.Equal(t, "", r.Shortfall(processing.Cost{Energy: 10, Water: 50, CrewHours: 1}))
	assert.True(t, r.CanAfford(processing.Cost{Energy: 10, Water: 50, CrewHours: 1}))
	assert.Equal(t, "energy", r.Shortfall(processing.Cost{Energy: 11, CrewHours: 0.1}))
	assert.Equal(t, "crew hours", r.Shortfall(processing.Cost{Energy: 1, CrewHours: 2}))
}

func TestResources_ConsumeCost(t *testing.T) {
	r := DefaultResources()

	r.ConsumeCost(processing.Cost{Energy: 60, Water: 8, CrewHours: 4})

	assert.Equal(t, Resources{Energy: 60, Water: 112, CrewHours: 2}, r)
}

func TestResources_ConsumeIgnoresNonFiniteAmounts(t *testing.T) {
	r := DefaultResources()

	r.Consume(math.NaN(), math.Inf(1), 1)

	assert.Equal(t, Resources{Energy: DefaultEnergy, Water: DefaultWater, CrewHours: DefaultCrewHours - 1}, r)
}
