package processing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/redcycle-go/internal/domain/material"
)

func TestModules_GridOrderAndCopy(t *testing.T) {
	grid := Modules()
	ids := make([]ModuleID, len(grid))
	for i, m := range grid {
		ids[i] = m.ID
	}
	assert.Equal(t, ModuleIDs(), ids)

	grid[0].Title = "changed"
	assert.Equal(t, "Habitat Workshop", Modules()[0].Title)
}

func TestModule_IsEfficientFor(t *testing.T) {
	party, ok := LookupModule(Party)
	assert.True(t, ok)
	assert.True(t, party.IsEfficientFor(material.BubbleWrap))
	assert.False(t, party.IsEfficientFor(material.AluminumStruts))
}

func TestOutsideSpecialty(t *testing.T) {
	cases := []struct {
		name   string
		module ModuleID
		staged []StagedInput
		want   []material.Key
	}{
		{
			name:   "all preferred",
			module: Habitat,
			staged: []StagedInput{{Key: material.Textiles, Kg: 20}, {Key: material.FoamPack, Kg: 12}},
		},
		{
			name:   "mixed keeps staging order without repeats",
			module: Foam,
			staged: []StagedInput{
				{Key: material.Textiles, Kg: 5},
				{Key: material.FoamPack, Kg: 50},
				{Key: material.CarbonResidue, Kg: 2},
				{Key: material.Textiles, Kg: 1},
			},
			want: []material.Key{material.Textiles, material.CarbonResidue},
		},
		{
			name:   "module outside the grid",
			module: "kitchen",
			staged: []StagedInput{{Key: material.Textiles, Kg: 5}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, OutsideSpecialty(tc.module, tc.staged))
		})
	}
}
