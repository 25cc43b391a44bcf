package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/redcycle-go/internal/domain/material"
	"github.com/andrescamacho/redcycle-go/internal/domain/mission"
	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
)

func mutatedSession(t *testing.T) *Session {
	t.Helper()
	s := New()
	s.ConsumeMaterial(material.Textiles, 20)
	s.UpdateMaterial(material.BubbleWrap, 12)
	s.AssignCrew("crew1", processing.Foam)
	s.ConsumeResources(10, 5, 1)
	s.AdvanceDay(2)
	_, err := s.Process(processing.Foam, []processing.StagedInput{{Key: material.FoamPack, Kg: 100}}, processing.ModeFull, false)
	require.NoError(t, err)
	return s
}

func TestNew_CatalogDefaults(t *testing.T) {
	s := New()

	assert.Len(t, s.Inventory(), len(material.Catalog()))
	assert.Empty(t, s.WastePool())
	assert.Empty(t, s.Products())
	assert.Equal(t, mission.DefaultResources(), s.Resources())
	assert.Equal(t, 1, s.MissionDay())
	assert.Empty(t, s.Crew())
	assert.Equal(t, processing.MassBalance{}, s.Totals())
}

func TestSession_ProcessUpdatesAggregate(t *testing.T) {
	s := mutatedSession(t)

	stock, _ := s.Stock(material.FoamPack)
	assert.Equal(t, 80.0, stock.Kg)
	assert.Equal(t, 5.0, s.WastePoolTotal())
	assert.Equal(t, 5.0, s.PooledKg(material.FoamPack))
	assert.Equal(t, 95.0, s.Totals().RecoveredTotal)
	assert.Equal(t, 5.0, s.Totals().WastedTotal)
	assert.Equal(t, 3, s.MissionDay())
	assert.Equal(t, 1, s.CrewAt(processing.Foam))
}

func TestSession_ResetIsIdempotent(t *testing.T) {
	s := mutatedSession(t)

	s.Reset()
	once := s.Snapshot()
	s.Reset()
	twice := s.Snapshot()

	assert.Equal(t, once, twice)
	assert.Equal(t, New().Snapshot(), once)
}

func TestSession_ResetKeepsEngineWired(t *testing.T) {
	s := mutatedSession(t)
	s.Reset()

	_, err := s.Process(processing.Lab, []processing.StagedInput{{Key: material.CarbonResidue, Kg: 10}}, processing.ModeFull, false)
	require.NoError(t, err)

	stock, _ := s.Stock(material.CarbonResidue)
	assert.Equal(t, 40.0, stock.Kg)
	assert.Greater(t, s.Totals().RecoveredTotal, 0.0)
}

func TestSnapshotRoundTrip(t *testing.T) {
	original := mutatedSession(t)

	restored := Restore(original.Snapshot())

	assert.Equal(t, original.Snapshot(), restored.Snapshot())
}

func TestRestore_PartialSnapshotKeepsDefaults(t *testing.T) {
	day := 0
	recovered := -3.0
	snap := &Snapshot{
		WastePool:      map[material.Key]float64{material.Textiles: 4, material.FoamPack: -1},
		MissionDay:     &day,
		RecoveredTotal: &recovered,
		Crew:           map[mission.CrewID]processing.ModuleID{"crew2": ""},
	}

	s := Restore(snap)

	assert.Len(t, s.Inventory(), len(material.Catalog()))
	assert.Equal(t, []material.PoolEntry{{Key: material.Textiles, Kg: 4}}, s.WastePool())
	assert.Equal(t, 1, s.MissionDay())
	assert.Equal(t, 0.0, s.Totals().RecoveredTotal)
	assert.Equal(t, mission.DefaultResources(), s.Resources())
	require.Len(t, s.Crew(), 1)
	assert.False(t, s.Crew()[0].Assigned())
}

func TestSnapshot_IsEmpty(t *testing.T) {
	var nilSnap *Snapshot
	assert.True(t, nilSnap.IsEmpty())
	assert.True(t, (&Snapshot{}).IsEmpty())
	assert.False(t, New().Snapshot().IsEmpty())
}

func TestAdvanceDay_IgnoresNonPositive(t *testing.T) {
	s := New()
	assert.Equal(t, 1, s.AdvanceDay(0))
	assert.Equal(t, 1, s.AdvanceDay(-2))
	assert.Equal(t, 2, s.AdvanceDay(1))
}
