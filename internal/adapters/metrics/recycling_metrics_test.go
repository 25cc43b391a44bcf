package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/redcycle-go/internal/domain/mission"
	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
)

func setupRegistry(t *testing.T) *RecyclingMetricsCollector {
	t.Helper()
	InitRegistry("")
	t.Cleanup(func() {
		Registry = nil
		SetGlobalRecyclingCollector(nil)
	})

	collector := NewRecyclingMetricsCollector()
	require.NoError(t, collector.Register())
	SetGlobalRecyclingCollector(collector)
	return collector
}

func gatherFamily(t *testing.T, name string) *dto.MetricFamily {
	t.Helper()
	families, err := Registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() == name {
			return family
		}
	}
	t.Fatalf("metric family %s not gathered", name)
	return nil
}

func labelValue(metric *dto.Metric, name string) string {
	for _, pair := range metric.GetLabel() {
		if pair.GetName() == name {
			return pair.GetValue()
		}
	}
	return ""
}

func TestRecordBatch_CountsMassAndCost(t *testing.T) {
	setupRegistry(t)

	RecordBatch(&processing.Result{
		Module:      processing.Foam,
		Mode:        processing.ModeFull,
		TotalIn:     100,
		Efficiency:  0.92,
		PrimaryKg:   92,
		SecondaryKg: 3,
		WastedKg:    5,
	}, processing.Cost{Energy: 60, Water: 8, CrewHours: 4})

	batches := gatherFamily(t, "redcycle_engine_batches_total")
	require.Len(t, batches.GetMetric(), 1)
	assert.Equal(t, "foam", labelValue(batches.GetMetric()[0], "module"))
	assert.Equal(t, "false", labelValue(batches.GetMetric()[0], "optimized"))
	assert.Equal(t, 1.0, batches.GetMetric()[0].GetCounter().GetValue())

	recovered := gatherFamily(t, "redcycle_engine_recovered_kg_total")
	byKind := map[string]float64{}
	for _, m := range recovered.GetMetric() {
		byKind[labelValue(m, "kind")] = m.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"primary": 92, "secondary": 3}, byKind)

	wasted := gatherFamily(t, "redcycle_engine_wasted_kg_total")
	assert.Equal(t, 5.0, wasted.GetMetric()[0].GetCounter().GetValue())

	spent := gatherFamily(t, "redcycle_engine_resources_spent_total")
	assert.Len(t, spent.GetMetric(), 3)
}

func TestRecordRejectedBatch(t *testing.T) {
	setupRegistry(t)

	RecordRejectedBatch(processing.Lab, "energy")
	RecordRejectedBatch(processing.Lab, "energy")

	rejected := gatherFamily(t, "redcycle_engine_rejected_batches_total")
	require.Len(t, rejected.GetMetric(), 1)
	assert.Equal(t, "energy", labelValue(rejected.GetMetric()[0], "reason"))
	assert.Equal(t, 2.0, rejected.GetMetric()[0].GetCounter().GetValue())
}

func TestRecordSessionState_SetsGauges(t *testing.T) {
	setupRegistry(t)

	RecordSessionState(SessionState{
		Resources:    mission.Resources{Energy: 60, Water: 112, CrewHours: 2},
		MissionDay:   3,
		Totals:       processing.MassBalance{RecoveredTotal: 95, WastedTotal: 5},
		WastePoolKg:  5,
		InventoryKg:  870,
		ProductKg:    95,
		ProductCount: 1,
		AssignedCrew: 2,
	})

	day := gatherFamily(t, "redcycle_engine_mission_day")
	assert.Equal(t, 3.0, day.GetMetric()[0].GetGauge().GetValue())

	levels := gatherFamily(t, "redcycle_engine_resource_level")
	byResource := map[string]float64{}
	for _, m := range levels.GetMetric() {
		byResource[labelValue(m, "resource")] = m.GetGauge().GetValue()
	}
	assert.Equal(t, map[string]float64{"energy": 60, "water": 112, "crew_hours": 2}, byResource)

	stored := map[string]float64{}
	for _, m := range gatherFamily(t, "redcycle_engine_stored_kg").GetMetric() {
		stored[labelValue(m, "store")] = m.GetGauge().GetValue()
	}
	assert.Equal(t, map[string]float64{"inventory": 870, "waste_pool": 5, "products": 95}, stored)
}

func TestGlobalRecordersAreNoopsWhenDisabled(t *testing.T) {
	SetGlobalRecyclingCollector(nil)

	assert.NotPanics(t, func() {
		RecordBatch(&processing.Result{Module: processing.Foam}, processing.Cost{})
		RecordRejectedBatch(processing.Foam, "energy")
		RecordSessionState(SessionState{})
	})
	assert.False(t, IsEnabled())
}
