package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
)

// RecyclingMetricsCollector handles processing batch and session metrics
type RecyclingMetricsCollector struct {
	// Batch metrics
	batchesTotal     *prometheus.CounterVec
	batchInputKg     *prometheus.HistogramVec
	batchEfficiency  *prometheus.HistogramVec
	recoveredKgTotal *prometheus.CounterVec
	wastedKgTotal    *prometheus.CounterVec
	rejectedTotal    *prometheus.CounterVec
	resourcesSpent   *prometheus.CounterVec

	// Session gauges
	resourceLevel *prometheus.GaugeVec
	massBalance   *prometheus.GaugeVec
	storedKg      *prometheus.GaugeVec
	missionDay    prometheus.Gauge
	productCount  prometheus.Gauge
	assignedCrew  prometheus.Gauge
}

// NewRecyclingMetricsCollector creates a new recycling metrics collector
func NewRecyclingMetricsCollector() *RecyclingMetricsCollector {
	return &RecyclingMetricsCollector{
		batchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "batches_total",
				Help:      "Total number of processed batches by module, mode and eco optimization",
			},
			[]string{"module", "mode", "optimized"},
		),

		batchInputKg: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "batch_input_kg",
				Help:      "Staged mass per batch",
				Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
			},
			[]string{"module"},
		),

		batchEfficiency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "batch_efficiency",
				Help:      "Effective conversion efficiency per batch",
				Buckets:   []float64{0.35, 0.5, 0.6, 0.7, 0.8, 0.9, 0.95, 0.99},
			},
			[]string{"module"},
		),

		recoveredKgTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "recovered_kg_total",
				Help:      "Recovered mass by module and output kind (primary or secondary)",
			},
			[]string{"module", "kind"},
		),

		wastedKgTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "wasted_kg_total",
				Help:      "Mass returned to the waste pool by module",
			},
			[]string{"module"},
		),

		rejectedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "rejected_batches_total",
				Help:      "Batches refused before processing by module and reason",
			},
			[]string{"module", "reason"},
		),

		resourcesSpent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "resources_spent_total",
				Help:      "Habitat resources charged for processing",
			},
			[]string{"resource"},
		),

		resourceLevel: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "resource_level",
				Help:      "Remaining habitat resources",
			},
			[]string{"resource"},
		),

		massBalance: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "mass_balance_kg",
				Help:      "Running recovered and wasted totals for the session",
			},
			[]string{"total"},
		),

		storedKg: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stored_kg",
				Help:      "Mass currently held by each store",
			},
			[]string{"store"},
		),

		missionDay: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "mission_day",
				Help:      "Current mission day",
			},
		),

		productCount: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "product_lines",
				Help:      "Number of distinct products in the ledger",
			},
		),

		assignedCrew: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "assigned_crew",
				Help:      "Crew members currently assigned to a module",
			},
		),
	}
}

// Register registers all recycling metrics with the Prometheus registry
func (c *RecyclingMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.batchesTotal,
		c.batchInputKg,
		c.batchEfficiency,
		c.recoveredKgTotal,
		c.wastedKgTotal,
		c.rejectedTotal,
		c.resourcesSpent,
		c.resourceLevel,
		c.massBalance,
		c.storedKg,
		c.missionDay,
		c.productCount,
		c.assignedCrew,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordBatch records the outcome and cost of one processing batch
func (c *RecyclingMetricsCollector) RecordBatch(result *processing.Result, cost processing.Cost) {
	module := string(result.Module)

	c.batchesTotal.WithLabelValues(module, string(result.Mode), strconv.FormatBool(result.Optimized)).Inc()
	c.batchInputKg.WithLabelValues(module).Observe(result.TotalIn)
	c.batchEfficiency.WithLabelValues(module).Observe(result.Efficiency)

	c.recoveredKgTotal.WithLabelValues(module, "primary").Add(result.PrimaryKg)
	c.recoveredKgTotal.WithLabelValues(module, "secondary").Add(result.SecondaryKg)
	c.wastedKgTotal.WithLabelValues(module).Add(result.WastedKg)

	c.resourcesSpent.WithLabelValues("energy").Add(cost.Energy)
	c.resourcesSpent.WithLabelValues("water").Add(cost.Water)
	c.resourcesSpent.WithLabelValues("crew_hours").Add(cost.CrewHours)
}

// RecordRejectedBatch records a batch refused before processing
func (c *RecyclingMetricsCollector) RecordRejectedBatch(module processing.ModuleID, reason string) {
	c.rejectedTotal.WithLabelValues(string(module), reason).Inc()
}

// RecordSessionState refreshes all session gauges
func (c *RecyclingMetricsCollector) RecordSessionState(state SessionState) {
	c.resourceLevel.WithLabelValues("energy").Set(state.Resources.Energy)
	c.resourceLevel.WithLabelValues("water").Set(state.Resources.Water)
	c.resourceLevel.WithLabelValues("crew_hours").Set(state.Resources.CrewHours)

	c.massBalance.WithLabelValues("recovered").Set(state.Totals.RecoveredTotal)
	c.massBalance.WithLabelValues("wasted").Set(state.Totals.WastedTotal)

	c.storedKg.WithLabelValues("inventory").Set(state.InventoryKg)
	c.storedKg.WithLabelValues("waste_pool").Set(state.WastePoolKg)
	c.storedKg.WithLabelValues("products").Set(state.ProductKg)

	c.missionDay.Set(float64(state.MissionDay))
	c.productCount.Set(float64(state.ProductCount))
	c.assignedCrew.Set(float64(state.AssignedCrew))
}
