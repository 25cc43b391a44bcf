package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/redcycle-go/internal/domain/mission"
	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
)

const (
	// DefaultNamespace prefixes every metric unless configured otherwise
	DefaultNamespace = "redcycle"
	// Subsystem for engine metrics
	subsystem = "engine"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// namespace is set by InitRegistry
	namespace = DefaultNamespace

	// globalRecyclingCollector is the singleton recycling metrics collector
	// Set by SetGlobalRecyclingCollector() when metrics are enabled
	globalRecyclingCollector RecyclingMetricsRecorder
)

// RecyclingMetricsRecorder defines the interface for recording processing metrics
// This interface is used by application code to record metrics
type RecyclingMetricsRecorder interface {
	RecordBatch(result *processing.Result, cost processing.Cost)
	RecordRejectedBatch(module processing.ModuleID, reason string)
	RecordSessionState(state SessionState)
}

// SessionState is the point-in-time view exported as gauges
type SessionState struct {
	Resources    mission.Resources
	MissionDay   int
	Totals       processing.MassBalance
	WastePoolKg  float64
	InventoryKg  float64
	ProductKg    float64
	ProductCount int
	AssignedCrew int
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry(ns string) {
	if ns != "" {
		namespace = ns
	}
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalRecyclingCollector sets the global recycling metrics collector
func SetGlobalRecyclingCollector(collector RecyclingMetricsRecorder) {
	globalRecyclingCollector = collector
}

// RecordBatch records a completed processing batch globally
func RecordBatch(result *processing.Result, cost processing.Cost) {
	if globalRecyclingCollector != nil && result != nil {
		globalRecyclingCollector.RecordBatch(result, cost)
	}
}

// RecordRejectedBatch records a batch refused before the engine ran
func RecordRejectedBatch(module processing.ModuleID, reason string) {
	if globalRecyclingCollector != nil {
		globalRecyclingCollector.RecordRejectedBatch(module, reason)
	}
}

// RecordSessionState refreshes the session gauges globally
func RecordSessionState(state SessionState) {
	if globalRecyclingCollector != nil {
		globalRecyclingCollector.RecordSessionState(state)
	}
}
