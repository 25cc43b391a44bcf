package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/redcycle-go/internal/domain/shared"
)

// Request kinds
const (
	KindMutation = "mutation"
	KindRead     = "read"
)

// Request outcomes
const (
	StatusSuccess  = "success"
	StatusRejected = "rejected" // refused by a domain rule, session unchanged
	StatusError    = "error"
)

// CommandMetricsCollector handles mediator request metrics
type CommandMetricsCollector struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
}

// NewCommandMetricsCollector creates a new request metrics collector
func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Request handling duration, including the session commit for mutations",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"request", "kind"},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Requests handled by name, kind and outcome",
			},
			[]string{"request", "kind", "status"},
		),
	}
}

// Register registers all request metrics with the Prometheus registry
func (c *CommandMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	for _, metric := range []prometheus.Collector{c.requestDuration, c.requestsTotal} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// RecordCommandExecution records one handled request
func (c *CommandMetricsCollector) RecordCommandExecution(name, kind string, seconds float64, err error) {
	c.requestDuration.WithLabelValues(name, kind).Observe(seconds)
	c.requestsTotal.WithLabelValues(name, kind, outcome(err)).Inc()
}

// outcome classifies an error as a domain rejection or a failure
func outcome(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case shared.IsRejection(err):
		return StatusRejected
	default:
		return StatusError
	}
}
