// Package metrics defines the Prometheus instruments shared across the app.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Selection lifecycle metrics
var (
	// SelectionsTotal tracks selection operations by outcome
	// (confirmed, remembered, cleared, expired, not_in_roster).
	SelectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selections_total",
			Help: "Selection operations by outcome",
		},
		[]string{"outcome"},
	)

	// StorageFailures tracks swallowed storage errors by backend and operation.
	// These degrade to "no stored value" rather than surfacing to the client.
	StorageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_failures_total",
			Help: "Swallowed storage failures by backend and operation",
		},
		[]string{"backend", "operation"},
	)
)

// Redis resilience metrics
var (
	// CircuitBreakerStateChanges tracks circuit breaker state transitions
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)

	// CircuitBreakerState tracks current circuit breaker state (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)

// HTTP metrics
var (
	// HTTPRequestDuration tracks request latency by route and status class.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"route", "status"},
	)
)
