package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Backend call latency (milliseconds), labelled by operation and outcome.
	BackendCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_call_latency_ms",
			Help:    "Triage backend call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		},
		[]string{"operation", "status"},
	)

	// Backend call counter by operation and outcome.
	BackendCallCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_call_count",
			Help: "Total number of triage backend calls",
		},
		[]string{"operation", "status"},
	)

	// Optimistic mutations rolled back after a failed confirmation call.
	MutationRollbackCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mutation_rollback_count",
			Help: "Total number of optimistic mutations rolled back",
		},
		[]string{"collection"},
	)
)

// RecordBackendCall records one backend round trip.
func RecordBackendCall(operation, status string, duration time.Duration) {
	BackendCallLatency.WithLabelValues(operation, status).Observe(float64(duration.Milliseconds()))
	BackendCallCount.WithLabelValues(operation, status).Inc()
}

// IncrementMutationRollback counts a rollback against a collection.
func IncrementMutationRollback(collection string) {
	MutationRollbackCount.WithLabelValues(collection).Inc()
}
