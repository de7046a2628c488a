// Package metrics holds the prometheus collectors for storage strategy operations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Storage counts and times storage strategy operations.
type Storage struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewStorage creates the collectors and registers them on reg.
func NewStorage(reg prometheus.Registerer) (*Storage, error) {
	m := &Storage{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storage_operations_total",
				Help: "Total number of storage strategy operations.",
			},
			[]string{"strategy", "operation", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "storage_operation_duration_seconds",
				Help:    "Duration of storage strategy operations in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"strategy", "operation"},
		),
	}

	for _, c := range []prometheus.Collector{m.operations, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe records one finished operation.
func (m *Storage) Observe(strategy, operation string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.operations.WithLabelValues(strategy, operation, status).Inc()
	m.duration.WithLabelValues(strategy, operation).Observe(elapsed.Seconds())
}
