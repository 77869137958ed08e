package snapshot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Sternrassler/eve-pagination/pkg/metrics"
)

var factory = promauto.With(metrics.Registry)

var (
	// Operations tracks successful snapshot operations
	Operations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagination_snapshot_operations_total",
			Help: "Total number of successful pagination snapshot operations",
		},
		[]string{"operation"}, // "save", "load", "delete"
	)

	// Misses tracks loads that found no snapshot
	Misses = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "pagination_snapshot_misses_total",
			Help: "Total number of pagination snapshot misses",
		},
	)

	// Errors tracks failed snapshot operations
	Errors = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagination_snapshot_errors_total",
			Help: "Total number of pagination snapshot operation errors",
		},
		[]string{"operation"}, // "save", "load", "delete"
	)

	// Size tracks the size of the last snapshot written
	Size = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "pagination_snapshot_bytes",
			Help: "Size in bytes of the most recently written pagination snapshot",
		},
	)
)
