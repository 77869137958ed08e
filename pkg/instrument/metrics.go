package instrument

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Sternrassler/eve-pagination/pkg/metrics"
)

var factory = promauto.With(metrics.Registry)

var (
	// TransitionsTotal counts applied transitions by kind
	TransitionsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagination_transitions_total",
			Help: "Total number of pagination transitions applied",
		},
		[]string{"transition"}, // "request", "success", "failure", "create"
	)

	// KeyErrorsTotal counts actions rejected because no bucket key could be extracted
	KeyErrorsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "pagination_key_errors_total",
			Help: "Total number of actions rejected with a key error",
		},
	)

	// IgnoredTotal counts actions the reducer did not recognize
	IgnoredTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "pagination_ignored_actions_total",
			Help: "Total number of actions passed through unchanged",
		},
	)

	// Buckets tracks the number of buckets in the last keyed state produced
	Buckets = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "pagination_buckets",
			Help: "Number of buckets in the most recent keyed pagination state",
		},
	)
)
