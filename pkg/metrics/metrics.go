// Package metrics provides the Prometheus registry used by the pagination
// packages. Metrics are defined next to the code that records them
// (pkg/instrument, pkg/snapshot) and registered on Registry via
// promauto.With.
//
// This package documents every metric in one place.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the Prometheus registerer all pagination metrics are added to.
var Registry = prometheus.DefaultRegisterer

// Gatherer is the matching gatherer, used by the replay command to dump
// metrics after a run.
var Gatherer = prometheus.DefaultGatherer

// Metrics Documentation
//
// Reducer Metrics (pkg/instrument):
//   - pagination_transitions_total{transition} (Counter): Applied transitions (request, success, failure, create)
//   - pagination_key_errors_total (Counter): Actions rejected because the key function produced no key
//   - pagination_ignored_actions_total (Counter): Actions passed through unchanged
//   - pagination_buckets (Gauge): Buckets in the most recent keyed state
//
// Snapshot Metrics (pkg/snapshot):
//   - pagination_snapshot_operations_total{operation} (Counter): Successful save/load/delete calls
//   - pagination_snapshot_misses_total (Counter): Loads that found no snapshot
//   - pagination_snapshot_errors_total{operation} (Counter): Failed snapshot operations
//   - pagination_snapshot_bytes (Gauge): Size of the last snapshot written
//
// Example Prometheus Queries:
//
//   # Success ratio of page fetches
//   rate(pagination_transitions_total{transition="success"}[5m]) /
//   rate(pagination_transitions_total{transition="request"}[5m])
//
//   # Key extraction problems
//   increase(pagination_key_errors_total[1h]) > 0
