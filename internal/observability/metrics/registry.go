// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Sweep metrics track the scheduled publish/takedown engine
var (
	// SweepRunsTotal counts sweep invocations by outcome
	// (completed, throttled, aborted)
	SweepRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sweep_runs_total",
			Help: "Total number of sweep invocations by outcome",
		},
		[]string{"outcome"},
	)

	// SweepTransitionsTotal counts announcements transitioned by a sweep
	SweepTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sweep_transitions_total",
			Help: "Total number of announcements published or taken down by sweeps",
		},
		[]string{"action"},
	)

	// SweepRecordFailuresTotal counts per-record update failures that were
	// skipped without aborting the sweep
	SweepRecordFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sweep_record_failures_total",
			Help: "Total number of per-record update failures skipped during sweeps",
		},
		[]string{"action"},
	)

	// SweepDuration measures how long a completed sweep took
	SweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sweep_duration_seconds",
			Help:    "Duration of completed sweeps in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Revision metrics track the revision history subsystem
var (
	// RevisionsCreatedTotal counts revisions written by change type
	RevisionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "revisions_created_total",
			Help: "Total number of revisions created by change type",
		},
		[]string{"change_type"},
	)

	// RevisionSnapshotsDroppedTotal counts best-effort pre-edit snapshots
	// that failed and were swallowed so the edit could proceed
	RevisionSnapshotsDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "revision_snapshots_dropped_total",
			Help: "Total number of best-effort snapshots dropped during edits",
		},
	)

	// RevisionVersionConflictsTotal counts version-number races that were
	// resolved by retrying
	RevisionVersionConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "revision_version_conflicts_total",
			Help: "Total number of revision version conflicts retried",
		},
	)
)
