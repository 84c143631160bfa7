package metrics

import "time"

// Sweep outcomes recorded by RecordSweepRun.
const (
	SweepCompleted = "completed"
	SweepThrottled = "throttled"
	SweepAborted   = "aborted"
)

// Sweep actions recorded by RecordSweepTransition and RecordSweepRecordFailure.
const (
	ActionPublish  = "publish"
	ActionTakedown = "takedown"
)

// RecordSweepRun records the outcome of one sweep invocation.
// Duration is only observed for completed sweeps.
func RecordSweepRun(outcome string, duration time.Duration) {
	SweepRunsTotal.WithLabelValues(outcome).Inc()
	if outcome == SweepCompleted {
		SweepDuration.Observe(duration.Seconds())
	}
}

// RecordSweepTransition records a single publish or takedown transition.
func RecordSweepTransition(action string) {
	SweepTransitionsTotal.WithLabelValues(action).Inc()
}

// RecordSweepRecordFailure records a per-record update failure that the
// sweep skipped.
func RecordSweepRecordFailure(action string) {
	SweepRecordFailuresTotal.WithLabelValues(action).Inc()
}

// RecordRevisionCreated records a successfully written revision.
func RecordRevisionCreated(changeType string) {
	RevisionsCreatedTotal.WithLabelValues(changeType).Inc()
}

// RecordSnapshotDropped records a best-effort snapshot failure swallowed
// during an edit flow.
func RecordSnapshotDropped() {
	RevisionSnapshotsDroppedTotal.Inc()
}

// RecordVersionConflict records a version-number race retried by the
// revision store.
func RecordVersionConflict() {
	RevisionVersionConflictsTotal.Inc()
}
