package worker

import (
	"noticeboard/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WorkerMetrics provides Prometheus metrics for the sweep worker. It embeds
// the standard ConfigMetrics for configuration monitoring and adds metrics
// for cron-driven sweep execution.
type WorkerMetrics struct {
	*config.ConfigMetrics

	// CronJobRunsTotal counts cron-triggered sweep runs by status
	// (success or failure).
	CronJobRunsTotal *prometheus.CounterVec

	// CronJobDurationSeconds measures sweep job execution time.
	CronJobDurationSeconds prometheus.Histogram

	// CronJobTransitionsTotal counts announcements transitioned across
	// all cron-triggered sweeps.
	CronJobTransitionsTotal prometheus.Counter

	// CronJobLastSuccessTimestamp is the Unix timestamp of the last
	// successful sweep run.
	CronJobLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates worker metrics. Registration with the default
// registry happens on creation via promauto.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		CronJobRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_cron_job_runs_total",
			Help: "Total number of cron sweep runs by status (success/failure)",
		}, []string{"status"}),

		CronJobDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_cron_job_duration_seconds",
			Help:    "Duration of cron sweep execution in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 30, 60, 300},
		}),

		CronJobTransitionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_cron_job_transitions_total",
			Help: "Total number of announcements transitioned across all cron sweeps",
		}),

		CronJobLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_cron_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful cron sweep run",
		}),
	}
}

// MustRegister is a no-op kept for the conventional initialization pattern;
// promauto already registered the metrics in NewWorkerMetrics.
func (m *WorkerMetrics) MustRegister() {}

// RecordJobRun increments the run counter for "success" or "failure".
func (m *WorkerMetrics) RecordJobRun(status string) {
	m.CronJobRunsTotal.WithLabelValues(status).Inc()
}

// RecordJobDuration observes the duration of a sweep run in seconds.
func (m *WorkerMetrics) RecordJobDuration(seconds float64) {
	m.CronJobDurationSeconds.Observe(seconds)
}

// RecordTransitions adds the number of announcements a sweep transitioned.
func (m *WorkerMetrics) RecordTransitions(count int) {
	m.CronJobTransitionsTotal.Add(float64(count))
}

// RecordLastSuccess records the current time as the last successful run.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.CronJobLastSuccessTimestamp.SetToCurrentTime()
}
