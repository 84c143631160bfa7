// Package schedule implements the scheduled publish/takedown engine.
// A sweep brings is_published in line with the scheduled_at/takedown_at
// timestamps exactly once per threshold crossing, no matter how many times
// it runs: clearing the fired timestamp is the idempotence guard.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"noticeboard/internal/observability/metrics"
	"noticeboard/internal/repository"
)

// Result reports how many announcements a sweep transitioned.
type Result struct {
	Published int
	TakenDown int
}

// Service runs sweeps against the announcement store. It holds no state
// beyond the throttle guard; the caller supplies the clock, so tests can
// drive time explicitly.
type Service struct {
	Repo   repository.AnnouncementRepository
	Guard  *Guard
	Logger *slog.Logger
}

// NewService creates a sweep service with the given store and throttle guard.
func NewService(repo repository.AnnouncementRepository, guard *Guard, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{Repo: repo, Guard: guard, Logger: logger}
}

// RunSweep publishes every announcement whose scheduled_at has fired, then
// takes down every announcement whose takedown_at has fired. The two
// selections are disjoint on is_published, so a record can never make both
// transitions in one sweep.
//
// Failure semantics: a failed selection aborts the whole sweep and is
// returned to the caller; a failed single-record update is logged, counted,
// and skipped so one bad row cannot starve the rest. Calls inside the
// throttle window return a zero Result without touching storage.
func (s *Service) RunSweep(ctx context.Context, now time.Time) (Result, error) {
	if !s.Guard.Allow(now) {
		metrics.RecordSweepRun(metrics.SweepThrottled, 0)
		return Result{}, nil
	}

	start := time.Now()
	var res Result

	// Both selections run before any transition is applied. A record whose
	// takedown_at is already in the past when it gets published therefore
	// stays up until the next sweep instead of flapping within this one.
	publishIDs, err := s.Repo.ListDuePublish(ctx, now)
	if err != nil {
		metrics.RecordSweepRun(metrics.SweepAborted, 0)
		return Result{}, fmt.Errorf("list due publish: %w", err)
	}
	takedownIDs, err := s.Repo.ListDueTakedown(ctx, now)
	if err != nil {
		metrics.RecordSweepRun(metrics.SweepAborted, 0)
		return Result{}, fmt.Errorf("list due takedown: %w", err)
	}

	for _, id := range publishIDs {
		ok, err := s.Repo.MarkPublished(ctx, id)
		if err != nil {
			metrics.RecordSweepRecordFailure(metrics.ActionPublish)
			s.Logger.Error("sweep: publish transition failed, skipping record",
				slog.Int64("announcement_id", id),
				slog.Any("error", err))
			continue
		}
		if !ok {
			// a concurrent sweep already cleared scheduled_at
			continue
		}
		metrics.RecordSweepTransition(metrics.ActionPublish)
		res.Published++
	}

	for _, id := range takedownIDs {
		ok, err := s.Repo.MarkTakenDown(ctx, id)
		if err != nil {
			metrics.RecordSweepRecordFailure(metrics.ActionTakedown)
			s.Logger.Error("sweep: takedown transition failed, skipping record",
				slog.Int64("announcement_id", id),
				slog.Any("error", err))
			continue
		}
		if !ok {
			continue
		}
		metrics.RecordSweepTransition(metrics.ActionTakedown)
		res.TakenDown++
	}

	s.Guard.Complete(now)
	metrics.RecordSweepRun(metrics.SweepCompleted, time.Since(start))

	if res.Published > 0 || res.TakenDown > 0 {
		s.Logger.Info("sweep completed",
			slog.Int("published", res.Published),
			slog.Int("taken_down", res.TakenDown))
	}
	return res, nil
}
