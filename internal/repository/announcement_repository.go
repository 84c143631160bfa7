package repository

import (
	"context"
	"time"

	"noticeboard/internal/domain/entity"
)

// AnnouncementRepository is the persistence contract for announcements.
// Row updates are atomic per record; the sweep methods rely on that to stay
// idempotent under concurrent ticks.
type AnnouncementRepository interface {
	List(ctx context.Context) ([]*entity.Announcement, error)
	// ListPaginated retrieves announcements ordered by created_at DESC
	// using LIMIT and OFFSET.
	ListPaginated(ctx context.Context, offset, limit int) ([]*entity.Announcement, error)
	// Count returns the total number of announcements, used for
	// pagination metadata.
	Count(ctx context.Context) (int64, error)
	// Get returns (nil, nil) if the announcement is not found.
	Get(ctx context.Context, id int64) (*entity.Announcement, error)
	Create(ctx context.Context, a *entity.Announcement) error
	Update(ctx context.Context, a *entity.Announcement) error
	Delete(ctx context.Context, id int64) error

	// ListDuePublish returns ids of announcements with
	// is_published = false AND scheduled_at <= now.
	ListDuePublish(ctx context.Context, now time.Time) ([]int64, error)
	// ListDueTakedown returns ids of announcements with
	// is_published = true AND takedown_at <= now.
	ListDueTakedown(ctx context.Context, now time.Time) ([]int64, error)
	// MarkPublished flips is_published to true and clears scheduled_at in a
	// single guarded update. Returns false when the row no longer matched,
	// meaning a concurrent sweep already processed it.
	MarkPublished(ctx context.Context, id int64) (bool, error)
	// MarkTakenDown flips is_published to false and clears takedown_at in a
	// single guarded update. Returns false when the row no longer matched.
	MarkTakenDown(ctx context.Context, id int64) (bool, error)

	// SetPublished applies a manual publish toggle. Publishing clears
	// scheduled_at and unpublishing clears takedown_at, so a later sweep
	// cannot undo an explicit admin action.
	SetPublished(ctx context.Context, id int64, published bool) error
	// SetSchedule stores or clears the scheduled_at timestamp.
	SetSchedule(ctx context.Context, id int64, at *time.Time) error
	// SetTakedown stores or clears the takedown_at timestamp.
	SetTakedown(ctx context.Context, id int64, at *time.Time) error

	// UpdateEditorial overwrites only the editorial fields; publication
	// flags, category, and counters are left untouched. Used by restore.
	UpdateEditorial(ctx context.Context, id int64, title, content, excerpt, imagePath string) error
	// IncrementViewCount bumps view_count by one.
	IncrementViewCount(ctx context.Context, id int64) error
}
