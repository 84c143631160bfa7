package repository

import (
	"context"
	"errors"

	"noticeboard/internal/domain/entity"
)

// ErrVersionConflict is returned by RevisionRepository.Create when another
// writer inserted the same (announcement_id, version) pair first. Callers
// recompute the next version and retry.
var ErrVersionConflict = errors.New("revision version conflict")

// RevisionRepository is the append-only persistence contract for revisions.
// Rows are never updated or deleted by the application; deletion happens only
// through the announcement's cascading delete.
type RevisionRepository interface {
	// Create inserts a new revision. The (announcement_id, version) pair is
	// protected by a unique constraint; duplicate inserts surface as
	// ErrVersionConflict.
	Create(ctx context.Context, rev *entity.Revision) error
	// MaxVersion returns the highest version recorded for the announcement,
	// or 0 when it has no revisions yet.
	MaxVersion(ctx context.Context, announcementID int64) (int, error)
	// Get returns (nil, nil) if the revision is not found.
	Get(ctx context.Context, id int64) (*entity.Revision, error)
	// ListByAnnouncement retrieves revisions ordered by version DESC
	// using LIMIT and OFFSET.
	ListByAnnouncement(ctx context.Context, announcementID int64, offset, limit int) ([]*entity.Revision, error)
	// CountByAnnouncement returns the total number of revisions for the
	// announcement, used for pagination metadata.
	CountByAnnouncement(ctx context.Context, announcementID int64) (int64, error)
}
