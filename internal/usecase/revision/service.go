package revision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"noticeboard/internal/common/pagination"
	"noticeboard/internal/domain/entity"
	"noticeboard/internal/observability/metrics"
	"noticeboard/internal/repository"
	"noticeboard/internal/resilience/retry"
)

// Service provides revision history use cases. It is the only writer of the
// per-announcement version sequence.
type Service struct {
	Announcements repository.AnnouncementRepository
	Revisions     repository.RevisionRepository
	Logger        *slog.Logger
}

// NewService creates a revision service.
func NewService(announcements repository.AnnouncementRepository, revisions repository.RevisionRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{Announcements: announcements, Revisions: revisions, Logger: logger}
}

// PaginatedHistory represents one page of an announcement's history.
type PaginatedHistory struct {
	Data       []*entity.Revision
	Pagination pagination.Metadata
}

// FieldChanges flags which editorial fields differ between two revisions.
type FieldChanges struct {
	Title     bool `json:"title"`
	Content   bool `json:"content"`
	Excerpt   bool `json:"excerpt"`
	ImagePath bool `json:"image_path"`
}

// Comparison is the result of comparing two revisions.
type Comparison struct {
	RevisionA *entity.Revision
	RevisionB *entity.Revision
	Changed   FieldChanges
}

// Snapshot captures the current state of the announcement into a new
// revision with the next version number. The read-max/insert pair races
// under concurrent edits of the same announcement; the unique constraint on
// (announcement_id, version) detects the loser, which recomputes and retries.
func (s *Service) Snapshot(ctx context.Context, announcementID int64, authorID string, changeType entity.ChangeType, summary *string) (*entity.Revision, error) {
	if announcementID <= 0 {
		return nil, ErrInvalidAnnouncementID
	}
	if authorID == "" {
		return nil, ErrMissingAuthor
	}

	ann, err := s.Announcements.Get(ctx, announcementID)
	if err != nil {
		return nil, fmt.Errorf("get announcement: %w", err)
	}
	if ann == nil {
		return nil, ErrAnnouncementNotFound
	}

	var rev *entity.Revision
	cfg := retry.VersionConflictConfig(func(err error) bool {
		if errors.Is(err, repository.ErrVersionConflict) {
			metrics.RecordVersionConflict()
			return true
		}
		return false
	})
	err = retry.WithBackoff(ctx, cfg, func() error {
		maxVersion, err := s.Revisions.MaxVersion(ctx, announcementID)
		if err != nil {
			return fmt.Errorf("max version: %w", err)
		}
		rev = entity.SnapshotOf(ann, authorID, changeType, summary)
		rev.Version = maxVersion + 1
		rev.CreatedAt = time.Now()
		if err := rev.Validate(); err != nil {
			return err
		}
		return s.Revisions.Create(ctx, rev)
	})
	if err != nil {
		return nil, fmt.Errorf("create revision: %w", err)
	}

	metrics.RecordRevisionCreated(string(changeType))
	return rev, nil
}

// Restore overwrites the announcement's editorial fields with the chosen
// revision's snapshot. The pre-restore state is snapshotted first, tagged
// RESTORE, so the restore itself is undoable; unlike edit-flow snapshots
// that pre-snapshot is mandatory, because skipping it would make the restore
// unrecoverable. Publication flags, category, and the view counter are
// never touched.
func (s *Service) Restore(ctx context.Context, revisionID int64, authorID string) (*entity.Announcement, error) {
	if revisionID <= 0 {
		return nil, ErrInvalidRevisionID
	}
	if authorID == "" {
		return nil, ErrMissingAuthor
	}

	rev, err := s.Revisions.Get(ctx, revisionID)
	if err != nil {
		return nil, fmt.Errorf("get revision: %w", err)
	}
	if rev == nil {
		return nil, ErrRevisionNotFound
	}

	summary := fmt.Sprintf("Restored to version %d", rev.Version)
	if _, err := s.Snapshot(ctx, rev.AnnouncementID, authorID, entity.ChangeRestore, &summary); err != nil {
		return nil, fmt.Errorf("snapshot before restore: %w", err)
	}

	if err := s.Announcements.UpdateEditorial(ctx, rev.AnnouncementID,
		rev.Title, rev.Content, rev.Excerpt, rev.ImagePath); err != nil {
		return nil, fmt.Errorf("apply restore: %w", err)
	}

	ann, err := s.Announcements.Get(ctx, rev.AnnouncementID)
	if err != nil {
		return nil, fmt.Errorf("get announcement: %w", err)
	}
	if ann == nil {
		return nil, ErrAnnouncementNotFound
	}

	s.Logger.Info("revision restored",
		slog.Int64("announcement_id", rev.AnnouncementID),
		slog.Int64("revision_id", rev.ID),
		slog.Int("version", rev.Version),
		slog.String("author_id", authorID))
	return ann, nil
}

// History returns one page of the announcement's revisions, newest version
// first, along with pagination metadata.
func (s *Service) History(ctx context.Context, announcementID int64, params pagination.Params) (*PaginatedHistory, error) {
	if announcementID <= 0 {
		return nil, ErrInvalidAnnouncementID
	}

	ann, err := s.Announcements.Get(ctx, announcementID)
	if err != nil {
		return nil, fmt.Errorf("get announcement: %w", err)
	}
	if ann == nil {
		return nil, ErrAnnouncementNotFound
	}

	total, err := s.Revisions.CountByAnnouncement(ctx, announcementID)
	if err != nil {
		return nil, fmt.Errorf("count revisions: %w", err)
	}

	offset := pagination.CalculateOffset(params.Page, params.Limit)
	revisions, err := s.Revisions.ListByAnnouncement(ctx, announcementID, offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}

	return &PaginatedHistory{
		Data: revisions,
		Pagination: pagination.Metadata{
			Total:      total,
			Page:       params.Page,
			Limit:      params.Limit,
			TotalPages: pagination.CalculateTotalPages(total, params.Limit),
		},
	}, nil
}

// Compare returns boolean per-field difference flags between two revisions.
// It does not compute a diff; the admin UI only needs to know which fields
// changed.
func (s *Service) Compare(ctx context.Context, idA, idB int64) (*Comparison, error) {
	if idA <= 0 || idB <= 0 {
		return nil, ErrInvalidRevisionID
	}

	revA, err := s.Revisions.Get(ctx, idA)
	if err != nil {
		return nil, fmt.Errorf("get revision: %w", err)
	}
	if revA == nil {
		return nil, ErrRevisionNotFound
	}

	revB, err := s.Revisions.Get(ctx, idB)
	if err != nil {
		return nil, fmt.Errorf("get revision: %w", err)
	}
	if revB == nil {
		return nil, ErrRevisionNotFound
	}

	return &Comparison{
		RevisionA: revA,
		RevisionB: revB,
		Changed: FieldChanges{
			Title:     revA.Title != revB.Title,
			Content:   revA.Content != revB.Content,
			Excerpt:   revA.Excerpt != revB.Excerpt,
			ImagePath: revA.ImagePath != revB.ImagePath,
		},
	}, nil
}
