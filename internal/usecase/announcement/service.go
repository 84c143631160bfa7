package announcement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"noticeboard/internal/common/pagination"
	"noticeboard/internal/domain/entity"
	"noticeboard/internal/observability/metrics"
	"noticeboard/internal/repository"
)

// Snapshotter captures an announcement's current state into the revision
// history. Implemented by the revision use case service.
type Snapshotter interface {
	Snapshot(ctx context.Context, announcementID int64, authorID string, changeType entity.ChangeType, summary *string) (*entity.Revision, error)
}

// CreateInput represents the input parameters for creating a new announcement.
// New announcements always start unpublished.
type CreateInput struct {
	CategoryID int64
	Title      string
	Content    string
	Excerpt    string
	ImagePath  string
	IsPinned   bool
	IsHero     bool
}

// UpdateInput represents the input parameters for updating an existing announcement.
// Fields with nil values will not be updated.
type UpdateInput struct {
	ID            int64
	CategoryID    *int64
	Title         *string
	Content       *string
	Excerpt       *string
	ImagePath     *string
	IsPinned      *bool
	IsHero        *bool
	ChangeSummary *string
}

// Service provides announcement management use cases.
// It handles business logic for announcement operations and delegates
// persistence to the repository.
type Service struct {
	Repo       repository.AnnouncementRepository
	Categories repository.CategoryRepository
	Snapshots  Snapshotter
	Logger     *slog.Logger
}

// NewService creates an announcement service. Snapshots may be nil, in which
// case edits are applied without history bookkeeping.
func NewService(repo repository.AnnouncementRepository, categories repository.CategoryRepository, snapshots Snapshotter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{Repo: repo, Categories: categories, Snapshots: snapshots, Logger: logger}
}

// PaginatedResult represents the result of a paginated query.
type PaginatedResult struct {
	Data       []*entity.Announcement
	Pagination pagination.Metadata
}

// List retrieves all announcements from the repository.
func (s *Service) List(ctx context.Context) ([]*entity.Announcement, error) {
	announcements, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return announcements, nil
}

// ListPaginated retrieves announcements with pagination support.
func (s *Service) ListPaginated(ctx context.Context, params pagination.Params) (*PaginatedResult, error) {
	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count announcements: %w", err)
	}

	offset := pagination.CalculateOffset(params.Page, params.Limit)
	announcements, err := s.Repo.ListPaginated(ctx, offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list announcements paginated: %w", err)
	}

	return &PaginatedResult{
		Data: announcements,
		Pagination: pagination.Metadata{
			Total:      total,
			Page:       params.Page,
			Limit:      params.Limit,
			TotalPages: pagination.CalculateTotalPages(total, params.Limit),
		},
	}, nil
}

// Get retrieves a single announcement by its ID.
// Returns ErrInvalidAnnouncementID if the ID is not positive.
// Returns ErrAnnouncementNotFound if the announcement does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Announcement, error) {
	if id <= 0 {
		return nil, ErrInvalidAnnouncementID
	}

	ann, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get announcement: %w", err)
	}
	if ann == nil {
		return nil, ErrAnnouncementNotFound
	}
	return ann, nil
}

// Create creates a new unpublished announcement authored by authorID.
// Returns a ValidationError if any input field is invalid.
func (s *Service) Create(ctx context.Context, authorID string, in CreateInput) (*entity.Announcement, error) {
	if authorID == "" {
		return nil, &entity.ValidationError{Field: "authorID", Message: "is required"}
	}

	cat, err := s.Categories.Get(ctx, in.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if cat == nil {
		return nil, ErrCategoryNotFound
	}

	now := time.Now()
	ann := &entity.Announcement{
		CategoryID: in.CategoryID,
		AuthorID:   authorID,
		Title:      in.Title,
		Content:    in.Content,
		Excerpt:    in.Excerpt,
		ImagePath:  in.ImagePath,
		IsPinned:   in.IsPinned,
		IsHero:     in.IsHero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := ann.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, ann); err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}
	return ann, nil
}

// Update modifies an existing announcement with the provided input.
// Only non-nil fields in the input will be updated.
//
// Before the mutation is applied a snapshot of the current state is written
// to the revision history. The snapshot is best-effort: if it fails, the
// failure is logged and counted but the edit still proceeds. Losing one
// history entry is preferable to blocking the editor.
func (s *Service) Update(ctx context.Context, authorID string, in UpdateInput) (*entity.Announcement, error) {
	if in.ID <= 0 {
		return nil, ErrInvalidAnnouncementID
	}

	ann, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get announcement: %w", err)
	}
	if ann == nil {
		return nil, ErrAnnouncementNotFound
	}

	if s.Snapshots != nil {
		if _, err := s.Snapshots.Snapshot(ctx, in.ID, authorID, entity.ChangeEdit, in.ChangeSummary); err != nil {
			metrics.RecordSnapshotDropped()
			s.Logger.Warn("pre-edit snapshot failed, continuing with edit",
				slog.Int64("announcement_id", in.ID),
				slog.Any("error", err))
		}
	}

	if in.CategoryID != nil {
		cat, err := s.Categories.Get(ctx, *in.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("get category: %w", err)
		}
		if cat == nil {
			return nil, ErrCategoryNotFound
		}
		ann.CategoryID = *in.CategoryID
	}
	if in.Title != nil {
		ann.Title = *in.Title
	}
	if in.Content != nil {
		ann.Content = *in.Content
	}
	if in.Excerpt != nil {
		ann.Excerpt = *in.Excerpt
	}
	if in.ImagePath != nil {
		ann.ImagePath = *in.ImagePath
	}
	if in.IsPinned != nil {
		ann.IsPinned = *in.IsPinned
	}
	if in.IsHero != nil {
		ann.IsHero = *in.IsHero
	}
	ann.UpdatedAt = time.Now()

	if err := ann.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Update(ctx, ann); err != nil {
		return nil, fmt.Errorf("update announcement: %w", err)
	}
	return ann, nil
}

// Delete removes an announcement by its ID. Revisions go with it via the
// schema's cascading delete.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidAnnouncementID
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	return nil
}

// Publish manually flips the announcement live. The pending scheduled_at is
// cleared (publishing early consumes the schedule); a pending takedown_at is
// kept, so an early publish still honors a planned takedown.
func (s *Service) Publish(ctx context.Context, id int64) error {
	return s.setPublished(ctx, id, true)
}

// Unpublish manually takes the announcement down, clearing any pending
// takedown_at; a pending scheduled_at is kept.
func (s *Service) Unpublish(ctx context.Context, id int64) error {
	return s.setPublished(ctx, id, false)
}

func (s *Service) setPublished(ctx context.Context, id int64, published bool) error {
	if id <= 0 {
		return ErrInvalidAnnouncementID
	}

	ann, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get announcement: %w", err)
	}
	if ann == nil {
		return ErrAnnouncementNotFound
	}

	if err := s.Repo.SetPublished(ctx, id, published); err != nil {
		return fmt.Errorf("set published: %w", err)
	}
	return nil
}

// Schedule stores or clears the scheduled_at timestamp. The sweep will
// publish the announcement once the timestamp fires; the scheduler itself
// never sets this field.
func (s *Service) Schedule(ctx context.Context, id int64, at *time.Time) error {
	return s.setTimestamp(ctx, id, at, s.Repo.SetSchedule)
}

// ScheduleTakedown stores or clears the takedown_at timestamp.
func (s *Service) ScheduleTakedown(ctx context.Context, id int64, at *time.Time) error {
	return s.setTimestamp(ctx, id, at, s.Repo.SetTakedown)
}

func (s *Service) setTimestamp(ctx context.Context, id int64, at *time.Time, set func(context.Context, int64, *time.Time) error) error {
	if id <= 0 {
		return ErrInvalidAnnouncementID
	}

	ann, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get announcement: %w", err)
	}
	if ann == nil {
		return ErrAnnouncementNotFound
	}

	if err := set(ctx, id, at); err != nil {
		return fmt.Errorf("set timestamp: %w", err)
	}
	return nil
}

// RecordView bumps the announcement's view counter. View tracking does not
// go through the revision path.
func (s *Service) RecordView(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidAnnouncementID
	}

	if err := s.Repo.IncrementViewCount(ctx, id); err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	return nil
}
