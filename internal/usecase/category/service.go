package category

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"noticeboard/internal/domain/entity"
	"noticeboard/internal/repository"
)

// CreateInput represents the input parameters for creating a new category.
type CreateInput struct {
	Name string
	Slug string
}

// UpdateInput represents the input parameters for updating an existing category.
// Fields with nil values will not be updated.
type UpdateInput struct {
	ID   int64
	Name *string
	Slug *string
}

// Service provides category management use cases.
type Service struct {
	Repo   repository.CategoryRepository
	Logger *slog.Logger
}

// NewService creates a category service.
func NewService(repo repository.CategoryRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{Repo: repo, Logger: logger}
}

// List retrieves all categories.
func (s *Service) List(ctx context.Context) ([]*entity.Category, error) {
	categories, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Get retrieves a single category by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Category, error) {
	if id <= 0 {
		return nil, ErrInvalidCategoryID
	}

	cat, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if cat == nil {
		return nil, ErrCategoryNotFound
	}
	return cat, nil
}

// Create creates a new category. Returns ErrDuplicateSlug when the slug is
// already taken.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Category, error) {
	cat := &entity.Category{
		Name:      in.Name,
		Slug:      in.Slug,
		CreatedAt: time.Now(),
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetBySlug(ctx, in.Slug)
	if err != nil {
		return nil, fmt.Errorf("get category by slug: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateSlug
	}

	if err := s.Repo.Create(ctx, cat); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return cat, nil
}

// Update modifies an existing category with the provided input.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Category, error) {
	if in.ID <= 0 {
		return nil, ErrInvalidCategoryID
	}

	cat, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if cat == nil {
		return nil, ErrCategoryNotFound
	}

	if in.Name != nil {
		cat.Name = *in.Name
	}
	if in.Slug != nil && *in.Slug != cat.Slug {
		existing, err := s.Repo.GetBySlug(ctx, *in.Slug)
		if err != nil {
			return nil, fmt.Errorf("get category by slug: %w", err)
		}
		if existing != nil {
			return nil, ErrDuplicateSlug
		}
		cat.Slug = *in.Slug
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Update(ctx, cat); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return cat, nil
}

// Delete removes a category by its ID. The schema restricts deletion while
// announcements still reference the category, which surfaces as a repository
// error here.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidCategoryID
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
