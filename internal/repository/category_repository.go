package repository

import (
	"context"

	"noticeboard/internal/domain/entity"
)

type CategoryRepository interface {
	Get(ctx context.Context, id int64) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	Create(ctx context.Context, c *entity.Category) error
	Update(ctx context.Context, c *entity.Category) error
	// Delete removes a category. The schema restricts deletion while
	// announcements still reference it.
	Delete(ctx context.Context, id int64) error
}
