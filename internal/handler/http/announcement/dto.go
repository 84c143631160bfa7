// Package announcement provides HTTP handlers for announcement endpoints.
// It includes handlers for CRUD operations and the publication lifecycle
// (manual publish/unpublish, scheduling, takedown, view counting).
package announcement

import (
	"time"

	"noticeboard/internal/domain/entity"
)

// DTO represents the JSON structure for announcement data transfer.
type DTO struct {
	ID          int64      `json:"id" example:"1"`
	CategoryID  int64      `json:"category_id" example:"2"`
	AuthorID    string     `json:"author_id" example:"alice"`
	Title       string     `json:"title" example:"Office closed on Friday"`
	Content     string     `json:"content" example:"The office will be closed..."`
	Excerpt     string     `json:"excerpt" example:"Office closed Friday"`
	ImagePath   string     `json:"image_path" example:"/images/notice.png"`
	IsPublished bool       `json:"is_published" example:"false"`
	State       string     `json:"state" example:"scheduled"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	TakedownAt  *time.Time `json:"takedown_at,omitempty"`
	ViewCount   int64      `json:"view_count" example:"42"`
	IsPinned    bool       `json:"is_pinned" example:"false"`
	IsHero      bool       `json:"is_hero" example:"false"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// toDTO converts a domain entity to its transfer representation.
func toDTO(a *entity.Announcement) DTO {
	return DTO{
		ID:          a.ID,
		CategoryID:  a.CategoryID,
		AuthorID:    a.AuthorID,
		Title:       a.Title,
		Content:     a.Content,
		Excerpt:     a.Excerpt,
		ImagePath:   a.ImagePath,
		IsPublished: a.IsPublished,
		State:       string(a.PublicationState()),
		ScheduledAt: a.ScheduledAt,
		TakedownAt:  a.TakedownAt,
		ViewCount:   a.ViewCount,
		IsPinned:    a.IsPinned,
		IsHero:      a.IsHero,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
