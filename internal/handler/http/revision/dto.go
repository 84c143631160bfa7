// Package revision provides HTTP handlers for revision history endpoints:
// per-announcement history pages, restoring a prior version, and comparing
// two revisions.
package revision

import (
	"time"

	"noticeboard/internal/domain/entity"
)

// DTO represents the JSON structure for revision data transfer.
type DTO struct {
	ID             int64     `json:"id" example:"1"`
	AnnouncementID int64     `json:"announcement_id" example:"7"`
	Version        int       `json:"version" example:"3"`
	Title          string    `json:"title" example:"Office closed on Friday"`
	Content        string    `json:"content" example:"The office will be closed..."`
	Excerpt        string    `json:"excerpt" example:"Office closed Friday"`
	ImagePath      string    `json:"image_path" example:"/images/notice.png"`
	ChangeType     string    `json:"change_type" example:"EDIT"`
	ChangeSummary  *string   `json:"change_summary,omitempty"`
	AuthorID       string    `json:"author_id" example:"alice"`
	CreatedAt      time.Time `json:"created_at"`
}

// toDTO converts a domain entity to its transfer representation.
func toDTO(rev *entity.Revision) DTO {
	return DTO{
		ID:             rev.ID,
		AnnouncementID: rev.AnnouncementID,
		Version:        rev.Version,
		Title:          rev.Title,
		Content:        rev.Content,
		Excerpt:        rev.Excerpt,
		ImagePath:      rev.ImagePath,
		ChangeType:     string(rev.ChangeType),
		ChangeSummary:  rev.ChangeSummary,
		AuthorID:       rev.AuthorID,
		CreatedAt:      rev.CreatedAt,
	}
}
