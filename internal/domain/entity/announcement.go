// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Announcement, Revision, and Category,
// along with their validation rules and domain-specific errors.
package entity

import "time"

// Announcement represents a publishable announcement in the system.
// It contains the editorial fields, publication scheduling timestamps,
// and engagement/placement flags.
type Announcement struct {
	ID          int64
	CategoryID  int64
	AuthorID    string
	Title       string
	Content     string
	Excerpt     string
	ImagePath   string
	IsPublished bool
	ScheduledAt *time.Time
	TakedownAt  *time.Time
	ViewCount   int64
	IsPinned    bool
	IsHero      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PublicationState describes where an announcement sits in its
// publication lifecycle. IsPublished is the stored flag; the state is
// derived from the flag plus the pending schedule/takedown timestamps.
type PublicationState string

const (
	// StateDraft is an unpublished announcement with no pending schedule.
	StateDraft PublicationState = "draft"
	// StateScheduled is an unpublished announcement waiting for its
	// scheduled_at timestamp to fire.
	StateScheduled PublicationState = "scheduled"
	// StatePublished is a live announcement with no pending takedown.
	StatePublished PublicationState = "published"
	// StatePublishedWithTakedown is a live announcement waiting for its
	// takedown_at timestamp to fire.
	StatePublishedWithTakedown PublicationState = "published_with_takedown"
)

// PublicationState derives the lifecycle state from the stored fields.
func (a *Announcement) PublicationState() PublicationState {
	if a.IsPublished {
		if a.TakedownAt != nil {
			return StatePublishedWithTakedown
		}
		return StatePublished
	}
	if a.ScheduledAt != nil {
		return StateScheduled
	}
	return StateDraft
}

// DueForPublish reports whether the sweep should publish this announcement
// at the given instant.
func (a *Announcement) DueForPublish(now time.Time) bool {
	return !a.IsPublished && a.ScheduledAt != nil && !a.ScheduledAt.After(now)
}

// DueForTakedown reports whether the sweep should take this announcement
// down at the given instant.
func (a *Announcement) DueForTakedown(now time.Time) bool {
	return a.IsPublished && a.TakedownAt != nil && !a.TakedownAt.After(now)
}

// Validate validates the Announcement entity fields.
func (a *Announcement) Validate() error {
	if a.Title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if a.Content == "" {
		return &ValidationError{Field: "content", Message: "is required"}
	}
	if a.CategoryID <= 0 {
		return &ValidationError{Field: "categoryID", Message: "must be positive"}
	}
	return nil
}
