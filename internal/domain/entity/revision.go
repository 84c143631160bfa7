package entity

import (
	"fmt"
	"time"
)

// ChangeType tags why a revision was recorded.
type ChangeType string

const (
	// ChangeEdit marks a snapshot taken before an editorial mutation.
	ChangeEdit ChangeType = "EDIT"
	// ChangeRestore marks a snapshot taken before a restore, so the
	// restore itself stays undoable.
	ChangeRestore ChangeType = "RESTORE"
)

// Valid reports whether the change type is one of the known tags.
func (t ChangeType) Valid() bool {
	return t == ChangeEdit || t == ChangeRestore
}

// Revision is an immutable snapshot of an announcement's editorial fields
// at a point in time. Versions are scoped per announcement, start at 1,
// and are gapless and strictly increasing; the revision store is the only
// writer of that sequence.
type Revision struct {
	ID             int64
	AnnouncementID int64
	Version        int
	Title          string
	Content        string
	Excerpt        string
	ImagePath      string
	ChangeType     ChangeType
	ChangeSummary  *string
	AuthorID       string
	CreatedAt      time.Time
}

// Validate validates the Revision entity fields.
func (r *Revision) Validate() error {
	if r.AnnouncementID <= 0 {
		return &ValidationError{Field: "announcementID", Message: "must be positive"}
	}
	if r.Version < 1 {
		return &ValidationError{Field: "version", Message: "must be at least 1"}
	}
	if !r.ChangeType.Valid() {
		return fmt.Errorf("invalid change_type: %s (must be EDIT or RESTORE)", r.ChangeType)
	}
	if r.AuthorID == "" {
		return &ValidationError{Field: "authorID", Message: "is required"}
	}
	return nil
}

// SnapshotOf captures the editorial fields of an announcement into a new,
// not-yet-versioned revision.
func SnapshotOf(a *Announcement, authorID string, changeType ChangeType, summary *string) *Revision {
	return &Revision{
		AnnouncementID: a.ID,
		Title:          a.Title,
		Content:        a.Content,
		Excerpt:        a.Excerpt,
		ImagePath:      a.ImagePath,
		ChangeType:     changeType,
		ChangeSummary:  summary,
		AuthorID:       authorID,
	}
}
