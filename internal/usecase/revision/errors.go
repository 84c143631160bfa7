// Package revision provides use cases for the announcement revision history.
// It implements snapshotting before edits and restores, point-in-time
// restore, paginated history, and revision comparison.
package revision

import "errors"

// Sentinel errors for revision use case operations.
var (
	// ErrAnnouncementNotFound indicates that the announcement to snapshot
	// or restore does not exist.
	ErrAnnouncementNotFound = errors.New("announcement not found")

	// ErrRevisionNotFound indicates that the requested revision was not found.
	ErrRevisionNotFound = errors.New("revision not found")

	// ErrInvalidAnnouncementID indicates that the provided announcement ID is invalid.
	ErrInvalidAnnouncementID = errors.New("invalid announcement ID")

	// ErrInvalidRevisionID indicates that the provided revision ID is invalid.
	ErrInvalidRevisionID = errors.New("invalid revision ID")

	// ErrMissingAuthor indicates that no acting author was supplied.
	// Every snapshot records who caused it.
	ErrMissingAuthor = errors.New("author is required")
)
