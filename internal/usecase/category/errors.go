// Package category provides use cases for managing announcement categories.
package category

import "errors"

// Sentinel errors for category use case operations.
var (
	// ErrCategoryNotFound indicates that the requested category was not found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrInvalidCategoryID indicates that the provided category ID is invalid.
	ErrInvalidCategoryID = errors.New("invalid category ID")

	// ErrDuplicateSlug indicates that a category with the same slug already exists.
	ErrDuplicateSlug = errors.New("category with this slug already exists")
)
