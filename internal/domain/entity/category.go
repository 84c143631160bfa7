package entity

import (
	"strings"
	"time"
)

// Category groups announcements on the public site.
type Category struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
}

// Validate validates the Category entity fields.
func (c *Category) Validate() error {
	if c.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if c.Slug == "" {
		return &ValidationError{Field: "slug", Message: "is required"}
	}
	if strings.ContainsAny(c.Slug, " /") {
		return &ValidationError{Field: "slug", Message: "must not contain spaces or slashes"}
	}
	return nil
}
