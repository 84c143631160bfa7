// Package pathutil provides helpers for working with URL paths: ID
// extraction for REST-style routes and path normalization for metrics
// labels.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
// Pre-compiled at initialization.
var pathPatterns = []*PathPattern{
	// Announcement routes with IDs
	{Pattern: regexp.MustCompile(`^/announcements/\d+$`), Template: "/announcements/:id"},
	{Pattern: regexp.MustCompile(`^/announcements/\d+/publish$`), Template: "/announcements/:id/publish"},
	{Pattern: regexp.MustCompile(`^/announcements/\d+/unpublish$`), Template: "/announcements/:id/unpublish"},
	{Pattern: regexp.MustCompile(`^/announcements/\d+/schedule$`), Template: "/announcements/:id/schedule"},
	{Pattern: regexp.MustCompile(`^/announcements/\d+/takedown$`), Template: "/announcements/:id/takedown"},
	{Pattern: regexp.MustCompile(`^/announcements/\d+/view$`), Template: "/announcements/:id/view"},
	{Pattern: regexp.MustCompile(`^/announcements/\d+/revisions$`), Template: "/announcements/:id/revisions"},

	// Revision routes with IDs
	{Pattern: regexp.MustCompile(`^/revisions/\d+/restore$`), Template: "/revisions/:id/restore"},

	// Category routes with IDs
	{Pattern: regexp.MustCompile(`^/categories/\d+$`), Template: "/categories/:id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label
// cardinality explosion. It converts paths with IDs (e.g. /announcements/123)
// to template format (e.g. /announcements/:id). Static paths remain
// unchanged.
func NormalizePath(path string) string {
	// Strip query string before matching.
	if idx := strings.IndexByte(path, '?'); idx >= 0 {
		path = path[:idx]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}
