package auth

import "testing"

func TestCheckRolePermission_Admin(t *testing.T) {
	tests := []struct {
		method, path string
		want         bool
	}{
		{"GET", "/announcements", true},
		{"DELETE", "/announcements/1", true},
		{"POST", "/categories", true},
		{"DELETE", "/categories/1", true},
		{"POST", "/admin/sweep", true},
		{"POST", "/revisions/1/restore", true},
	}
	for _, tt := range tests {
		if got := checkRolePermission(RoleAdmin, tt.method, tt.path); got != tt.want {
			t.Errorf("admin %s %s = %v, want %v", tt.method, tt.path, got, tt.want)
		}
	}
}

func TestCheckRolePermission_Editor(t *testing.T) {
	tests := []struct {
		method, path string
		want         bool
	}{
		{"GET", "/announcements", true},
		{"POST", "/announcements", true},
		{"PUT", "/announcements/1", true},
		{"POST", "/announcements/1/publish", true},
		{"DELETE", "/announcements/1", false}, // deletion is admin-only
		{"GET", "/announcements/1/revisions", true},
		{"POST", "/revisions/1/restore", true},
		{"GET", "/categories", true},          // read-only access
		{"GET", "/categories/1", true},
		{"POST", "/categories", false},        // cannot manage categories
		{"PUT", "/categories/1", false},
		{"DELETE", "/categories/1", false},
		{"POST", "/admin/sweep", false},       // admin-only by omission
		{"GET", "/admin/sweep", false},
	}
	for _, tt := range tests {
		if got := checkRolePermission(RoleEditor, tt.method, tt.path); got != tt.want {
			t.Errorf("editor %s %s = %v, want %v", tt.method, tt.path, got, tt.want)
		}
	}
}

func TestCheckRolePermission_UnknownRole(t *testing.T) {
	if checkRolePermission("", "GET", "/announcements") {
		t.Error("empty role must be denied")
	}
	if checkRolePermission("viewer", "GET", "/announcements") {
		t.Error("unknown role must be denied")
	}
}

func TestMatchesPathPattern(t *testing.T) {
	tests := []struct {
		path     string
		patterns []string
		want     bool
	}{
		{"/anything", []string{"/*"}, true},
		{"/announcements", []string{"/announcements/*"}, true},
		{"/announcements/1", []string{"/announcements/*"}, true},
		{"/announcements/1/revisions", []string{"/announcements/*"}, true},
		{"/announcementsfoo", []string{"/announcements/*"}, false},
		{"/categories", []string{"/categories"}, true},
		{"/categories/1", []string{"/categories"}, false},
	}
	for _, tt := range tests {
		if got := matchesPathPattern(tt.path, tt.patterns); got != tt.want {
			t.Errorf("matchesPathPattern(%q, %v) = %v, want %v", tt.path, tt.patterns, got, tt.want)
		}
	}
}
