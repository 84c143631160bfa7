package auth

import "testing"

func TestIsPublicEndpoint(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/healthz", true},
		{"/ready", true},
		{"/live", true},
		{"/metrics", true},
		{"/auth/token", true},
		{"/announcements", false},
		{"/admin/sweep", false},
		{"/healthz2", false},
	}
	for _, tt := range tests {
		if got := IsPublicEndpoint(tt.path); got != tt.want {
			t.Errorf("IsPublicEndpoint(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
