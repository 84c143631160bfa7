package pathutil

import (
	"errors"
	"testing"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		prefix  string
		want    int64
		wantErr bool
	}{
		{"valid", "/announcements/123", "/announcements/", 123, false},
		{"not a number", "/announcements/abc", "/announcements/", 0, true},
		{"zero", "/announcements/0", "/announcements/", 0, true},
		{"negative", "/announcements/-1", "/announcements/", 0, true},
		{"trailing segment", "/announcements/1/revisions", "/announcements/", 0, true},
		{"empty", "/announcements/", "/announcements/", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractID(tt.path, tt.prefix)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidID) {
					t.Fatalf("err=%v, want ErrInvalidID", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("ExtractID = %d, %v, want %d", got, err, tt.want)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	if id, err := ParseID("42"); err != nil || id != 42 {
		t.Fatalf("ParseID(42) = %d, %v", id, err)
	}
	for _, s := range []string{"", "0", "-5", "abc", "1.5"} {
		if _, err := ParseID(s); !errors.Is(err, ErrInvalidID) {
			t.Errorf("ParseID(%q) err=%v, want ErrInvalidID", s, err)
		}
	}
}
