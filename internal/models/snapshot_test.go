package models

import (
	"strings"
	"testing"
	"time"
)

func TestReplayURL(t *testing.T) {
	tests := []struct {
		name      string
		timestamp string
		original  string
		expected  string
	}{
		{
			name:      "https scheme",
			timestamp: "20200101000000",
			original:  "https://example.com/",
			expected:  "https://web.archive.org/web/20200101000000/example.com/",
		},
		{
			name:      "http scheme",
			timestamp: "19990101120000",
			original:  "http://example.com/page?q=1",
			expected:  "https://web.archive.org/web/19990101120000/example.com/page?q=1",
		},
		{
			name:      "no scheme",
			timestamp: "20210505050505",
			original:  "example.com:80/",
			expected:  "https://web.archive.org/web/20210505050505/example.com:80/",
		},
		{
			name:      "uppercase scheme is kept",
			timestamp: "20200101000000",
			original:  "HTTP://example.com/",
			expected:  "https://web.archive.org/web/20200101000000/HTTP://example.com/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ReplayURL(tt.timestamp, tt.original)
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestStripSchemeOnlyOnce(t *testing.T) {
	result := StripScheme("https://http://example.com")
	if result != "http://example.com" {
		t.Errorf("expected only the leading scheme to be removed, got %s", result)
	}
}

func TestReplayURLHasNoSchemeAfterPrefix(t *testing.T) {
	originals := []string{
		"http://example.com/",
		"https://example.com/a/b",
		"https://xn--bcher-kva.example/",
	}
	for _, original := range originals {
		u := ReplayURL("20200101000000", original)
		rest := strings.TrimPrefix(u, ReplayPrefix+"20200101000000/")
		if strings.HasPrefix(rest, "http://") || strings.HasPrefix(rest, "https://") {
			t.Errorf("replay URL %s still contains a scheme", u)
		}
	}
}

func TestSnapshotTime(t *testing.T) {
	s := NewSnapshot("20200102030405", "https://example.com/")

	ts, err := s.Time()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	if !ts.Equal(expected) {
		t.Errorf("expected %v, got %v", expected, ts)
	}

	bad := Snapshot{Timestamp: "2020"}
	if _, err := bad.Time(); err == nil {
		t.Error("expected error for short timestamp")
	}
}

func TestNewListing(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	listing := NewListing("example.com", nil, now)
	if listing.FetchedAt != "2024-05-06T07:08:09Z" {
		t.Errorf("unexpected fetched_at: %s", listing.FetchedAt)
	}
	if listing.Count != 0 {
		t.Errorf("expected count 0, got %d", listing.Count)
	}
	if listing.Snapshots == nil {
		t.Error("expected empty, non-nil snapshot slice")
	}

	listing = NewListing("example.com", []Snapshot{NewSnapshot("20200101000000", "https://example.com/")}, now)
	if listing.Count != 1 {
		t.Errorf("expected count 1, got %d", listing.Count)
	}
}
