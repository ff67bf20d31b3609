package models

import (
	"fmt"
	"strings"
	"time"
)

// ReplayPrefix is the base of every Wayback Machine replay URL
const ReplayPrefix = "https://web.archive.org/web/"

// TimestampLayout is the 14-digit CDX timestamp format
const TimestampLayout = "20060102150405"

// Snapshot represents one recorded crawl of a URL
type Snapshot struct {
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
}

// NewSnapshot builds a snapshot from a CDX timestamp and the archived URL
func NewSnapshot(timestamp, original string) Snapshot {
	return Snapshot{
		Timestamp: timestamp,
		URL:       ReplayURL(timestamp, original),
	}
}

// ReplayURL generates the replay address for an archived URL
// Format: https://web.archive.org/web/YYYYMMDDhhmmss/host/path
func ReplayURL(timestamp, original string) string {
	return fmt.Sprintf("%s%s/%s", ReplayPrefix, timestamp, StripScheme(original))
}

// StripScheme removes a leading http:// or https:// (case-sensitive)
func StripScheme(u string) string {
	if rest, ok := strings.CutPrefix(u, "https://"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(u, "http://"); ok {
		return rest
	}
	return u
}

// Time parses the snapshot timestamp as UTC
func (s Snapshot) Time() (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s.Timestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid snapshot timestamp %q: %w", s.Timestamp, err)
	}
	return t, nil
}
