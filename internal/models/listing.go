package models

import "time"

// Listing is the result of one snapshot query, used for list output
type Listing struct {
	Target    string     `json:"target"`
	FetchedAt string     `json:"fetched_at"`
	Count     int        `json:"count"`
	Snapshots []Snapshot `json:"snapshots"`
}

// NewListing wraps a snapshot list for a target URL
func NewListing(target string, snapshots []Snapshot, fetchedAt time.Time) *Listing {
	if snapshots == nil {
		snapshots = []Snapshot{}
	}
	return &Listing{
		Target:    target,
		FetchedAt: fetchedAt.UTC().Format(time.RFC3339),
		Count:     len(snapshots),
		Snapshots: snapshots,
	}
}
