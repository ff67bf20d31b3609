package cdx

import (
	"strings"

	"github.com/pders01/wayback-context/internal/models"
)

// minFields is the shortest usable row: urlkey, timestamp, original
const minFields = 3

// ParseSnapshots parses a CDX text response into snapshots.
// Rows are whitespace-delimited; field 1 is the timestamp and field 2 the
// original URL. Rows with fewer than three fields are skipped.
func ParseSnapshots(body string) []models.Snapshot {
	snapshots := make([]models.Snapshot, 0)
	for _, line := range strings.Split(body, "\n") {
		fields := strings.Fields(line)
		if len(fields) < minFields {
			continue
		}
		snapshots = append(snapshots, models.NewSnapshot(fields[1], fields[2]))
	}
	return snapshots
}
