package readme

import (
	"fmt"
	"os"
	"strings"

	"github.com/pders01/wayback-context/internal/models"
	"github.com/spf13/afero"
)

// DefaultPath is the document updated when no path is configured
const DefaultPath = "README.md"

// NoSnapshotsMessage replaces the list when nothing was archived
const NoSnapshotsMessage = "No snapshots found for this URL on Wayback Machine."

// Appender adds snapshot listings to a Markdown document
type Appender struct {
	fs   afero.Fs
	path string
}

// New creates an Appender writing to path on fs
func New(fs afero.Fs, path string) *Appender {
	if path == "" {
		path = DefaultPath
	}
	return &Appender{fs: fs, path: path}
}

// Path returns the document path
func (a *Appender) Path() string {
	return a.path
}

// Heading returns the section heading for a target URL
func Heading(target string) string {
	return "## Wayback Machine Snapshots for " + target
}

// RenderSection builds the Markdown block appended for one run
func RenderSection(target string, snapshots []models.Snapshot) string {
	var b strings.Builder
	b.WriteString("\n---\n")
	b.WriteString(Heading(target))
	b.WriteString("\n\n")

	if len(snapshots) == 0 {
		b.WriteString(NoSnapshotsMessage)
		b.WriteString("\n")
		return b.String()
	}

	for _, s := range snapshots {
		fmt.Fprintf(&b, "- [%s](%s)\n", s.Timestamp, s.URL)
	}
	return b.String()
}

// Append writes the section for target to the end of the document,
// creating the document if it does not exist. Existing content is never
// read or rewritten. The returned bool only reports that a write was
// attempted.
func (a *Appender) Append(target string, snapshots []models.Snapshot) (bool, error) {
	exists, err := afero.Exists(a.fs, a.path)
	if err != nil {
		return true, fmt.Errorf("failed to stat %s: %w", a.path, err)
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if exists {
		flag = os.O_WRONLY | os.O_APPEND
	}

	file, err := a.fs.OpenFile(a.path, flag, 0644)
	if err != nil {
		return true, fmt.Errorf("failed to open %s: %w", a.path, err)
	}

	if _, err := file.WriteString(RenderSection(target, snapshots)); err != nil {
		file.Close()
		return true, fmt.Errorf("failed to write %s: %w", a.path, err)
	}

	if err := file.Close(); err != nil {
		return true, fmt.Errorf("failed to close %s: %w", a.path, err)
	}

	return true, nil
}
