package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/alpkeskin/gotoon"
	"github.com/pders01/wayback-context/internal/models"
	"github.com/spf13/cobra"
)

var (
	statsJSON bool
	statsToon bool
)

var statsCmd = &cobra.Command{
	Use:   "stats <url>",
	Short: "Show how often a URL has been archived",
	Long: `Query the CDX index and summarise the snapshots of a URL:
  - total snapshot count
  - first and latest capture
  - captures per year

Nothing is written to the output document.

Examples:
  wayback stats example.com
  wayback stats example.com --json
  wayback stats example.com --toon`,
	Args: requireURL,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	statsCmd.Flags().BoolVar(&statsToon, "toon", false, "Output in LLM-friendly toon format")
}

type snapshotStats struct {
	Target         string       `json:"target"`
	TotalSnapshots int          `json:"total_snapshots"`
	FirstCapture   string       `json:"first_capture,omitempty"`
	LatestCapture  string       `json:"latest_capture,omitempty"`
	ByYear         []yearlyStat `json:"by_year"`
}

type yearlyStat struct {
	Year  string `json:"year"`
	Count int    `json:"count"`
}

// computeStats summarises snapshots; timestamps sort lexically in time order
func computeStats(target string, snapshots []models.Snapshot) *snapshotStats {
	stats := &snapshotStats{
		Target:         target,
		TotalSnapshots: len(snapshots),
		ByYear:         []yearlyStat{},
	}

	byYear := make(map[string]int)
	for _, s := range snapshots {
		if stats.FirstCapture == "" || s.Timestamp < stats.FirstCapture {
			stats.FirstCapture = s.Timestamp
		}
		if s.Timestamp > stats.LatestCapture {
			stats.LatestCapture = s.Timestamp
		}
		if len(s.Timestamp) >= 4 {
			byYear[s.Timestamp[:4]]++
		}
	}

	for year, count := range byYear {
		stats.ByYear = append(stats.ByYear, yearlyStat{Year: year, Count: count})
	}
	sort.Slice(stats.ByYear, func(i, j int) bool {
		return stats.ByYear[i].Year < stats.ByYear[j].Year
	})

	return stats
}

func runStats(cmd *cobra.Command, args []string) error {
	if err := requireURL(cmd, args); err != nil {
		return err
	}
	if statsJSON && statsToon {
		return newUsageError(cmd, "--json and --toon are mutually exclusive")
	}
	target := strings.TrimSpace(args[0])

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	client := newCDXClient(log)
	stats := computeStats(target, client.FetchSnapshots(commandContext(cmd), target))

	// Output JSON if requested
	if statsJSON {
		output, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	// Output Toon if requested
	if statsToon {
		output, err := gotoon.Encode(stats)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	fmt.Println("Snapshot Statistics")
	fmt.Println("━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	fmt.Printf("Target:          %s\n", stats.Target)
	fmt.Printf("Total Snapshots: %d\n", stats.TotalSnapshots)
	if stats.TotalSnapshots == 0 {
		return nil
	}
	fmt.Printf("First Capture:   %s\n", displayTimestamp(stats.FirstCapture))
	fmt.Printf("Latest Capture:  %s\n", displayTimestamp(stats.LatestCapture))
	fmt.Println()

	fmt.Println("By Year:")
	for _, ys := range stats.ByYear {
		percentage := float64(ys.Count) / float64(stats.TotalSnapshots) * 100
		bar := strings.Repeat("█", min(ys.Count, 20))
		fmt.Printf("  %s  %5d  (%5.1f%%)  %s\n", ys.Year, ys.Count, percentage, bar)
	}

	return nil
}

func displayTimestamp(ts string) string {
	t, err := models.Snapshot{Timestamp: ts}.Time()
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02 15:04")
}
