package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alpkeskin/gotoon"
	"github.com/pders01/wayback-context/internal/models"
	"github.com/spf13/cobra"
)

var (
	listJSON bool
	listToon bool
)

var listCmd = &cobra.Command{
	Use:   "list <url>",
	Short: "Print the snapshots of a URL without touching the document",
	Long: `Query the CDX index and print every recorded snapshot of a URL.

Nothing is written to the output document.

Examples:
  wayback list example.com
  wayback list example.com --json
  wayback list example.com --toon`,
	Args: requireURL,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().BoolVar(&listToon, "toon", false, "Output in LLM-friendly toon format")
}

func runList(cmd *cobra.Command, args []string) error {
	if err := requireURL(cmd, args); err != nil {
		return err
	}
	if listJSON && listToon {
		return newUsageError(cmd, "--json and --toon are mutually exclusive")
	}
	target := strings.TrimSpace(args[0])

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	client := newCDXClient(log)
	snapshots := client.FetchSnapshots(commandContext(cmd), target)
	listing := models.NewListing(target, snapshots, time.Now())

	if listJSON {
		output, err := json.MarshalIndent(listing, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if listToon {
		output, err := gotoon.Encode(listing)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	if listing.Count == 0 {
		fmt.Printf("No snapshots found for %s\n", target)
		return nil
	}

	fmt.Printf("Found %d snapshot(s) for %s:\n\n", listing.Count, target)
	for _, s := range listing.Snapshots {
		when := s.Timestamp
		if t, err := s.Time(); err == nil {
			when = t.Format("2006-01-02 15:04:05")
		}
		fmt.Printf("  %s  %s\n", when, s.URL)
	}

	return nil
}
