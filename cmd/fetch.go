package cmd

import (
	"fmt"
	"strings"

	"github.com/pders01/wayback-context/internal/config"
	"github.com/pders01/wayback-context/internal/readme"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runFetch(cmd *cobra.Command, args []string) error {
	if err := requireURL(cmd, args); err != nil {
		return err
	}
	target := strings.TrimSpace(args[0])

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	fmt.Printf("Getting snapshots for: %s\n", target)

	client := newCDXClient(log)
	snapshots := client.FetchSnapshots(commandContext(cmd), target)
	log.Debug("fetched snapshots", zap.Int("count", len(snapshots)))

	appender := readme.New(docFs, config.GetOutputPath())
	if _, err := appender.Append(target, snapshots); err != nil {
		return fmt.Errorf("failed to update %s: %w", appender.Path(), err)
	}

	fmt.Printf("Successfully processed snapshots for %s.\n", target)
	return nil
}
