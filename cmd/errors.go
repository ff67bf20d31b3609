package cmd

import "github.com/spf13/cobra"

// Process exit statuses
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// UsageError reports a command line that cannot be run
type UsageError struct {
	Msg   string
	Usage string
}

func (e *UsageError) Error() string {
	return e.Msg
}

func newUsageError(cmd *cobra.Command, msg string) *UsageError {
	usage := "Usage: wayback <url>"
	if cmd != nil {
		usage = "Usage: " + cmd.UseLine()
	}
	return &UsageError{Msg: msg, Usage: usage}
}
