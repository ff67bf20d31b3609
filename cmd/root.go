package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pders01/wayback-context/internal/cdx"
	"github.com/pders01/wayback-context/internal/config"
	"github.com/pders01/wayback-context/internal/logging"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile    string
	outputPath string
	logLevel   string
)

// Swapped out by tests.
var (
	docFs     afero.Fs  = afero.NewOsFs()
	logOutput io.Writer = os.Stderr
)

var rootCmd = &cobra.Command{
	Use:   "wayback <url>",
	Short: "Append Wayback Machine snapshot listings to a Markdown document",
	Long: `wayback queries the Wayback Machine CDX index for every recorded
snapshot of a URL and appends a Markdown section listing them to a
document (README.md by default).

Each run appends a new section; existing content is never rewritten.
If the archive cannot be reached the section says no snapshots were found.

A target that matches a subcommand name (list, stats, init) must follow
"--". Any other unknown word is taken as a target, so a mistyped
subcommand is fetched as a URL.

Examples:
  wayback example.com
  wayback https://example.com/about --output ARCHIVE.md
  wayback -- list
  wayback list example.com --json`,
	Args:          requireURL,
	RunE:          runFetch,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with 2 on usage errors and 1 on
// any other failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)

		var usageErr *UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintln(os.Stderr, usageErr.Usage)
			os.Exit(ExitUsage)
		}
		os.Exit(ExitFailure)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/wayback/config.toml)")
	rootCmd.PersistentFlags().StringVar(&outputPath, "output", "", "Markdown document to append to (default README.md)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug|info|warn|error")

	viper.BindPFlag("output.path", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return newUsageError(c, err.Error())
	})
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if dir, err := configDir(); err == nil {
		viper.AddConfigPath(dir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("WAYBACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	config.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// configDir returns $HOME/.config/wayback
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wayback"), nil
}

// requireURL accepts exactly one non-blank positional argument
func requireURL(cmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return newUsageError(cmd, "missing required argument: <url>")
	}
	if len(args) > 1 {
		return newUsageError(cmd, fmt.Sprintf("expected one <url>, got %d arguments", len(args)))
	}
	return nil
}

func newLogger() (*zap.Logger, error) {
	return logging.NewWithWriter(logOutput, config.GetLogLevel())
}

func newCDXClient(log *zap.Logger) *cdx.Client {
	return cdx.NewClient(cdx.Options{
		Endpoint:  config.GetCDXEndpoint(),
		UserAgent: config.GetUserAgent(),
		Timeout:   config.GetTimeout(),
		MaxBytes:  config.GetMaxBytes(),
		Logger:    log,
	})
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
