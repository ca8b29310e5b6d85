// Package cli implements the command-line driving adapter. Commands are
// thin wrappers over the driving ports; wiring happens in main.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/keystone-labs/kbs-cli/internal/core/ports/driving"
	"github.com/keystone-labs/kbs-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected by main before Execute.
var (
	sessionService driving.SessionService
	browseService  driving.BrowseService
	statsService   driving.StatsService
	ingestService  driving.IngestService
)

// verbose enables debug logging for all commands.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "kbs",
	Short: "Search and manage the internal knowledge base",
	Long: `kbs is a terminal client for the internal knowledge base.

Sign in once, then search documents, browse by category, add new
entries and review usage statistics. Run without arguments to launch
the interactive terminal UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runTUI,
}

// Services bundles everything the commands need.
type Services struct {
	Session driving.SessionService
	Browse  driving.BrowseService
	Stats   driving.StatsService
	Ingest  driving.IngestService
}

// SetServices injects the driving ports. Must be called before Execute.
func SetServices(s Services) {
	sessionService = s.Session
	browseService = s.Browse
	statsService = s.Stats
	ingestService = s.Ingest
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
