package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui"
)

// tuiCmd launches the interactive UI explicitly; the bare root command
// does the same.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

The TUI signs you in, then provides keyboard-driven search, category
filtering, document reading and usage statistics.

Controls:
  (type)     Enter search query
  Enter      Search / Open
  Tab        Cycle category filter
  ↑/k, ↓/j   Navigate results
  a          Add document
  s          Statistics
  Esc        Back
  Ctrl+C     Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Panic recovery keeps the stack trace readable after the alt
	// screen is torn down.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Session: sessionService,
		Browse:  browseService,
		Stats:   statsService,
		Ingest:  ingestService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
