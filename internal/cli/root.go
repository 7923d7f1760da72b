// Package cli implements the talegraph command-line interface.
//
// This package provides commands for serving the timeline web UI, fetching
// records from the document database, rendering the timeline diagram to a
// file, browsing chapters in the terminal, and managing the local snapshot.
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - serve: Run the web UI
//   - fetch: Fetch all records and update the local snapshot
//   - render: Generate a DOT or SVG diagram file
//   - browse: Browse chapters interactively in the terminal
//   - snapshot: Inspect or clear the local snapshot
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/talegraph/talegraph/internal/config"
	"github.com/talegraph/talegraph/pkg/buildinfo"
)

// configPath is the --config persistent flag value.
var configPath string

// Execute runs the talegraph CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "talegraph",
		Short:        "Talegraph visualizes narrative timelines as flowcharts",
		Long:         `Talegraph fetches narrative entries from a document database, groups them into chapters and asides, and renders the derived relationship graph as an interactive flowchart.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/talegraph/config.toml)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newFetchCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newBrowseCmd())
	root.AddCommand(newSnapshotCmd())

	return root.ExecuteContext(ctx)
}

// loadConfig reads the configuration honoring the --config flag.
func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}
