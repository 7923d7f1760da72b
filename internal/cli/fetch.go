package cli

import (
	"github.com/spf13/cobra"

	"github.com/talegraph/talegraph/pkg/snapshot"
	"github.com/talegraph/talegraph/pkg/timeline"
)

// newFetchCmd creates the fetch command, which pulls every record from the
// configured source and refreshes the snapshot.
func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch all records and update the snapshot",
		Long: `Fetch pulls every record from the configured source, rebuilds the
timeline model, and writes a fresh snapshot so later commands can start
without hitting the source again.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			src, cleanup, err := newSource(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			store, err := newStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			prog := newProgress(logger)
			spin := newSpinnerWithContext(ctx, "Fetching records from "+src.Name())
			spin.Start()

			records, err := src.FetchAll(ctx)
			if err != nil {
				spin.StopWithError("Fetch failed")
				return err
			}
			spin.Stop()
			prog.done("Fetched records")

			model := timeline.Build(records)
			for _, w := range model.Warnings() {
				printWarning("%s", w)
			}

			if err := store.Save(ctx, snapshot.New(cfg.DatabaseID, records)); err != nil {
				printWarning("snapshot not saved: %v", err)
			}

			printSuccess("Timeline is up to date")
			printKeyValue("Records", len(records))
			printKeyValue("Chapters", len(model.Chapters()))
			printKeyValue("Asides", len(model.Asides()))
			return nil
		},
	}
}
