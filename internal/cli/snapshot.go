package cli

import (
	"github.com/spf13/cobra"

	"github.com/talegraph/talegraph/pkg/snapshot"
	"github.com/talegraph/talegraph/pkg/timeline"
)

// newSnapshotCmd creates the snapshot command with info and clear
// subcommands.
func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Inspect or clear the local snapshot",
	}
	cmd.AddCommand(newSnapshotInfoCmd())
	cmd.AddCommand(newSnapshotClearCmd())
	return cmd
}

func newSnapshotInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show what the snapshot holds",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			store, err := newStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if fs, ok := store.(*snapshot.FileStore); ok {
				printKeyValue("Path", fs.Path())
			}

			snap, err := store.Load(ctx, cfg.DatabaseID)
			if err != nil {
				return err
			}
			if snap == nil {
				printInfo("No snapshot for this database")
				return nil
			}

			model := timeline.Build(snap.Records)
			printKeyValue("Fetched", snap.FetchedAt.Format("2006-01-02 15:04:05 MST"))
			printKeyValue("Records", len(snap.Records))
			printKeyValue("Chapters", len(model.Chapters()))
			printKeyValue("Asides", len(model.Asides()))
			return nil
		},
	}
}

func newSnapshotClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the snapshot so the next run fetches fresh",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			store, err := newStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(ctx, cfg.DatabaseID); err != nil {
				return err
			}
			printSuccess("Snapshot cleared")
			return nil
		},
	}
}
