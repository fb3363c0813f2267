package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"slipflow/internal/config"
	"slipflow/internal/docstore"
	"slipflow/internal/refsource"
	"slipflow/internal/refsync"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run one reference-data sync and report the outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(cfg *config.Config, store *docstore.Store, logger *slog.Logger) error {
				source, err := refsource.Open(cfg)
				if err != nil {
					return err
				}
				defer source.Close()

				syncer := refsync.New(source, store, cfg.Sync.UpsertWorkers, logger)
				report := syncer.Sync(cmd.Context())

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run %s: %d synced, %d failed in %s\n",
					report.RunID, report.Synced, report.Failed, report.Duration.Round(time.Millisecond))
				if report.Err != nil {
					return fmt.Errorf("sync aborted: %w", report.Err)
				}
				if report.Failed > 0 {
					fmt.Fprintln(out, "Some rows failed; see the log for stock codes")
				}
				return nil
			})
		},
	}
}
