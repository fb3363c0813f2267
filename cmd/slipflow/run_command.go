package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"slipflow/internal/config"
	"slipflow/internal/docstore"
	"slipflow/internal/refsource"
	"slipflow/internal/refsync"
	"slipflow/internal/scheduler"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the sync daemon until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return ctx.withStore(signalCtx, func(cfg *config.Config, store *docstore.Store, logger *slog.Logger) error {
				syncer := refsync.New(reopeningSource{cfg: cfg}, store, cfg.Sync.UpsertWorkers, logger)
				sched, err := scheduler.New(cfg, syncer, logger)
				if err != nil {
					return err
				}
				if err := sched.Start(signalCtx); err != nil {
					return err
				}

				<-signalCtx.Done()
				logger.Info("slipflow daemon shutting down")
				sched.Stop()
				return nil
			})
		},
	}
}

// reopeningSource opens a fresh relational connection per sync run so a
// long-lived daemon never pins one across the interval.
type reopeningSource struct {
	cfg *config.Config
}

func (r reopeningSource) Parts(ctx context.Context) ([]refsource.PartRow, error) {
	source, err := refsource.Open(r.cfg)
	if err != nil {
		return nil, fmt.Errorf("open reference source: %w", err)
	}
	defer source.Close()
	return source.Parts(ctx)
}
