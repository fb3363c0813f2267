package refsync

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"slipflow/internal/docstore"
	"slipflow/internal/logging"
	"slipflow/internal/refsource"
)

// Source supplies reference rows. refsource.Source satisfies this.
type Source interface {
	Parts(ctx context.Context) ([]refsource.PartRow, error)
}

// Sink receives idempotent keyed upserts. docstore.Store satisfies this.
type Sink interface {
	UpsertPart(ctx context.Context, part docstore.Part) error
}

// Syncer copies reference data from the relational source into the document
// store. It holds no connections itself; the caller scopes those per run.
type Syncer struct {
	source  Source
	sink    Sink
	workers int
	logger  *slog.Logger
}

// New builds a Syncer. workers bounds concurrent upserts; values below one
// fall back to serial operation.
func New(source Source, sink Sink, workers int, logger *slog.Logger) *Syncer {
	if workers < 1 {
		workers = 1
	}
	return &Syncer{
		source:  source,
		sink:    sink,
		workers: workers,
		logger:  logging.WithComponent(logger, "refsync"),
	}
}

// Sync runs one synchronization pass and reports the outcome. It never
// returns an error: read-phase failures are recorded on the report, and
// per-row failures are logged and skipped.
func (s *Syncer) Sync(ctx context.Context) Report {
	report := Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	logger := s.logger.With(slog.String(logging.FieldRunID, report.RunID))
	logger.Info("reference sync started")

	rows, err := s.source.Parts(ctx)
	if err != nil {
		report.Err = err
		report.Duration = time.Since(report.StartedAt)
		logger.Error("reference read failed; run aborted",
			slog.String("error", err.Error()),
			slog.Duration("duration", report.Duration))
		return report
	}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)

	for _, row := range rows {
		part := docstore.Part{
			StockCode:       row.StockCode,
			Description:     row.Description,
			LongDescription: row.Description,
		}
		group.Go(func() error {
			// Row failures never cancel the group; they are counted and logged.
			if err := s.sink.UpsertPart(groupCtx, part); err != nil {
				logger.Warn("part upsert failed; row skipped",
					slog.String(logging.FieldStockCode, part.StockCode),
					slog.String("error", err.Error()))
				mu.Lock()
				report.Failed++
				mu.Unlock()
				return nil
			}
			mu.Lock()
			report.Synced++
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()

	report.Duration = time.Since(report.StartedAt)
	logger.Info("reference sync finished",
		slog.Int("synced", report.Synced),
		slog.Int("failed", report.Failed),
		slog.Duration("duration", report.Duration))
	return report
}
