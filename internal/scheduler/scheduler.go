package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"slipflow/internal/config"
	"slipflow/internal/logging"
	"slipflow/internal/refsync"
)

// Syncer runs one reference-data sync pass. refsync.Syncer satisfies this.
type Syncer interface {
	Sync(ctx context.Context) refsync.Report
}

// Scheduler runs reference-data syncs on a fixed cadence and enforces
// single-instance execution through a lock file.
type Scheduler struct {
	interval time.Duration
	syncer   Syncer
	logger   *slog.Logger

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New constructs a scheduler with initialized dependencies.
func New(cfg *config.Config, syncer Syncer, logger *slog.Logger) (*Scheduler, error) {
	if cfg == nil || syncer == nil {
		return nil, errors.New("scheduler requires config and syncer")
	}

	lockPath := filepath.Join(cfg.LogDir, "slipflow.lock")
	return &Scheduler{
		interval: cfg.SyncInterval(),
		syncer:   syncer,
		logger:   logging.WithComponent(logger, "scheduler"),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the instance lock and launches the sync loop. The first
// sync runs immediately; later runs follow the configured interval.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.running.Load() {
		return errors.New("scheduler already running")
	}

	ok, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another slipflow instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running.Store(true)
	s.logger.Info("scheduler started",
		slog.Duration("interval", s.interval),
		slog.String("lock", s.lockPath))

	go s.loop(runCtx)
	return nil
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	s.runOnce(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	report := s.syncer.Sync(ctx)
	attrs := []any{
		slog.String(logging.FieldRunID, report.RunID),
		slog.Int("synced", report.Synced),
		slog.Int("failed", report.Failed),
		slog.Duration("duration", report.Duration),
	}
	switch {
	case report.Err != nil:
		s.logger.Error("sync run aborted", append(attrs, slog.String("error", report.Err.Error()))...)
	case report.Failed > 0:
		s.logger.Warn("sync run completed with failures", attrs...)
	default:
		s.logger.Info("sync run completed", attrs...)
	}
}

// Stop halts the sync loop and releases the instance lock.
func (s *Scheduler) Stop() {
	if !s.running.Load() {
		return
	}

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	<-s.done
	if err := s.lock.Unlock(); err != nil {
		s.logger.Warn("failed to release instance lock", slog.String("error", err.Error()))
	}
	s.running.Store(false)
	s.logger.Info("scheduler stopped")
}

// Running reports whether the loop is active.
func (s *Scheduler) Running() bool {
	return s.running.Load()
}
