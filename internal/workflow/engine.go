package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"slipflow/internal/logging"
	"slipflow/internal/slip"
)

// Engine coordinates slip creation and review transitions.
type Engine struct {
	store    Store
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// Option customizes engine construction.
type Option func(*Engine)

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New builds an Engine. A nil notifier degrades to the no-op implementation.
func New(store Store, notifier Notifier, logger *slog.Logger, opts ...Option) *Engine {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	engine := &Engine{
		store:    store,
		notifier: notifier,
		logger:   logging.WithComponent(logger, "workflow"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Result reports a committed state transition. NotifyErr is non-nil when the
// workflow write succeeded but its notification did not; the write stands.
type Result struct {
	Slip      *slip.Slip
	NotifyErr error
}

// mintID consumes the next sequence value for a slip type and formats the id.
func (e *Engine) mintID(ctx context.Context, slipType slip.Type) (string, error) {
	sequence, err := e.store.NextSequence(ctx, slip.SequenceName(slipType))
	if err != nil {
		return "", fmt.Errorf("%w: next sequence for %s: %w", ErrStore, slipType, err)
	}
	return slip.MintID(slipType, e.now(), sequence), nil
}

func (e *Engine) persist(ctx context.Context, doc *slip.Slip) error {
	if err := e.store.CreateSlip(ctx, doc); err != nil {
		return fmt.Errorf("%w: create %s slip %s: %w", ErrStore, doc.Type, doc.SlipID, err)
	}
	e.logger.Info("slip created",
		slog.String(logging.FieldSlipID, doc.SlipID),
		slog.String("slip_type", string(doc.Type)),
		slog.String(logging.FieldOrderNumber, doc.OrderNumber),
		slog.String("status", string(doc.Status)))
	return nil
}

// notifyCreated delivers the creation event, downgrading failure to a logged
// warning on the result.
func (e *Engine) notifyCreated(ctx context.Context, doc *slip.Slip) error {
	err := e.notifier.SlipCreated(ctx, doc)
	if err != nil {
		e.logger.Warn("notification failed; workflow state kept",
			slog.String(logging.FieldSlipID, doc.SlipID),
			slog.String("error", err.Error()))
	}
	return err
}

func requireOrderNumber(orderNumber string) (string, error) {
	trimmed := strings.TrimSpace(orderNumber)
	if trimmed == "" {
		return "", fmt.Errorf("%w: order number is required", ErrValidation)
	}
	return trimmed, nil
}

// PendingReviews lists dispatch slips awaiting admin remediation.
func (e *Engine) PendingReviews(ctx context.Context) ([]*slip.Slip, error) {
	slips, err := e.store.SlipsByType(ctx, slip.TypeDispatch, slip.StatusPendingReview)
	if err != nil {
		return nil, fmt.Errorf("%w: list pending reviews: %w", ErrStore, err)
	}
	return slips, nil
}
