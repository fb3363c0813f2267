package workflow

import (
	"context"

	"slipflow/internal/slip"
)

// Store is the persistence surface the engine depends on. docstore.Store
// satisfies it; tests substitute an in-memory fake.
type Store interface {
	// NextSequence atomically increments the named counter and returns the
	// new value; two concurrent calls never observe the same value.
	NextSequence(ctx context.Context, name string) (int64, error)
	CreateSlip(ctx context.Context, doc *slip.Slip) error
	SlipBySlipID(ctx context.Context, slipID string) (*slip.Slip, error)
	SlipsByType(ctx context.Context, slipType slip.Type, status slip.Status) ([]*slip.Slip, error)
	// FindDependency returns the oldest slip matching order, type, and status,
	// or nil when none exists.
	FindDependency(ctx context.Context, orderNumber string, depType slip.Type, depStatus slip.Status) (*slip.Slip, error)
	UpdateStatus(ctx context.Context, slipID string, status slip.Status, review *slip.Review) error
}

// Notifier receives workflow events after state transitions commit. Failures
// are best-effort: the engine logs them and reports a degraded success, never
// a rollback.
type Notifier interface {
	SlipCreated(ctx context.Context, created *slip.Slip) error
	DispatchReviewed(ctx context.Context, dispatch, retroactiveQC *slip.Slip) error
}

// NopNotifier ignores every event.
type NopNotifier struct{}

func (NopNotifier) SlipCreated(context.Context, *slip.Slip) error { return nil }

func (NopNotifier) DispatchReviewed(context.Context, *slip.Slip, *slip.Slip) error { return nil }
