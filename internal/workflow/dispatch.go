package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"slipflow/internal/logging"
	"slipflow/internal/slip"
)

// NewDispatch requests creation of a dispatch slip. Attachments are opaque
// relative paths recorded as-is; file storage lives outside the engine.
type NewDispatch struct {
	OrderNumber string
	Attachments []string
	CreatedBy   slip.Identity
}

// CreateDispatch creates a dispatch slip, auto-completing it when a Complete
// QC slip already exists for the order and queueing it for admin review
// otherwise. The gate trades strict QC-before-dispatch ordering for
// throughput: the common case skips a human step while the exceptional path
// stays recoverable through ReviewDispatch.
func (e *Engine) CreateDispatch(ctx context.Context, req NewDispatch) (Result, error) {
	orderNumber, err := requireOrderNumber(req.OrderNumber)
	if err != nil {
		return Result{}, err
	}

	slipID, err := e.mintID(ctx, slip.TypeDispatch)
	if err != nil {
		return Result{}, err
	}

	qcSlip, err := e.store.FindDependency(ctx, orderNumber, slip.TypeQC, slip.StatusComplete)
	if err != nil {
		return Result{}, fmt.Errorf("%w: find QC dependency for order %s: %w", ErrStore, orderNumber, err)
	}

	status := slip.StatusPendingReview
	if qcSlip != nil {
		status = slip.StatusDispatched
	} else {
		e.logger.Info("no complete QC slip for order; dispatch queued for review",
			slog.String(logging.FieldSlipID, slipID),
			slog.String(logging.FieldOrderNumber, orderNumber))
	}

	doc := &slip.Slip{
		SlipID:      slipID,
		Type:        slip.TypeDispatch,
		OrderNumber: orderNumber,
		Status:      status,
		CreatedAt:   e.now().UTC(),
		CreatedBy:   req.CreatedBy,
		Attachments: req.Attachments,
		Dispatch:    &slip.DispatchPayload{},
	}
	if err := e.persist(ctx, doc); err != nil {
		return Result{}, err
	}
	return Result{Slip: doc, NotifyErr: e.notifyCreated(ctx, doc)}, nil
}
