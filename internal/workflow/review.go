package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"slipflow/internal/logging"
	"slipflow/internal/slip"
)

// ReviewResult reports an approved dispatch review: the updated dispatch slip
// and the retroactive QC slip minted to back-fill its missing dependency.
type ReviewResult struct {
	Dispatch      *slip.Slip
	RetroactiveQC *slip.Slip
	NotifyErr     error
}

// ReviewDispatch approves a pending dispatch. It stamps the reviewer on the
// dispatch slip, transitions it to Dispatched, and synthesizes a retroactive
// Complete QC slip for the same order carrying the review comments.
func (e *Engine) ReviewDispatch(ctx context.Context, slipID string, reviewer slip.Identity, comments string) (ReviewResult, error) {
	doc, err := e.store.SlipBySlipID(ctx, slipID)
	if err != nil {
		return ReviewResult{}, fmt.Errorf("%w: load slip %s: %w", ErrStore, slipID, err)
	}
	if doc == nil {
		return ReviewResult{}, fmt.Errorf("%w: slip %s", ErrNotFound, slipID)
	}
	if doc.Type != slip.TypeDispatch {
		return ReviewResult{}, fmt.Errorf("%w: slip %s is a %s slip, not a dispatch", ErrValidation, slipID, doc.Type)
	}
	if doc.Status != slip.StatusPendingReview {
		return ReviewResult{}, fmt.Errorf("%w: slip %s has status %q, not pending review", ErrValidation, slipID, doc.Status)
	}

	review := &slip.Review{
		ReviewedBy: reviewer.Email,
		ReviewedAt: e.now().UTC(),
		Comments:   comments,
	}
	if err := e.store.UpdateStatus(ctx, slipID, slip.StatusDispatched, review); err != nil {
		return ReviewResult{}, fmt.Errorf("%w: approve dispatch %s: %w", ErrStore, slipID, err)
	}

	doc.Status = slip.StatusDispatched
	if doc.Dispatch == nil {
		doc.Dispatch = &slip.DispatchPayload{}
	}
	doc.Dispatch.Review = review

	retro, err := e.createRetroactiveQC(ctx, doc.OrderNumber, reviewer, comments)
	if err != nil {
		return ReviewResult{}, err
	}

	e.logger.Info("dispatch approved; retroactive QC slip created",
		slog.String(logging.FieldSlipID, slipID),
		slog.String("retro_slip_id", retro.SlipID),
		slog.String(logging.FieldOrderNumber, doc.OrderNumber),
		slog.String("reviewed_by", reviewer.Email))

	result := ReviewResult{Dispatch: doc, RetroactiveQC: retro}
	if err := e.notifier.DispatchReviewed(ctx, doc, retro); err != nil {
		e.logger.Warn("review notification failed; workflow state kept",
			slog.String(logging.FieldSlipID, slipID),
			slog.String("error", err.Error()))
		result.NotifyErr = err
	}
	return result, nil
}

// createRetroactiveQC back-fills the QC dependency a pending dispatch was
// missing, so subsequent dispatches for the order take the fast path.
func (e *Engine) createRetroactiveQC(ctx context.Context, orderNumber string, reviewer slip.Identity, comments string) (*slip.Slip, error) {
	slipID, err := e.mintID(ctx, slip.TypeQC)
	if err != nil {
		return nil, err
	}
	retro := &slip.Slip{
		SlipID:      slipID,
		Type:        slip.TypeQC,
		OrderNumber: orderNumber,
		Status:      slip.StatusComplete,
		CreatedAt:   e.now().UTC(),
		CreatedBy:   reviewer,
		QC: &slip.QCPayload{
			IsRetroactive: true,
			Comments:      comments,
		},
	}
	if err := e.persist(ctx, retro); err != nil {
		return nil, err
	}
	return retro, nil
}
