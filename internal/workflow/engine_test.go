package workflow_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"slipflow/internal/logging"
	"slipflow/internal/slip"
	"slipflow/internal/testsupport"
	"slipflow/internal/workflow"
)

var testClock = func() time.Time {
	return time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)
}

func newEngine(t *testing.T) (*workflow.Engine, *testsupport.MemStore, *testsupport.CaptureNotifier) {
	t.Helper()
	store := testsupport.NewMemStore()
	notifier := &testsupport.CaptureNotifier{}
	engine := workflow.New(store, notifier, logging.NopLogger(), workflow.WithClock(testClock))
	return engine, store, notifier
}

func qcRequest(orderNumber string) workflow.NewQCSlip {
	return workflow.NewQCSlip{
		OrderNumber:            orderNumber,
		COANumber:              "COA-77",
		QCType:                 "final",
		ProductionManagerEmail: "prod@example.com",
		DispatchManagerEmail:   "dispatch@example.com",
		ActionedLines: []slip.ActionedLine{{
			LineNumber:      "1",
			PartID:          "DRUM-200L",
			PartDescription: "200L steel drum",
			OrderQty:        10,
			ActionQty:       10,
		}},
		CreatedBy: slip.Identity{Name: "Dana Op", Email: "dana@example.com"},
	}
}

func TestCreateQCMintsIDAndNotifies(t *testing.T) {
	engine, store, notifier := newEngine(t)

	result, err := engine.CreateQC(context.Background(), qcRequest("SO-1001"))
	if err != nil {
		t.Fatalf("CreateQC: %v", err)
	}
	if result.NotifyErr != nil {
		t.Fatalf("unexpected notify error: %v", result.NotifyErr)
	}
	if result.Slip.SlipID != "QC-2025-0001" {
		t.Fatalf("slip id = %q, want QC-2025-0001", result.Slip.SlipID)
	}
	if result.Slip.Status != slip.StatusComplete {
		t.Fatalf("status = %q, want Complete", result.Slip.Status)
	}

	stored, err := store.SlipBySlipID(context.Background(), "QC-2025-0001")
	if err != nil || stored == nil {
		t.Fatalf("stored slip lookup: %v, %v", stored, err)
	}
	if created := notifier.Created(); len(created) != 1 || created[0].SlipID != "QC-2025-0001" {
		t.Fatalf("expected one creation event for QC-2025-0001, got %v", created)
	}
}

func TestCreateQCRequiresActionedLines(t *testing.T) {
	engine, store, notifier := newEngine(t)

	req := qcRequest("SO-1001")
	req.ActionedLines = nil
	_, err := engine.CreateQC(context.Background(), req)
	if !errors.Is(err, workflow.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// Rejected requests consume nothing.
	if seq, _ := store.SequenceValue(context.Background(), slip.SequenceQC); seq != 0 {
		t.Fatalf("sequence consumed on validation failure: %d", seq)
	}
	if len(store.AllSlips()) != 0 {
		t.Fatal("slip persisted on validation failure")
	}
	if len(notifier.Created()) != 0 {
		t.Fatal("notification sent on validation failure")
	}
}

func TestCreateRequiresOrderNumber(t *testing.T) {
	engine, _, _ := newEngine(t)

	_, err := engine.CreateIR(context.Background(), workflow.NewIRSlip{
		OrderNumber:       "   ",
		NatureOfComplaint: "damaged packaging",
	})
	if !errors.Is(err, workflow.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateDispatchAutoCompletesWithCompleteQC(t *testing.T) {
	engine, _, _ := newEngine(t)

	if _, err := engine.CreateQC(context.Background(), qcRequest("SO-1001")); err != nil {
		t.Fatalf("CreateQC: %v", err)
	}

	result, err := engine.CreateDispatch(context.Background(), workflow.NewDispatch{
		OrderNumber: "SO-1001",
		Attachments: []string{"pod/SO-1001.pdf"},
		CreatedBy:   slip.Identity{Name: "Dana Op", Email: "dana@example.com"},
	})
	if err != nil {
		t.Fatalf("CreateDispatch: %v", err)
	}
	if result.Slip.Status != slip.StatusDispatched {
		t.Fatalf("status = %q, want Dispatched", result.Slip.Status)
	}
	if result.Slip.SlipID != "DIS-2025-0001" {
		t.Fatalf("slip id = %q, want DIS-2025-0001", result.Slip.SlipID)
	}
}

func TestCreateDispatchPendsWithoutCompleteQC(t *testing.T) {
	engine, store, _ := newEngine(t)

	// A QC slip for another order and a non-Complete QC slip for this order
	// both fail the gate.
	if _, err := engine.CreateQC(context.Background(), qcRequest("SO-9999")); err != nil {
		t.Fatalf("CreateQC: %v", err)
	}
	if err := store.CreateSlip(context.Background(), &slip.Slip{
		SlipID:      "QC-2025-0099",
		Type:        slip.TypeQC,
		OrderNumber: "SO-1001",
		Status:      slip.StatusOpen,
		CreatedAt:   testClock(),
	}); err != nil {
		t.Fatalf("seed open QC: %v", err)
	}

	result, err := engine.CreateDispatch(context.Background(), workflow.NewDispatch{
		OrderNumber: "SO-1001",
		CreatedBy:   slip.Identity{Name: "Dana Op", Email: "dana@example.com"},
	})
	if err != nil {
		t.Fatalf("CreateDispatch: %v", err)
	}
	if result.Slip.Status != slip.StatusPendingReview {
		t.Fatalf("status = %q, want %q", result.Slip.Status, slip.StatusPendingReview)
	}
}

func TestReviewDispatchApprovesAndBackfillsQC(t *testing.T) {
	engine, store, notifier := newEngine(t)
	ctx := context.Background()
	reviewer := slip.Identity{Name: "Avery Admin", Email: "admin@example.com"}

	pending, err := engine.CreateDispatch(ctx, workflow.NewDispatch{
		OrderNumber: "SO-1001",
		CreatedBy:   slip.Identity{Name: "Dana Op", Email: "dana@example.com"},
	})
	if err != nil {
		t.Fatalf("CreateDispatch: %v", err)
	}

	result, err := engine.ReviewDispatch(ctx, pending.Slip.SlipID, reviewer, "verified against batch records")
	if err != nil {
		t.Fatalf("ReviewDispatch: %v", err)
	}
	if result.Dispatch.Status != slip.StatusDispatched {
		t.Fatalf("dispatch status = %q, want Dispatched", result.Dispatch.Status)
	}
	review := result.Dispatch.Dispatch.Review
	if review == nil || review.ReviewedBy != "admin@example.com" {
		t.Fatalf("review stamp = %+v", review)
	}
	if !review.ReviewedAt.Equal(testClock()) {
		t.Fatalf("reviewed at = %v, want %v", review.ReviewedAt, testClock())
	}

	retro := result.RetroactiveQC
	if retro == nil || retro.QC == nil || !retro.QC.IsRetroactive {
		t.Fatalf("expected retroactive QC slip, got %+v", retro)
	}
	if retro.Status != slip.StatusComplete {
		t.Fatalf("retroactive QC status = %q, want Complete", retro.Status)
	}
	if retro.OrderNumber != "SO-1001" {
		t.Fatalf("retroactive QC order = %q", retro.OrderNumber)
	}
	if retro.SlipID != "QC-2025-0001" {
		t.Fatalf("retroactive QC id = %q, want QC-2025-0001", retro.SlipID)
	}
	if retro.QC.Comments != "verified against batch records" {
		t.Fatalf("retroactive QC comments = %q", retro.QC.Comments)
	}

	// Exactly one QC slip exists for the order and it satisfies the gate for
	// the next dispatch.
	qcSlips, err := store.SlipsByType(ctx, slip.TypeQC, "")
	if err != nil {
		t.Fatalf("SlipsByType: %v", err)
	}
	if len(qcSlips) != 1 {
		t.Fatalf("expected exactly one QC slip, got %d", len(qcSlips))
	}
	next, err := engine.CreateDispatch(ctx, workflow.NewDispatch{
		OrderNumber: "SO-1001",
		CreatedBy:   slip.Identity{Name: "Dana Op", Email: "dana@example.com"},
	})
	if err != nil {
		t.Fatalf("CreateDispatch after review: %v", err)
	}
	if next.Slip.Status != slip.StatusDispatched {
		t.Fatalf("post-review dispatch status = %q, want Dispatched", next.Slip.Status)
	}

	if reviewed := notifier.Reviewed(); len(reviewed) != 1 || reviewed[0].RetroactiveQC.SlipID != retro.SlipID {
		t.Fatalf("expected one review event carrying %s, got %v", retro.SlipID, reviewed)
	}
}

func TestReviewDispatchRejectsWrongState(t *testing.T) {
	engine, store, _ := newEngine(t)
	ctx := context.Background()
	reviewer := slip.Identity{Name: "Avery Admin", Email: "admin@example.com"}

	if _, err := engine.ReviewDispatch(ctx, "DIS-2025-0404", reviewer, ""); !errors.Is(err, workflow.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}

	if err := store.CreateSlip(ctx, &slip.Slip{
		SlipID:      "QC-2025-0001",
		Type:        slip.TypeQC,
		OrderNumber: "SO-1001",
		Status:      slip.StatusComplete,
		CreatedAt:   testClock(),
	}); err != nil {
		t.Fatalf("seed QC: %v", err)
	}
	if _, err := engine.ReviewDispatch(ctx, "QC-2025-0001", reviewer, ""); !errors.Is(err, workflow.ErrValidation) {
		t.Fatalf("expected validation error for non-dispatch slip, got %v", err)
	}

	dispatched, err := engine.CreateDispatch(ctx, workflow.NewDispatch{
		OrderNumber: "SO-1001",
		CreatedBy:   slip.Identity{Email: "dana@example.com"},
	})
	if err != nil {
		t.Fatalf("CreateDispatch: %v", err)
	}
	if _, err := engine.ReviewDispatch(ctx, dispatched.Slip.SlipID, reviewer, ""); !errors.Is(err, workflow.ErrValidation) {
		t.Fatalf("expected validation error for already-dispatched slip, got %v", err)
	}
}

func TestNotifyFailureDegradesToResult(t *testing.T) {
	store := testsupport.NewMemStore()
	notifier := &testsupport.CaptureNotifier{Err: errors.New("smtp unreachable")}
	engine := workflow.New(store, notifier, logging.NopLogger(), workflow.WithClock(testClock))

	result, err := engine.CreateIR(context.Background(), workflow.NewIRSlip{
		OrderNumber:       "SO-1001",
		NatureOfComplaint: "mislabeled drums",
		CreatedBy:         slip.Identity{Email: "dana@example.com"},
	})
	if err != nil {
		t.Fatalf("CreateIR: %v", err)
	}
	if result.NotifyErr == nil {
		t.Fatal("expected degraded result with notify error")
	}
	if stored, _ := store.SlipBySlipID(context.Background(), result.Slip.SlipID); stored == nil {
		t.Fatal("slip must persist despite notification failure")
	}
}

func TestStoreFailureSurfacesAsStoreError(t *testing.T) {
	engine, store, _ := newEngine(t)
	store.CreateErr = errors.New("connection reset")

	_, err := engine.CreateCC(context.Background(), workflow.NewCCSlip{
		OrderNumber:      "SO-1001",
		ComplaintDetails: "late delivery",
	})
	if !errors.Is(err, workflow.ErrStore) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestConcurrentCreatesMintDistinctIDs(t *testing.T) {
	engine, store, _ := newEngine(t)
	ctx := context.Background()

	const n = 24
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := engine.CreateCC(ctx, workflow.NewCCSlip{
				OrderNumber:      "SO-1001",
				ComplaintDetails: "late delivery",
				CreatedBy:        slip.Identity{Email: "dana@example.com"},
			})
			if err != nil {
				t.Errorf("CreateCC: %v", err)
				return
			}
			ids <- result.Slip.SlipID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{}, n)
	for id := range ids {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate slip id minted: %s", id)
		}
		seen[id] = struct{}{}
	}
	if len(seen) != n {
		t.Fatalf("expected %d distinct ids, got %d", n, len(seen))
	}
	if seq, _ := store.SequenceValue(ctx, slip.SequenceCC); seq != n {
		t.Fatalf("sequence = %d, want %d", seq, n)
	}
}

func TestPendingReviewsListsOnlyPendingDispatches(t *testing.T) {
	engine, _, _ := newEngine(t)
	ctx := context.Background()

	if _, err := engine.CreateQC(ctx, qcRequest("SO-2002")); err != nil {
		t.Fatalf("CreateQC: %v", err)
	}
	if _, err := engine.CreateDispatch(ctx, workflow.NewDispatch{OrderNumber: "SO-2002"}); err != nil {
		t.Fatalf("CreateDispatch dispatched: %v", err)
	}
	pending, err := engine.CreateDispatch(ctx, workflow.NewDispatch{OrderNumber: "SO-3003"})
	if err != nil {
		t.Fatalf("CreateDispatch pending: %v", err)
	}

	reviews, err := engine.PendingReviews(ctx)
	if err != nil {
		t.Fatalf("PendingReviews: %v", err)
	}
	if len(reviews) != 1 || reviews[0].SlipID != pending.Slip.SlipID {
		t.Fatalf("pending reviews = %v, want only %s", reviews, pending.Slip.SlipID)
	}
}
