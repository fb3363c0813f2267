package testsupport

import (
	"context"
	"sync"

	"slipflow/internal/slip"
)

// CaptureNotifier records workflow events for assertions. It satisfies
// workflow.Notifier. Setting Err makes every call fail.
type CaptureNotifier struct {
	mu       sync.Mutex
	created  []*slip.Slip
	reviewed []ReviewedEvent

	Err error
}

// ReviewedEvent is one DispatchReviewed invocation.
type ReviewedEvent struct {
	Dispatch      *slip.Slip
	RetroactiveQC *slip.Slip
}

func (c *CaptureNotifier) SlipCreated(_ context.Context, created *slip.Slip) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.created = append(c.created, created)
	return nil
}

func (c *CaptureNotifier) DispatchReviewed(_ context.Context, dispatch, retroactiveQC *slip.Slip) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.reviewed = append(c.reviewed, ReviewedEvent{Dispatch: dispatch, RetroactiveQC: retroactiveQC})
	return nil
}

// Created returns the slips announced so far.
func (c *CaptureNotifier) Created() []*slip.Slip {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*slip.Slip(nil), c.created...)
}

// Reviewed returns the review events announced so far.
func (c *CaptureNotifier) Reviewed() []ReviewedEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ReviewedEvent(nil), c.reviewed...)
}
