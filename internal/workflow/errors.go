package workflow

import "errors"

// Sentinel errors classify engine failures for callers. Wrap with %w so
// errors.Is classification survives added context.
var (
	// ErrValidation marks requests rejected before any persistence or id
	// consumption. No side effects occurred.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks operations on slips that do not exist.
	ErrNotFound = errors.New("not found")
	// ErrStore marks store failures; the current operation aborted and
	// nothing beyond an already-consumed sequence number persisted.
	ErrStore = errors.New("store error")
)
