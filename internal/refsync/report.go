package refsync

import "time"

// Report summarizes one sync run.
type Report struct {
	// RunID correlates log lines across one run.
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	// Synced and Failed count per-row upsert outcomes.
	Synced int
	Failed int
	// Err is set when the read phase aborted the run. Per-row upsert failures
	// only increment Failed.
	Err error
}

// OK reports whether the run completed its read phase with every row upserted.
func (r Report) OK() bool {
	return r.Err == nil && r.Failed == 0
}
