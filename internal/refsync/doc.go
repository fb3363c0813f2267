// Package refsync mirrors relational reference data into the document store.
//
// Sync is a pure entry point with no knowledge of how or when it is invoked;
// the scheduler and the CLI both call it. A run reads every part row from the
// source, then upserts each row independently: one bad row is logged and
// skipped, while a read-phase failure (bad query, lost connection, timeout)
// aborts the remainder and marks the run failed. The run never returns an
// error to its caller - it always completes and reports, because it normally
// executes unattended.
//
// Readers of the target collection may observe a partially-synced state
// mid-run. Reference data is read-mostly and tolerant of brief staleness, so
// no transaction spans the scan.
package refsync
