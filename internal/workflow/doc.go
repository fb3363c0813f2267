// Package workflow drives the slip state machine.
//
// The Engine validates every request before a sequence number is consumed,
// mints the slip id, writes through the store, and notifies best-effort. Its
// one interesting decision is the dispatch gate: a dispatch for an order with
// a prior Complete QC slip auto-completes as Dispatched, while one without
// enters Dispatched - Pending Review. Approving a pending dispatch stamps the
// reviewer and synthesizes a retroactive Complete QC slip for the same order,
// repairing the missing dependency so the audit trail is self-consistent.
//
// A store-write failure aborts the whole creation and surfaces to the caller;
// the consumed sequence number is an accepted gap since ids need only be
// unique, not contiguous. A notification failure after a successful write
// never rolls anything back - it is reported on the Result instead.
package workflow
