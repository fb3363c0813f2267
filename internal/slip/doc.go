// Package slip defines the workflow document model shared by every component.
//
// A Slip is a tagged variant: the common head (id, type, order number, status,
// creator, timestamps) is fixed, while type-specific data lives in exactly one
// payload struct (QC, IR, CC, Dispatch). Status domains differ per type and are
// validated here rather than at the store boundary.
//
// Slip identifiers follow the PREFIX-YYYY-NNNN format and are minted from
// per-type counters; this package owns the formatting and the counter names so
// the generator and the engine cannot drift apart.
package slip
