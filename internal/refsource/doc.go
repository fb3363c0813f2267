// Package refsource reads the relational system of record that owns parts and
// customer orders.
//
// A Source is scoped to one invocation: the entry point opens it, passes it
// down, and releases it on every exit path. Reads are bounded by the
// configured query timeout so an unreachable ERP server fails the run instead
// of hanging it.
//
// Two drivers are supported: sqlserver for the production ERP database and
// sqlite for local development and tests. Queries avoid driver-specific SQL
// beyond parameter placeholders.
package refsource
