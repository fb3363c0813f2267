// Package docstore persists workflow state in MongoDB and exposes helpers for
// driving slip lifecycles.
//
// The Store manages the client connection, counter increments, slip CRUD,
// mirrored part upserts, and the global settings documents. Collections:
//
//	slips            workflow documents (see package slip)
//	counters         one document per id sequence, atomically incremented
//	parts            reference data mirrored from the relational source
//	settings         global toggles, keyed by fixed ids such as "email_config"
//	users            submitting actors (name, email, roles)
//	dropdown_options UI option lists; no behavior in core scope
//
// Counter issuance is a single FindOneAndUpdate with $inc and upsert, so two
// concurrent callers can never observe the same sequence value. Everything else
// is independent single-document reads and writes; no multi-document
// transaction is required.
package docstore
