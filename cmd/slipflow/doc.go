// Package main hosts the slipflow CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces slip creation and listing, the admin
// review queue, the email test-mode toggle, reference lookups, one-shot and
// daemonized reference syncs, and configuration scaffolding. It centralizes
// configuration resolution and logger setup so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
