// Package scheduler drives the periodic reference-data sync loop.
//
// One scheduler owns the process-wide lock file, so a second slipflow daemon
// pointed at the same log directory refuses to start. The loop runs a sync
// immediately on Start and then on the configured interval until Stop or
// context cancellation.
package scheduler
