// Package logging constructs the shared slog logger and standardizes the
// structured field keys used across components.
//
// Loggers write to stdout and, when a log directory is configured, to
// slipflow.log inside it. The console format is for interactive use; json is
// for unattended daemons. Components receive a *slog.Logger scoped with
// WithComponent so every line carries its origin.
package logging
