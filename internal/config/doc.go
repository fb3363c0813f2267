// Package config loads, normalizes, and validates slipflow configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks for
// secrets such as REFSOURCE_DSN and SMTP_PASSWORD. The Config type
// centralizes every knob the daemon and CLI need: document store connection,
// relational source, notification transport, sync cadence, and logging.
//
// Always obtain settings through this package so downstream code receives
// sanitized values, canonical log formats, and clear validation errors.
package config
