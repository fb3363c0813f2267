// Package notifications delivers workflow events via email.
//
// The default implementation sends over SMTP using the transport configured in
// config.toml and gracefully degrades to a no-op when no SMTP host is set.
// Before every send the service consults the document store's email_config
// toggle: in testing mode all traffic is redirected to the configured test
// recipient and the original recipient list is appended to the body for
// traceability.
//
// Delivery is best-effort. Failures return errors for the caller to log and
// downgrade; nothing in the workflow is rolled back on a failed send. All
// workflow code depends only on the Service interface.
package notifications
