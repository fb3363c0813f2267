package config

import (
	"errors"
	"fmt"
)

var supportedDrivers = map[string]struct{}{
	"sqlserver": {},
	"sqlite":    {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDocStore(); err != nil {
		return err
	}
	if err := c.validateRefSource(); err != nil {
		return err
	}
	if err := c.validateNotify(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDocStore() error {
	if c.DocStore.URI == "" {
		return errors.New("docstore.uri must be set")
	}
	if c.DocStore.Database == "" {
		return errors.New("docstore.database must be set")
	}
	return nil
}

func (c *Config) validateRefSource() error {
	if _, ok := supportedDrivers[c.RefSource.Driver]; !ok {
		return fmt.Errorf("refsource.driver: unsupported driver %q (want sqlserver or sqlite)", c.RefSource.Driver)
	}
	return nil
}

func (c *Config) validateNotify() error {
	// SMTP is optional: a missing host degrades notifications to a no-op.
	if c.Notify.SMTPHost == "" {
		return nil
	}
	if c.Notify.From == "" {
		return errors.New("notify.from must be set when notify.smtp_host is configured")
	}
	if c.Notify.TestRecipient == "" {
		return errors.New("notify.test_recipient must be set when notify.smtp_host is configured")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
