package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	var err error
	if strings.TrimSpace(c.LogDir) == "" {
		c.LogDir = defaultLogDir
	}
	if c.LogDir, err = expandPath(c.LogDir); err != nil {
		return fmt.Errorf("log_dir: %w", err)
	}
	c.normalizeDocStore()
	c.normalizeRefSource()
	c.normalizeNotify()
	c.normalizeSync()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeDocStore() {
	c.DocStore.URI = strings.TrimSpace(c.DocStore.URI)
	if c.DocStore.URI == "" {
		c.DocStore.URI = defaultDocStoreURI
	}
	c.DocStore.Database = strings.TrimSpace(c.DocStore.Database)
	if c.DocStore.Database == "" {
		c.DocStore.Database = defaultDocStoreDatabase
	}
	if c.DocStore.ConnectTimeout <= 0 {
		c.DocStore.ConnectTimeout = defaultDocStoreTimeout
	}
}

func (c *Config) normalizeRefSource() {
	c.RefSource.Driver = strings.ToLower(strings.TrimSpace(c.RefSource.Driver))
	if c.RefSource.Driver == "" {
		c.RefSource.Driver = defaultRefSourceDriver
	}
	c.RefSource.DSN = strings.TrimSpace(c.RefSource.DSN)
	if c.RefSource.DSN == "" {
		if value, ok := os.LookupEnv("REFSOURCE_DSN"); ok {
			c.RefSource.DSN = strings.TrimSpace(value)
		}
	}
	if c.RefSource.QueryTimeout <= 0 {
		c.RefSource.QueryTimeout = defaultRefSourceTimeout
	}
}

func (c *Config) normalizeNotify() {
	c.Notify.SMTPHost = strings.TrimSpace(c.Notify.SMTPHost)
	c.Notify.SMTPUser = strings.TrimSpace(c.Notify.SMTPUser)
	if c.Notify.SMTPPass == "" {
		if value, ok := os.LookupEnv("SMTP_PASSWORD"); ok {
			c.Notify.SMTPPass = value
		}
	}
	if c.Notify.SMTPPort <= 0 {
		c.Notify.SMTPPort = defaultSMTPPort
	}
	c.Notify.From = strings.TrimSpace(c.Notify.From)
	c.Notify.TestRecipient = strings.TrimSpace(c.Notify.TestRecipient)
	c.Notify.IRRecipients = trimAll(c.Notify.IRRecipients)
	c.Notify.CCRecipients = trimAll(c.Notify.CCRecipients)
	if c.Notify.RequestTimeout <= 0 {
		c.Notify.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeSync() {
	if c.Sync.Interval <= 0 {
		c.Sync.Interval = defaultSyncInterval
	}
	if c.Sync.UpsertWorkers <= 0 {
		c.Sync.UpsertWorkers = defaultSyncUpsertWorkers
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func trimAll(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
