package testsupport

import (
	"path/filepath"
	"testing"

	"slipflow/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.LogDir = filepath.Join(base, "logs")
	cfg.RefSource.Driver = "sqlite"
	cfg.RefSource.DSN = filepath.Join(base, "refsource.db")
	cfg.Notify.SMTPHost = ""
	cfg.Notify.From = "slipflow@example.com"
	cfg.Notify.TestRecipient = "sandbox@example.com"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithRefSource overrides the relational source driver and DSN.
func WithRefSource(driver, dsn string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.RefSource.Driver = driver
		cfg.RefSource.DSN = dsn
	}
}

// WithSyncInterval sets the sync cadence in seconds.
func WithSyncInterval(seconds int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Sync.Interval = seconds
	}
}
