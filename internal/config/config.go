package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// DocStore contains document store (MongoDB) connection settings.
type DocStore struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
	// ConnectTimeout bounds the initial connection handshake, in seconds.
	ConnectTimeout int `toml:"connect_timeout"`
}

// RefSource contains connection settings for the relational system of record.
type RefSource struct {
	// Driver selects the database/sql driver: "sqlserver" or "sqlite".
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
	// QueryTimeout bounds every read against the source, in seconds.
	QueryTimeout int `toml:"query_timeout"`
}

// Notify contains SMTP delivery settings for slip notifications.
type Notify struct {
	SMTPHost string `toml:"smtp_host"`
	SMTPPort int    `toml:"smtp_port"`
	SMTPUser string `toml:"smtp_user"`
	SMTPPass string `toml:"smtp_pass"`
	From     string `toml:"from"`
	// TestRecipient receives all traffic while the email_config testing_mode
	// setting in the document store is enabled.
	TestRecipient  string   `toml:"test_recipient"`
	IRRecipients   []string `toml:"ir_recipients"`
	CCRecipients   []string `toml:"cc_recipients"`
	RequestTimeout int      `toml:"request_timeout"`
}

// Sync contains cadence settings for the reference data sync job.
type Sync struct {
	// Interval between scheduled runs, in seconds.
	Interval int `toml:"interval"`
	// UpsertWorkers bounds concurrent per-row upserts during a run.
	UpsertWorkers int `toml:"upsert_workers"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for slipflow.
//
// Configuration sections by subsystem:
//   - DocStore: MongoDB workflow/document state
//   - RefSource: relational system of record for parts and orders
//   - Notify: SMTP notification transport and static recipient lists
//   - Sync: reference sync cadence and fan-out
//   - Logging: log format and level
type Config struct {
	LogDir    string    `toml:"log_dir"`
	DocStore  DocStore  `toml:"docstore"`
	RefSource RefSource `toml:"refsource"`
	Notify    Notify    `toml:"notify"`
	Sync      Sync      `toml:"sync"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/slipflow/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("slipflow.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the daemon needs at runtime.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.LogDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.LogDir, err)
	}
	return nil
}

// QueryTimeout returns the bounded relational read timeout as a duration.
func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.RefSource.QueryTimeout) * time.Second
}

// SyncInterval returns the scheduled sync cadence as a duration.
func (c *Config) SyncInterval() time.Duration {
	return time.Duration(c.Sync.Interval) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
