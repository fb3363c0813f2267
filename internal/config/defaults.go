package config

const (
	defaultLogDir            = "~/.local/share/slipflow/logs"
	defaultDocStoreURI       = "mongodb://localhost:27017"
	defaultDocStoreDatabase  = "slipflow"
	defaultDocStoreTimeout   = 10
	defaultRefSourceDriver   = "sqlserver"
	defaultRefSourceTimeout  = 30
	defaultSMTPPort          = 587
	defaultNotifyTimeout     = 10
	defaultSyncInterval      = 3600
	defaultSyncUpsertWorkers = 4
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		LogDir: defaultLogDir,
		DocStore: DocStore{
			URI:            defaultDocStoreURI,
			Database:       defaultDocStoreDatabase,
			ConnectTimeout: defaultDocStoreTimeout,
		},
		RefSource: RefSource{
			Driver:       defaultRefSourceDriver,
			QueryTimeout: defaultRefSourceTimeout,
		},
		Notify: Notify{
			SMTPPort:       defaultSMTPPort,
			RequestTimeout: defaultNotifyTimeout,
		},
		Sync: Sync{
			Interval:      defaultSyncInterval,
			UpsertWorkers: defaultSyncUpsertWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
