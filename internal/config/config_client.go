package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// HashKey is the HMAC key used by the client for payload integrity checks.
	HashKey string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the remote document store.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local queue database settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string backing the sync queue.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local queue database settings.
	DB ClientDB
	// SessionFile is the path of the restored-session file.
	SessionFile string
}

// ClientSync contains background synchronization settings.
type ClientSync struct {
	// Interval defines how often the background drain runs.
	Interval time.Duration
	// MaxRetries is the number of attempts a queued item gets before it
	// settles as failed.
	MaxRetries int
	// BackoffBase is the base delay of the exponential retry backoff.
	// Zero keeps retries immediate.
	BackoffBase time.Duration
	// BackoffCap bounds the exponential retry backoff.
	BackoffCap time.Duration
	// ProbeInterval defines how often connectivity is probed while offline.
	ProbeInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Sync contains background synchronization settings.
	Sync ClientSync
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			HashKey: cfg.App.HashKey,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Client.ServerURL,
			RequestTimeout: cfg.Client.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Client.QueueDBPath,
			},
			SessionFile: cfg.Client.SessionFilePath,
		},
		Sync: ClientSync{
			Interval:      cfg.Sync.Interval,
			MaxRetries:    cfg.Sync.MaxRetries,
			BackoffBase:   cfg.Sync.BackoffBase,
			BackoffCap:    cfg.Sync.BackoffCap,
			ProbeInterval: cfg.Sync.ProbeInterval,
		},
	}

	return clientCfg, clientCfg.validate()
}
