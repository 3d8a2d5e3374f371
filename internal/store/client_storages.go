package store

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-study-sync/internal/config"
	"github.com/MKhiriev/go-study-sync/internal/logger"
)

// ClientStorages groups all client-side stores into a single value that can
// be passed around the service layer.
type ClientStorages struct {
	// QueueRepository is the SQLite-backed persistent sync queue.
	QueueRepository QueueRepository

	// SessionStore keeps the signed-in session between client runs.
	SessionStore SessionStore
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Creates the local queue schema via [DB.InitQueueSchema].
//  3. Opens the session file store at cfg.SessionFile.
//
// Returns an error if the database connection cannot be established or if
// schema creation fails.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	ctx := context.Background()

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.InitQueueSchema(ctx); err != nil {
		return nil, fmt.Errorf("queue schema creation failed: %w", err)
	}

	sessions, err := NewSessionFileStore(cfg.SessionFile)
	if err != nil {
		// a corrupt session cache must not lock the user out; drop it and
		// start signed out
		logger.Warn().Err(err).Msg("session file unreadable, starting signed out")
		if rmErr := os.Remove(cfg.SessionFile); rmErr != nil && !os.IsNotExist(rmErr) {
			return nil, fmt.Errorf("session store error: %w", err)
		}
		if sessions, err = NewSessionFileStore(cfg.SessionFile); err != nil {
			return nil, fmt.Errorf("session store error: %w", err)
		}
	}

	return &ClientStorages{
		QueueRepository: NewQueueRepository(ctx, db, logger),
		SessionStore:    sessions,
	}, nil
}
