package store

import (
	"database/sql"

	"github.com/MKhiriev/go-study-sync/internal/logger"
	"github.com/MKhiriev/go-study-sync/migrations"
)

// DB wraps the standard library connection pool together with the error
// classifier and logger shared by every repository built on top of it.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies all pending server-side schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
