package store

import (
	"database/sql"

	"github.com/MKhiriev/fav-sync/internal/logger"
)

// DB is a database/sql connection together with the error classifier of its
// driver.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// retryable reports whether the driver considers err transient. It is
// recorded in logs only; the propagation layer never retries.
func (db *DB) retryable(err error) bool {
	if db.errorClassificator == nil {
		return false
	}
	return db.errorClassificator.Classify(err) == Retryable
}
