package store

import "errors"

// Sentinel errors returned by the namespaces. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrStore wraps every platform failure of a get or set.
	ErrStore = errors.New("storage operation failed")

	// ErrQuotaExceeded is returned when a write would grow the sync
	// namespace beyond its byte quota. The write is rejected as a whole.
	ErrQuotaExceeded = errors.New("sync storage quota exceeded")

	// ErrInvalidValue is returned when a value handed to Set is not a
	// JSON document.
	ErrInvalidValue = errors.New("value is not valid json")

	// ErrNilDB is returned when a repository is built without a connection.
	ErrNilDB = errors.New("db is nil")
)

// Low-level database operation errors. They are wrapped together with
// [ErrStore] so callers can match either.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing a transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")
)
