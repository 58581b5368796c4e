// Package migrations embeds the goose migrations of the page namespace
// (SQLite) and the sync namespace (PostgreSQL).
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed page/*.sql sync/*.sql
var embedMigrations embed.FS

// goose keeps its base filesystem and dialect in package state.
var gooseMu sync.Mutex

// MigratePage applies the page namespace migrations to a SQLite database.
func MigratePage(db *sql.DB) error {
	return migrate(db, "sqlite3", "page")
}

// MigrateSync applies the sync namespace migrations to a PostgreSQL database.
func MigrateSync(db *sql.DB) error {
	return migrate(db, "pgx", "sync")
}

func migrate(db *sql.DB, dialect, dir string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
