// Package storage opens the local SQLite database and applies the embedded
// goose migrations. Every durable record of the application (key-value store
// and keyring slot) lives in this one file-backed database.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/authvault/internal/migrations"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies all embedded migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite database at dsn and brings the schema up to
// date. The returned handle is safe for concurrent use; callers own closing it.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
