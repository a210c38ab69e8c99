package kvstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/packtrack/packtrack/internal/client/repositories/kvstore/migrations"
	"github.com/pressly/goose/v3"
)

// Open opens (creating if necessary) the sqlite database at dsn, applies
// the embedded migrations and returns a ready repository. The caller owns
// the returned *sql.DB and must close it on shutdown.
func Open(ctx context.Context, dsn string) (*SQLiteRepository, *sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return NewSQLiteRepository(db), db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
