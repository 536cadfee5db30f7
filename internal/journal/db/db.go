// Package db opens the local SQLite database used for the gallery index
// and app settings, and applies the embedded goose migrations.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/photojournal/internal/dbx"
	"github.com/dmitrijs2005/photojournal/internal/journal/migrations"
	"github.com/dmitrijs2005/photojournal/internal/journal/repositories/assets"
	"github.com/dmitrijs2005/photojournal/internal/journal/repositories/settings"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Repositories groups the repositories backed by the local database.
type Repositories struct {
	DB       *sql.DB
	Settings settings.Repository
	Assets   assets.Repository
}

// Close releases the underlying database handle.
func (r *Repositories) Close() error {
	return r.DB.Close()
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := dbx.OpenSQLite(dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", dsn, err)
	}

	return &Repositories{
		DB:       db,
		Settings: settings.NewSQLiteRepository(db),
		Assets:   assets.NewSQLiteRepository(db),
	}, nil
}
