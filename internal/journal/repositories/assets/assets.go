// Package assets indexes the images saved to the local gallery.
package assets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/photojournal/internal/common"
	"github.com/dmitrijs2005/photojournal/internal/dbx"
	"github.com/dmitrijs2005/photojournal/internal/journal/models"
)

type Repository interface {
	Add(ctx context.Context, a *models.Asset) error
	List(ctx context.Context) ([]models.Asset, error)
	Get(ctx context.Context, id string) (*models.Asset, error)
}

// SQLiteRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *SQLiteRepository) WithTx(tx dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: tx}
}

func (r *SQLiteRepository) Add(ctx context.Context, a *models.Asset) error {
	query := `INSERT INTO gallery_assets (id, file_name, source_path, size_bytes, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.FileName, a.SourcePath, a.SizeBytes, a.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}
	return nil
}

// List returns assets newest first.
func (r *SQLiteRepository) List(ctx context.Context) ([]models.Asset, error) {
	query := `SELECT id, file_name, source_path, size_bytes, created_at
		FROM gallery_assets ORDER BY created_at DESC, id`
	result, err := dbx.QueryAll(ctx, r.db, scanAsset, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select assets: %w", err)
	}
	return result, nil
}

func scanAsset(rows *sql.Rows) (models.Asset, error) {
	var a models.Asset
	err := rows.Scan(&a.ID, &a.FileName, &a.SourcePath, &a.SizeBytes, &a.CreatedAt)
	return a, err
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Asset, error) {
	query := `SELECT id, file_name, source_path, size_bytes, created_at
		FROM gallery_assets WHERE id = ?`

	a := &models.Asset{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.FileName, &a.SourcePath, &a.SizeBytes, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return a, nil
}
