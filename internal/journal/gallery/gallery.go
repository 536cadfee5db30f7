// Package gallery is the local media library scrapbook pages are saved to.
// Files are copied under one directory and indexed in SQLite; writes are
// gated by a permission that can be fixed in config or asked once.
package gallery

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/photojournal/internal/dbx"
	"github.com/dmitrijs2005/photojournal/internal/filex"
	"github.com/dmitrijs2005/photojournal/internal/journal/models"
	"github.com/dmitrijs2005/photojournal/internal/journal/repositories/assets"
	"github.com/dmitrijs2005/photojournal/internal/journal/repositories/settings"
	"github.com/dmitrijs2005/photojournal/internal/logging"
	"github.com/google/uuid"
)

type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionPrompt  Permission = "prompt"

	permissionKey = "gallery_permission"
)

// ParsePermission accepts granted, denied or prompt (case-insensitive).
func ParsePermission(s string) (Permission, error) {
	switch p := Permission(strings.ToLower(strings.TrimSpace(s))); p {
	case PermissionGranted, PermissionDenied, PermissionPrompt:
		return p, nil
	case "":
		return PermissionPrompt, nil
	default:
		return "", fmt.Errorf("unknown gallery permission %q", s)
	}
}

// Asker poses a yes/no question to the user.
type Asker func(ctx context.Context, question string) (bool, error)

type Gallery struct {
	db       *sql.DB
	assets   *assets.SQLiteRepository
	settings settings.Repository
	dir      string
	policy   Permission
	ask      Asker
	logger   logging.Logger
	now      func() time.Time
}

func New(db *sql.DB, settingsRepo settings.Repository, dir string, policy Permission, ask Asker, logger logging.Logger) *Gallery {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Gallery{
		db:       db,
		assets:   assets.NewSQLiteRepository(db),
		settings: settingsRepo,
		dir:      dir,
		policy:   policy,
		ask:      ask,
		logger:   logger,
		now:      time.Now,
	}
}

// RequestPermission resolves the configured policy. With prompt, a stored
// answer is reused; otherwise the user is asked once and the answer kept.
func (g *Gallery) RequestPermission(ctx context.Context) (bool, error) {
	switch g.policy {
	case PermissionGranted:
		return true, nil
	case PermissionDenied:
		return false, nil
	}

	stored, err := g.settings.Get(ctx, permissionKey)
	if err != nil {
		return false, err
	}
	switch Permission(stored) {
	case PermissionGranted:
		return true, nil
	case PermissionDenied:
		return false, nil
	}

	if g.ask == nil {
		return false, nil
	}
	ok, err := g.ask(ctx, "Allow saving pages to the gallery?")
	if err != nil {
		return false, err
	}
	answer := PermissionDenied
	if ok {
		answer = PermissionGranted
	}
	if err := g.settings.Set(ctx, permissionKey, []byte(answer)); err != nil {
		return false, err
	}
	g.logger.Info(ctx, "gallery permission recorded", "permission", string(answer))
	return ok, nil
}

// ResetPermission forgets a remembered prompt answer.
func (g *Gallery) ResetPermission(ctx context.Context) error {
	return g.settings.Delete(ctx, permissionKey)
}

// Save copies path into the gallery and indexes it. The index row and the
// copy succeed or fail together.
func (g *Gallery) Save(ctx context.Context, path string) error {
	dir, err := filex.EnsureSubdDir(filepath.Dir(g.dir), filepath.Base(g.dir))
	if err != nil {
		return fmt.Errorf("prepare gallery: %w", err)
	}

	id := uuid.NewString()
	name := id + filepath.Ext(path)
	dst := filepath.Join(dir, name)

	err = dbx.WithTx(ctx, g.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		n, err := filex.CopyFile(path, dst)
		if err != nil {
			return err
		}
		return g.assets.WithTx(tx).Add(ctx, &models.Asset{
			ID:         id,
			FileName:   name,
			SourcePath: path,
			SizeBytes:  n,
			CreatedAt:  g.now(),
		})
	})
	if err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("save to gallery: %w", err)
	}

	g.logger.Info(ctx, "saved to gallery", "asset", name)
	return nil
}

// List returns saved assets, newest first.
func (g *Gallery) List(ctx context.Context) ([]models.Asset, error) {
	return g.assets.List(ctx)
}

// PathOf returns where a saved asset lives on disk.
func (g *Gallery) PathOf(a models.Asset) string {
	return filepath.Join(g.dir, a.FileName)
}
