package share

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/photojournal/internal/filex"
	"github.com/dmitrijs2005/photojournal/internal/journal/export"
	"github.com/dmitrijs2005/photojournal/internal/logging"
)

// OutboxSharer copies artifacts into a directory the user picks them up from.
type OutboxSharer struct {
	dir      string
	logger   logging.Logger
	announce func(ctx context.Context, path string)
}

func NewOutboxSharer(dir string, logger logging.Logger, announce func(ctx context.Context, path string)) *OutboxSharer {
	if logger == nil {
		logger = logging.Nop()
	}
	return &OutboxSharer{dir: dir, logger: logger, announce: announce}
}

func (s *OutboxSharer) Share(ctx context.Context, path string, opts export.ShareOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir, err := filex.EnsureSubdDir(filepath.Dir(s.dir), filepath.Base(s.dir))
	if err != nil {
		return fmt.Errorf("prepare outbox: %w", err)
	}

	dst := filepath.Join(dir, filepath.Base(path))
	n, err := filex.CopyFile(path, dst)
	if err != nil {
		return fmt.Errorf("copy to outbox: %w", err)
	}

	s.logger.Info(ctx, "shared to outbox", "path", dst, "bytes", n,
		"mime_type", mimeTypeFor(path, opts), "uti", opts.UTI)
	if s.announce != nil {
		s.announce(ctx, dst)
	}
	return nil
}

func mimeTypeFor(path string, opts export.ShareOptions) string {
	if opts.MimeType != "" {
		return opts.MimeType
	}
	switch filepath.Ext(path) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
