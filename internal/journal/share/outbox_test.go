package share

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/photojournal/internal/journal/export"
	"github.com/dmitrijs2005/photojournal/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxSharer_CopiesAndAnnounces(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "journal_1.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF-1.4"), 0o600))

	var announced string
	s := NewOutboxSharer(filepath.Join(root, "Outbox"), logging.Nop(), func(_ context.Context, p string) {
		announced = p
	})

	require.NoError(t, s.Share(context.Background(), src, export.PDFShareOptions))

	dst := filepath.Join(root, "Outbox", "journal_1.pdf")
	assert.Equal(t, dst, announced)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestOutboxSharer_MissingSource(t *testing.T) {
	root := t.TempDir()
	s := NewOutboxSharer(filepath.Join(root, "Outbox"), nil, nil)

	err := s.Share(context.Background(), filepath.Join(root, "nope.jpg"), export.ShareOptions{})
	require.ErrorContains(t, err, "copy to outbox")
}

func TestMimeTypeFor(t *testing.T) {
	tests := []struct {
		path string
		opts export.ShareOptions
		want string
	}{
		{"a.jpg", export.ShareOptions{}, "image/jpeg"},
		{"a.jpeg", export.ShareOptions{}, "image/jpeg"},
		{"a.png", export.ShareOptions{}, "image/png"},
		{"a.pdf", export.ShareOptions{}, "application/pdf"},
		{"a.bin", export.ShareOptions{}, "application/octet-stream"},
		{"a.jpg", export.PDFShareOptions, "application/pdf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mimeTypeFor(tt.path, tt.opts), tt.path)
	}
}
