package entries

import (
	"context"

	"github.com/dmitrijs2005/photojournal/internal/journal/models"
)

// Repository describes the storage operations on journal entries.
type Repository interface {
	// EnsureReady creates the storage location if needed. Idempotent.
	EnsureReady(ctx context.Context) error

	// Create writes a new record and returns its path. Entries with neither
	// text nor image are rejected with common.ErrEmptyEntry and nothing is written.
	Create(ctx context.Context, entry models.Entry) (string, error)

	// List returns every stored entry, newest (highest id) first.
	List(ctx context.Context) ([]models.Item, error)

	// Get loads the record stored at path.
	Get(ctx context.Context, path string) (models.Entry, error)

	// Update overwrites the record at path. Empty entries are a no-op
	// (common.ErrEmptyEntry) and leave the existing file untouched.
	Update(ctx context.Context, path string, entry models.Entry) error

	// Delete removes the record at path. A missing record is not an error.
	Delete(ctx context.Context, path string) error

	// PathFor returns the path an entry with the given id is stored at.
	PathFor(id int64) string
}
