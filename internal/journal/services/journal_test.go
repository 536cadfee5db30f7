package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/photojournal/internal/common"
	"github.com/dmitrijs2005/photojournal/internal/journal/models"
	"github.com/dmitrijs2005/photojournal/internal/journal/repositories/entries"
	"github.com/dmitrijs2005/photojournal/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*journalService, *entries.FileRepository, *bytes.Buffer) {
	t.Helper()
	repo := entries.NewFileRepository(filepath.Join(t.TempDir(), "App"))
	var buf bytes.Buffer
	svc := NewJournalService(repo, logging.New(&buf, "debug")).(*journalService)
	svc.now = func() time.Time { return fixedNow }
	require.NoError(t, svc.EnsureStorageReady(context.Background()))
	return svc, repo, &buf
}

func TestCreate_StampsIDAndDate(t *testing.T) {
	svc, repo, logs := newService(t)
	ctx := context.Background()
	day := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

	e, err := svc.Create(ctx, Draft{Text: "hello", Date: day})
	require.NoError(t, err)
	assert.Equal(t, day.UnixMilli(), e.ID)
	assert.Equal(t, "1 Jan 2024", e.Date)
	assert.Contains(t, logs.String(), "entry saved")

	_, err = os.Stat(repo.PathFor(e.ID))
	require.NoError(t, err)
}

func TestCreate_RejectsFutureDate(t *testing.T) {
	svc, repo, _ := newService(t)

	_, err := svc.Create(context.Background(), Draft{Text: "x", Date: fixedNow.AddDate(0, 0, 1)})
	require.ErrorIs(t, err, common.ErrFutureDate)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreate_LaterTodayIsAllowed(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Create(context.Background(), Draft{Text: "x", Date: fixedNow.Add(6 * time.Hour)})
	require.NoError(t, err)
}

func TestCreate_EmptyDraftIsNoop(t *testing.T) {
	svc, repo, logs := newService(t)

	_, err := svc.Create(context.Background(), Draft{Date: fixedNow})
	require.ErrorIs(t, err, common.ErrEmptyEntry)
	assert.NotContains(t, logs.String(), "save entry failed")

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdate_CarriesIDAndDate(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	orig, err := svc.Create(ctx, Draft{Text: "before", Date: day})
	require.NoError(t, err)

	img := models.ImageDataURI([]byte{0xff, 0xd8})
	got, err := svc.Update(ctx, orig.ID, "after", img)
	require.NoError(t, err)
	assert.Equal(t, models.Entry{ID: orig.ID, Date: "5 Mar 2024", Text: "after", Image: img}, got)

	reloaded, err := svc.Get(ctx, orig.ID)
	require.NoError(t, err)
	assert.Equal(t, got, reloaded)
}

func TestUpdate_EmptyKeepsOriginal(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	orig, err := svc.Create(ctx, Draft{Text: "keep", Date: fixedNow})
	require.NoError(t, err)

	_, err = svc.Update(ctx, orig.ID, "", "")
	require.ErrorIs(t, err, common.ErrEmptyEntry)

	got, err := svc.Get(ctx, orig.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep", got.Text)
}

func TestUpdate_Missing(t *testing.T) {
	svc, _, logs := newService(t)

	_, err := svc.Update(context.Background(), 12345, "x", "")
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Contains(t, logs.String(), "load entry failed")
}

func TestList_NewestFirstAndDelete(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, Draft{Text: "a", Date: time.UnixMilli(1000)})
	require.NoError(t, err)
	b, err := svc.Create(ctx, Draft{Text: "b", Date: time.UnixMilli(2000)})
	require.NoError(t, err)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, b.ID, items[0].Entry.ID)
	assert.Equal(t, a.ID, items[1].Entry.ID)

	require.NoError(t, svc.Delete(ctx, b.ID))
	require.NoError(t, svc.Delete(ctx, b.ID))

	items, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, a.ID, items[0].Entry.ID)
}

func TestList_ErrorIsLoggedAndReturned(t *testing.T) {
	svc, repo, logs := newService(t)
	require.NoError(t, os.WriteFile(filepath.Join(repo.Dir(), "1.json"), []byte("nope"), 0o600))

	_, err := svc.List(context.Background())
	require.ErrorIs(t, err, common.ErrInvalidEntry)
	assert.Contains(t, logs.String(), "load entries failed")
}

func TestIsFuture(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"yesterday", fixedNow.AddDate(0, 0, -1), false},
		{"start of today", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), false},
		{"end of today", time.Date(2024, 6, 15, 23, 59, 59, 0, time.UTC), false},
		{"tomorrow", time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isFuture(tt.t, fixedNow))
		})
	}
}
