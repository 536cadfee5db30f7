package gallery

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/photojournal/internal/journal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type setup struct {
	root  string
	repos *db.Repositories
}

func newSetup(t *testing.T) setup {
	t.Helper()
	root := t.TempDir()
	repos, err := db.InitDatabase(context.Background(), filepath.Join(root, "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return setup{root: root, repos: repos}
}

func (s setup) gallery(policy Permission, ask Asker) *Gallery {
	return New(s.repos.DB, s.repos.Settings, filepath.Join(s.root, "Gallery"), policy, ask, nil)
}

func (s setup) snapshot(t *testing.T) string {
	t.Helper()
	p := filepath.Join(s.root, "snap.jpg")
	require.NoError(t, os.WriteFile(p, []byte("jpeg"), 0o600))
	return p
}

func TestParsePermission(t *testing.T) {
	tests := []struct {
		in      string
		want    Permission
		wantErr bool
	}{
		{"granted", PermissionGranted, false},
		{"DENIED", PermissionDenied, false},
		{" prompt ", PermissionPrompt, false},
		{"", PermissionPrompt, false},
		{"maybe", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePermission(tt.in)
		if tt.wantErr {
			require.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestRequestPermission_FixedPolicies(t *testing.T) {
	s := newSetup(t)
	asked := false
	ask := func(context.Context, string) (bool, error) { asked = true; return true, nil }

	ok, err := s.gallery(PermissionGranted, ask).RequestPermission(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.gallery(PermissionDenied, ask).RequestPermission(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, asked)
}

func TestRequestPermission_PromptAsksOnce(t *testing.T) {
	s := newSetup(t)
	ctx := context.Background()
	calls := 0
	g := s.gallery(PermissionPrompt, func(context.Context, string) (bool, error) {
		calls++
		return true, nil
	})

	for i := 0; i < 3; i++ {
		ok, err := g.RequestPermission(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Equal(t, 1, calls)

	require.NoError(t, g.ResetPermission(ctx))
	_, err := g.RequestPermission(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRequestPermission_PromptDenialRemembered(t *testing.T) {
	s := newSetup(t)
	ctx := context.Background()
	g := s.gallery(PermissionPrompt, func(context.Context, string) (bool, error) { return false, nil })

	ok, err := g.RequestPermission(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	g.ask = func(context.Context, string) (bool, error) { t.Fatal("asked twice"); return false, nil }
	ok, err = g.RequestPermission(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRequestPermission_AskError(t *testing.T) {
	s := newSetup(t)
	boom := errors.New("stdin closed")
	g := s.gallery(PermissionPrompt, func(context.Context, string) (bool, error) { return false, boom })

	_, err := g.RequestPermission(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestRequestPermission_NoAskerDenies(t *testing.T) {
	s := newSetup(t)
	ok, err := s.gallery(PermissionPrompt, nil).RequestPermission(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSave_CopiesAndIndexes(t *testing.T) {
	s := newSetup(t)
	ctx := context.Background()
	g := s.gallery(PermissionGranted, nil)
	src := s.snapshot(t)

	require.NoError(t, g.Save(ctx, src))

	list, err := g.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, src, list[0].SourcePath)
	assert.Equal(t, int64(4), list[0].SizeBytes)
	assert.Equal(t, ".jpg", filepath.Ext(list[0].FileName))

	data, err := os.ReadFile(g.PathOf(list[0]))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
}

func TestSave_MissingSourceLeavesNothing(t *testing.T) {
	s := newSetup(t)
	ctx := context.Background()
	g := s.gallery(PermissionGranted, nil)

	err := g.Save(ctx, filepath.Join(s.root, "nope.jpg"))
	require.Error(t, err)

	list, err := g.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	files, err := os.ReadDir(filepath.Join(s.root, "Gallery"))
	require.NoError(t, err)
	assert.Empty(t, files)
}
