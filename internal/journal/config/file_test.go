package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseFile_JSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"entries_dir":         "/j/entries",
		"single_render_delay": "900ms",
		"batch_render_delay":  int64(200 * time.Millisecond),
		"page_width":          600,
		"share_target":        "s3",
		"s3_endpoint":         "http://127.0.0.1:9000",
		"s3_link_ttl":         "1h",
		"gallery_permission":  "granted",
		"watch":               false,
	})

	var cfg Config
	cfg.LoadDefaults()
	require.NoError(t, parseFile(&cfg, []string{"-config", path}))

	assert.Equal(t, "/j/entries", cfg.EntriesDir)
	assert.Equal(t, 900*time.Millisecond, cfg.SingleRenderDelay)
	assert.Equal(t, 200*time.Millisecond, cfg.BatchRenderDelay)
	assert.Equal(t, 600, cfg.PageWidth)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.S3.Endpoint)
	assert.Equal(t, time.Hour, cfg.S3.LinkTTL)
	assert.Equal(t, "granted", cfg.GalleryPermission)
	assert.False(t, cfg.Watch)
	assert.Equal(t, "us-east-1", cfg.S3.Region, "unset keys keep their value")
}

func Test_parseFile_ZeroDelayIsHonoured(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"single_render_delay": "0s"})

	var cfg Config
	cfg.LoadDefaults()
	require.NoError(t, parseFile(&cfg, []string{"-c", path}))
	assert.Zero(t, cfg.SingleRenderDelay)
	assert.Equal(t, 400*time.Millisecond, cfg.BatchRenderDelay)
}

func Test_parseFile_NoFlagNoChange(t *testing.T) {
	cfg := Config{DataDir: "/keep"}
	require.NoError(t, parseFile(&cfg, []string{"-d", "/x"}))
	assert.Equal(t, "/keep", cfg.DataDir)
}

func Test_parseFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"single_render_delay": "soon"}`), 0o600))

	var cfg Config
	err := parseFile(&cfg, []string{"-c", bad})
	require.ErrorContains(t, err, "parse config bad.json")

	badYAML := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(badYAML, []byte("watch: [1, 2"), 0o600))
	require.Error(t, parseFile(&cfg, []string{"-c", badYAML}))
}
