package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/photojournal/internal/flagx"
	"github.com/dmitrijs2005/photojournal/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of a config file. Durations may be
// written as "600ms" or as integer nanoseconds. Only keys present in the
// file override the current values.
type FileConfig struct {
	DataDir     string `json:"data_dir" yaml:"data_dir"`
	EntriesDir  string `json:"entries_dir" yaml:"entries_dir"`
	SnapshotDir string `json:"snapshot_dir" yaml:"snapshot_dir"`
	ExportDir   string `json:"export_dir" yaml:"export_dir"`
	OutboxDir   string `json:"outbox_dir" yaml:"outbox_dir"`
	GalleryDir  string `json:"gallery_dir" yaml:"gallery_dir"`
	DBPath      string `json:"db_path" yaml:"db_path"`

	SingleRenderDelay *timex.Duration `json:"single_render_delay" yaml:"single_render_delay"`
	BatchRenderDelay  *timex.Duration `json:"batch_render_delay" yaml:"batch_render_delay"`
	PageWidth         int             `json:"page_width" yaml:"page_width"`
	ChromeBin         string          `json:"chrome_bin" yaml:"chrome_bin"`
	ChromeControlURL  string          `json:"chrome_control_url" yaml:"chrome_control_url"`
	Headless          *bool           `json:"headless" yaml:"headless"`

	ShareTarget string          `json:"share_target" yaml:"share_target"`
	S3Region    string          `json:"s3_region" yaml:"s3_region"`
	S3AccessKey string          `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey string          `json:"s3_secret_key" yaml:"s3_secret_key"`
	S3Endpoint  string          `json:"s3_endpoint" yaml:"s3_endpoint"`
	S3Bucket    string          `json:"s3_bucket" yaml:"s3_bucket"`
	S3Prefix    string          `json:"s3_prefix" yaml:"s3_prefix"`
	S3LinkTTL   *timex.Duration `json:"s3_link_ttl" yaml:"s3_link_ttl"`

	GalleryPermission string `json:"gallery_permission" yaml:"gallery_permission"`
	ImageMaxWidth     int    `json:"image_max_width" yaml:"image_max_width"`
	ImageQuality      int    `json:"image_quality" yaml:"image_quality"`

	LogLevel string `json:"log_level" yaml:"log_level"`
	Watch    *bool  `json:"watch" yaml:"watch"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlagFrom(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", filepath.Base(path), err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	str := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	num := func(dst *int, v int) {
		if v > 0 {
			*dst = v
		}
	}

	str(&cfg.DataDir, fc.DataDir)
	str(&cfg.EntriesDir, fc.EntriesDir)
	str(&cfg.SnapshotDir, fc.SnapshotDir)
	str(&cfg.ExportDir, fc.ExportDir)
	str(&cfg.OutboxDir, fc.OutboxDir)
	str(&cfg.GalleryDir, fc.GalleryDir)
	str(&cfg.DBPath, fc.DBPath)

	if fc.SingleRenderDelay != nil {
		cfg.SingleRenderDelay = fc.SingleRenderDelay.Duration
	}
	if fc.BatchRenderDelay != nil {
		cfg.BatchRenderDelay = fc.BatchRenderDelay.Duration
	}
	num(&cfg.PageWidth, fc.PageWidth)
	str(&cfg.ChromeBin, fc.ChromeBin)
	str(&cfg.ChromeControlURL, fc.ChromeControlURL)
	if fc.Headless != nil {
		cfg.Headless = *fc.Headless
	}

	str(&cfg.ShareTarget, fc.ShareTarget)
	str(&cfg.S3.Region, fc.S3Region)
	str(&cfg.S3.AccessKey, fc.S3AccessKey)
	str(&cfg.S3.SecretKey, fc.S3SecretKey)
	str(&cfg.S3.Endpoint, fc.S3Endpoint)
	str(&cfg.S3.Bucket, fc.S3Bucket)
	str(&cfg.S3.Prefix, fc.S3Prefix)
	if fc.S3LinkTTL != nil {
		cfg.S3.LinkTTL = fc.S3LinkTTL.Duration
	}

	str(&cfg.GalleryPermission, fc.GalleryPermission)
	num(&cfg.ImageMaxWidth, fc.ImageMaxWidth)
	num(&cfg.ImageQuality, fc.ImageQuality)

	str(&cfg.LogLevel, fc.LogLevel)
	if fc.Watch != nil {
		cfg.Watch = *fc.Watch
	}
}
