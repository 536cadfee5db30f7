package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	ShareOutbox = "outbox"
	ShareS3     = "s3"
)

type S3 struct {
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
	Bucket    string
	Prefix    string
	LinkTTL   time.Duration
}

type Config struct {
	DataDir     string
	EntriesDir  string
	SnapshotDir string
	ExportDir   string
	OutboxDir   string
	GalleryDir  string
	DBPath      string

	SingleRenderDelay time.Duration
	BatchRenderDelay  time.Duration
	PageWidth         int
	ChromeBin         string
	ChromeControlURL  string
	Headless          bool

	ShareTarget string
	S3          S3

	GalleryPermission string
	ImageMaxWidth     int
	ImageQuality      int

	LogLevel string
	Watch    bool
}

// LoadDefaults populates c with the built-in defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = defaultDataDir()
	c.SingleRenderDelay = 600 * time.Millisecond
	c.BatchRenderDelay = 400 * time.Millisecond
	c.PageWidth = 420
	c.Headless = true
	c.ShareTarget = ShareOutbox
	c.S3 = S3{Region: "us-east-1", Prefix: "journal", LinkTTL: 15 * time.Minute}
	c.GalleryPermission = "prompt"
	c.ImageMaxWidth = 1080
	c.ImageQuality = 70
	c.LogLevel = "warn"
	c.Watch = true
}

// Resolve fills derived paths that were left empty.
func (c *Config) Resolve() {
	derive := func(p *string, name string) {
		if *p == "" {
			*p = filepath.Join(c.DataDir, name)
		}
	}
	derive(&c.EntriesDir, "App")
	derive(&c.SnapshotDir, filepath.Join("cache", "snapshots"))
	derive(&c.ExportDir, "Exports")
	derive(&c.OutboxDir, "Outbox")
	derive(&c.GalleryDir, "Gallery")
	derive(&c.DBPath, "journal.db")
}

// LoadConfig builds a Config from defaults, the config file and flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	cfg.Resolve()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	var errs []error
	switch c.ShareTarget {
	case ShareOutbox:
	case ShareS3:
		if c.S3.Bucket == "" {
			errs = append(errs, errors.New("share_target s3 needs s3_bucket"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown share_target %q", c.ShareTarget))
	}
	switch c.GalleryPermission {
	case "granted", "denied", "prompt":
	default:
		errs = append(errs, fmt.Errorf("unknown gallery_permission %q", c.GalleryPermission))
	}
	if c.SingleRenderDelay < 0 || c.BatchRenderDelay < 0 {
		errs = append(errs, errors.New("render delays must not be negative"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("data_dir is empty"))
	}
	return errors.Join(errs...)
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".photojournal")
	}
	return ".photojournal"
}
