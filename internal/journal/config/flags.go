package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/photojournal/internal/flagx"
)

// parseFlags overlays the short flags:
//
//	-d string       data directory
//	-s string       share target (outbox or s3)
//	-l string       log level
//	-chrome string  Chromium binary
//
// Other arguments are filtered out with flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-s", "-l", "-chrome"})

	fs := flag.NewFlagSet("journal", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.ShareTarget, "s", cfg.ShareTarget, "share target: outbox or s3")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.ChromeBin, "chrome", cfg.ChromeBin, "path to a Chromium binary")

	return fs.Parse(args)
}
