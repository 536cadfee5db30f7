package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/photojournal/internal/journal/cli"
	"github.com/dmitrijs2005/photojournal/internal/journal/config"
	"github.com/dmitrijs2005/photojournal/internal/logging"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := run(ctx, cfg, os.Stdin, os.Stdout, os.Stderr); err != nil {
		// Fatalf skips deferred calls
		stop()
		log.Fatalf("%v", err)
	}

}

// run serves the journal until input ends. A startup failure is returned
// so the process exits non-zero.
func run(ctx context.Context, cfg *config.Config, in io.Reader, out, logOut io.Writer) error {
	logger := logging.New(logOut, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger, in, out)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Run(ctx)
	return nil
}
