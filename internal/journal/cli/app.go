package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/dmitrijs2005/photojournal/internal/journal/config"
	"github.com/dmitrijs2005/photojournal/internal/journal/db"
	"github.com/dmitrijs2005/photojournal/internal/journal/export"
	"github.com/dmitrijs2005/photojournal/internal/journal/gallery"
	"github.com/dmitrijs2005/photojournal/internal/journal/imagepick"
	"github.com/dmitrijs2005/photojournal/internal/journal/models"
	"github.com/dmitrijs2005/photojournal/internal/journal/render"
	"github.com/dmitrijs2005/photojournal/internal/journal/repositories/entries"
	"github.com/dmitrijs2005/photojournal/internal/journal/services"
	"github.com/dmitrijs2005/photojournal/internal/journal/share"
	"github.com/dmitrijs2005/photojournal/internal/journal/watch"
	"github.com/dmitrijs2005/photojournal/internal/logging"
)

// exporter is the part of export.Sequencer the commands drive.
type exporter interface {
	Export(ctx context.Context, e models.Entry, mode export.Mode)
	ExportAll(ctx context.Context, list []models.Entry)
}

type picker interface {
	Pick(ctx context.Context, input string) (string, error)
}

type assetLister interface {
	List(ctx context.Context) ([]models.Asset, error)
	PathOf(a models.Asset) string
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	journal services.JournalService
	export  exporter
	session *export.Session
	picker  picker
	gallery assetLister
	reader  *bufio.Reader
	out     io.Writer
	now     func() time.Time

	interactive bool
	width       int

	mu    sync.Mutex
	items []models.Item

	// last percentage drawn in the current batch; -1 when none
	shownProgress int

	outMu   sync.Mutex
	watcher *watch.Watcher
	closers []func() error
}

// NewApp builds the App and every collaborator it owns. Storage failures
// on the journal directory are logged and do not stop the app.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	a := &App{
		config:  cfg,
		logger:  logger,
		reader:  bufio.NewReader(in),
		out:     out,
		now:     time.Now,
		session: export.NewSession(),
		width:   terminalWidth(out),

		shownProgress: -1,
	}
	if f, ok := in.(*os.File); ok {
		a.interactive = term.IsTerminal(int(f.Fd()))
	}

	repo := entries.NewFileRepository(cfg.EntriesDir)
	a.journal = services.NewJournalService(repo, logger)
	if err := a.journal.EnsureStorageReady(ctx); err != nil {
		a.println("Journal directory is not available:", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o750); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	repos, err := db.InitDatabase(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	a.closers = append(a.closers, repos.Close)

	policy, err := gallery.ParsePermission(cfg.GalleryPermission)
	if err != nil {
		a.Close()
		return nil, err
	}
	g := gallery.New(repos.DB, repos.Settings, cfg.GalleryDir, policy, a.ask, logger)
	a.gallery = g

	browser := render.NewBrowser(render.Options{
		Bin:         cfg.ChromeBin,
		ControlURL:  cfg.ChromeControlURL,
		Headless:    cfg.Headless,
		PageWidth:   cfg.PageWidth,
		SnapshotDir: cfg.SnapshotDir,
		ExportDir:   cfg.ExportDir,
		Logger:      logger,
	})
	a.closers = append(a.closers, browser.Close)

	var sharer export.Sharer
	switch cfg.ShareTarget {
	case config.ShareS3:
		sharer = share.NewS3Sharer(share.S3Config{
			Region:       cfg.S3.Region,
			AccessKey:    cfg.S3.AccessKey,
			SecretKey:    cfg.S3.SecretKey,
			BaseEndpoint: cfg.S3.Endpoint,
			Bucket:       cfg.S3.Bucket,
			Prefix:       cfg.S3.Prefix,
			LinkTTL:      cfg.S3.LinkTTL,
		}, logger, a.announceLink)
	default:
		sharer = share.NewOutboxSharer(cfg.OutboxDir, logger, a.announceFile)
	}

	a.export = export.NewSequencer(a.session, export.Config{
		Renderer:    browser,
		Compiler:    browser,
		Sharer:      sharer,
		Gallery:     g,
		Notifier:    a,
		Logger:      logger,
		SingleDelay: cfg.SingleRenderDelay,
		BatchDelay:  cfg.BatchRenderDelay,
	})
	a.session.OnChange(a.showProgress)

	a.picker = imagepick.New(cfg.ImageMaxWidth, cfg.ImageQuality)

	if cfg.Watch {
		w, err := watch.New(cfg.EntriesDir, 0, a.reload, logger)
		if err != nil {
			logger.Warn(ctx, "watcher disabled", "error", err)
		} else if err := w.Start(ctx); err != nil {
			logger.Warn(ctx, "watcher disabled", "error", err)
		} else {
			a.watcher = w
		}
	}

	return a, nil
}

// Run loads the journal and serves the REPL until EOF or exit.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to Photo Journal (type 'help' for commands)")
	a.reload(ctx)
	if a.Count() == 0 {
		a.println("No entries yet. Type 'add' to write one.")
	}

	status := a.getStatus
	if !a.interactive {
		status = nil
	}
	runREPL(ctx, a, status, a.reader)
}

// Close stops the watcher and releases the browser and database.
func (a *App) Close() error {
	if a.watcher != nil {
		a.watcher.Stop()
		a.watcher = nil
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// reload replaces the in-memory listing with a fresh read of the journal
// directory. A failed read leaves the previous listing in place.
func (a *App) reload(ctx context.Context) {
	items, err := a.journal.List(ctx)
	if err != nil {
		a.logger.Warn(ctx, "reload failed", "error", err)
		return
	}
	a.mu.Lock()
	a.items = items
	a.mu.Unlock()
}

func (a *App) snapshot() []models.Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.Item, len(a.items))
	copy(out, a.items)
	return out
}

func (a *App) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.items)
}

func (a *App) getStatus() string {
	if a.session.Busy() {
		return fmt.Sprintf("(exporting %d%%)", a.session.Progress())
	}
	return fmt.Sprintf("(%d entries)", a.Count())
}

// Alert implements export.Notifier.
func (a *App) Alert(_ context.Context, title, message string) {
	a.println(renderAlert(title, message, a.width))
}

func (a *App) ask(_ context.Context, question string) (bool, error) {
	return AskYesNo(a.reader, question, a.out)
}

func (a *App) announceFile(_ context.Context, path string) {
	a.println("Shared:", path)
}

func (a *App) announceLink(_ context.Context, url string) {
	a.println("Share link:", url)
}

// showProgress draws each batch percentage once; staging updates that
// leave the percentage unchanged are ignored.
func (a *App) showProgress(s export.State) {
	a.mu.Lock()
	if !s.Busy {
		a.shownProgress = -1
		a.mu.Unlock()
		return
	}
	if s.Progress == a.shownProgress {
		a.mu.Unlock()
		return
	}
	a.shownProgress = s.Progress
	a.mu.Unlock()

	a.println(renderProgress(s.Progress, a.width))
}

func (a *App) println(args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintln(a.out, args...)
}
