package export

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"time"

	"github.com/dmitrijs2005/photojournal/internal/journal/models"
	"github.com/dmitrijs2005/photojournal/internal/logging"
)

// Mode selects what Export does with the captured page.
type Mode int

const (
	ModeShare Mode = iota
	ModeSave
)

func (m Mode) String() string {
	switch m {
	case ModeShare:
		return "share"
	case ModeSave:
		return "save"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

const (
	DefaultSingleDelay = 600 * time.Millisecond
	DefaultBatchDelay  = 400 * time.Millisecond
)

// PDFShareOptions is the hint sent along with a compiled document.
var PDFShareOptions = ShareOptions{MimeType: "application/pdf", UTI: ".pdf"}

// Alert texts.
const (
	TitleSuccess    = "Success"
	TitleError      = "Error"
	TitleNoEntries  = "No entries"
	MsgSaved        = "Scrapbook page saved to gallery!"
	MsgExportFailed = "Failed to export image."
	MsgPDFFailed    = "Failed to compile PDF."
	MsgNoEntries    = "There are no entries to export."
)

// Config bundles the sequencer collaborators. SingleDelay and BatchDelay
// are the settle times before a capture.
type Config struct {
	Renderer Renderer
	Compiler Compiler
	Sharer   Sharer
	Gallery  Gallery
	Notifier Notifier
	Sleeper  Sleeper
	Logger   logging.Logger

	SingleDelay time.Duration
	BatchDelay  time.Duration
}

type Sequencer struct {
	session  *Session
	renderer Renderer
	compiler Compiler
	sharer   Sharer
	gallery  Gallery
	notifier Notifier
	sleeper  Sleeper
	logger   logging.Logger

	singleDelay time.Duration
	batchDelay  time.Duration

	readFile   func(string) ([]byte, error)
	removeFile func(string) error
}

func NewSequencer(session *Session, cfg Config) *Sequencer {
	s := &Sequencer{
		session:     session,
		renderer:    cfg.Renderer,
		compiler:    cfg.Compiler,
		sharer:      cfg.Sharer,
		gallery:     cfg.Gallery,
		notifier:    cfg.Notifier,
		sleeper:     cfg.Sleeper,
		logger:      cfg.Logger,
		singleDelay: cfg.SingleDelay,
		batchDelay:  cfg.BatchDelay,
		readFile:    os.ReadFile,
		removeFile:  os.Remove,
	}
	if s.sleeper == nil {
		s.sleeper = TimerSleeper{}
	}
	if s.logger == nil {
		s.logger = logging.Nop()
	}
	return s
}

func (s *Sequencer) Session() *Session {
	return s.session
}

// Export renders e, captures it after SingleDelay and shares or saves the
// page. Failures are reported through one generic alert; a denied gallery
// permission is not a failure. The staged entry is always cleared.
func (s *Sequencer) Export(ctx context.Context, e models.Entry, mode Mode) {
	defer s.clear(ctx)

	if err := s.export(ctx, e, mode); err != nil {
		s.logger.Error(ctx, "export failed", "id", e.ID, "mode", mode.String(), "error", err)
		s.notifier.Alert(ctx, TitleError, MsgExportFailed)
	}
}

func (s *Sequencer) export(ctx context.Context, e models.Entry, mode Mode) error {
	path, err := s.stageAndCapture(ctx, e, s.singleDelay)
	if err != nil {
		return err
	}
	if path == "" {
		s.logger.Debug(ctx, "nothing captured", "id", e.ID)
		return nil
	}
	// the share target and the gallery keep their own copies
	defer s.discard(ctx, path)

	switch mode {
	case ModeShare:
		return s.sharer.Share(ctx, path, ShareOptions{})
	case ModeSave:
		granted, err := s.gallery.RequestPermission(ctx)
		if err != nil {
			return fmt.Errorf("gallery permission: %w", err)
		}
		if !granted {
			s.logger.Info(ctx, "gallery permission denied, page not saved", "id", e.ID)
			return nil
		}
		if err := s.gallery.Save(ctx, path); err != nil {
			return fmt.Errorf("save to gallery: %w", err)
		}
		s.notifier.Alert(ctx, TitleSuccess, MsgSaved)
		return nil
	default:
		return fmt.Errorf("unknown export mode %v", mode)
	}
}

// ExportAll captures every entry in order and shares one PDF with a page
// per successful capture. Entries whose capture fails are skipped.
func (s *Sequencer) ExportAll(ctx context.Context, list []models.Entry) {
	if len(list) == 0 {
		s.notifier.Alert(ctx, TitleNoEntries, MsgNoEntries)
		return
	}

	s.session.begin()
	defer s.clear(ctx)

	if err := s.exportAll(ctx, list); err != nil {
		s.logger.Error(ctx, "pdf export failed", "entries", len(list), "error", err)
		s.notifier.Alert(ctx, TitleError, MsgPDFFailed)
	}
}

func (s *Sequencer) exportAll(ctx context.Context, list []models.Entry) error {
	n := len(list)
	pages := make([]string, 0, n)

	for i, e := range list {
		s.session.setProgress(progressPercent(i, n))

		path, err := s.stageAndCapture(ctx, e, s.batchDelay)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			s.logger.Warn(ctx, "page capture failed, skipping", "id", e.ID, "error", err)
			continue
		}
		if path == "" {
			continue
		}

		data, err := s.readFile(path)
		s.discard(ctx, path)
		if err != nil {
			return fmt.Errorf("read snapshot %s: %w", path, err)
		}
		pages = append(pages, "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(data))
	}

	if len(pages) == 0 {
		s.notifier.Alert(ctx, TitleNoEntries, MsgNoEntries)
		return nil
	}

	doc, err := s.compiler.Compile(ctx, BuildDocumentHTML(pages))
	if err != nil {
		return fmt.Errorf("compile document: %w", err)
	}
	s.logger.Info(ctx, "document compiled", "path", doc, "pages", len(pages))
	defer s.discard(ctx, doc)

	if err := s.sharer.Share(ctx, doc, PDFShareOptions); err != nil {
		return fmt.Errorf("share document: %w", err)
	}
	return nil
}

// stageAndCapture stages e, waits delay and captures. Sleep errors are
// returned as-is so callers can tell cancellation from capture failures.
func (s *Sequencer) stageAndCapture(ctx context.Context, e models.Entry, delay time.Duration) (string, error) {
	s.session.stage(&e)
	if err := s.renderer.Stage(ctx, &e); err != nil {
		return "", fmt.Errorf("stage entry %d: %w", e.ID, err)
	}
	if err := s.sleeper.Sleep(ctx, delay); err != nil {
		return "", err
	}
	path, err := s.renderer.Capture(ctx)
	if err != nil {
		return "", fmt.Errorf("capture entry %d: %w", e.ID, err)
	}
	return path, nil
}

// clear runs on every exit path. The context may already be canceled, so
// the renderer gets a detached one.
func (s *Sequencer) clear(ctx context.Context) {
	s.session.finish()
	if err := s.renderer.Clear(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn(ctx, "renderer clear failed", "error", err)
	}
}

// discard removes an intermediate file once it has been consumed.
func (s *Sequencer) discard(ctx context.Context, path string) {
	if err := s.removeFile(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn(ctx, "remove intermediate file failed", "path", path, "error", err)
	}
}

func progressPercent(i, n int) int {
	return int(math.Round(100 * float64(i+1) / float64(n)))
}
