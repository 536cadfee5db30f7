package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/photojournal/internal/filex"
	"github.com/dmitrijs2005/photojournal/internal/journal/models"
	"github.com/dmitrijs2005/photojournal/internal/logging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
)

const (
	defaultJPEGQuality = 100
	a4WidthInches      = 8.27
	a4HeightInches     = 11.69
)

type Options struct {
	// Bin is the Chromium executable; empty lets rod find or download one.
	Bin string
	// ControlURL connects to an already running browser instead of launching.
	ControlURL  string
	Headless    bool
	PageWidth   int
	JPEGQuality int
	SnapshotDir string
	ExportDir   string
	LoadTimeout time.Duration
	Logger      logging.Logger
}

// Browser implements the export Renderer and Compiler over one lazily
// started Chromium instance with a single off-screen page.
type Browser struct {
	opts Options

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	staged   bool

	now func() time.Time
}

func NewBrowser(opts Options) *Browser {
	if opts.PageWidth <= 0 {
		opts.PageWidth = DefaultWidth
	}
	if opts.JPEGQuality <= 0 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = defaultJPEGQuality
	}
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	return &Browser{opts: opts, now: time.Now}
}

func (b *Browser) ensureStarted(ctx context.Context) error {
	if b.browser != nil {
		return nil
	}

	controlURL := b.opts.ControlURL
	if controlURL == "" {
		l := launcher.New().Headless(b.opts.Headless)
		if b.opts.Bin != "" {
			l = l.Bin(b.opts.Bin)
		}
		url, err := l.Context(ctx).Launch()
		if err != nil {
			return fmt.Errorf("launch chrome: %w", err)
		}
		b.launcher = l
		controlURL = url
	}

	// the browser outlives any single request context
	browser := rod.New().ControlURL(controlURL).Context(context.WithoutCancel(ctx))
	if err := browser.Connect(); err != nil {
		b.killLauncher()
		return fmt.Errorf("connect to chrome: %w", err)
	}
	b.browser = browser
	b.opts.Logger.Debug(ctx, "browser connected", "control_url", controlURL)
	return nil
}

func (b *Browser) ensurePage(ctx context.Context) (*rod.Page, error) {
	if err := b.ensureStarted(ctx); err != nil {
		return nil, err
	}
	if b.page != nil {
		return b.page, nil
	}

	page, err := b.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             b.opts.PageWidth,
		Height:            PageHeight(b.opts.PageWidth),
		DeviceScaleFactor: 1,
	})
	if err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("set viewport: %w", err)
	}
	b.page = page
	return page, nil
}

// Stage loads the scrapbook page for e and waits for the load event.
func (b *Browser) Stage(ctx context.Context, e *models.Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	html, err := PageHTML(e, b.opts.PageWidth)
	if err != nil {
		return err
	}
	page, err := b.ensurePage(ctx)
	if err != nil {
		return err
	}
	if err := b.load(ctx, page, html); err != nil {
		return err
	}
	b.staged = e != nil
	return nil
}

// Capture screenshots the staged page element as JPEG into SnapshotDir.
// It returns "" when nothing is staged.
func (b *Browser) Capture(ctx context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.staged || b.page == nil {
		return "", nil
	}

	el, err := b.page.Context(ctx).Timeout(b.opts.LoadTimeout).Element(pageSelector)
	if err != nil {
		return "", fmt.Errorf("find page element: %w", err)
	}
	data, err := el.Screenshot(proto.PageCaptureScreenshotFormatJpeg, b.opts.JPEGQuality)
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	dir, err := filex.EnsureSubdDir(filepath.Dir(b.opts.SnapshotDir), filepath.Base(b.opts.SnapshotDir))
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, uuid.NewString()+".jpg")
	if err := filex.WriteFileAtomic(path, data, 0o640); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// Clear blanks the off-screen page.
func (b *Browser) Clear(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.staged = false
	if b.page == nil {
		return nil
	}
	html, err := PageHTML(nil, b.opts.PageWidth)
	if err != nil {
		return err
	}
	return b.load(ctx, b.page, html)
}

// Compile prints html to an A4 PDF in ExportDir using a throwaway page.
func (b *Browser) Compile(ctx context.Context, html string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureStarted(ctx); err != nil {
		return "", err
	}
	page, err := b.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return "", fmt.Errorf("create page: %w", err)
	}
	defer page.Close()

	if err := b.load(ctx, page, html); err != nil {
		return "", err
	}

	zero := 0.0
	width, height := a4WidthInches, a4HeightInches
	stream, err := page.Context(ctx).PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
		PaperWidth:        &width,
		PaperHeight:       &height,
		MarginTop:         &zero,
		MarginBottom:      &zero,
		MarginLeft:        &zero,
		MarginRight:       &zero,
	})
	if err != nil {
		return "", fmt.Errorf("print pdf: %w", err)
	}

	dir, err := filex.EnsureSubdDir(filepath.Dir(b.opts.ExportDir), filepath.Base(b.opts.ExportDir))
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("journal_%d.pdf", b.now().UnixMilli()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o640)
	if err != nil {
		return "", fmt.Errorf("create pdf: %w", err)
	}
	if _, err := f.ReadFrom(stream); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write pdf: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close pdf: %w", err)
	}
	return path, nil
}

func (b *Browser) load(ctx context.Context, page *rod.Page, html string) error {
	p := page.Context(ctx).Timeout(b.opts.LoadTimeout)
	if err := p.SetDocumentContent(html); err != nil {
		return fmt.Errorf("set content: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("wait load: %w", err)
	}
	return nil
}

// Close shuts the browser down. It is safe to call more than once.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var errs []error
	if b.page != nil {
		errs = append(errs, b.page.Close())
		b.page = nil
	}
	if b.browser != nil {
		errs = append(errs, b.browser.Close())
		b.browser = nil
	}
	b.killLauncher()
	b.staged = false
	return errors.Join(errs...)
}

func (b *Browser) killLauncher() {
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
		b.launcher = nil
	}
}
