package export

import (
	"context"
	"time"

	"github.com/dmitrijs2005/photojournal/internal/journal/models"
)

// Renderer lays out a staged entry off-screen and snapshots it.
type Renderer interface {
	// Stage renders e; nil resets the renderer to an empty page.
	Stage(ctx context.Context, e *models.Entry) error
	// Capture returns the path of a JPEG snapshot of the staged page.
	// An empty path with a nil error means nothing was captured.
	Capture(ctx context.Context) (string, error)
	// Clear returns the renderer to idle.
	Clear(ctx context.Context) error
}

// Compiler turns document markup into a file on disk.
type Compiler interface {
	Compile(ctx context.Context, html string) (string, error)
}

// ShareOptions are the content-type hints passed to a Sharer.
type ShareOptions struct {
	MimeType string
	UTI      string
}

type Sharer interface {
	Share(ctx context.Context, path string, opts ShareOptions) error
}

type Gallery interface {
	// RequestPermission reports whether writes are allowed. A denial is
	// not an error.
	RequestPermission(ctx context.Context) (bool, error)
	Save(ctx context.Context, path string) error
}

// Notifier shows a user-facing alert.
type Notifier interface {
	Alert(ctx context.Context, title, message string)
}

// Sleeper waits for d or until ctx is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// TimerSleeper is the real-clock Sleeper.
type TimerSleeper struct{}

func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
