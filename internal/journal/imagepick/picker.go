// Package imagepick turns a user-supplied image (local path or http(s)
// URL) into the JPEG data URI stored in an entry.
package imagepick

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/dmitrijs2005/photojournal/internal/common"
	"github.com/dmitrijs2005/photojournal/internal/journal/models"
	"github.com/dmitrijs2005/photojournal/internal/netx"
)

const (
	DefaultQuality  = 70
	DefaultMaxWidth = 1080
	maxSourceBytes  = 32 << 20
)

var download = netx.Download

type Picker struct {
	MaxWidth int
	Quality  int
}

func New(maxWidth, quality int) *Picker {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Picker{MaxWidth: maxWidth, Quality: quality}
}

// Pick loads the image named by input. Blank input means the user
// canceled and yields common.ErrCanceled.
func (p *Picker) Pick(ctx context.Context, input string) (string, error) {
	input = strings.Trim(strings.TrimSpace(input), `"'`)
	if input == "" {
		return "", common.ErrCanceled
	}

	raw, err := p.load(ctx, input)
	if err != nil {
		return "", err
	}
	jpeg, err := p.Encode(raw)
	if err != nil {
		return "", err
	}
	return models.ImageDataURI(jpeg), nil
}

func (p *Picker) load(ctx context.Context, input string) ([]byte, error) {
	if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		data, err := download(ctx, input, maxSourceBytes)
		if err != nil {
			return nil, fmt.Errorf("fetch image: %w", err)
		}
		return data, nil
	}

	path := input
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + path[1:]
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}

// Encode decodes raw, honours EXIF orientation, shrinks it to MaxWidth
// and re-encodes it as JPEG at Quality.
func (p *Picker) Encode(raw []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > p.MaxWidth {
		img = imaging.Resize(img, p.MaxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(p.Quality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// Size reports the pixel dimensions of an encoded image.
func Size(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
