package share

import (
	"context"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/saanj-studio/anthology-core/internal/config"
	"github.com/saanj-studio/anthology-core/internal/pkg/textutil"
)

const (
	// Per-image load bound: a hung cover image download cannot stall the
	// whole pipeline.
	imageLoadTimeout = 3 * time.Second

	// Settle delay between staging and rasterizing.
	defaultSettle = 50 * time.Millisecond
)

var rgbPattern = regexp.MustCompile(`^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})`)

// RenderOptions carries the fixed output geometry plus the resolved inputs
// the rasterizer needs.
type RenderOptions struct {
	Width      int
	Height     int
	PixelRatio int
	Background color.RGBA
	CoverImage image.Image
}

// Rasterizer turns a card into PNG bytes at the requested geometry.
type Rasterizer interface {
	Rasterize(card Card, opts RenderOptions) ([]byte, error)
}

// Stage prepares transient render state and returns a restore function.
// The pipeline guarantees restore runs on every exit path, including
// rasterizer panics.
type Stage interface {
	Prepare() (restore func(), err error)
}

// Pipeline materializes share cards. Any failure yields a nil file, never
// a panic: callers degrade to link-only sharing.
type Pipeline struct {
	raster Rasterizer
	stage  Stage
	loader *ImageLoader
	cfg    config.ShareCardConfig
	settle time.Duration
	logger *zap.Logger
}

func NewPipeline(raster Rasterizer, stage Stage, cfg config.ShareCardConfig, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		raster: raster,
		stage:  stage,
		loader: NewImageLoader(),
		cfg:    cfg,
		settle: defaultSettle,
		logger: logger,
	}
}

// Generate produces the share-card file for card, or nil when anything in
// the pipeline fails.
func (p *Pipeline) Generate(ctx context.Context, card Card) (file *File) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("share card render panicked", zap.Any("panic", r), zap.String("slug", card.Slug))
			file = nil
		}
	}()

	if p.stage != nil {
		restore, err := p.stage.Prepare()
		if err != nil {
			p.logger.Warn("share card staging failed", zap.Error(err), zap.String("slug", card.Slug))
			return nil
		}
		defer restore()
	}

	var cover image.Image
	if card.CoverImageURL != "" {
		// Best effort: a missing cover degrades the card, not the share.
		cover = p.loader.Load(ctx, card.CoverImageURL)
	}

	if p.settle > 0 {
		select {
		case <-time.After(p.settle):
		case <-ctx.Done():
			return nil
		}
	}

	data, err := p.raster.Rasterize(card, RenderOptions{
		Width:      p.cfg.Width,
		Height:     p.cfg.Height,
		PixelRatio: p.cfg.PixelRatio,
		Background: ResolveBackground(card.Background, p.cfg.Background),
		CoverImage: cover,
	})
	if err != nil {
		p.logger.Warn("share card render failed", zap.Error(err), zap.String("slug", card.Slug))
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	return &File{Name: card.FileName(), MIME: "image/png", Data: data}
}

// ResolveBackground parses a theme background color, trying value first and
// then fallback. Both "#rrggbb" and "rgb(r, g, b)" forms are accepted; an
// unparseable pair yields an opaque default matching the site's light card
// tone.
func ResolveBackground(value, fallback string) color.RGBA {
	for _, candidate := range []string{value, fallback} {
		if c, ok := parseColor(candidate); ok {
			return c
		}
	}
	return color.RGBA{R: 0xf3, G: 0xe8, B: 0xff, A: 0xff}
}

func parseColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, false
	}
	if r, g, b, ok := textutil.HexToRGB(s); ok {
		return color.RGBA{R: r, G: g, B: b, A: 0xff}, true
	}
	if m := rgbPattern.FindStringSubmatch(s); m != nil {
		r, err1 := strconv.Atoi(m[1])
		g, err2 := strconv.Atoi(m[2])
		b, err3 := strconv.Atoi(m[3])
		if err1 == nil && err2 == nil && err3 == nil && r < 256 && g < 256 && b < 256 {
			return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}, true
		}
	}
	return color.RGBA{}, false
}

// ImageLoader fetches and decodes remote images with a hard per-image
// timeout. Failures return nil rather than an error.
type ImageLoader struct {
	client  *http.Client
	timeout time.Duration
}

func NewImageLoader() *ImageLoader {
	return &ImageLoader{
		client:  &http.Client{Timeout: imageLoadTimeout},
		timeout: imageLoadTimeout,
	}
}

// Load fetches url and decodes it, or returns nil on any failure.
func (l *ImageLoader) Load(ctx context.Context, url string) image.Image {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil
	}
	return img
}
