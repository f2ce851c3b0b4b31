// Package raster renders share cards to PNG with the pure-Go image stack.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/saanj-studio/anthology-core/internal/modules/share"
)

const (
	marginX       = 24
	coverHeight   = 240
	lineHeight    = 18
	maxLineWidth  = 54 // characters per wrapped line at the base face
	excerptLines  = 6
	badgeHeight   = 22
	badgePadding  = 8
	textDarkGray  = 0x33
	textMidGray   = 0x66
	badgeFallback = 0xd8
)

type Compositor struct {
	face font.Face
}

func New() *Compositor {
	return &Compositor{face: basicfont.Face7x13}
}

// Rasterize composes the card at width x height scaled by the pixel ratio
// and encodes it as PNG. The layout mirrors the on-site card: cover image
// band, category badge, title, byline, excerpt, canonical URL.
func (r *Compositor) Rasterize(card share.Card, opts share.RenderOptions) ([]byte, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("raster: invalid geometry %dx%d", opts.Width, opts.Height)
	}
	ratio := opts.PixelRatio
	if ratio < 1 {
		ratio = 1
	}

	base := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(base, base.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	y := r.drawCover(base, opts.CoverImage)
	y = r.drawBadge(base, card, y+16)
	y = r.drawLines(base, wrapText(card.Title, maxLineWidth), marginX, y+12, color.Gray{Y: textDarkGray})

	byline := composeByline(card)
	if byline != "" {
		y = r.drawLines(base, []string{byline}, marginX, y+8, color.Gray{Y: textMidGray})
	}

	excerpt := wrapText(card.Excerpt, maxLineWidth)
	if len(excerpt) > excerptLines {
		excerpt = excerpt[:excerptLines]
	}
	y = r.drawLines(base, excerpt, marginX, y+10, color.Gray{Y: textDarkGray})

	if card.URL != "" {
		r.drawLines(base, []string{card.URL}, marginX, opts.Height-2*lineHeight, color.Gray{Y: textMidGray})
	}

	out := base
	if ratio > 1 {
		scaled := image.NewRGBA(image.Rect(0, 0, opts.Width*ratio, opts.Height*ratio))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), base, base.Bounds(), draw.Src, nil)
		out = scaled
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("raster: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// drawCover fills the top band with the cover image, center-cropped to the
// band's aspect ratio. Without a cover the text block moves up to fill half
// the band.
func (r *Compositor) drawCover(dst *image.RGBA, cover image.Image) int {
	if cover == nil {
		return coverHeight / 2
	}

	band := image.Rect(0, 0, dst.Bounds().Dx(), coverHeight)
	src := cover.Bounds()

	bandAspect := float64(band.Dx()) / float64(band.Dy())
	srcAspect := float64(src.Dx()) / float64(src.Dy())
	if srcAspect > bandAspect {
		// Too wide: crop the sides.
		newW := int(float64(src.Dy()) * bandAspect)
		offset := (src.Dx() - newW) / 2
		src = image.Rect(src.Min.X+offset, src.Min.Y, src.Min.X+offset+newW, src.Max.Y)
	} else if srcAspect < bandAspect {
		newH := int(float64(src.Dx()) / bandAspect)
		offset := (src.Dy() - newH) / 2
		src = image.Rect(src.Min.X, src.Min.Y+offset, src.Max.X, src.Min.Y+offset+newH)
	}

	draw.CatmullRom.Scale(dst, band, cover, src, draw.Src, nil)
	return coverHeight
}

func (r *Compositor) drawBadge(dst *image.RGBA, card share.Card, y int) int {
	if card.CategoryName == "" {
		return y
	}

	badge := share.ResolveBackground(card.CategoryColor, "")
	if card.CategoryColor == "" {
		badge = color.RGBA{R: badgeFallback, G: badgeFallback, B: badgeFallback, A: 0xff}
	}

	label := strings.ToUpper(card.CategoryName)
	w := 7*len(label) + 2*badgePadding
	rect := image.Rect(marginX, y, marginX+w, y+badgeHeight)
	draw.Draw(dst, rect, image.NewUniform(badge), image.Point{}, draw.Src)

	r.drawLines(dst, []string{label}, marginX+badgePadding, y+3, color.White)
	return y + badgeHeight
}

// drawLines draws each line at the base face, returning the y just below
// the last line.
func (r *Compositor) drawLines(dst *image.RGBA, lines []string, x, y int, col color.Color) int {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: r.face,
	}
	for _, line := range lines {
		y += lineHeight
		d.Dot = fixed.P(x, y)
		d.DrawString(line)
	}
	return y
}

func composeByline(card share.Card) string {
	parts := make([]string, 0, 3)
	if card.AuthorName != "" {
		parts = append(parts, "By "+card.AuthorName)
	}
	if card.DateLabel != "" {
		parts = append(parts, card.DateLabel)
	}
	if card.ReadTime != "" {
		parts = append(parts, card.ReadTime)
	}
	return strings.Join(parts, " • ")
}

// wrapText greedily wraps text into lines of at most width characters.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := make([]string, 0, 4)
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	return append(lines, current)
}
