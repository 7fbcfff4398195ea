// Package preview renders the catalog's social preview card as a PNG.
//
// Text is drawn with the fixed 7x13 bitmap face on small canvases and scaled
// up onto a full-size gradient, so no font files are needed at runtime.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"unicode"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Card dimensions, matching the 1.91:1 preview aspect ratio.
const (
	Width  = 1200
	Height = 630
)

// Default card copy.
const (
	DefaultTitle    = "Frame Archive"
	DefaultSubtitle = "Browse and interact with Farcaster Frames"
	featuredHeading = "Featured frames:"
)

// MaxFeatured is the number of featured entries drawn on a card.
const MaxFeatured = 3

// maxLineChars bounds a featured line so it fits at its scale.
const maxLineChars = 72

var (
	gradientTop    = color.RGBA{R: 0x1e, G: 0x40, B: 0xaf, A: 0xff}
	gradientBottom = color.RGBA{R: 0x60, G: 0xa5, B: 0xfa, A: 0xff}

	textColor  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	mutedColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xcc}
)

// Featured is one entry listed on the card.
type Featured struct {
	Name    string
	Creator string
}

// Card is the content of a preview image.
type Card struct {
	Title    string
	Subtitle string
	Featured []Featured
}

// line is one row of text with its integer scale factor and the gap above it.
type line struct {
	text  string
	scale int
	gap   int
	fg    color.Color
}

// Render draws card and writes it to w as a PNG.
func Render(w io.Writer, card Card) error {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	fillGradient(img, gradientTop, gradientBottom)

	lines := layout(card)
	face := basicfont.Face7x13

	total := 0
	for _, l := range lines {
		total += l.gap + face.Height*l.scale
	}

	y := (Height - total) / 2
	for _, l := range lines {
		y += l.gap
		src := textImage(l.text, l.fg)
		wd, ht := src.Bounds().Dx()*l.scale, src.Bounds().Dy()*l.scale
		x := (Width - wd) / 2
		dst := image.Rect(x, y, x+wd, y+ht)
		xdraw.NearestNeighbor.Scale(img, dst, src, src.Bounds(), xdraw.Over, nil)
		y += ht
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	return nil
}

func layout(card Card) []line {
	title := card.Title
	if title == "" {
		title = DefaultTitle
	}
	subtitle := card.Subtitle
	if subtitle == "" {
		subtitle = DefaultSubtitle
	}

	lines := []line{
		{text: sanitize(title, 28), scale: 6, fg: textColor},
		{text: sanitize(subtitle, 48), scale: 3, gap: 20, fg: textColor},
	}

	featured := card.Featured
	if len(featured) > MaxFeatured {
		featured = featured[:MaxFeatured]
	}
	if len(featured) == 0 {
		return lines
	}

	lines = append(lines, line{text: featuredHeading, scale: 2, gap: 40, fg: mutedColor})
	for _, f := range featured {
		text := "* " + f.Name
		if f.Creator != "" {
			text += " by " + f.Creator
		}
		lines = append(lines, line{text: sanitize(text, maxLineChars), scale: 2, gap: 10, fg: mutedColor})
	}
	return lines
}

// sanitize maps s onto the glyphs the bitmap face can draw and truncates it.
func sanitize(s string, limit int) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r < unicode.MaxASCII && unicode.IsPrint(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		default:
			b.WriteByte('?')
		}
	}

	out := b.String()
	if len(out) > limit {
		out = strings.TrimRight(out[:limit-3], " ") + "..."
	}
	return out
}

// textImage draws s at 1x onto a canvas sized to fit it.
func textImage(s string, c color.Color) *image.RGBA {
	face := basicfont.Face7x13
	d := &font.Drawer{Face: face, Src: image.NewUniform(c)}

	width := max(d.MeasureString(s).Ceil(), 1)
	img := image.NewRGBA(image.Rect(0, 0, width, face.Height))

	d.Dst = img
	d.Dot = fixed.P(0, face.Ascent)
	d.DrawString(s)
	return img
}

// fillGradient paints a vertical linear gradient from top to bottom.
func fillGradient(img *image.RGBA, top, bottom color.RGBA) {
	b := img.Bounds()
	span := max(b.Dy()-1, 1)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		t := float64(y-b.Min.Y) / float64(span)
		row := color.RGBA{
			R: lerp(top.R, bottom.R, t),
			G: lerp(top.G, bottom.G, t),
			B: lerp(top.B, bottom.B, t),
			A: 0xff,
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, row)
		}
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}
