// Package render draws finished deck slides onto fixed size card images.
// Text layout uses real font metrics, so pages planned by the layout core in
// rune budgets can be cross checked against drawn lines.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"slices"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"rnm/config"
	"rnm/deck"
	"rnm/utils/images"
)

// Per theme text and accent colors. Night is the one light on dark theme.
var (
	themeInk = map[config.ThemeStyle]color.NRGBA{
		config.ThemeStyleWarm:     {R: 0x3a, G: 0x31, B: 0x24, A: 0xff},
		config.ThemeStylePaper:    {R: 0x23, G: 0x23, B: 0x23, A: 0xff},
		config.ThemeStyleGradient: {R: 0x38, G: 0x2e, B: 0x41, A: 0xff},
		config.ThemeStyleNight:    {R: 0xe9, G: 0xe6, B: 0xda, A: 0xff},
	}
	themeAccent = map[config.ThemeStyle]color.NRGBA{
		config.ThemeStyleWarm:     {R: 0xc9, G: 0xa3, B: 0x6a, A: 0xff},
		config.ThemeStylePaper:    {R: 0x2f, G: 0x2f, B: 0x2f, A: 0xff},
		config.ThemeStyleGradient: {R: 0xd4, G: 0x68, B: 0x8e, A: 0xff},
		config.ThemeStyleNight:    {R: 0xf2, G: 0xe9, B: 0xc9, A: 0xff},
	}
)

// Renderer draws deck slides onto card images of the configured size. The
// theme background is rasterized once and shared by every page.
type Renderer struct {
	doc   *config.DocumentConfig
	fonts *FontCache
	theme image.Image
	log   *zap.Logger
}

// NewRenderer prepares fonts and the theme background for the configured
// card. Configured font directories are scanned before system locations.
func NewRenderer(doc *config.DocumentConfig, themes map[config.ThemeStyle][]byte, log *zap.Logger) (*Renderer, error) {
	svg, ok := themes[doc.Card.Theme]
	if !ok {
		return nil, fmt.Errorf("no built-in background for theme %q", doc.Card.Theme)
	}
	bg, err := images.RasterizeSVGToImage(svg, doc.Card.Width, doc.Card.Height)
	if err != nil {
		return nil, fmt.Errorf("unable to rasterize theme background: %w", err)
	}
	return &Renderer{
		doc: doc,
		// built-in themes match the card ratio, a custom card size still
		// gets full bleed
		theme: fitToCard(bg, doc.Card.Width, doc.Card.Height, config.ImageResizeModeKeepAR),
		fonts: NewFontCache(log, append(slices.Clone(doc.Fonts.Dirs), SystemFontDirs()...)...),
		log:   log,
	}, nil
}

// Render draws one slide. Missing fonts and broken background images degrade
// to built-in fallbacks, a card is always produced.
func (r *Renderer) Render(s *deck.Slide) image.Image {
	canvas := image.NewRGBA(image.Rect(0, 0, r.doc.Card.Width, r.doc.Card.Height))
	r.drawBackground(canvas, s)
	switch s.Type {
	case deck.SlideTypeCover:
		r.drawCover(canvas, s)
	case deck.SlideTypePromo:
		r.drawPromo(canvas, s)
	default:
		r.drawContent(canvas, s)
	}
	return canvas
}

// Measure reports how many visual lines text occupies in the body column.
// The layout core plans pages in rune budgets, this is the check against
// drawn reality.
func (r *Renderer) Measure(text string) int {
	return len(wrapText(r.bodyFaceFor(text), text, r.columnWidth()))
}

func (r *Renderer) inset() int       { return r.doc.Card.Width / 10 }
func (r *Renderer) topInset() int    { return r.doc.Card.Height / 10 }
func (r *Renderer) columnWidth() int { return r.doc.Card.Width - 2*r.inset() }

func (r *Renderer) ink() color.NRGBA {
	if c, ok := themeInk[r.doc.Card.Theme]; ok {
		return c
	}
	return color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
}

func (r *Renderer) accent() color.NRGBA {
	if c, ok := themeAccent[r.doc.Card.Theme]; ok {
		return c
	}
	return r.ink()
}

func muted(c color.NRGBA) color.NRGBA {
	c.A = 0x99
	return c
}

// faceFor picks a face for the given text. A configured face that cannot
// draw Han glyphs is passed over for a CJK capable one when the text needs
// it, block granularity keeps mixed runs in a single face.
func (r *Renderer) faceFor(text, name string, size float64) font.Face {
	if info := r.fonts.find(name); info != nil {
		if !hasWideRunes(text) || r.fonts.hasGlyph(info, cjkProbe) {
			if f := r.fonts.loadFace(info, size); f != nil {
				return f
			}
		}
	}
	if f := r.fonts.CJKFace(size); f != nil {
		return f
	}
	if f := r.fonts.FallbackFace(size); f != nil {
		return f
	}
	return basicfont.Face7x13
}

func (r *Renderer) titleFaceFor(text string, size int) font.Face {
	if size <= 0 {
		size = r.doc.Fonts.TitleSize
	}
	return r.faceFor(text, r.doc.Fonts.Title, float64(size))
}

func (r *Renderer) bodyFaceFor(text string) font.Face {
	return r.faceFor(text, r.doc.Fonts.Body, float64(r.doc.Fonts.BodySize))
}

func (r *Renderer) smallFaceFor(text string) font.Face {
	return r.faceFor(text, r.doc.Fonts.Body, float64(max(r.doc.Fonts.BodySize-8, 16)))
}

func hasWideRunes(text string) bool {
	for _, r := range text {
		if isWide(r) {
			return true
		}
	}
	return false
}

func (r *Renderer) drawBackground(canvas *image.RGBA, s *deck.Slide) {
	draw.Draw(canvas, canvas.Bounds(), r.theme, image.Point{}, draw.Src)
	if len(s.BackgroundImage) == 0 {
		return
	}
	img, err := loadRaster(s.BackgroundImage)
	if err != nil {
		r.log.Warn("Unable to use background image, keeping theme",
			zap.String("path", s.BackgroundImage), zap.Error(err))
		return
	}
	img = fitToCard(img, r.doc.Card.Width, r.doc.Card.Height, r.doc.Images.Resize)
	b := img.Bounds()
	off := image.Pt((r.doc.Card.Width-b.Dx())/2, (r.doc.Card.Height-b.Dy())/2)
	draw.Draw(canvas, image.Rectangle{Min: off, Max: off.Add(b.Size())}, img, b.Min, draw.Over)
}

func loadRaster(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !filetype.IsImage(data) {
		return nil, fmt.Errorf("%s is not a raster image", path)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to decode image: %w", err)
	}
	return img, nil
}

// fitToCard scales img to the card size. keepAR covers the card and crops
// the overflow, stretch ignores the aspect ratio, none keeps the original
// size centered on the card.
func fitToCard(img image.Image, w, h int, mode config.ImageResizeMode) image.Image {
	switch mode {
	case config.ImageResizeModeKeepAR:
		if img.Bounds().Dx()*h >= img.Bounds().Dy()*w {
			img = imaging.Resize(img, 0, h, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, w, 0, imaging.Lanczos)
		}
		img = imaging.CropCenter(img, w, h)
	case config.ImageResizeModeStretch:
		img = imaging.Resize(img, w, h, imaging.Lanczos)
	}
	return img
}

// drawLines draws prewrapped lines top down from y and returns the y below
// the block. Embolden redraws with a one pixel offset for faces that carry
// no bold variant.
func (r *Renderer) drawLines(dst *image.RGBA, lines []string, face font.Face, ink color.NRGBA, left, right, y int, center, embolden bool) int {
	lh := lineHeight(face)
	asc := face.Metrics().Ascent.Ceil()
	src := image.NewUniform(ink)
	for _, line := range lines {
		x := left
		if center {
			x = left + (right-left-measureString(face, line).Ceil())/2
		}
		d := &font.Drawer{Dst: dst, Src: src, Face: face, Dot: fixed.P(x, y+asc)}
		d.DrawString(line)
		if embolden {
			d.Dot = fixed.P(x+1, y+asc)
			d.DrawString(line)
		}
		y += lh
	}
	return y
}

func (r *Renderer) drawWrapped(dst *image.RGBA, text string, face font.Face, ink color.NRGBA, left, right, y int, center, embolden bool) int {
	return r.drawLines(dst, wrapText(face, text, right-left), face, ink, left, right, y, center, embolden)
}

func fillRect(dst *image.RGBA, rect image.Rectangle, c color.NRGBA) {
	draw.Draw(dst, rect, image.NewUniform(c), image.Point{}, draw.Over)
}

func (r *Renderer) drawCover(canvas *image.RGBA, s *deck.Slide) {
	w, h := r.doc.Card.Width, r.doc.Card.Height
	left, right := r.inset(), w-r.inset()
	ink, accent := r.ink(), r.accent()

	tf := r.titleFaceFor(s.Title, s.TitleFontSize)
	titleLines := wrapText(tf, s.Title, right-left)

	switch s.CoverStyle {
	case deck.CoverStyleMagazine:
		y := h / 6
		if len(s.Category) > 0 {
			y = r.drawLines(canvas, []string{s.Category}, r.smallFaceFor(s.Category), accent, left, right, y, false, false)
			y += h / 60
		}
		fillRect(canvas, image.Rect(left, y, left+w/7, y+8), accent)
		y += 8 + h/40
		y = r.drawLines(canvas, titleLines, tf, ink, left, right, y, false, true)
		if len(s.Subtitle) > 0 {
			y += h / 40
			r.drawWrapped(canvas, s.Subtitle, r.bodyFaceFor(s.Subtitle), ink, left, right, y, false, false)
		}
	case deck.CoverStyleMinimal:
		y := h*2/5 - len(titleLines)*lineHeight(tf)/2
		y = r.drawLines(canvas, titleLines, tf, ink, left, right, y, true, true)
		if len(s.Subtitle) > 0 {
			y += h / 30
			r.drawWrapped(canvas, s.Subtitle, r.bodyFaceFor(s.Subtitle), muted(ink), left, right, y, true, false)
		}
	default: // classic
		if len(s.Category) > 0 {
			r.drawLines(canvas, []string{s.Category}, r.smallFaceFor(s.Category), accent, left, right, h/5, true, false)
		}
		y := h*2/5 - len(titleLines)*lineHeight(tf)/2
		y = r.drawLines(canvas, titleLines, tf, ink, left, right, y, true, true)
		y += h / 40
		fillRect(canvas, image.Rect((w-w/12)/2, y, (w+w/12)/2, y+6), accent)
		y += 6 + h/40
		if len(s.Subtitle) > 0 {
			y = r.drawWrapped(canvas, s.Subtitle, r.bodyFaceFor(s.Subtitle), ink, left, right, y, true, false)
		}
		if len(s.Content) > 0 {
			quote := "「" + s.Content[0] + "」"
			r.drawWrapped(canvas, quote, r.bodyFaceFor(quote), accent, left, right, h-h/4, true, false)
		}
	}
}

func (r *Renderer) drawContent(canvas *image.RGBA, s *deck.Slide) {
	w, h := r.doc.Card.Width, r.doc.Card.Height
	left, right := r.inset(), w-r.inset()
	ink, accent := r.ink(), r.accent()

	y := r.topInset()
	if len(s.Title) > 0 {
		y = r.drawWrapped(canvas, s.Title, r.titleFaceFor(s.Title, 0), ink, left, right, y, false, true)
		y += h / 80
		fillRect(canvas, image.Rect(left, y, left+w/12, y+6), accent)
		y += 6 + h/30
	}
	for _, para := range s.Content {
		blk := deck.Classify(para)
		switch blk.Kind {
		case deck.BlockKindHeading:
			hf := r.faceFor(blk.Text, r.doc.Fonts.Title, float64(r.doc.Fonts.BodySize+8))
			y = r.drawWrapped(canvas, headingText(blk), hf, ink, left, right, y, false, true)
			y += lineHeight(hf) / 2
		case deck.BlockKindTable:
			face := r.bodyFaceFor(para)
			y = r.drawTable(canvas, blk, face, ink, accent, left, right, y)
			y += lineHeight(face) / 2
		default:
			face := r.bodyFaceFor(para)
			y = r.drawWrapped(canvas, para, face, ink, left, right, y, false, false)
			y += lineHeight(face) / 2
		}
	}
	if s.TotalPages > 0 {
		pn := fmt.Sprintf("%d / %d", s.PageNumber, s.TotalPages)
		r.drawLines(canvas, []string{pn}, r.smallFaceFor(pn), muted(ink), left, right, h-h/14, true, false)
	}
}

// headingText strips the markdown marker for display, the model keeps it
// verbatim.
func headingText(b deck.Block) string {
	return strings.TrimSpace(strings.TrimLeft(b.Text, "#"))
}

// drawTable lays table rows out as text lines, cells joined by spaced
// dividers. The first row is the header and gets the accent color.
func (r *Renderer) drawTable(canvas *image.RGBA, blk deck.Block, face font.Face, ink, accent color.NRGBA, left, right, y int) int {
	for i, row := range blk.TableRows() {
		c := ink
		if i == 0 {
			c = accent
		}
		y = r.drawWrapped(canvas, strings.Join(row, "  ·  "), face, c, left, right, y, false, i == 0)
	}
	return y
}

func (r *Renderer) drawPromo(canvas *image.RGBA, s *deck.Slide) {
	w, h := r.doc.Card.Width, r.doc.Card.Height
	left, right := r.inset(), w-r.inset()
	ink, accent := r.ink(), r.accent()

	y := h / 3
	if len(s.Title) > 0 {
		y = r.drawWrapped(canvas, s.Title, r.titleFaceFor(s.Title, 0), ink, left, right, y, true, true)
		y += h / 30
	}
	for _, para := range s.Content {
		face := r.bodyFaceFor(para)
		y = r.drawWrapped(canvas, para, face, ink, left, right, y, true, false)
		y += lineHeight(face) / 2
	}
	if len(s.Tags) > 0 {
		tags := make([]string, 0, len(s.Tags))
		for _, t := range s.Tags {
			tags = append(tags, "#"+t)
		}
		line := strings.Join(tags, "  ")
		r.drawWrapped(canvas, line, r.bodyFaceFor(line), accent, left, right, h-h/5, true, false)
	}
}
