// Package export captures rendered slides into the downloadable bundle: one
// image per page plus manifest and preview documents in a single zip archive.
package export

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/disintegration/imaging"
	"github.com/gosimple/slug"
	fixzip "github.com/hidez8891/zip"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"rnm/config"
	"rnm/deck"
	"rnm/misc"
	"rnm/utils/images"
)

// Rasterizer produces a finished card image for one slide.
type Rasterizer interface {
	Render(s *deck.Slide) image.Image
}

type bundleEntry struct {
	name  string
	slide *deck.Slide
}

// Generate renders every slide of the deck and writes the bundle archive to
// outputPath. Slides are captured one at a time to bound peak memory, a
// failed capture is logged and accumulated while the loop continues, and the
// context is consulted between items only. The bundle is assembled in
// workDir first and moved into place when complete.
func Generate(ctx context.Context, d *deck.Deck, rast Rasterizer, workDir, outputPath string, cfg *config.DocumentConfig, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(d.Slides) == 0 {
		return fmt.Errorf("deck %q has no slides", d.Source)
	}

	log.Info("Generating bundle", zap.Stringer("format", cfg.Images.Format), zap.String("output", outputPath), zap.Int("slides", len(d.Slides)))

	_, tmpName := filepath.Split(outputPath)
	tmpName = filepath.Join(workDir, tmpName)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	f, err := os.Create(tmpName)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	defer zw.Close()

	var (
		entries  []bundleEntry
		captures error
	)
	for i, s := range d.Slides {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := encodeSlide(rast.Render(s), &cfg.Images)
		if err != nil {
			log.Error("Unable to capture slide, skipping", zap.Int("page", i+1), zap.String("id", s.ID), zap.Error(err))
			captures = multierr.Append(captures, fmt.Errorf("slide %d: %w", i+1, err))
			continue
		}
		name := entryName(i, s, cfg.Images.Format.Ext())
		if err := writeDataToZip(zw, name, data); err != nil {
			return fmt.Errorf("unable to write slide %d: %w", i+1, err)
		}
		entries = append(entries, bundleEntry{name: name, slide: s})
	}

	if err := writeManifest(zw, d, entries); err != nil {
		return fmt.Errorf("unable to write manifest: %w", err)
	}

	if err := writePreview(zw, d, entries); err != nil {
		return fmt.Errorf("unable to write preview: %w", err)
	}

	// make sure buffers are flushed before continuing
	if err := zw.Close(); err != nil {
		return fmt.Errorf("unable to close output archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to finalize output file: %w", err)
	}
	// clean temporary file
	defer os.Remove(tmpName)

	if cfg.FixZip {
		if err := copyZipWithoutDataDescriptors(tmpName, outputPath); err != nil {
			return err
		}
	} else if err := copyFile(tmpName, outputPath); err != nil {
		return err
	}
	return captures
}

// entryName builds the archive name for a slide image: page number,
// transliterated title, format extension.
func entryName(idx int, s *deck.Slide, ext string) string {
	base := slug.Make(s.Title)
	if len(base) > 48 {
		base = strings.Trim(base[:48], "-")
	}
	if len(base) == 0 {
		base = string(s.Type)
	}
	return fmt.Sprintf("%03d-%s%s", idx+1, base, ext)
}

func encodeSlide(img image.Image, cfg *config.ImagesConfig) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("no image produced")
	}
	if cfg.Grayscale && !images.IsGrayscale(img) {
		img = imaging.Grayscale(img)
	}
	switch cfg.Format {
	case config.OutputFmtJpeg:
		return images.EncodeJPEGWithDPI(img, cfg.JPEGQuality, images.DpiPxPerInch, 300, 300)
	default:
		if cfg.RemoveTransparency {
			img = images.Flatten(img)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

// deckCover returns the first cover slide, manifest metadata comes from it.
func deckCover(d *deck.Deck) *deck.Slide {
	for _, s := range d.Slides {
		if s.Type == deck.SlideTypeCover {
			return s
		}
	}
	return nil
}

func deckTitle(d *deck.Deck) string {
	if c := deckCover(d); c != nil && len(c.Title) > 0 {
		return c.Title
	}
	for _, s := range d.Slides {
		if len(s.Title) > 0 {
			return s.Title
		}
	}
	return d.Source
}

func writeManifest(zw *zip.Writer, d *deck.Deck, entries []bundleEntry) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	bundle := doc.CreateElement("bundle")
	bundle.CreateAttr("xmlns", "urn:rnm:bundle")

	md := bundle.CreateElement("metadata")

	title := md.CreateElement("title")
	title.SetText(deckTitle(d))

	if cover := deckCover(d); cover != nil {
		if len(cover.Category) > 0 {
			category := md.CreateElement("category")
			category.SetText(cover.Category)
		}
		if len(cover.Subtitle) > 0 {
			subtitle := md.CreateElement("subtitle")
			subtitle.SetText(cover.Subtitle)
		}
		if len(cover.Tags) > 0 {
			tags := md.CreateElement("tags")
			for _, t := range cover.Tags {
				tag := tags.CreateElement("tag")
				tag.SetText(t)
			}
		}
	}

	if len(d.Source) > 0 {
		source := md.CreateElement("source")
		source.SetText(d.Source)
	}

	generator := md.CreateElement("generator")
	generator.SetText(misc.GetAppName() + " " + misc.GetVersion())

	created := md.CreateElement("created")
	created.SetText(time.Now().UTC().Format("2006-01-02T15:04:05Z"))

	slides := bundle.CreateElement("slides")
	slides.CreateAttr("count", strconv.Itoa(len(entries)))
	for _, e := range entries {
		sl := slides.CreateElement("slide")
		sl.CreateAttr("id", e.slide.ID)
		sl.CreateAttr("type", string(e.slide.Type))
		sl.CreateAttr("page", strconv.Itoa(e.slide.PageNumber))
		sl.CreateAttr("total", strconv.Itoa(e.slide.TotalPages))
		sl.CreateAttr("href", e.name)
	}

	return writeXMLToZip(zw, "manifest.xml", doc)
}

// writePreview emits a static page showing every card in order, so the
// bundle can be checked in a browser before upload.
func writePreview(zw *zip.Writer, d *deck.Deck, entries []bundleEntry) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	html := doc.CreateElement("html")
	html.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")

	head := html.CreateElement("head")

	meta := head.CreateElement("meta")
	meta.CreateAttr("http-equiv", "Content-Type")
	meta.CreateAttr("content", "text/html; charset=utf-8")

	title := head.CreateElement("title")
	title.SetText(deckTitle(d))

	style := head.CreateElement("style")
	style.CreateAttr("type", "text/css")
	style.SetText("body { margin: 0; padding: 1em; background: #efece6; font-family: sans-serif; } h1 { text-align: center; } img { display: block; width: 311px; margin: 1em auto; box-shadow: 0 1px 6px rgba(0,0,0,0.35); }")

	body := html.CreateElement("body")

	h1 := body.CreateElement("h1")
	h1.SetText(deckTitle(d))

	for _, e := range entries {
		img := body.CreateElement("img")
		img.CreateAttr("src", e.name)
		img.CreateAttr("alt", fmt.Sprintf("%d / %d", e.slide.PageNumber, e.slide.TotalPages))
	}

	return writeXMLToZip(zw, "preview.xhtml", doc)
}

func writeXMLToZip(zw *zip.Writer, name string, doc *etree.Document) error {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return err
	}
	return writeDataToZip(zw, name, buf.Bytes())
}

func writeDataToZip(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func copyZipWithoutDataDescriptors(from, to string) error {

	out, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("unable to create target file (%s): %w", to, err)
	}
	defer out.Close()

	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive file (%s): %w", from, err)
	}
	defer r.Close()

	w := fixzip.NewWriter(out)
	defer w.Close()

	for _, file := range r.File {
		// unset data descriptor flag.
		file.Flags &= ^fixzip.FlagDataDescriptor

		// copy zip entry
		if err := w.CopyFile(file); err != nil {
			return fmt.Errorf("unable to write target file (%s): %w", to, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {

	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer sourceFile.Close()

	destinationFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer destinationFile.Close()

	if _, err = io.Copy(destinationFile, sourceFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	if err = destinationFile.Close(); err != nil {
		return fmt.Errorf("failed to close destination file: %w", err)
	}
	return nil
}
