package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"

	"rnm/config"
	"rnm/deck"
	"rnm/metadata"
	"rnm/misc"
	"rnm/state"
)

// Content is a single article prepared for generation: decoded text split
// into paragraphs, extracted metadata and the paginated slide deck assembled
// from both.
type Content struct {
	SrcName string
	ID      string
	WorkDir string
	Format  config.OutputFmt
	Meta    metadata.Meta
	Deck    *deck.Deck
}

// Prepare reads and decodes article text, extracts metadata and assembles the
// paginated deck.
func Prepare(ctx context.Context, r io.Reader, srcName string, extractor metadata.Extractor, log *zap.Logger) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := state.EnvFromContext(ctx)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read article: %w", err)
	}
	text, err := decodeText(data)
	if err != nil {
		return nil, fmt.Errorf("unable to decode article: %w", err)
	}

	paragraphs := deck.SplitParagraphs(text)
	if len(paragraphs) == 0 {
		return nil, fmt.Errorf("no text found in (%s)", srcName)
	}

	m, err := extractor.Extract(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("unable to extract metadata: %w", err)
	}

	baseSrcName := filepath.Base(srcName)
	m.Merge(metadata.Meta{
		Title: strings.TrimSuffix(baseSrcName, filepath.Ext(baseSrcName)),
		Tags:  env.Cfg.Document.DefaultTags,
	})

	id := deck.NewID()

	tmpDir, err := os.MkdirTemp("", misc.GetAppName()+"-")
	if err != nil {
		return nil, fmt.Errorf("unable to create temporary directory: %w", err)
	}
	env.Rpt.Store(fmt.Sprintf("%s-%s", misc.GetAppName(), id), tmpDir)

	// Save decoded input and extraction result for debugging
	if env.Rpt != nil {
		if err := os.WriteFile(filepath.Join(tmpDir, baseSrcName), []byte(text), 0644); err != nil {
			return nil, fmt.Errorf("unable to write input text for debugging: %w", err)
		}
		meta, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("unable to encode metadata for debugging: %w", err)
		}
		if err := os.WriteFile(filepath.Join(tmpDir, baseSrcName+"_meta"), meta, 0644); err != nil {
			return nil, fmt.Errorf("unable to write metadata for debugging: %w", err)
		}
	}

	d := deck.NewDeck(srcName, deck.Defaults{
		CoverBackground:    env.Cfg.Document.Cover.DefaultImagePath,
		CoverTitleFontSize: env.Cfg.Document.Cover.TitleFontSize,
		Tags:               env.Cfg.Document.DefaultTags,
	})

	cover := deck.NewSlide(deck.SlideTypeCover)
	cover.Title = m.Title
	cover.Subtitle = m.Subtitle
	cover.Category = m.Category
	cover.SetTags(m.Tags)
	if style, err := deck.ParseCoverStyle(env.Cfg.Document.Cover.Style); err == nil {
		cover.CoverStyle = style
	}
	if len(m.Quote) > 0 {
		cover.Content = []string{m.Quote}
	}
	d.Append(cover)

	body := deck.NewSlide(deck.SlideTypeContent)
	body.Title = m.Title
	body.Content = paragraphs
	d.Append(body)

	d.Paginate()

	c := &Content{
		SrcName: srcName,
		ID:      id,
		WorkDir: tmpDir,
		Format:  env.Cfg.Document.Images.Format,
		Meta:    m,
		Deck:    d,
	}

	if env.Cfg.Document.Promo.Enable {
		appendPromo(c, env, log)
	}

	// Save prepared deck for debugging
	if env.Rpt != nil {
		if err := os.WriteFile(filepath.Join(tmpDir, baseSrcName+"_prepared"), []byte(d.String()), 0644); err != nil {
			return nil, fmt.Errorf("unable to write prepared deck for debugging: %w", err)
		}
	}

	return c, nil
}

// appendPromo expands the promo text template and adds the closing slide to
// the deck. A broken template drops the slide with a warning, it never fails
// the conversion.
func appendPromo(c *Content, env *state.LocalEnv, log *zap.Logger) {
	// The promo slide itself counts towards the page total it advertises.
	pages := len(c.Deck.Slides) + 1

	text, err := expandTemplate(c, config.PromoTextTemplateFieldName, env.Cfg.Document.Promo.TextTemplate, pages)
	if err != nil {
		log.Warn("Unable to expand promo text template, dropping promo slide", zap.Error(err))
		return
	}

	s := deck.NewSlide(deck.SlideTypePromo)
	s.Title = env.Cfg.Document.Promo.Title
	if t := strings.TrimSpace(text); len(t) > 0 {
		s.Content = deck.SplitParagraphs(t)
	}
	s.SetTags(env.Cfg.Document.Promo.Tags)
	c.Deck.Append(s)
	c.Deck.Commit()
}

// decodeText converts raw article bytes to a string. Input with a byte order
// mark was already decoded by selectReader, clean UTF-8 passes through,
// anything else is treated as GB18030 which covers both GBK and legacy GB2312
// sources.
func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	e, name := charset.Lookup("gb18030")
	if e == nil {
		// this should never happen
		return "", fmt.Errorf("encoding %q is not available", "gb18030")
	}
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), e.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("unable to decode text as %s: %w", name, err)
	}
	return string(out), nil
}
