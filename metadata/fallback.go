package metadata

import (
	"context"
	"iter"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"rnm/deck"
)

// Fallback derives metadata locally when the remote service is disabled or
// failed. It only fills what can be read off the text itself - title and
// quote. Category and tags are left empty for configured defaults.
type Fallback struct {
	splitter *Splitter
	log      *zap.Logger
}

func NewFallback(log *zap.Logger) *Fallback {
	return &Fallback{splitter: NewSplitter(log), log: log}
}

const (
	maxTitleRunes = 30
	minQuoteRunes = 10
	maxQuoteRunes = 60
)

func (f *Fallback) Extract(_ context.Context, text string) (Meta, error) {
	m := Meta{Title: firstTitle(text)}

	cjk := mostlyHan(text)
	for _, p := range deck.SplitParagraphs(text) {
		if deck.Classify(p).Kind != deck.BlockKindParagraph {
			continue
		}
		var quote string
		if cjk {
			quote = pickQuote(slices.Values(deck.SplitSentences(p)), m.Title)
		} else {
			quote = pickQuote(f.splitter.Sentences(p), m.Title)
		}
		if len(quote) > 0 {
			m.Quote = quote
			break
		}
	}

	m.Normalize()
	f.log.Debug("Metadata derived locally",
		zap.String("title", m.Title),
		zap.Bool("have-quote", len(m.Quote) > 0))
	return m, nil
}

// firstTitle returns the first line of the first non-blank paragraph with
// heading markers stripped, clipped to a presentable length.
func firstTitle(text string) string {
	for _, p := range deck.SplitParagraphs(text) {
		line := p
		if i := strings.IndexByte(line, '\n'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(strings.TrimLeft(line, "#"))
		if len(line) == 0 {
			continue
		}
		return clipRunes(line, maxTitleRunes)
	}
	return ""
}

// pickQuote returns the first sentence that is substantial enough to stand
// alone on a cover and is not just the title again.
func pickQuote(seq iter.Seq[string], title string) string {
	for s := range seq {
		s = strings.TrimSpace(s)
		n := utf8.RuneCountInString(s)
		if n < minQuoteRunes || n > maxQuoteRunes {
			continue
		}
		if s == title {
			continue
		}
		return s
	}
	return ""
}

// mostlyHan reports whether Han runes dominate the letters of s. Mixed
// articles take the CJK sentence path, its boundary set covers Latin full
// stops too.
func mostlyHan(s string) bool {
	var han, letters int
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if unicode.Is(unicode.Han, r) {
				han++
			}
		}
	}
	return han > 0 && han*2 >= letters
}
