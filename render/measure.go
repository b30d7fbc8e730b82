package render

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/width"
)

// isWide reports whether a rune takes a double cell in East Asian
// typography. Wide runes are not grouped into words, a line may break at any
// of them.
func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}

// lineStartForbidden reports closing punctuation that must not start a line.
func lineStartForbidden(r rune) bool {
	switch r {
	case '）', '】', '》', '」', '』', '〉', '〕', '｝', '］',
		'。', '，', '、', '；', '：', '！', '？', '…',
		')', ']', '}', '.', ',', ';', ':', '!', '?':
		return true
	}
	return false
}

// splitSegments cuts text into wrappable pieces: wide runes stand alone,
// Latin words stay whole and spaces are their own segments so they can
// vanish at a break. Closing punctuation is glued to the preceding segment
// and so never opens a line.
func splitSegments(text string) []string {
	if len(text) == 0 {
		return nil
	}
	runes := []rune(text)
	segs := make([]string, 0, len(runes)/2+1)
	start := 0
	for i, r := range runes {
		if isWide(r) || r == ' ' || r == '\t' {
			if i > start {
				segs = append(segs, string(runes[start:i]))
			}
			segs = append(segs, string(r))
			start = i + 1
		}
	}
	if start < len(runes) {
		segs = append(segs, string(runes[start:]))
	}
	if len(segs) < 2 {
		return segs
	}
	merged := make([]string, 0, len(segs))
	for _, seg := range segs {
		r := []rune(seg)
		if len(merged) > 0 && len(r) == 1 && lineStartForbidden(r[0]) {
			merged[len(merged)-1] += seg
			continue
		}
		merged = append(merged, seg)
	}
	return merged
}

// measureString returns the advance of s accounting for kerning pairs.
// Glyphs the face cannot draw measure as zero, same as font.MeasureString.
func measureString(face font.Face, s string) fixed.Int26_6 {
	var advance fixed.Int26_6
	prev := rune(-1)
	for _, r := range s {
		if prev >= 0 {
			advance += face.Kern(prev, r)
		}
		if a, ok := face.GlyphAdvance(r); ok {
			advance += a
		}
		prev = r
	}
	return advance
}

// lineHeight returns the line to line distance for a face. Fonts report a
// recommended height which already includes the internal leading, faces
// without one fall back to ascent plus descent.
func lineHeight(face font.Face) int {
	m := face.Metrics()
	h := m.Height.Ceil()
	if ad := m.Ascent.Ceil() + m.Descent.Ceil(); h < ad {
		h = ad
	}
	if h < 1 {
		h = 14
	}
	return h
}

// wrapText breaks text into visual lines no wider than maxWidth when drawn
// with face. Hard newlines always break, a single segment wider than the
// column gets a line of its own and may overflow.
func wrapText(face font.Face, text string, maxWidth int) []string {
	if len(text) == 0 {
		return nil
	}
	maxW := fixed.I(max(maxWidth, 1))
	var lines []string
	for hard := range strings.SplitSeq(text, "\n") {
		segs := splitSegments(strings.TrimRight(hard, " \t"))
		if len(segs) == 0 {
			lines = append(lines, "")
			continue
		}
		var cur strings.Builder
		for _, seg := range segs {
			if cur.Len() == 0 {
				if seg == " " || seg == "\t" {
					continue
				}
				cur.WriteString(seg)
				continue
			}
			if measureString(face, cur.String()+seg) > maxW {
				lines = append(lines, strings.TrimRight(cur.String(), " \t"))
				cur.Reset()
				if seg != " " && seg != "\t" {
					cur.WriteString(seg)
				}
				continue
			}
			cur.WriteString(seg)
		}
		if cur.Len() > 0 {
			lines = append(lines, cur.String())
		}
	}
	return lines
}
