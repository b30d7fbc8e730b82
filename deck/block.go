package deck

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Block is a single unit of slide content. Its kind is decided once, when
// text enters the deck, so the layout code dispatches on a closed set of tags
// instead of re-parsing string prefixes on every pass. Text is always kept
// verbatim, markers included.
type Block struct {
	Kind  BlockKind
	Level int // heading depth, 0 for everything else
	Text  string
}

// Classify wraps a raw paragraph string into a tagged Block.
func Classify(text string) Block {
	switch {
	case strings.HasPrefix(text, "#"):
		return Block{Kind: BlockKindHeading, Level: headingLevel(text), Text: text}
	case isTableBlock(text):
		return Block{Kind: BlockKindTable, Text: text}
	default:
		return Block{Kind: BlockKindParagraph, Text: text}
	}
}

// ClassifyAll converts raw paragraph strings into classified blocks keeping
// input order.
func ClassifyAll(paragraphs []string) []Block {
	blocks := make([]Block, 0, len(paragraphs))
	for _, p := range paragraphs {
		blocks = append(blocks, Classify(p))
	}
	return blocks
}

// IsBlank reports whether block carries no visible text.
func (b Block) IsBlank() bool {
	return len(strings.TrimSpace(b.Text)) == 0
}

// Len returns block text length in runes. All layout arithmetic is done in
// runes - multibyte characters count as one.
func (b Block) Len() int {
	return utf8.RuneCountInString(b.Text)
}

// TableRows returns table cell values row by row with separator rows dropped.
// For non-table blocks it returns nil.
func (b Block) TableRows() [][]string {
	if b.Kind != BlockKindTable {
		return nil
	}
	var rows [][]string
	for line := range strings.Lines(b.Text) {
		line = strings.TrimSpace(line)
		if len(line) == 0 || isTableSeparator(line) {
			continue
		}
		var cells []string
		for _, c := range strings.Split(strings.Trim(line, "|"), "|") {
			cells = append(cells, strings.TrimSpace(c))
		}
		rows = append(rows, cells)
	}
	return rows
}

func headingLevel(text string) int {
	level := 0
	for _, r := range text {
		if r != '#' {
			break
		}
		level++
	}
	return level
}

func isTableBlock(text string) bool {
	lines := 0
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if !strings.HasPrefix(line, "|") {
			return false
		}
		lines++
	}
	return lines > 0
}

func isTableSeparator(line string) bool {
	trimmed := strings.Trim(line, "| ")
	if len(trimmed) == 0 {
		return false
	}
	for _, r := range trimmed {
		if r != '-' && r != ':' && r != ' ' && r != '|' {
			return false
		}
	}
	return strings.Contains(trimmed, "---")
}

var blankLines = regexp.MustCompile(`\n\s*\n`)

// SplitParagraphs splits raw article text into paragraph strings. Paragraphs
// are separated by one or more blank lines, each paragraph is trimmed and
// empty ones are dropped.
func SplitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, p := range blankLines.Split(text, -1) {
		if p = strings.TrimSpace(p); len(p) > 0 {
			out = append(out, p)
		}
	}
	return out
}
