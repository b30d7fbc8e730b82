package deck

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// MaxCharsPerParagraph is the longest paragraph, in runes, the line-cost
// estimate stays accurate for. Longer paragraphs shed trailing sentences into
// the following slot before pagination.
const MaxCharsPerParagraph = 69

const sentenceBoundaries = "。！？.!?"

// Reflow bounds paragraph length without altering a single character of text.
// Blocks are processed as a work queue: the front block is popped, an
// overlong paragraph sheds sentences off its tail one at a time, and the shed
// text is prepended to the next pending paragraph - or becomes a new queue
// item when the queue is empty or the next block is a heading or a table,
// which never receive carried text. Headings and tables pass through
// uninspected. Running Reflow on its own output changes nothing.
func Reflow(blocks []Block) []Block {
	queue := slices.Clone(blocks)
	out := make([]Block, 0, len(queue))
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		if b.Kind != BlockKindParagraph {
			out = append(out, b)
			continue
		}
		kept, carry := shedTail(b.Text)
		out = append(out, Block{Kind: BlockKindParagraph, Text: kept})
		if len(carry) == 0 {
			continue
		}
		if len(queue) > 0 && queue[0].Kind == BlockKindParagraph {
			queue[0] = Classify(carry + queue[0].Text)
			continue
		}
		queue = slices.Insert(queue, 0, Classify(carry))
	}
	return out
}

// shedTail removes trailing sentences from text until it fits the paragraph
// budget or only one sentence remains. Shed sentences are returned in their
// original order.
func shedTail(text string) (kept, carry string) {
	kept = text
	for utf8.RuneCountInString(kept) > MaxCharsPerParagraph {
		spans := SplitSentences(kept)
		if len(spans) < 2 {
			break
		}
		last := spans[len(spans)-1]
		kept = kept[:len(kept)-len(last)]
		carry = last + carry
	}
	return kept, carry
}

// SplitSentences splits text into sentence spans. A span is a run of text up
// to and including the boundary punctuation that follows it; consecutive
// boundary marks stay with their sentence, and a trailing run without
// terminating punctuation forms the final span. Concatenating the spans
// reproduces text exactly.
func SplitSentences(text string) []string {
	var spans []string
	start := 0
	boundary := false
	for i, r := range text {
		isBoundary := strings.ContainsRune(sentenceBoundaries, r)
		if boundary && !isBoundary {
			spans = append(spans, text[start:i])
			start = i
		}
		boundary = isBoundary
	}
	if start < len(text) {
		spans = append(spans, text[start:])
	}
	return spans
}
