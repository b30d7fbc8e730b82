package deck

// Page capacity constants. A page holds at most MaxLinesPerPage estimated
// lines; a full line fits CharsPerLine runes at the canvas body size.
const (
	MaxLinesPerPage = 19
	CharsPerLine    = 22
)

// LineCost estimates how many rendered lines a block occupies. Top-level
// headings take three lines, third-level ones two, blanks none. Everything
// else costs its rune length divided by the line width rounded up, plus one
// line for the trailing paragraph margin.
func LineCost(b Block) int {
	switch {
	case b.Kind == BlockKindHeading:
		if b.Level == 3 {
			return 2
		}
		return 3
	case b.IsBlank():
		return 0
	default:
		return (b.Len()+CharsPerLine-1)/CharsPerLine + 1
	}
}

// Paginate greedily packs blocks into pages of at most MaxLinesPerPage
// estimated lines, keeping input order. A heading that does not fit always
// opens a fresh page. A paragraph that does not fit is split at the character
// offset filling the space left on the current page, with one line reserved
// for the fragment's margin; when a single line or less remains the split is
// not worth it and the paragraph moves to a fresh page whole. A block whose
// own cost exceeds the page budget ends up as the sole occupant of an
// over-budget page - text is never dropped.
func Paginate(blocks []Block) [][]Block {
	var (
		pages [][]Block
		cur   []Block
		used  int
	)
	flush := func() {
		if len(cur) > 0 {
			pages = append(pages, cur)
			cur = nil
		}
	}
	for _, b := range blocks {
		cost := LineCost(b)
		if used+cost <= MaxLinesPerPage {
			cur = append(cur, b)
			used += cost
			continue
		}
		if b.Kind == BlockKindHeading {
			flush()
			cur = []Block{b}
			used = cost
			continue
		}
		remaining := MaxLinesPerPage - used
		if remaining <= 1 {
			flush()
			cur = []Block{b}
			used = cost
			continue
		}
		head, tail := cutRunes(b.Text, (remaining-1)*CharsPerLine)
		cur = append(cur, Classify(head))
		flush()
		rest := Classify(tail)
		cur = []Block{rest}
		used = LineCost(rest)
	}
	flush()
	return pages
}

// PaginateSlide lays out a single slide. Content slides are reflowed and
// packed into as many pages as needed, every page inheriting each field of
// the source slide except the content itself; the first page keeps the
// source identity. Other slide types pass through untouched as a single
// page.
func PaginateSlide(s *Slide) []*Slide {
	if s.Type != SlideTypeContent {
		return []*Slide{s}
	}
	pages := Paginate(Reflow(ClassifyAll(s.Content)))
	if len(pages) == 0 {
		return []*Slide{s}
	}
	out := make([]*Slide, 0, len(pages))
	for i, page := range pages {
		ns := s
		if i > 0 {
			ns = s.Clone()
			ns.ID = NewID()
		}
		ns.Content = make([]string, 0, len(page))
		for _, b := range page {
			ns.Content = append(ns.Content, b.Text)
		}
		out = append(out, ns)
	}
	return out
}

// cutRunes splits s after n runes.
func cutRunes(s string, n int) (string, string) {
	for i := range s {
		if n == 0 {
			return s[:i], s[i:]
		}
		n--
	}
	return s, ""
}
