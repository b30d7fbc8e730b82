package deck

import (
	"fmt"
	"slices"
)

// Deck is the ordered slide sequence produced from one article.
type Deck struct {
	Source   string
	Slides   []*Slide
	Defaults Defaults
}

// NewDeck creates an empty deck for the named source.
func NewDeck(source string, defaults Defaults) *Deck {
	return &Deck{Source: source, Defaults: defaults}
}

// Append adds a slide to the end of the deck without renumbering. It is meant
// for initial assembly only - Paginate or Commit must run before the deck is
// handed out.
func (d *Deck) Append(s *Slide) {
	d.Slides = append(d.Slides, s)
}

// Paginate runs the reflow and pagination passes over every content slide,
// fans multi-page slides out into the final sequence and renumbers it.
// Cover and promo slides pass through as single pages.
func (d *Deck) Paginate() {
	var out []*Slide
	for _, s := range d.Slides {
		out = append(out, PaginateSlide(s)...)
	}
	d.Slides = out
	d.Commit()
}

// Commit renumbers the deck and applies presentation defaults. Every
// operation changing the slide sequence ends here, so page numbers cannot go
// stale.
func (d *Deck) Commit() {
	d.Slides = Commit(d.Slides, d.Defaults)
}

// InsertSlide inserts a slide at index idx (clamped to the valid range) and
// renumbers the deck.
func (d *Deck) InsertSlide(idx int, s *Slide) {
	idx = min(max(idx, 0), len(d.Slides))
	d.Slides = slices.Insert(d.Slides, idx, s)
	d.Commit()
}

// RemoveSlide removes the slide at idx and renumbers the deck.
func (d *Deck) RemoveSlide(idx int) error {
	if idx < 0 || idx >= len(d.Slides) {
		return fmt.Errorf("no slide at index %d", idx)
	}
	d.Slides = slices.Delete(d.Slides, idx, idx+1)
	d.Commit()
	return nil
}

// SplitSlide splits the content slide at idx in two, the first part keeping
// paragraphs up to but excluding para, and renumbers the deck. The second
// part inherits everything but gets its own ID.
func (d *Deck) SplitSlide(idx, para int) error {
	if idx < 0 || idx >= len(d.Slides) {
		return fmt.Errorf("no slide at index %d", idx)
	}
	s := d.Slides[idx]
	if s.Type != SlideTypeContent {
		return fmt.Errorf("cannot split slide of type %s", s.Type)
	}
	if para <= 0 || para >= len(s.Content) {
		return fmt.Errorf("split point %d is out of range for %d paragraphs", para, len(s.Content))
	}
	tail := s.Clone()
	tail.ID = NewID()
	tail.Content = slices.Clone(s.Content[para:])
	s.Content = s.Content[:para]
	d.Slides = slices.Insert(d.Slides, idx+1, tail)
	d.Commit()
	return nil
}
