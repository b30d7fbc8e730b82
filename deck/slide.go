// Package deck holds the slide data model and the layout passes which turn
// verbatim article text into a bounded sequence of slide pages.
package deck

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Slide is a single card in the final sequence. Field names follow the JSON
// shape the manifest and preview are generated from.
type Slide struct {
	ID              string     `json:"id"`
	Type            SlideType  `json:"type"`
	Title           string     `json:"title,omitempty"`
	Content         []string   `json:"content,omitempty"`
	Subtitle        string     `json:"subtitle,omitempty"`
	Category        string     `json:"category,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
	PageNumber      int        `json:"pageNumber,omitempty"`
	TotalPages      int        `json:"totalPages,omitempty"`
	BackgroundImage string     `json:"backgroundImage,omitempty"`
	TitleFontSize   int        `json:"titleFontSize,omitempty"`
	CoverStyle      CoverStyle `json:"coverStyle,omitempty"`
}

// NewSlide creates an empty slide of the given type with a fresh ID.
func NewSlide(t SlideType) *Slide {
	return &Slide{ID: NewID(), Type: t}
}

// NewID returns a time-ordered UUID for a slide, falling back to a random one
// when v7 generation fails.
func NewID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// Clone returns a deep copy of the slide.
func (s *Slide) Clone() *Slide {
	c := *s
	c.Content = slices.Clone(s.Content)
	c.Tags = slices.Clone(s.Tags)
	return &c
}

// AddTag appends a tag unless it is already present. Tags behave as a set
// with stable order.
func (s *Slide) AddTag(tag string) {
	tag = strings.TrimSpace(tag)
	if len(tag) == 0 || slices.Contains(s.Tags, tag) {
		return
	}
	s.Tags = append(s.Tags, tag)
}

// SetTags replaces slide tags with the given values, dropping blanks and
// duplicates while keeping first-seen order.
func (s *Slide) SetTags(tags []string) {
	s.Tags = nil
	for _, t := range tags {
		s.AddTag(t)
	}
}

// Text returns slide content joined back into article form, paragraphs
// separated by blank lines.
func (s *Slide) Text() string {
	return strings.Join(s.Content, "\n\n")
}

// Defaults supplies presentation values the finishing pass falls back to when
// a slide carries none of its own.
type Defaults struct {
	CoverBackground    string
	CoverTitleFontSize int
	Tags               []string
}
