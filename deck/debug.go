package deck

import (
	"rnm/utils/debug"
)

// String returns a readable tree of the whole deck. It exists solely for
// manual inspection during debugging.
func (d *Deck) String() string {
	if d == nil {
		return "<nil Deck>"
	}

	tw := debug.NewTreeWriter()
	tw.Line(0, "Deck[%q] slides[%d]", d.Source, len(d.Slides))
	for i, s := range d.Slides {
		tw.Line(1, "Slide[%d] id[%s] type[%s] page[%d/%d]", i, s.ID, s.Type, s.PageNumber, s.TotalPages)
		if len(s.Title) > 0 {
			tw.TextBlock(2, "Title", s.Title)
		}
		if len(s.Subtitle) > 0 {
			tw.TextBlock(2, "Subtitle", s.Subtitle)
		}
		if len(s.Category) > 0 {
			tw.TextBlock(2, "Category", s.Category)
		}
		tw.List(2, "Tags", s.Tags)
		if len(s.BackgroundImage) > 0 {
			tw.Line(2, "Background: %s", s.BackgroundImage)
		}
		if s.TitleFontSize > 0 {
			tw.Line(2, "Title font size: %d", s.TitleFontSize)
		}
		if len(s.CoverStyle) > 0 {
			tw.Line(2, "Cover style: %s", s.CoverStyle)
		}
		for j, p := range s.Content {
			b := Classify(p)
			tw.Line(2, "Block[%d] kind[%s] cost[%d] len[%d]", j, b.Kind, LineCost(b), b.Len())
			tw.TextBlock(3, "Text", p)
		}
	}
	return tw.String()
}
