package deck

// Commit is the single finishing pass every change to a slide sequence must
// end with. It assigns 1-based page numbers and the total count over the
// final order, backfills category on content slides from the nearest
// preceding cover and fills absent presentation fields from defaults. The
// slice is modified in place and returned for convenience.
func Commit(slides []*Slide, defaults Defaults) []*Slide {
	total := len(slides)
	category := ""
	for i, s := range slides {
		s.PageNumber = i + 1
		s.TotalPages = total
		switch s.Type {
		case SlideTypeCover:
			if len(s.Category) > 0 {
				category = s.Category
			}
			if len(s.BackgroundImage) == 0 {
				s.BackgroundImage = defaults.CoverBackground
			}
			if s.TitleFontSize == 0 {
				s.TitleFontSize = defaults.CoverTitleFontSize
			}
		case SlideTypeContent:
			if len(s.Category) == 0 {
				s.Category = category
			}
		}
		if len(s.Tags) == 0 {
			s.SetTags(defaults.Tags)
		}
	}
	return slides
}
