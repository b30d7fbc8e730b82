package deck

// Role of a slide in the final sequence.
// ENUM(cover, content, promo)
type SlideType string

// Kind of a content block, decided once when text is ingested.
// ENUM(paragraph, heading, table)
type BlockKind int

// Visual arrangement of a cover slide.
// ENUM(classic, magazine, minimal)
type CoverStyle string
