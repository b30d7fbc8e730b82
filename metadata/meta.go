// Package metadata extracts article metadata - title, subtitle, category,
// tags and a pull quote - for cover and promo slides. The primary source is a
// remote OpenAI-compatible service, with an on-disk response cache in front of
// it and a local heuristic fallback behind it. Every field is optional at
// every stage: partial output degrades to caller defaults, never to a failed
// conversion.
package metadata

import (
	"slices"
	"strings"
)

// Meta is a single extraction result. An empty field means "absent".
type Meta struct {
	Title    string   `json:"title,omitempty"`
	Subtitle string   `json:"subtitle,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Quote    string   `json:"quote,omitempty"`
}

// Merge fills absent fields from defaults.
func (m *Meta) Merge(defaults Meta) {
	if len(m.Title) == 0 {
		m.Title = defaults.Title
	}
	if len(m.Subtitle) == 0 {
		m.Subtitle = defaults.Subtitle
	}
	if len(m.Category) == 0 {
		m.Category = defaults.Category
	}
	if len(m.Tags) == 0 {
		m.Tags = slices.Clone(defaults.Tags)
	}
	if len(m.Quote) == 0 {
		m.Quote = defaults.Quote
	}
}

// IsZero reports whether no field carries a value.
func (m Meta) IsZero() bool {
	return len(m.Title) == 0 && len(m.Subtitle) == 0 && len(m.Category) == 0 &&
		len(m.Tags) == 0 && len(m.Quote) == 0
}

const maxTags = 6

// Normalize cleans up an extraction result in place: fields are trimmed, tags
// are stripped of hash markers, deduplicated and capped. Model output is
// unreliable enough that this runs on every result no matter where it came
// from.
func (m *Meta) Normalize() {
	m.Title = strings.TrimSpace(m.Title)
	m.Subtitle = strings.TrimSpace(m.Subtitle)
	m.Category = strings.TrimSpace(m.Category)
	m.Quote = strings.TrimSpace(m.Quote)

	seen := make(map[string]struct{}, len(m.Tags))
	tags := m.Tags[:0]
	for _, t := range m.Tags {
		t = strings.TrimSpace(strings.Trim(strings.TrimSpace(t), "#"))
		if len(t) == 0 {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
		if len(tags) == maxTags {
			break
		}
	}
	m.Tags = tags
}
