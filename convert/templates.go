package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"

	"rnm/config"
)

// Values is a struct that holds variables we make available for template
// expansion.
type Values struct {
	Context    string
	Title      string
	Subtitle   string
	Category   string
	Tags       []string
	Date       string
	Pages      int
	Format     string
	SourceFile string
	DeckID     string
}

// expandTemplate renders a user defined template field over article values.
// The page count is passed in separately - the promo text expands before its
// own slide joins the deck, so it cannot always be read off the deck.
func expandTemplate(c *Content, name config.TemplateFieldName, field string, pages int) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:    string(name),
		Title:      c.Meta.Title,
		Subtitle:   c.Meta.Subtitle,
		Category:   c.Meta.Category,
		Tags:       c.Meta.Tags,
		Date:       time.Now().Format("2006-01-02"),
		Pages:      pages,
		Format:     c.Format.String(),
		SourceFile: strings.TrimSuffix(filepath.Base(c.SrcName), filepath.Ext(c.SrcName)),
		DeckID:     c.ID,
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
