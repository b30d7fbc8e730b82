package convert

import (
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"rnm/config"
	"rnm/metadata"
)

func templateTestContent() *Content {
	return &Content{
		SrcName: filepath.Join("batch", "原始文件.txt"),
		ID:      "0198f2a6-0000-7000-8000-000000000000",
		Format:  config.OutputFmtPng,
		Meta: metadata.Meta{
			Title:    "标题",
			Subtitle: "副标题",
			Category: "分类",
			Tags:     []string{"一", "二"},
		},
	}
}

func TestExpandTemplate(t *testing.T) {
	c := templateTestContent()

	got, err := expandTemplate(c, config.OutputNameTemplateFieldName,
		"{{.Title}}|{{.Subtitle}}|{{.Category}}|{{.Pages}}|{{.Format}}|{{.SourceFile}}|{{.DeckID}}|{{.Context}}", 7)
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	want := "标题|副标题|分类|7|png|原始文件|" + c.ID + "|output_name_template"
	if got != want {
		t.Errorf("expandTemplate() = %q, want %q", got, want)
	}
}

func TestExpandTemplate_Date(t *testing.T) {
	c := templateTestContent()

	got, err := expandTemplate(c, config.PromoTextTemplateFieldName, "{{.Date}}", 1)
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if !regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`).MatchString(got) {
		t.Errorf("date = %q, want YYYY-MM-DD", got)
	}
}

func TestExpandTemplate_SprigFunctions(t *testing.T) {
	c := templateTestContent()

	got, err := expandTemplate(c, config.OutputNameTemplateFieldName, `{{upper .Format}}-{{join "+" .Tags}}`, 1)
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if got != "PNG-一+二" {
		t.Errorf("expandTemplate() = %q, want PNG-一+二", got)
	}
}

func TestExpandTemplate_ParseError(t *testing.T) {
	c := templateTestContent()

	_, err := expandTemplate(c, config.OutputNameTemplateFieldName, "{{.Broken", 1)
	if err == nil {
		t.Fatal("Expected error for broken template")
	}
	if !strings.Contains(err.Error(), string(config.OutputNameTemplateFieldName)) {
		t.Errorf("error = %v, want field name in message", err)
	}
}

func TestExpandTemplate_ExecutionError(t *testing.T) {
	c := templateTestContent()

	if _, err := expandTemplate(c, config.OutputNameTemplateFieldName, "{{.NoSuchField}}", 1); err == nil {
		t.Fatal("Expected error for unknown template field")
	}
}
