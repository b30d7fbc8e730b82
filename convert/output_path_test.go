package convert

import (
	"fmt"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"rnm/config"
	"rnm/deck"
	"rnm/metadata"
	"rnm/state"
)

// pathTestContent builds a small prepared article for naming tests, no work
// directory or rendering involved.
func pathTestContent(t *testing.T) (*Content, *state.LocalEnv) {
	t.Helper()

	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("Failed to load default configuration: %v", err)
	}
	env := &state.LocalEnv{Cfg: cfg, Log: zaptest.NewLogger(t)}

	d := deck.NewDeck("article.txt", deck.Defaults{})
	cover := deck.NewSlide(deck.SlideTypeCover)
	cover.Title = "我的文章"
	d.Append(cover)
	body := deck.NewSlide(deck.SlideTypeContent)
	body.Content = []string{"第一段。", "第二段。"}
	d.Append(body)
	d.Paginate()

	c := &Content{
		SrcName: "article.txt",
		ID:      deck.NewID(),
		Format:  cfg.Document.Images.Format,
		Meta:    metadata.Meta{Title: "我的文章", Category: "职场"},
		Deck:    d,
	}
	return c, env
}

func TestBuildOutputPath_Default(t *testing.T) {
	c, env := pathTestContent(t)

	got := buildOutputPath(c, filepath.Join("系列", "我的 文章.txt"), "/out", env)
	want := filepath.Join("/out", "系列", "我的 文章.zip")
	if got != want {
		t.Errorf("buildOutputPath() = %s, want %s", got, want)
	}
}

func TestBuildOutputPath_NoDirs(t *testing.T) {
	c, env := pathTestContent(t)
	env.NoDirs = true

	got := buildOutputPath(c, filepath.Join("系列", "我的 文章.txt"), "/out", env)
	want := filepath.Join("/out", "我的 文章.zip")
	if got != want {
		t.Errorf("buildOutputPath() = %s, want %s", got, want)
	}
}

func TestBuildOutputPath_Transliterate(t *testing.T) {
	c, env := pathTestContent(t)
	env.Cfg.Document.FileNameTransliterate = true

	got := buildOutputPath(c, "My Article.txt", "/out", env)
	want := filepath.Join("/out", "my-article.zip")
	if got != want {
		t.Errorf("buildOutputPath() = %s, want %s", got, want)
	}
}

func TestBuildOutputPath_Template(t *testing.T) {
	c, env := pathTestContent(t)
	env.Cfg.Document.OutputNameTemplate = "{{.Category}}/{{.Title}}"

	got := buildOutputPath(c, "article.txt", "/out", env)
	want := filepath.Join("/out", "职场", "我的文章.zip")
	if got != want {
		t.Errorf("buildOutputPath() = %s, want %s", got, want)
	}
}

func TestBuildOutputPath_TemplatePages(t *testing.T) {
	c, env := pathTestContent(t)
	env.Cfg.Document.OutputNameTemplate = "{{.Title}}-{{.Pages}}p"

	got := buildOutputPath(c, "article.txt", "/out", env)
	want := filepath.Join("/out", fmt.Sprintf("我的文章-%dp.zip", len(c.Deck.Slides)))
	if got != want {
		t.Errorf("buildOutputPath() = %s, want %s", got, want)
	}
}

func TestBuildOutputPath_BadTemplate(t *testing.T) {
	c, env := pathTestContent(t)

	t.Run("parse failure", func(t *testing.T) {
		env.Cfg.Document.OutputNameTemplate = "{{.Broken"
		got := buildOutputPath(c, "article.txt", "/out", env)
		want := filepath.Join("/out", "article.zip")
		if got != want {
			t.Errorf("buildOutputPath() = %s, want default %s", got, want)
		}
	})

	t.Run("execution failure", func(t *testing.T) {
		env.Cfg.Document.OutputNameTemplate = "{{.NoSuchField}}"
		got := buildOutputPath(c, "article.txt", "/out", env)
		want := filepath.Join("/out", "article.zip")
		if got != want {
			t.Errorf("buildOutputPath() = %s, want default %s", got, want)
		}
	})
}
