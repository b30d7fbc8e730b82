package metadata

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func testFallback(t *testing.T) *Fallback {
	t.Helper()
	return NewFallback(zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))))
}

func TestFallbackExtract_CJK(t *testing.T) {
	text := "# 如何建立阅读习惯\n\n很多人想读书却坚持不下来。真正的阅读习惯不靠意志力，靠的是环境设计。\n\n把书放在床头，手机放在客厅。"

	m, err := testFallback(t).Extract(context.Background(), text)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if m.Title != "如何建立阅读习惯" {
		t.Errorf("Expected title from heading, got %q", m.Title)
	}
	if m.Quote != "很多人想读书却坚持不下来。" {
		t.Errorf("Expected first substantial sentence as quote, got %q", m.Quote)
	}
	if len(m.Category) != 0 || len(m.Tags) != 0 {
		t.Errorf("Expected category and tags left for defaults, got %+v", m)
	}
}

func TestFallbackExtract_Latin(t *testing.T) {
	text := "Deep Work\n\nMr. Newport argues that focus is the new superpower. Shallow tasks eat entire careers one notification at a time."

	m, err := testFallback(t).Extract(context.Background(), text)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if m.Title != "Deep Work" {
		t.Errorf("Expected first line as title, got %q", m.Title)
	}
	// The punkt tokenizer must not break on "Mr." and the first sentence fits
	// the quote bounds.
	if m.Quote != "Mr. Newport argues that focus is the new superpower." {
		t.Errorf("Unexpected quote %q", m.Quote)
	}
}

func TestFallbackExtract_TitleClipped(t *testing.T) {
	long := strings.Repeat("很", maxTitleRunes+10)
	m, err := testFallback(t).Extract(context.Background(), long)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := utf8.RuneCountInString(m.Title); got != maxTitleRunes {
		t.Errorf("Expected title clipped to %d runes, got %d", maxTitleRunes, got)
	}
}

func TestFallbackExtract_SkipsNonParagraphs(t *testing.T) {
	text := "# 标题很长足够当金句吗不会的\n\n## 另一个标题也不短但它是标题\n\n| a | b |\n| --- | --- |\n| 1 | 2 |\n\n这一段才是正文，金句应该从这里选出来。"

	m, err := testFallback(t).Extract(context.Background(), text)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if m.Quote != "这一段才是正文，金句应该从这里选出来。" {
		t.Errorf("Expected quote from body paragraph only, got %q", m.Quote)
	}
}

func TestFallbackExtract_NoSuitableQuote(t *testing.T) {
	m, err := testFallback(t).Extract(context.Background(), "短。\n\n也短。")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(m.Quote) != 0 {
		t.Errorf("Expected no quote for too-short sentences, got %q", m.Quote)
	}
}

func TestFallbackExtract_Empty(t *testing.T) {
	m, err := testFallback(t).Extract(context.Background(), "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !m.IsZero() {
		t.Errorf("Expected zero Meta for empty input, got %+v", m)
	}
}

func TestMostlyHan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"pure CJK", "这是一段中文文字。", true},
		{"pure Latin", "This is English prose.", false},
		{"mixed mostly CJK", "我在用 Go 写代码。", true},
		{"empty", "", false},
		{"digits only", "12345", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mostlyHan(tt.in); got != tt.want {
				t.Errorf("mostlyHan(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
