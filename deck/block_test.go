package deck

import (
	"slices"
	"testing"
)

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple",
			text: "第一段。\n\n第二段。",
			want: []string{"第一段。", "第二段。"},
		},
		{
			name: "multiple blank lines and padding",
			text: "  第一段。  \n\n\n\n第二段。\n",
			want: []string{"第一段。", "第二段。"},
		},
		{
			name: "windows line endings",
			text: "甲\r\n\r\n乙",
			want: []string{"甲", "乙"},
		},
		{
			name: "blank line with spaces still separates",
			text: "甲\n   \n乙",
			want: []string{"甲", "乙"},
		},
		{
			name: "table rows stay together",
			text: "|a|b|\n|---|---|\n|1|2|\n\n下一段",
			want: []string{"|a|b|\n|---|---|\n|1|2|", "下一段"},
		},
		{
			name: "empty input",
			text: "   \n\n  ",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitParagraphs(tt.text)
			if !slices.Equal(got, tt.want) {
				t.Errorf("SplitParagraphs(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		kind  BlockKind
		level int
	}{
		{"paragraph", "普通段落。", BlockKindParagraph, 0},
		{"level two", "## 标题", BlockKindHeading, 2},
		{"level three", "### 子标题", BlockKindHeading, 3},
		{"level one", "# 顶级", BlockKindHeading, 1},
		{"table", "|甲|乙|\n|---|---|\n|1|2|", BlockKindTable, 0},
		{"pipe mid-text is paragraph", "甲 | 乙", BlockKindParagraph, 0},
		{"empty", "", BlockKindParagraph, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text)
			if got.Kind != tt.kind || got.Level != tt.level {
				t.Errorf("Classify(%q) = kind %s level %d, want kind %s level %d",
					tt.text, got.Kind, got.Level, tt.kind, tt.level)
			}
			if got.Text != tt.text {
				t.Errorf("Classify(%q) altered text to %q", tt.text, got.Text)
			}
		})
	}
}

func TestTableRows(t *testing.T) {
	b := Classify("|名称|数量|\n|---|---|\n|甲|1|\n|乙|2|")
	rows := b.TableRows()
	want := [][]string{{"名称", "数量"}, {"甲", "1"}, {"乙", "2"}}
	if len(rows) != len(want) {
		t.Fatalf("TableRows() returned %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if !slices.Equal(rows[i], want[i]) {
			t.Errorf("row %d = %v, want %v", i, rows[i], want[i])
		}
	}
	if Classify("普通段落。").TableRows() != nil {
		t.Error("TableRows() on a paragraph is not nil")
	}
}

func TestBlockLen(t *testing.T) {
	if got := Classify("字母mix").Len(); got != 5 {
		t.Errorf("Len() = %d, want 5 runes", got)
	}
	if !Classify("  \t ").IsBlank() {
		t.Error("IsBlank() = false for whitespace-only block")
	}
	if Classify("字").IsBlank() {
		t.Error("IsBlank() = true for non-empty block")
	}
}
