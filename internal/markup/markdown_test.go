package markup

import (
	"strings"
	"testing"
)

func TestMarkdownToHTML(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		contains    []string
		notContains []string
	}{
		{
			name:     "标题与强调",
			input:    "# Новая коллекция\n\n**Осень** 2025",
			contains: []string{"<h1", "Новая коллекция", "<strong>Осень</strong>"},
		},
		{
			name:        "移除脚本",
			input:       "текст <script>alert(1)</script>",
			contains:    []string{"текст"},
			notContains: []string{"<script", "alert(1)"},
		},
		{
			name:     "表格",
			input:    "| Размер | Грудь |\n|---|---|\n| M | 96 |",
			contains: []string{"<table>", "<td>96</td>"},
		},
		{
			name:     "外部链接加 nofollow",
			input:    "[магазин](https://example.com)",
			contains: []string{`href="https://example.com"`, "nofollow"},
		},
		{
			name:  "空内容",
			input: "   ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarkdownToHTML(tt.input)
			if err != nil {
				t.Fatalf("MarkdownToHTML error: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Fatalf("output %q should contain %q", got, want)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(got, unwanted) {
					t.Fatalf("output %q should not contain %q", got, unwanted)
				}
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	rendered, err := MarkdownToHTML("## Уход за шерстью\n\nСтирайте при 30 градусах & сушите горизонтально.")
	if err != nil {
		t.Fatalf("MarkdownToHTML error: %v", err)
	}
	full := Excerpt(rendered, 0)
	if strings.Contains(full, "<") {
		t.Fatalf("excerpt should be plain text, got %q", full)
	}
	if !strings.Contains(full, "30 градусах & сушите") {
		t.Fatalf("unexpected excerpt %q", full)
	}

	short := Excerpt(rendered, 10)
	if !strings.HasSuffix(short, "…") {
		t.Fatalf("truncated excerpt should end with ellipsis, got %q", short)
	}
	if n := len([]rune(strings.TrimSuffix(short, "…"))); n > 10 {
		t.Fatalf("excerpt has %d runes, want at most 10", n)
	}
}

func TestExcerptDecodesEntities(t *testing.T) {
	rendered, err := MarkdownToHTML("Коллекция \"Зима\" -- 20&#37; скидка&nbsp;до пятницы. Тег `<b>` в тексте.")
	if err != nil {
		t.Fatalf("MarkdownToHTML error: %v", err)
	}
	got := Excerpt(rendered, 0)
	for _, want := range []string{"Зима", "–", "20% скидка до пятницы", "Тег <b> в тексте"} {
		if !strings.Contains(got, want) {
			t.Fatalf("excerpt %q should contain %q", got, want)
		}
	}
	if strings.Contains(got, "&") {
		t.Fatalf("excerpt still has entities: %q", got)
	}
}
