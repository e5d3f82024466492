package utils

import (
	"strings"
	"testing"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "西里尔字母", input: "Привет Мир!", want: "привет-мир"},
		{name: "拉丁字母", input: "Hello, World", want: "hello-world"},
		{name: "合并分隔符", input: "  New -- Collection ___ 2024  ", want: "new-collection-2024"},
		{name: "首尾标点", input: "!!!Sale!!!", want: "sale"},
		{name: "ё 保留", input: "Ёлка", want: "ёлка"},
		{name: "混合", input: "Кроссовки Nike Air", want: "кроссовки-nike-air"},
		{name: "仅标点", input: "?!.", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateSlug(tt.input)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if got != "" && !IsValidSlug(got) {
				t.Errorf("generated slug %q does not pass validation", got)
			}
			if strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-") {
				t.Errorf("slug %q has leading or trailing hyphen", got)
			}
		})
	}
}

func TestGenerateSlugTruncates(t *testing.T) {
	long := strings.Repeat("слово ", 60)
	got := GenerateSlug(long)
	if len(got) > maxSlugLength {
		t.Fatalf("expected slug to be at most %d bytes, got %d", maxSlugLength, len(got))
	}
	if !IsValidSlug(got) {
		t.Fatalf("truncated slug %q is invalid", got)
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"nike", "air-max-90", "привет-мир", "2024"}
	invalid := []string{"", "Nike", "air--max", "-air", "air-", "air max", "air_max"}

	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestResolveSlug(t *testing.T) {
	if got := ResolveSlug("", "Летняя распродажа"); got != "летняя-распродажа" {
		t.Errorf("unexpected slug %q", got)
	}
	if got := ResolveSlug("Custom Slug", "ignored"); got != "custom-slug" {
		t.Errorf("unexpected slug %q", got)
	}
}
