package utils

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SlugPattern 约束 slug：小写拉丁或西里尔字母、数字，以单个连字符分隔。
var SlugPattern = regexp.MustCompile(`^[a-z0-9а-яё]+(?:-[a-z0-9а-яё]+)*$`)

const maxSlugLength = 160

var slugLower = cases.Lower(language.Russian)

// GenerateSlug 根据标题生成 slug：按俄语规则转小写，非字母数字字符替换为连字符并合并，
// 去掉首尾连字符。
func GenerateSlug(title string) string {
	lowered := slugLower.String(strings.TrimSpace(title))

	var b strings.Builder
	b.Grow(len(lowered))
	pendingHyphen := false
	for _, r := range lowered {
		if isSlugRune(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	slug := b.String()
	if len(slug) > maxSlugLength {
		slug = truncateRunes(slug, maxSlugLength)
		slug = strings.TrimRight(slug, "-")
	}
	return slug
}

// IsValidSlug 检查 slug 是否符合格式要求。
func IsValidSlug(slug string) bool {
	if slug == "" || len(slug) > maxSlugLength {
		return false
	}
	return SlugPattern.MatchString(slug)
}

// ResolveSlug 优先使用显式给出的 slug（会被规范化），否则由标题生成。
func ResolveSlug(explicit, title string) string {
	if trimmed := strings.TrimSpace(explicit); trimmed != "" {
		return GenerateSlug(trimmed)
	}
	return GenerateSlug(title)
}

func isSlugRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r >= 'а' && r <= 'я', r == 'ё':
		return true
	default:
		return false
	}
}

func truncateRunes(value string, maxBytes int) string {
	if len(value) <= maxBytes {
		return value
	}
	cut := 0
	for idx := range value {
		if idx > maxBytes {
			break
		}
		cut = idx
	}
	return value[:cut]
}
