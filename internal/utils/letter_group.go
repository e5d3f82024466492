package utils

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// OtherLetterKey 名称不以字母开头时使用的分组键。
const OtherLetterKey = "#"

var letterUpper = cases.Upper(language.Russian)

// LetterGroup 按首字母聚合的一组元素。
type LetterGroup[T any] struct {
	Letter string `json:"letter"`
	Items  []T    `json:"items"`
}

// GroupByFirstLetter 按名称首字母分组。只输出实际存在元素的字母；
// 分组顺序为拉丁字母、西里尔字母、其他字母，最后是 "#"；组内按俄语排序规则排序。
func GroupByFirstLetter[T any](items []T, name func(T) string) []LetterGroup[T] {
	buckets := make(map[string][]T)
	for _, item := range items {
		key := FirstLetterKey(name(item))
		buckets[key] = append(buckets[key], item)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return letterLess(keys[i], keys[j])
	})

	collator := collate.New(language.Russian, collate.IgnoreCase)
	groups := make([]LetterGroup[T], 0, len(keys))
	for _, key := range keys {
		bucket := buckets[key]
		sort.SliceStable(bucket, func(i, j int) bool {
			return collator.CompareString(name(bucket[i]), name(bucket[j])) < 0
		})
		groups = append(groups, LetterGroup[T]{Letter: key, Items: bucket})
	}
	return groups
}

// FirstLetterKey 返回名称的分组键：首个字母的大写形式，非字母返回 "#"。
func FirstLetterKey(name string) string {
	trimmed := strings.TrimSpace(name)
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			return letterUpper.String(string(r))
		}
		return OtherLetterKey
	}
	return OtherLetterKey
}

func letterLess(a, b string) bool {
	ra, rb := letterRank(a), letterRank(b)
	if ra != rb {
		return ra < rb
	}
	return letterOrder(a) < letterOrder(b)
}

func letterRank(key string) int {
	if key == OtherLetterKey {
		return 3
	}
	r := []rune(key)[0]
	switch {
	case unicode.Is(unicode.Latin, r):
		return 0
	case unicode.Is(unicode.Cyrillic, r):
		return 1
	default:
		return 2
	}
}

// letterOrder 返回字母的排序权重，Ё 排在 Е 与 Ж 之间。
func letterOrder(key string) float64 {
	if key == OtherLetterKey {
		return 0
	}
	r := []rune(key)[0]
	if r == 'Ё' {
		return float64('Е') + 0.5
	}
	return float64(r)
}
