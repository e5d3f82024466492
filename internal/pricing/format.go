package pricing

import (
	"math"
	"strconv"
	"strings"
)

const currencySuffix = " ₽"

// FormatPrice 将金额格式化为俄语习惯的卢布字符串，例如 1234.5 → "1 234,5 ₽"。
// 支持 nil、数值、数值指针以及字符串（包括本函数自身的输出），无法解析时视为 0。
func FormatPrice(value interface{}) string {
	amount, _ := ParsePrice(value)
	return formatAmount(amount) + currencySuffix
}

// ParsePrice 将任意价格表示解析为 float64。
func ParsePrice(value interface{}) (float64, bool) {
	var out float64
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		out = v
	case *float64:
		if v == nil {
			return 0, false
		}
		out = *v
	case float32:
		out = float64(v)
	case int:
		out = float64(v)
	case int64:
		out = float64(v)
	case uint:
		out = float64(v)
	case string:
		parsed, ok := parsePriceString(v)
		if !ok {
			return 0, false
		}
		out = parsed
	default:
		return 0, false
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, false
	}
	return out, true
}

func parsePriceString(raw string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '\t', '₽':
			return -1
		case ',':
			return '.'
		}
		return r
	}, raw)
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "руб.")
	if cleaned == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func formatAmount(amount float64) string {
	rounded := Round(amount)
	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	raw := strconv.FormatFloat(rounded, 'f', -1, 64)
	intPart, fracPart, _ := strings.Cut(raw, ".")

	var b strings.Builder
	if negative && (intPart != "0" || fracPart != "") {
		b.WriteByte('-')
	}
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(ch)
	}
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}
