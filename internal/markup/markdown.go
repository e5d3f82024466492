package markup

import (
	"bytes"
	stdhtml "html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			html.WithUnsafe(), // raw HTML is cleaned by the policy below
		),
	)

	policy = newPolicy()

	// stripPolicy removes every tag, used for excerpts
	stripPolicy = bluemonday.StrictPolicy()

	whitespace = regexp.MustCompile(`[\s\x{00a0}]+`)
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span")
	p.AllowElements("table", "thead", "tbody", "tr", "th", "td")
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// MarkdownToHTML 将 Markdown 转换为清理过的 HTML
func MarkdownToHTML(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return policy.Sanitize(buf.String()), nil
}

// Excerpt 从渲染后的 HTML 中提取纯文本摘要，超过 maxRunes 时截断并追加省略号。
// 返回值是未转义的纯文本（正文里的 &lt;b&gt; 会还原为 <b>），输出到 HTML 时必须转义。
func Excerpt(renderedHTML string, maxRunes int) string {
	text := stdhtml.UnescapeString(stripPolicy.Sanitize(renderedHTML))
	text = strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	cut := strings.TrimRight(string(runes[:maxRunes]), " ,.;:")
	return cut + "…"
}
