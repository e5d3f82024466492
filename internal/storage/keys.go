package storage

import (
	"context"
	"mime"
	"path"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// keyBuilder 生成 <prefix>/<category>/<yyyy-mm>/<name>.<ext> 形式的对象键
type keyBuilder struct {
	prefix string
	now    func() time.Time
}

func newKeyBuilder(prefix string) keyBuilder {
	return keyBuilder{prefix: strings.Trim(strings.TrimSpace(prefix), "/"), now: time.Now}
}

func (b keyBuilder) build(opts PutOptions) (string, error) {
	category, err := ParseCategory(opts.Category)
	if err != nil {
		return "", err
	}
	now := b.now().UTC()
	name := cleanToken(opts.Name)
	if name == "" {
		name = strconv.FormatInt(now.UnixNano(), 36)
	}
	key := path.Join(category, now.Format("2006-01"), name+"."+extensionOf(opts.Extension))
	if b.prefix != "" {
		key = path.Join(b.prefix, key)
	}
	return key, nil
}

// prepare 校验写入前置条件并返回对象键与描述
func (b keyBuilder) prepare(ctx context.Context, data []byte, opts PutOptions) (Object, error) {
	if len(data) == 0 {
		return Object{}, ErrEmptyObject
	}
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}
	key, err := b.build(opts)
	if err != nil {
		return Object{}, err
	}
	return Object{Key: key, ContentType: contentTypeOf(opts), Size: int64(len(data))}, nil
}

func extensionOf(ext string) string {
	if cleaned := cleanToken(strings.TrimPrefix(strings.TrimSpace(ext), ".")); cleaned != "" {
		return cleaned
	}
	return "bin"
}

func contentTypeOf(opts PutOptions) string {
	if ct := strings.TrimSpace(opts.ContentType); ct != "" {
		return ct
	}
	if ct := mime.TypeByExtension("." + extensionOf(opts.Extension)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// cleanToken 小写并只保留 ASCII 字母数字、连字符与下划线，空格转为连字符
func cleanToken(value string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return unicode.ToLower(r)
		case r == ' ':
			return '-'
		}
		return -1
	}, strings.TrimSpace(value))
	return strings.Trim(mapped, "-_")
}

// normalizeKey 去除前导斜杠并阻止 .. 越出根目录
func normalizeKey(key string) (string, error) {
	cleaned := strings.TrimPrefix(path.Clean("/"+strings.TrimSpace(key)), "/")
	if cleaned == "" {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
