package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shop/internal/config"
)

// 存储后端类型
const (
	TypeLocal = "local"
	TypeS3    = "s3"
	TypeOSS   = "oss"
	TypeCOS   = "cos"
	TypeR2    = "r2"
)

// 上传用途，同时作为对象键的第一级目录
const (
	CategoryProducts = "products"
	CategoryBrands   = "brands"
	CategoryBanners  = "banners"
	CategoryBlog     = "blog"
	CategoryMisc     = "misc"
)

var categories = map[string]struct{}{
	CategoryProducts: {},
	CategoryBrands:   {},
	CategoryBanners:  {},
	CategoryBlog:     {},
	CategoryMisc:     {},
}

var (
	ErrUnknownCategory = errors.New("unknown upload category")
	ErrEmptyObject     = errors.New("empty object")
	ErrInvalidKey      = errors.New("invalid object key")
)

// Object 描述一个已写入的文件
type Object struct {
	Key         string
	ContentType string
	Size        int64
}

// PutOptions 控制文件的落盘位置。Name 为空时按时间戳生成，
// ContentType 为空时按扩展名推断。
type PutOptions struct {
	Category    string
	Name        string
	Extension   string
	ContentType string
}

// Storage 保存商品图、品牌 Logo、横幅与博客封面等媒体文件。
type Storage interface {
	Put(ctx context.Context, data []byte, opts PutOptions) (Object, error)
	Remove(ctx context.Context, key string) error
}

// LocalDirProvider 由可直接通过 HTTP 提供静态访问的本地存储实现。
type LocalDirProvider interface {
	LocalDir() string
}

// NewStorage 根据配置实例化存储后端。
func NewStorage(cfg config.Config) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.StorageType)) {
	case "", TypeLocal:
		return NewLocalStorage(cfg.StorageLocalDir)
	case TypeS3:
		return NewS3Storage(cfg)
	case TypeR2:
		return NewR2Storage(cfg)
	case TypeOSS:
		return NewOSSStorage(cfg)
	case TypeCOS:
		return NewCOSStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}

// ParseCategory 校验上传用途，空值归入 misc。
func ParseCategory(raw string) (string, error) {
	category := strings.ToLower(strings.TrimSpace(raw))
	if category == "" {
		return CategoryMisc, nil
	}
	if _, ok := categories[category]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCategory, raw)
	}
	return category, nil
}

// Categories 返回全部上传用途
func Categories() []string {
	return []string{CategoryProducts, CategoryBrands, CategoryBanners, CategoryBlog, CategoryMisc}
}

// PublicURL 将存储键拼接到公开访问前缀上。
func PublicURL(baseURL, key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return ""
	}
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return "/" + key
	}
	return base + "/" + key
}
