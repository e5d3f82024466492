package service

import (
	"context"
	"strings"

	"shop/internal/model"
	"shop/internal/utils"
)

// ResolveUniqueSlug 返回显式 slug（或由 title 生成的 slug），并确认在表内未被占用。
func ResolveUniqueSlug(ctx context.Context, repo model.Repository, table, explicit, title string, excludeID uint) (string, error) {
	slug := utils.ResolveSlug(explicit, title)
	if slug == "" || !utils.IsValidSlug(slug) {
		return "", ErrSlugInvalid
	}
	exists, err := repo.SlugExists(ctx, table, slug, excludeID)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrSlugExists
	}
	return slug, nil
}

// ResolveSlugUpdate 处理更新请求中的可选 slug：nil 表示不修改
func ResolveSlugUpdate(ctx context.Context, repo model.Repository, table string, explicit *string, excludeID uint) (*string, error) {
	if explicit == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*explicit)
	if trimmed == "" {
		return nil, ErrSlugInvalid
	}
	slug, err := ResolveUniqueSlug(ctx, repo, table, trimmed, "", excludeID)
	if err != nil {
		return nil, err
	}
	return &slug, nil
}
