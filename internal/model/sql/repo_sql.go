package sql

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"shop/internal/entity/common"
	"shop/internal/entity/db"

	"gorm.io/gorm"
)

// GormRepository implements Repository using GORM
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository instance
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// DB exposes the underlying connection for health checks.
func (r *GormRepository) DB() *gorm.DB {
	if r == nil {
		return nil
	}
	return r.db
}

func (r *GormRepository) ready() error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	return nil
}

// calculatePagination calculates pagination metrics
func (r *GormRepository) calculatePagination(totalCount int64, page, pageSize int) *common.Meta {
	if pageSize <= 0 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}

	return &common.Meta{
		Total:    totalCount,
		Page:     int64(page),
		PageSize: int64(pageSize),
	}
}

// pageWindow 返回页码、每页数量与偏移量。
func pageWindow(params *common.BaseParams) (page, pageSize, offset int) {
	page, pageSize = 1, 20
	if params != nil {
		if params.Page > 0 {
			page = int(params.Page)
		}
		if params.PageSize > 0 {
			pageSize = int(params.PageSize)
		}
	}
	offset = (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}
	return page, pageSize, offset
}

var slugTables = map[string]struct{}{
	db.BlogCategory{}.TableName(): {},
	db.BlogPost{}.TableName():     {},
	db.Brand{}.TableName():        {},
	db.ProductType{}.TableName():  {},
	db.Product{}.TableName():      {},
}

// SlugExists checks whether a slug is already used in the given table.
func (r *GormRepository) SlugExists(ctx context.Context, table string, slug string, excludeID uint) (bool, error) {
	if err := r.ready(); err != nil {
		return false, err
	}
	if _, ok := slugTables[table]; !ok {
		return false, fmt.Errorf("table %q has no slug column", table)
	}
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return false, nil
	}

	query := r.db.WithContext(ctx).Table(table).Where("slug = ?", trimmed)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// likePatterns returns LIKE patterns for the keyword in lower case, as typed and capitalised.
// SQLite lowers ASCII only, so Cyrillic text is matched through the extra variants.
func likePatterns(keyword string) []string {
	trimmed := strings.TrimSpace(keyword)
	lower := strings.ToLower(trimmed)
	variants := []string{lower, trimmed}
	if r, size := utf8.DecodeRuneInString(lower); r != utf8.RuneError {
		variants = append(variants, string(unicode.ToUpper(r))+lower[size:])
	}

	seen := make(map[string]struct{}, len(variants))
	patterns := make([]string, 0, len(variants))
	for _, v := range variants {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		patterns = append(patterns, "%"+v+"%")
	}
	return patterns
}

// keywordFilter matches the keyword against any of the columns.
func keywordFilter(tx *gorm.DB, keyword string, columns ...string) *gorm.DB {
	patterns := likePatterns(keyword)
	if len(patterns) == 0 || len(columns) == 0 {
		return tx
	}
	clauses := make([]string, 0, len(columns)*len(patterns))
	args := make([]interface{}, 0, len(columns)*len(patterns))
	for _, column := range columns {
		for _, pattern := range patterns {
			clauses = append(clauses, "LOWER("+column+") LIKE ?")
			args = append(args, pattern)
		}
	}
	return tx.Where("("+strings.Join(clauses, " OR ")+")", args...)
}
