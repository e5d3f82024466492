package sql

import (
	"context"
	"fmt"
	"strings"

	"shop/internal/entity"
	"shop/internal/entity/common"
	"shop/internal/entity/db"
	"shop/internal/entity/dto"

	"gorm.io/gorm"
)

const categoryWithCount = "blog_categories.*, (SELECT COUNT(*) FROM blog_posts WHERE blog_posts.category_id = blog_categories.id) AS post_count"

// ListBlogCategories returns all categories with their post counts.
func (r *GormRepository) ListBlogCategories(ctx context.Context) ([]db.BlogCategory, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	var categories []db.BlogCategory
	err := r.db.WithContext(ctx).
		Model(&db.BlogCategory{}).
		Select(categoryWithCount).
		Order("blog_categories.name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GetBlogCategory loads a category by id.
func (r *GormRepository) GetBlogCategory(ctx context.Context, id uint) (*db.BlogCategory, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid category id")
	}
	var category db.BlogCategory
	if err := r.db.WithContext(ctx).Select(categoryWithCount).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// GetBlogCategoryBySlug loads a category by slug.
func (r *GormRepository) GetBlogCategoryBySlug(ctx context.Context, slug string) (*db.BlogCategory, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	var category db.BlogCategory
	err := r.db.WithContext(ctx).Select(categoryWithCount).
		Where("slug = ?", strings.TrimSpace(slug)).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateBlogCategory inserts a new category.
func (r *GormRepository) CreateBlogCategory(ctx context.Context, category *db.BlogCategory) error {
	if err := r.ready(); err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("category is nil")
	}
	return r.db.WithContext(ctx).Create(category).Error
}

// UpdateBlogCategory updates category fields.
func (r *GormRepository) UpdateBlogCategory(ctx context.Context, id uint, updates entity.BlogCategoryUpdates) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid category id")
	}
	if updates.IsEmpty() {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&db.BlogCategory{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteBlogCategory removes a category and detaches its posts.
func (r *GormRepository) DeleteBlogCategory(ctx context.Context, id uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid category id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db.BlogPost{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&db.BlogCategory{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListBlogPosts returns paginated posts, newest first, with author and category.
func (r *GormRepository) ListBlogPosts(ctx context.Context, params *dto.BlogPostQuery) ([]db.BlogPost, *common.Meta, error) {
	if err := r.ready(); err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).Model(&db.BlogPost{})
	var base *common.BaseParams
	if params != nil {
		base = &params.BaseParams
		if status := strings.TrimSpace(params.Status); status != "" {
			query = query.Where("blog_posts.status = ?", status)
		}
		if category := strings.TrimSpace(params.Category); category != "" {
			query = query.Where("blog_posts.category_id IN (?)",
				r.db.Model(&db.BlogCategory{}).Select("id").Where("slug = ?", category))
		}
		if keyword := strings.TrimSpace(params.Keyword); keyword != "" {
			query = keywordFilter(query, keyword, "blog_posts.title", "blog_posts.excerpt")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	page, pageSize, offset := pageWindow(base)

	var posts []db.BlogPost
	err := query.
		Preload("Author").
		Preload("Category").
		Order("COALESCE(blog_posts.published_at, blog_posts.created_at) DESC").
		Order("blog_posts.id DESC").
		Offset(offset).Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, nil, err
	}
	return posts, r.calculatePagination(total, page, pageSize), nil
}

// GetBlogPost loads a post by id.
func (r *GormRepository) GetBlogPost(ctx context.Context, id uint) (*db.BlogPost, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid post id")
	}
	var post db.BlogPost
	if err := r.db.WithContext(ctx).Preload("Author").Preload("Category").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetBlogPostBySlug loads a post by slug.
func (r *GormRepository) GetBlogPostBySlug(ctx context.Context, slug string) (*db.BlogPost, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	var post db.BlogPost
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Where("slug = ?", strings.TrimSpace(slug)).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// CreateBlogPost inserts a new post.
func (r *GormRepository) CreateBlogPost(ctx context.Context, post *db.BlogPost) error {
	if err := r.ready(); err != nil {
		return err
	}
	if post == nil {
		return fmt.Errorf("post is nil")
	}
	return r.db.WithContext(ctx).Omit("Author", "Category").Create(post).Error
}

// UpdateBlogPost updates post fields.
func (r *GormRepository) UpdateBlogPost(ctx context.Context, id uint, updates entity.BlogPostUpdates) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid post id")
	}
	if updates.IsEmpty() {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&db.BlogPost{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteBlogPost removes a post.
func (r *GormRepository) DeleteBlogPost(ctx context.Context, id uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid post id")
	}
	result := r.db.WithContext(ctx).Delete(&db.BlogPost{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
