package service

import (
	"context"
	"strings"
	"time"

	"shop/internal/entity"
	"shop/internal/entity/converter"
	"shop/internal/entity/db"
	"shop/internal/entity/dto"
	"shop/internal/markup"
	"shop/internal/model"

	"gorm.io/gorm"
)

const excerptLength = 200

// BlogService 博客分类与文章。文章正文为 Markdown，保存时渲染为清洗后的 HTML。
type BlogService struct {
	repo model.Repository
	now  func() time.Time
}

// NewBlogService 创建博客服务实例
func NewBlogService(repo model.Repository) *BlogService {
	return &BlogService{repo: repo, now: time.Now}
}

func (s *BlogService) ListCategories(ctx context.Context) ([]dto.BlogCategory, error) {
	categories, err := s.repo.ListBlogCategories(ctx)
	if err != nil {
		return nil, err
	}
	return converter.BlogCategoriesToDTO(categories), nil
}

func (s *BlogService) CreateCategory(ctx context.Context, req dto.BlogCategoryRequest) (*dto.BlogCategory, error) {
	slug, err := ResolveUniqueSlug(ctx, s.repo, db.BlogCategory{}.TableName(), req.Slug, req.Name, 0)
	if err != nil {
		return nil, err
	}
	category := &db.BlogCategory{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Description: req.Description,
	}
	if err := s.repo.CreateBlogCategory(ctx, category); err != nil {
		return nil, err
	}
	out := converter.BlogCategoryToDTO(category)
	return &out, nil
}

func (s *BlogService) UpdateCategory(ctx context.Context, id uint, req dto.BlogCategoryUpdateRequest) (*dto.BlogCategory, error) {
	slug, err := ResolveSlugUpdate(ctx, s.repo, db.BlogCategory{}.TableName(), req.Slug, id)
	if err != nil {
		return nil, err
	}
	updates := entity.BlogCategoryUpdates{
		Name:        trimmedPtr(req.Name),
		Slug:        slug,
		Description: req.Description,
	}
	if !updates.IsEmpty() {
		if err := s.repo.UpdateBlogCategory(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	category, err := s.repo.GetBlogCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	out := converter.BlogCategoryToDTO(category)
	return &out, nil
}

// DeleteCategory 删除分类，文章保留但不再归属该分类
func (s *BlogService) DeleteCategory(ctx context.Context, id uint) error {
	return s.repo.DeleteBlogCategory(ctx, id)
}

// ListPosts 返回文章列表；publishedOnly 时只包含已发布文章
func (s *BlogService) ListPosts(ctx context.Context, query *dto.BlogPostQuery, publishedOnly bool) (dto.BlogPostListResponse, error) {
	if query == nil {
		query = &dto.BlogPostQuery{}
	}
	if publishedOnly {
		query.Status = db.PostStatusPublished
	}
	posts, meta, err := s.repo.ListBlogPosts(ctx, query)
	if err != nil {
		return dto.BlogPostListResponse{}, err
	}
	return dto.BlogPostListResponse{Posts: converter.BlogPostsToDTO(posts), Meta: meta}, nil
}

// GetPostBySlug 返回文章详情；publishedOnly 时草稿视为不存在
func (s *BlogService) GetPostBySlug(ctx context.Context, slug string, publishedOnly bool) (*dto.BlogPost, error) {
	post, err := s.repo.GetBlogPostBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if publishedOnly && post.Status != db.PostStatusPublished {
		return nil, gorm.ErrRecordNotFound
	}
	out := converter.BlogPostToDTO(post, true)
	return &out, nil
}

func (s *BlogService) GetPost(ctx context.Context, id uint) (*dto.BlogPost, error) {
	post, err := s.repo.GetBlogPost(ctx, id)
	if err != nil {
		return nil, err
	}
	out := converter.BlogPostToDTO(post, true)
	return &out, nil
}

// CreatePost 创建文章。未填写摘要时从渲染结果截取。
func (s *BlogService) CreatePost(ctx context.Context, authorID uint, req dto.BlogPostRequest) (*dto.BlogPost, error) {
	slug, err := ResolveUniqueSlug(ctx, s.repo, db.BlogPost{}.TableName(), req.Slug, req.Title, 0)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	html, err := markup.MarkdownToHTML(req.Content)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = db.PostStatusDraft
	}
	excerpt := strings.TrimSpace(req.Excerpt)
	if excerpt == "" {
		excerpt = markup.Excerpt(html, excerptLength)
	}
	post := &db.BlogPost{
		Title:       strings.TrimSpace(req.Title),
		Slug:        slug,
		Excerpt:     excerpt,
		Content:     req.Content,
		ContentHTML: html,
		CoverImage:  strings.TrimSpace(req.CoverImage),
		Status:      status,
		AuthorID:    authorID,
		CategoryID:  nonZeroID(req.CategoryID),
	}
	if status == db.PostStatusPublished {
		now := s.now()
		post.PublishedAt = &now
	}
	if err := s.repo.CreateBlogPost(ctx, post); err != nil {
		return nil, err
	}
	return s.GetPost(ctx, post.ID)
}

// UpdatePost 更新文章。首次发布时记录发布时间，重新转为草稿不清除。
func (s *BlogService) UpdatePost(ctx context.Context, id uint, req dto.BlogPostUpdateRequest) (*dto.BlogPost, error) {
	current, err := s.repo.GetBlogPost(ctx, id)
	if err != nil {
		return nil, err
	}
	slug, err := ResolveSlugUpdate(ctx, s.repo, db.BlogPost{}.TableName(), req.Slug, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	updates := entity.BlogPostUpdates{
		Title:      trimmedPtr(req.Title),
		Slug:       slug,
		Excerpt:    trimmedPtr(req.Excerpt),
		CoverImage: trimmedPtr(req.CoverImage),
		Status:     req.Status,
		CategoryID: req.CategoryID,
	}
	if req.Content != nil {
		html, err := markup.MarkdownToHTML(*req.Content)
		if err != nil {
			return nil, err
		}
		updates.Content = req.Content
		updates.ContentHTML = &html
		if updates.Excerpt == nil && strings.TrimSpace(current.Excerpt) == "" {
			excerpt := markup.Excerpt(html, excerptLength)
			updates.Excerpt = &excerpt
		}
	}
	if req.Status != nil && *req.Status == db.PostStatusPublished && current.PublishedAt == nil {
		now := s.now()
		updates.PublishedAt = &now
	}

	if !updates.IsEmpty() {
		if err := s.repo.UpdateBlogPost(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	return s.GetPost(ctx, id)
}

func (s *BlogService) DeletePost(ctx context.Context, id uint) error {
	return s.repo.DeleteBlogPost(ctx, id)
}

func (s *BlogService) checkCategory(ctx context.Context, categoryID *uint) error {
	if categoryID == nil || *categoryID == 0 {
		return nil
	}
	_, err := s.repo.GetBlogCategory(ctx, *categoryID)
	return err
}
