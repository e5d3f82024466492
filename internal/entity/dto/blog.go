package dto

import (
	"shop/internal/entity/common"
	"time"
)

// BlogCategoryRequest creates a blog category.
type BlogCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=128"`
	Slug        string `json:"slug" binding:"omitempty,max=160,slug"`
	Description string `json:"description"`
}

// BlogCategoryUpdateRequest updates a blog category.
type BlogCategoryUpdateRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=128"`
	Slug        *string `json:"slug,omitempty" binding:"omitempty,max=160,slug"`
	Description *string `json:"description,omitempty"`
}

// BlogCategory is a category returned to clients.
type BlogCategory struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	PostCount   int64  `json:"post_count"`
}

// BlogPostRequest creates a blog post.
type BlogPostRequest struct {
	Title      string `json:"title" binding:"required,max=255"`
	Slug       string `json:"slug" binding:"omitempty,max=255,slug"`
	Excerpt    string `json:"excerpt"`
	Content    string `json:"content"`
	CoverImage string `json:"cover_image"`
	Status     string `json:"status" binding:"omitempty,oneof=draft published"`
	CategoryID *uint  `json:"category_id"`
}

// BlogPostUpdateRequest updates a blog post. category_id 0 clears the category.
type BlogPostUpdateRequest struct {
	Title      *string `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Slug       *string `json:"slug,omitempty" binding:"omitempty,max=255,slug"`
	Excerpt    *string `json:"excerpt,omitempty"`
	Content    *string `json:"content,omitempty"`
	CoverImage *string `json:"cover_image,omitempty"`
	Status     *string `json:"status,omitempty" binding:"omitempty,oneof=draft published"`
	CategoryID *uint   `json:"category_id,omitempty"`
}

// BlogAuthor is the embedded author of a post.
type BlogAuthor struct {
	ID          uint   `json:"id"`
	DisplayName string `json:"display_name"`
}

// BlogPost is a post returned to clients.
type BlogPost struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Excerpt     string        `json:"excerpt"`
	Content     string        `json:"content,omitempty"`
	ContentHTML string        `json:"content_html,omitempty"`
	CoverImage  string        `json:"cover_image"`
	Status      string        `json:"status"`
	StatusLabel string        `json:"status_label"`
	PublishedAt *time.Time    `json:"published_at"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Author      *BlogAuthor   `json:"author,omitempty"`
	Category    *BlogCategory `json:"category,omitempty"`
}

// BlogPostQuery filters posts.
type BlogPostQuery struct {
	common.BaseParams
	Category string `json:"category" form:"category" query:"category"`
	Status   string `json:"status" form:"status" query:"status"`
	Keyword  string `json:"keyword" form:"keyword" query:"keyword"`
}

// BlogPostListResponse is the response for listing posts.
type BlogPostListResponse struct {
	Posts []BlogPost   `json:"posts"`
	Meta  *common.Meta `json:"meta"`
}
