package converter

import (
	"strings"

	"shop/internal/entity/db"
	"shop/internal/entity/dto"
	"shop/internal/utils"
)

// BlogCategoryToDTO converts a db.BlogCategory.
func BlogCategoryToDTO(c *db.BlogCategory) dto.BlogCategory {
	if c == nil {
		return dto.BlogCategory{}
	}
	return dto.BlogCategory{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		PostCount:   c.PostCount,
	}
}

// BlogCategoriesToDTO converts a slice of categories.
func BlogCategoriesToDTO(categories []db.BlogCategory) []dto.BlogCategory {
	out := make([]dto.BlogCategory, len(categories))
	for i := range categories {
		out[i] = BlogCategoryToDTO(&categories[i])
	}
	return out
}

// BlogPostToDTO converts a db.BlogPost. withContent controls whether the body is included.
func BlogPostToDTO(p *db.BlogPost, withContent bool) dto.BlogPost {
	if p == nil {
		return dto.BlogPost{}
	}
	out := dto.BlogPost{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		CoverImage:  p.CoverImage,
		Status:      p.Status,
		StatusLabel: utils.PostStatusLabel(p.Status),
		PublishedAt: p.PublishedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if withContent {
		out.Content = p.Content
		out.ContentHTML = p.ContentHTML
	}
	if p.Author != nil {
		name := strings.TrimSpace(p.Author.DisplayName)
		if name == "" {
			name = p.Author.Email
		}
		out.Author = &dto.BlogAuthor{ID: p.Author.ID, DisplayName: name}
	}
	if p.Category != nil {
		category := BlogCategoryToDTO(p.Category)
		out.Category = &category
	}
	return out
}

// BlogPostsToDTO converts a slice of posts without their bodies.
func BlogPostsToDTO(posts []db.BlogPost) []dto.BlogPost {
	out := make([]dto.BlogPost, len(posts))
	for i := range posts {
		out[i] = BlogPostToDTO(&posts[i], false)
	}
	return out
}
