package api

import (
	"context"
	"net/http"
	"time"

	"shop/internal/entity/dto"

	"github.com/gin-gonic/gin"
)

func (h *HTTPHandler) ListBlogCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	categories, err := h.blog.ListCategories(ctx)
	if err != nil {
		RespondError(c, err, "", "load blog categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *HTTPHandler) CreateBlogCategory(c *gin.Context) {
	var req dto.BlogCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	category, err := h.blog.CreateCategory(ctx, req)
	if err != nil {
		RespondError(c, err, ErrCodeCategoryNotFound, "create blog category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *HTTPHandler) UpdateBlogCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.BlogCategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	category, err := h.blog.UpdateCategory(ctx, id, req)
	if err != nil {
		RespondError(c, err, ErrCodeCategoryNotFound, "update blog category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *HTTPHandler) DeleteBlogCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.blog.DeleteCategory(ctx, id); err != nil {
		RespondError(c, err, ErrCodeCategoryNotFound, "delete blog category")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPublishedPosts 前台文章列表，只返回已发布文章
func (h *HTTPHandler) ListPublishedPosts(c *gin.Context) {
	h.listPosts(c, true)
}

// AdminListPosts 后台文章列表，可按状态筛选
func (h *HTTPHandler) AdminListPosts(c *gin.Context) {
	h.listPosts(c, false)
}

func (h *HTTPHandler) listPosts(c *gin.Context, publishedOnly bool) {
	var query dto.BlogPostQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}
	query.Normalize(12, 100)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.blog.ListPosts(ctx, &query, publishedOnly)
	if err != nil {
		RespondError(c, err, "", "load posts")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HTTPHandler) GetPublishedPost(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	post, err := h.blog.GetPostBySlug(ctx, c.Param("slug"), true)
	if err != nil {
		RespondError(c, err, ErrCodePostNotFound, "load post")
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *HTTPHandler) AdminGetPost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	post, err := h.blog.GetPost(ctx, id)
	if err != nil {
		RespondError(c, err, ErrCodePostNotFound, "load post")
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost 新建文章，作者为当前管理员
func (h *HTTPHandler) CreatePost(c *gin.Context) {
	user := CurrentUser(c)

	var req dto.BlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	post, err := h.blog.CreatePost(ctx, user.ID, req)
	if err != nil {
		RespondError(c, err, ErrCodeCategoryNotFound, "create post")
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *HTTPHandler) UpdatePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.BlogPostUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	post, err := h.blog.UpdatePost(ctx, id, req)
	if err != nil {
		RespondError(c, err, ErrCodePostNotFound, "update post")
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *HTTPHandler) DeletePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.blog.DeletePost(ctx, id); err != nil {
		RespondError(c, err, ErrCodePostNotFound, "delete post")
		return
	}
	c.Status(http.StatusNoContent)
}
