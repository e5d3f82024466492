package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"shop/internal/entity"
	"shop/internal/entity/db"
	"shop/internal/entity/dto"

	"github.com/gin-gonic/gin"
)

// ListActiveBanners 前台轮播图：启用且当前处于展示时间窗口内，按 sort_order 排序
func (h *HTTPHandler) ListActiveBanners(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	now := time.Now()
	banners, err := h.repo.ListBanners(ctx, &now)
	if err != nil {
		RespondError(c, err, "", "load banners")
		return
	}
	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

func (h *HTTPHandler) AdminListBanners(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	banners, err := h.repo.ListBanners(ctx, nil)
	if err != nil {
		RespondError(c, err, "", "load banners")
		return
	}
	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

func (h *HTTPHandler) GetBanner(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	banner, err := h.repo.GetBanner(ctx, id)
	if err != nil {
		RespondError(c, err, ErrCodeBannerNotFound, "load banner")
		return
	}
	c.JSON(http.StatusOK, banner)
}

func (h *HTTPHandler) CreateBanner(c *gin.Context) {
	var req dto.BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}
	if !validBannerWindow(req.StartsAt, req.EndsAt) {
		BadRequest(c, ErrCodeInvalidBannerWindow, "ends_at must be after starts_at")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	banner := &db.Banner{
		Title:     strings.TrimSpace(req.Title),
		Subtitle:  strings.TrimSpace(req.Subtitle),
		ImageURL:  strings.TrimSpace(req.ImageURL),
		LinkURL:   strings.TrimSpace(req.LinkURL),
		SortOrder: req.SortOrder,
		IsActive:  isActive,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateBanner(ctx, banner); err != nil {
		RespondError(c, err, ErrCodeBannerNotFound, "create banner")
		return
	}
	c.JSON(http.StatusCreated, banner)
}

func (h *HTTPHandler) UpdateBanner(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.BannerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	current, err := h.repo.GetBanner(ctx, id)
	if err != nil {
		RespondError(c, err, ErrCodeBannerNotFound, "update banner")
		return
	}

	startsAt, endsAt := current.StartsAt, current.EndsAt
	if req.StartsAt != nil {
		startsAt = req.StartsAt
	} else if req.ClearStartsAt {
		startsAt = nil
	}
	if req.EndsAt != nil {
		endsAt = req.EndsAt
	} else if req.ClearEndsAt {
		endsAt = nil
	}
	if !validBannerWindow(startsAt, endsAt) {
		BadRequest(c, ErrCodeInvalidBannerWindow, "ends_at must be after starts_at")
		return
	}

	updates := entity.BannerUpdates{
		Title:         trimmed(req.Title),
		Subtitle:      trimmed(req.Subtitle),
		ImageURL:      trimmed(req.ImageURL),
		LinkURL:       trimmed(req.LinkURL),
		SortOrder:     req.SortOrder,
		IsActive:      req.IsActive,
		StartsAt:      req.StartsAt,
		EndsAt:        req.EndsAt,
		ClearStartsAt: req.ClearStartsAt,
		ClearEndsAt:   req.ClearEndsAt,
	}
	if !updates.IsEmpty() {
		if err := h.repo.UpdateBanner(ctx, id, updates); err != nil {
			RespondError(c, err, ErrCodeBannerNotFound, "update banner")
			return
		}
	}

	banner, err := h.repo.GetBanner(ctx, id)
	if err != nil {
		RespondError(c, err, ErrCodeBannerNotFound, "load banner")
		return
	}
	c.JSON(http.StatusOK, banner)
}

func (h *HTTPHandler) DeleteBanner(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeleteBanner(ctx, id); err != nil {
		RespondError(c, err, ErrCodeBannerNotFound, "delete banner")
		return
	}
	c.Status(http.StatusNoContent)
}

func validBannerWindow(startsAt, endsAt *time.Time) bool {
	if startsAt == nil || endsAt == nil {
		return true
	}
	return endsAt.After(*startsAt)
}
