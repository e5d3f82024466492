package api

import (
	"context"
	"net/http"
	"time"

	"shop/internal/entity/dto"

	"github.com/gin-gonic/gin"
)

// ListBrands 前台品牌列表（仅启用）
func (h *HTTPHandler) ListBrands(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	brands, err := h.catalog.ActiveBrands(ctx)
	if err != nil {
		RespondError(c, err, "", "load brands")
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

// ListGroupedBrands 按首字母分组的品牌索引
func (h *HTTPHandler) ListGroupedBrands(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	groups, err := h.catalog.GroupedBrands(ctx)
	if err != nil {
		RespondError(c, err, "", "load brands")
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (h *HTTPHandler) GetBrandBySlug(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	detail, err := h.catalog.BrandBySlug(ctx, c.Param("slug"))
	if err != nil {
		RespondError(c, err, ErrCodeBrandNotFound, "load brand")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// AdminListBrands 后台品牌列表，包含停用品牌
func (h *HTTPHandler) AdminListBrands(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	brands, err := h.repo.ListBrands(ctx, false)
	if err != nil {
		RespondError(c, err, "", "load brands")
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

func (h *HTTPHandler) CreateBrand(c *gin.Context) {
	var req dto.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	brand, err := h.catalog.CreateBrand(ctx, req)
	if err != nil {
		RespondError(c, err, ErrCodeBrandNotFound, "create brand")
		return
	}
	c.JSON(http.StatusCreated, brand)
}

func (h *HTTPHandler) UpdateBrand(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.BrandUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	brand, err := h.catalog.UpdateBrand(ctx, id, req)
	if err != nil {
		RespondError(c, err, ErrCodeBrandNotFound, "update brand")
		return
	}
	c.JSON(http.StatusOK, brand)
}

func (h *HTTPHandler) DeleteBrand(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.catalog.DeleteBrand(ctx, id); err != nil {
		RespondError(c, err, ErrCodeBrandNotFound, "delete brand")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetDeliverySettings 配送设置；尚未配置时返回默认值
func (h *HTTPHandler) GetDeliverySettings(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	settings, err := h.catalog.DeliverySettings(ctx)
	if err != nil {
		RespondError(c, err, ErrCodeDeliveryNotFound, "load delivery settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *HTTPHandler) CreateDeliverySettings(c *gin.Context) {
	var req dto.DeliverySettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	settings, err := h.catalog.CreateDeliverySettings(ctx, req)
	if err != nil {
		RespondError(c, err, ErrCodeDeliveryNotFound, "create delivery settings")
		return
	}
	c.JSON(http.StatusCreated, settings)
}

func (h *HTTPHandler) UpdateDeliverySettings(c *gin.Context) {
	var req dto.DeliverySettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	settings, err := h.catalog.UpdateDeliverySettings(ctx, req)
	if err != nil {
		RespondError(c, err, ErrCodeDeliveryNotFound, "update delivery settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}
