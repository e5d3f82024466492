package api

import (
	"context"
	"net/http"
	"time"

	"shop/internal/entity/dto"

	"github.com/gin-gonic/gin"
)

// ListProducts 前台商品列表：支持品牌、类型、折扣、库存与关键字筛选
func (h *HTTPHandler) ListProducts(c *gin.Context) {
	h.listProducts(c, false)
}

// AdminListProducts 后台商品列表，包含已下架商品
func (h *HTTPHandler) AdminListProducts(c *gin.Context) {
	h.listProducts(c, true)
}

func (h *HTTPHandler) listProducts(c *gin.Context, includeInactive bool) {
	var query dto.ProductQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}
	query.Normalize(24, 100)
	query.IncludeInactive = includeInactive

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.products.List(ctx, &query)
	if err != nil {
		RespondError(c, err, "", "load products")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HTTPHandler) GetProductBySlug(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	product, err := h.products.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		RespondError(c, err, ErrCodeProductNotFound, "load product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *HTTPHandler) AdminGetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	product, err := h.products.Get(ctx, id)
	if err != nil {
		RespondError(c, err, ErrCodeProductNotFound, "load product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *HTTPHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	product, err := h.products.Create(ctx, req)
	if err != nil {
		// 引用的品牌或商品类型不存在
		RespondError(c, err, ErrCodeNotFound, "create product")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *HTTPHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	product, err := h.products.Update(ctx, id, req)
	if err != nil {
		RespondError(c, err, ErrCodeProductNotFound, "update product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *HTTPHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.products.Delete(ctx, id); err != nil {
		RespondError(c, err, ErrCodeProductNotFound, "delete product")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) ListProductTypes(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	types, err := h.productTypes.List(ctx)
	if err != nil {
		RespondError(c, err, "", "load product types")
		return
	}
	c.JSON(http.StatusOK, gin.H{"product_types": types})
}

func (h *HTTPHandler) GetProductType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	productType, err := h.productTypes.Get(ctx, id)
	if err != nil {
		RespondError(c, err, ErrCodeProductTypeNotFound, "load product type")
		return
	}
	c.JSON(http.StatusOK, productType)
}

func (h *HTTPHandler) CreateProductType(c *gin.Context) {
	var req dto.ProductTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	productType, err := h.productTypes.Create(ctx, req)
	if err != nil {
		RespondError(c, err, ErrCodeProductTypeNotFound, "create product type")
		return
	}
	c.JSON(http.StatusCreated, productType)
}

func (h *HTTPHandler) UpdateProductType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ProductTypeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	productType, err := h.productTypes.Update(ctx, id, req)
	if err != nil {
		RespondError(c, err, ErrCodeProductTypeNotFound, "update product type")
		return
	}
	c.JSON(http.StatusOK, productType)
}

func (h *HTTPHandler) DeleteProductType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.productTypes.Delete(ctx, id); err != nil {
		RespondError(c, err, ErrCodeProductTypeNotFound, "delete product type")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) CreateAttribute(c *gin.Context) {
	productTypeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	attribute, err := h.productTypes.CreateAttribute(ctx, productTypeID, req)
	if err != nil {
		RespondError(c, err, ErrCodeProductTypeNotFound, "create attribute")
		return
	}
	c.JSON(http.StatusCreated, attribute)
}

func (h *HTTPHandler) UpdateAttribute(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AttributeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	attribute, err := h.productTypes.UpdateAttribute(ctx, id, req)
	if err != nil {
		RespondError(c, err, ErrCodeAttributeNotFound, "update attribute")
		return
	}
	c.JSON(http.StatusOK, attribute)
}

func (h *HTTPHandler) DeleteAttribute(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.productTypes.DeleteAttribute(ctx, id); err != nil {
		RespondError(c, err, ErrCodeAttributeNotFound, "delete attribute")
		return
	}
	c.Status(http.StatusNoContent)
}
