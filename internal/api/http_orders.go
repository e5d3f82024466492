package api

import (
	"context"
	"net/http"
	"time"

	"shop/internal/entity/dto"

	"github.com/gin-gonic/gin"
)

// QuoteCheckout 预览购物车总价与配送费用，?delivery_method=courier|pickup
func (h *HTTPHandler) QuoteCheckout(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	quote, err := h.orders.Quote(ctx, owner, c.Query("delivery_method"))
	if err != nil {
		RespondError(c, err, "", "quote checkout")
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Checkout 用当前用户的购物车下单
func (h *HTTPHandler) Checkout(c *gin.Context) {
	user := CurrentUser(c)

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	order, err := h.orders.Checkout(ctx, user.ID, req)
	if err != nil {
		RespondError(c, err, ErrCodeProductNotFound, "place order")
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *HTTPHandler) ListMyOrders(c *gin.Context) {
	user := CurrentUser(c)

	var query dto.OrderQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}
	query.Normalize(10, 50)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.orders.ListForUser(ctx, user.ID, &query)
	if err != nil {
		RespondError(c, err, "", "load orders")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HTTPHandler) GetMyOrder(c *gin.Context) {
	user := CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	order, err := h.orders.GetForUser(ctx, user.ID, c.Param("number"))
	if err != nil {
		RespondError(c, err, ErrCodeOrderNotFound, "load order")
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *HTTPHandler) AdminListOrders(c *gin.Context) {
	var query dto.OrderQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}
	query.Normalize(20, 100)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.orders.List(ctx, &query)
	if err != nil {
		RespondError(c, err, "", "load orders")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HTTPHandler) AdminGetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	order, err := h.orders.Get(ctx, id)
	if err != nil {
		RespondError(c, err, ErrCodeOrderNotFound, "load order")
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus 按状态流转表修改订单状态
func (h *HTTPHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	order, err := h.orders.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		RespondError(c, err, ErrCodeOrderNotFound, "update order status")
		return
	}
	c.JSON(http.StatusOK, order)
}
