package api

import (
	"context"
	"net/http"
	"time"

	"shop/internal/auth"
	"shop/internal/entity/dto"

	"github.com/gin-gonic/gin"
)

// GetCart 当前用户或访客的购物车
func (h *HTTPHandler) GetCart(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cart, err := h.cart.Get(ctx, owner)
	if err != nil {
		RespondError(c, err, ErrCodeCartItemNotFound, "load cart")
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddCartItem 加入购物车；同一商品与规格合并数量
func (h *HTTPHandler) AddCartItem(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	var req dto.CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cart, err := h.cart.Add(ctx, owner, req)
	if err != nil {
		RespondError(c, err, ErrCodeProductNotFound, "add to cart")
		return
	}
	c.JSON(http.StatusOK, cart)
}

// UpdateCartItem 修改数量，0 表示删除
func (h *HTTPHandler) UpdateCartItem(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cart, err := h.cart.Update(ctx, owner, id, *req.Quantity)
	if err != nil {
		RespondError(c, err, ErrCodeCartItemNotFound, "update cart item")
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *HTTPHandler) RemoveCartItem(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cart, err := h.cart.Remove(ctx, owner, id)
	if err != nil {
		RespondError(c, err, ErrCodeCartItemNotFound, "remove cart item")
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *HTTPHandler) ClearCart(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.cart.Clear(ctx, owner); err != nil {
		RespondError(c, err, "", "clear cart")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) ListFavorites(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	favorites, err := h.favorites.List(ctx, owner)
	if err != nil {
		RespondError(c, err, "", "load favorites")
		return
	}
	c.JSON(http.StatusOK, favorites)
}

// AddFavorite 收藏商品；重复收藏返回 200，新建返回 201
func (h *HTTPHandler) AddFavorite(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	var req dto.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	created, err := h.favorites.Add(ctx, owner, req.ProductID)
	if err != nil {
		RespondError(c, err, ErrCodeProductNotFound, "add favorite")
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.FavoriteCheckResponse{ProductID: req.ProductID, IsFavorite: true})
}

func (h *HTTPHandler) RemoveFavorite(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.favorites.Remove(ctx, owner, productID); err != nil {
		RespondError(c, err, ErrCodeProductNotFound, "remove favorite")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) CheckFavorite(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.favorites.Check(ctx, owner, productID)
	if err != nil {
		RespondError(c, err, ErrCodeProductNotFound, "check favorite")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SyncFavorites 把访客收藏迁移到当前登录用户。访客 ID 取自请求体，缺省时取请求头。
func (h *HTTPHandler) SyncFavorites(c *gin.Context) {
	user := CurrentUser(c)

	var req dto.FavoriteSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.GuestID = c.GetHeader(auth.GuestHeader)
	}
	guestID := auth.NormalizeGuestID(req.GuestID)
	if guestID == "" {
		BadRequest(c, ErrCodeGuestIDRequired, "a valid guest id is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	resp, err := h.favorites.Sync(ctx, guestID, user.ID)
	if err != nil {
		RespondError(c, err, "", "sync favorites")
		return
	}
	c.JSON(http.StatusOK, resp)
}
