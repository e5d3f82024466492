package dto

import "time"

// FavoriteRequest adds a product to favorites.
type FavoriteRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// FavoriteItem is a favorite with its product card.
type FavoriteItem struct {
	ID        uint        `json:"id"`
	ProductID uint        `json:"product_id"`
	CreatedAt time.Time   `json:"created_at"`
	Product   ProductCard `json:"product"`
}

// FavoriteListResponse lists favorites.
type FavoriteListResponse struct {
	Items []FavoriteItem `json:"items"`
	Total int            `json:"total"`
}

// FavoriteCheckResponse tells whether a product is in favorites.
type FavoriteCheckResponse struct {
	ProductID  uint `json:"product_id"`
	IsFavorite bool `json:"is_favorite"`
}

// FavoriteSyncRequest moves guest favorites to the signed-in user.
type FavoriteSyncRequest struct {
	GuestID string `json:"guest_id" binding:"required,max=64"`
}

// FavoriteSyncResponse reports a guest favorites sync.
type FavoriteSyncResponse struct {
	Synced         int  `json:"synced"`
	GuestIDCleared bool `json:"guest_id_cleared"`
}
