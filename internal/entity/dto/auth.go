package dto

import "time"

// AuthStatusResponse indicates whether the system already has users.
type AuthStatusResponse struct {
	HasUser bool `json:"has_user"`
}

// AuthLoginRequest is the login request payload.
type AuthLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthRegisterRequest is the registration request payload.
type AuthRegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"max=255"`
	Phone       string `json:"phone" binding:"max=32"`
}

// AuthResponse is returned after successful login/registration.
// GuestIDCleared tells the storefront to drop its locally stored guest id.
type AuthResponse struct {
	Token           string      `json:"token"`
	ExpiresAt       time.Time   `json:"expires_at"`
	User            UserSummary `json:"user"`
	GuestIDCleared  bool        `json:"guest_id_cleared,omitempty"`
	SyncedFavorites int         `json:"synced_favorites,omitempty"`
	MergedCartItems int         `json:"merged_cart_items,omitempty"`
}

// GuestIDResponse carries a freshly issued guest id.
type GuestIDResponse struct {
	GuestID string `json:"guest_id"`
}
