package dto

import (
	"shop/internal/entity/common"
	"time"
)

// UserSummary is a lightweight user description returned to clients.
type UserSummary struct {
	ID             uint      `json:"id"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"display_name"`
	Phone          string    `json:"phone"`
	DefaultAddress string    `json:"default_address"`
	Role           string    `json:"role"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserQuery supports listing users with pagination.
type UserQuery struct {
	common.BaseParams
	Role    string `json:"role" form:"role" query:"role"`
	Keyword string `json:"keyword" form:"keyword" query:"keyword"`
}

// UserCreateRequest is the payload for creating a user.
type UserCreateRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role" binding:"required"`
	IsActive    *bool  `json:"is_active"`
}

// UserUpdateRequest is the payload for updating a user.
type UserUpdateRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Role        *string `json:"role,omitempty"`
	Password    *string `json:"password,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// UserListResponse is the response for listing users.
type UserListResponse struct {
	Users []UserSummary `json:"users"`
	Meta  *common.Meta  `json:"meta"`
}

// ProfileUpdateRequest updates the caller's own profile.
type ProfileUpdateRequest struct {
	DisplayName    *string `json:"display_name,omitempty" binding:"omitempty,max=255"`
	Phone          *string `json:"phone,omitempty" binding:"omitempty,max=32"`
	DefaultAddress *string `json:"default_address,omitempty" binding:"omitempty,max=1000"`
}

// PasswordChangeRequest changes the caller's password.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// CustomerSummary is a storefront customer as seen from the back-office.
type CustomerSummary struct {
	UserSummary
	OrderCount int64 `json:"order_count"`
}

// CustomerListResponse is the response for listing customers.
type CustomerListResponse struct {
	Customers []CustomerSummary `json:"customers"`
	Meta      *common.Meta      `json:"meta"`
}

// CustomerDetailResponse is a customer together with the latest orders.
type CustomerDetailResponse struct {
	Customer     CustomerSummary `json:"customer"`
	RecentOrders []OrderSummary  `json:"recent_orders"`
}

// CustomerStatusRequest toggles a customer account.
type CustomerStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
