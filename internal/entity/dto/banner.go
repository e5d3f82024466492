package dto

import "time"

// BannerRequest creates a banner.
type BannerRequest struct {
	Title     string     `json:"title" binding:"required,max=255"`
	Subtitle  string     `json:"subtitle" binding:"max=255"`
	ImageURL  string     `json:"image_url" binding:"required"`
	LinkURL   string     `json:"link_url"`
	SortOrder int        `json:"sort_order"`
	IsActive  *bool      `json:"is_active"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
}

// BannerUpdateRequest updates a banner. clear_starts_at/clear_ends_at remove the window bounds.
type BannerUpdateRequest struct {
	Title         *string    `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Subtitle      *string    `json:"subtitle,omitempty" binding:"omitempty,max=255"`
	ImageURL      *string    `json:"image_url,omitempty" binding:"omitempty,min=1"`
	LinkURL       *string    `json:"link_url,omitempty"`
	SortOrder     *int       `json:"sort_order,omitempty"`
	IsActive      *bool      `json:"is_active,omitempty"`
	StartsAt      *time.Time `json:"starts_at,omitempty"`
	EndsAt        *time.Time `json:"ends_at,omitempty"`
	ClearStartsAt bool       `json:"clear_starts_at,omitempty"`
	ClearEndsAt   bool       `json:"clear_ends_at,omitempty"`
}
