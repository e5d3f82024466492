package dto

import "shop/internal/entity/db"

// BrandRequest creates a brand.
type BrandRequest struct {
	Name        string `json:"name" binding:"required,max=128"`
	Slug        string `json:"slug" binding:"omitempty,max=160,slug"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	Country     string `json:"country" binding:"max=64"`
	IsActive    *bool  `json:"is_active"`
}

// BrandUpdateRequest updates a brand.
type BrandUpdateRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=128"`
	Slug        *string `json:"slug,omitempty" binding:"omitempty,max=160,slug"`
	Description *string `json:"description,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty"`
	Country     *string `json:"country,omitempty" binding:"omitempty,max=64"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// BrandGroup is one letter of the alphabetical brand index.
type BrandGroup struct {
	Letter string     `json:"letter"`
	Brands []db.Brand `json:"brands"`
}

// BrandDetailResponse is a brand page.
type BrandDetailResponse struct {
	Brand    db.Brand      `json:"brand"`
	Products []ProductCard `json:"products"`
}
