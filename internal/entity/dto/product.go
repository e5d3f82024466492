package dto

import (
	"shop/internal/entity/common"
	"time"
)

// VariantRequest describes a purchasable variant of a product.
type VariantRequest struct {
	SKU       string                 `json:"sku" binding:"max=128"`
	Name      string                 `json:"name" binding:"required,max=255"`
	Price     *float64               `json:"price" binding:"omitempty,gte=0"`
	SalePrice *float64               `json:"sale_price" binding:"omitempty,gt=0"`
	Stock     int                    `json:"stock" binding:"gte=0"`
	Options   map[string]interface{} `json:"options"`
	IsActive  *bool                  `json:"is_active"`
}

// AttributeValueRequest is a product's value for one type attribute.
type AttributeValueRequest struct {
	AttributeID uint   `json:"attribute_id" binding:"required"`
	Value       string `json:"value"`
}

// ProductRequest creates a product together with its variants and attribute values.
type ProductRequest struct {
	Name          string                  `json:"name" binding:"required,max=255"`
	Slug          string                  `json:"slug" binding:"omitempty,max=255,slug"`
	Description   string                  `json:"description"`
	BrandID       *uint                   `json:"brand_id"`
	ProductTypeID *uint                   `json:"product_type_id"`
	BasePrice     float64                 `json:"base_price" binding:"gte=0"`
	SalePrice     *float64                `json:"sale_price" binding:"omitempty,gt=0"`
	Stock         int                     `json:"stock" binding:"gte=0"`
	Images        []string                `json:"images"`
	IsActive      *bool                   `json:"is_active"`
	Variants      []VariantRequest        `json:"variants" binding:"dive"`
	Attributes    []AttributeValueRequest `json:"attributes" binding:"dive"`
}

// ProductUpdateRequest updates a product. Non-nil variants/attributes replace the stored sets;
// brand_id or product_type_id 0 clears the relation.
type ProductUpdateRequest struct {
	Name           *string                  `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Slug           *string                  `json:"slug,omitempty" binding:"omitempty,max=255,slug"`
	Description    *string                  `json:"description,omitempty"`
	BrandID        *uint                    `json:"brand_id,omitempty"`
	ProductTypeID  *uint                    `json:"product_type_id,omitempty"`
	BasePrice      *float64                 `json:"base_price,omitempty" binding:"omitempty,gte=0"`
	SalePrice      *float64                 `json:"sale_price,omitempty" binding:"omitempty,gt=0"`
	ClearSalePrice bool                     `json:"clear_sale_price,omitempty"`
	Stock          *int                     `json:"stock,omitempty" binding:"omitempty,gte=0"`
	Images         *[]string                `json:"images,omitempty"`
	IsActive       *bool                    `json:"is_active,omitempty"`
	Variants       *[]VariantRequest        `json:"variants,omitempty" binding:"omitempty,dive"`
	Attributes     *[]AttributeValueRequest `json:"attributes,omitempty" binding:"omitempty,dive"`
}

// ProductQuery filters the product listing.
type ProductQuery struct {
	common.BaseParams
	Brand           string `json:"brand" form:"brand" query:"brand"`
	ProductType     string `json:"type" form:"type" query:"type"`
	Search          string `json:"search" form:"search" query:"search"`
	OnSale          bool   `json:"on_sale" form:"on_sale" query:"on_sale"`
	InStock         bool   `json:"in_stock" form:"in_stock" query:"in_stock"`
	IncludeInactive bool   `json:"-" form:"-" query:"-"`
}

// PriceInfo is a resolved price ready for display.
type PriceInfo struct {
	Price                 float64 `json:"price"`
	ComparePrice          float64 `json:"compare_price,omitempty"`
	IsOnSale              bool    `json:"is_on_sale"`
	DiscountPercent       int     `json:"discount_percent,omitempty"`
	PriceFormatted        string  `json:"price_formatted"`
	ComparePriceFormatted string  `json:"compare_price_formatted,omitempty"`
}

// BrandRef is a brand embedded in product payloads.
type BrandRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ProductTypeRef is a product type embedded in product payloads.
type ProductTypeRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ProductCard is a product in a listing.
type ProductCard struct {
	ID       uint      `json:"id"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	Image    string    `json:"image"`
	Brand    *BrandRef `json:"brand,omitempty"`
	Pricing  PriceInfo `json:"pricing"`
	Stock    int       `json:"stock"`
	InStock  bool      `json:"in_stock"`
	IsActive bool      `json:"is_active"`
}

// VariantDetail is a variant with its resolved price.
type VariantDetail struct {
	ID        uint                   `json:"id"`
	SKU       string                 `json:"sku"`
	Name      string                 `json:"name"`
	Price     *float64               `json:"price"`
	SalePrice *float64               `json:"sale_price"`
	Stock     int                    `json:"stock"`
	Options   map[string]interface{} `json:"options"`
	IsActive  bool                   `json:"is_active"`
	Pricing   PriceInfo              `json:"pricing"`
}

// AttributeValueDetail is a product attribute value joined with its definition.
type AttributeValueDetail struct {
	AttributeID uint   `json:"attribute_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Kind        string `json:"kind"`
	Unit        string `json:"unit,omitempty"`
	Value       string `json:"value"`
}

// ProductDetail is a full product page.
type ProductDetail struct {
	ID          uint                   `json:"id"`
	Name        string                 `json:"name"`
	Slug        string                 `json:"slug"`
	Description string                 `json:"description"`
	Brand       *BrandRef              `json:"brand,omitempty"`
	ProductType *ProductTypeRef        `json:"product_type,omitempty"`
	BasePrice   float64                `json:"base_price"`
	SalePrice   *float64               `json:"sale_price"`
	Stock       int                    `json:"stock"`
	Images      []string               `json:"images"`
	IsActive    bool                   `json:"is_active"`
	Pricing     PriceInfo              `json:"pricing"`
	Variants    []VariantDetail        `json:"variants"`
	Attributes  []AttributeValueDetail `json:"attributes"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// ProductListResponse is the response for listing products.
type ProductListResponse struct {
	Products []ProductCard `json:"products"`
	Meta     *common.Meta  `json:"meta"`
}
