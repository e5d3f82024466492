package entity

import (
	"time"

	"shop/internal/entity/common"
)

// UserUpdates 用户更新字段
type UserUpdates struct {
	DisplayName    *string
	Phone          *string
	DefaultAddress *string
	Role           *string
	PasswordHash   *string
	IsActive       *bool
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u UserUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.DisplayName != nil {
		updates["display_name"] = *u.DisplayName
	}
	if u.Phone != nil {
		updates["phone"] = *u.Phone
	}
	if u.DefaultAddress != nil {
		updates["default_address"] = *u.DefaultAddress
	}
	if u.Role != nil {
		updates["role"] = *u.Role
	}
	if u.PasswordHash != nil {
		updates["password_hash"] = *u.PasswordHash
	}
	if u.IsActive != nil {
		updates["is_active"] = *u.IsActive
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u UserUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// BlogCategoryUpdates 博客分类更新字段
type BlogCategoryUpdates struct {
	Name        *string
	Slug        *string
	Description *string
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u BlogCategoryUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Slug != nil {
		updates["slug"] = *u.Slug
	}
	if u.Description != nil {
		updates["description"] = *u.Description
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u BlogCategoryUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// BlogPostUpdates 博客文章更新字段。CategoryID 指向 0 表示清空分类。
type BlogPostUpdates struct {
	Title       *string
	Slug        *string
	Excerpt     *string
	Content     *string
	ContentHTML *string
	CoverImage  *string
	Status      *string
	PublishedAt *time.Time
	CategoryID  *uint
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u BlogPostUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Title != nil {
		updates["title"] = *u.Title
	}
	if u.Slug != nil {
		updates["slug"] = *u.Slug
	}
	if u.Excerpt != nil {
		updates["excerpt"] = *u.Excerpt
	}
	if u.Content != nil {
		updates["content"] = *u.Content
	}
	if u.ContentHTML != nil {
		updates["content_html"] = *u.ContentHTML
	}
	if u.CoverImage != nil {
		updates["cover_image"] = *u.CoverImage
	}
	if u.Status != nil {
		updates["status"] = *u.Status
	}
	if u.PublishedAt != nil {
		updates["published_at"] = *u.PublishedAt
	}
	if u.CategoryID != nil {
		if *u.CategoryID == 0 {
			updates["category_id"] = nil
		} else {
			updates["category_id"] = *u.CategoryID
		}
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u BlogPostUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// BannerUpdates 轮播图更新字段。ClearStartsAt/ClearEndsAt 用于清空展示时间窗口。
type BannerUpdates struct {
	Title         *string
	Subtitle      *string
	ImageURL      *string
	LinkURL       *string
	SortOrder     *int
	IsActive      *bool
	StartsAt      *time.Time
	EndsAt        *time.Time
	ClearStartsAt bool
	ClearEndsAt   bool
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u BannerUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Title != nil {
		updates["title"] = *u.Title
	}
	if u.Subtitle != nil {
		updates["subtitle"] = *u.Subtitle
	}
	if u.ImageURL != nil {
		updates["image_url"] = *u.ImageURL
	}
	if u.LinkURL != nil {
		updates["link_url"] = *u.LinkURL
	}
	if u.SortOrder != nil {
		updates["sort_order"] = *u.SortOrder
	}
	if u.IsActive != nil {
		updates["is_active"] = *u.IsActive
	}
	if u.StartsAt != nil {
		updates["starts_at"] = *u.StartsAt
	} else if u.ClearStartsAt {
		updates["starts_at"] = nil
	}
	if u.EndsAt != nil {
		updates["ends_at"] = *u.EndsAt
	} else if u.ClearEndsAt {
		updates["ends_at"] = nil
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u BannerUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// BrandUpdates 品牌更新字段
type BrandUpdates struct {
	Name        *string
	Slug        *string
	Description *string
	LogoURL     *string
	Country     *string
	IsActive    *bool
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u BrandUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Slug != nil {
		updates["slug"] = *u.Slug
	}
	if u.Description != nil {
		updates["description"] = *u.Description
	}
	if u.LogoURL != nil {
		updates["logo_url"] = *u.LogoURL
	}
	if u.Country != nil {
		updates["country"] = *u.Country
	}
	if u.IsActive != nil {
		updates["is_active"] = *u.IsActive
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u BrandUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// DeliverySettingsUpdates 配送设置更新字段
type DeliverySettingsUpdates struct {
	IsDeliveryEnabled     *bool
	DeliveryCost          *float64
	FreeDeliveryThreshold *float64
	PickupEnabled         *bool
	PickupAddress         *string
	MinDays               *int
	MaxDays               *int
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u DeliverySettingsUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.IsDeliveryEnabled != nil {
		updates["is_delivery_enabled"] = *u.IsDeliveryEnabled
	}
	if u.DeliveryCost != nil {
		updates["delivery_cost"] = *u.DeliveryCost
	}
	if u.FreeDeliveryThreshold != nil {
		updates["free_delivery_threshold"] = *u.FreeDeliveryThreshold
	}
	if u.PickupEnabled != nil {
		updates["pickup_enabled"] = *u.PickupEnabled
	}
	if u.PickupAddress != nil {
		updates["pickup_address"] = *u.PickupAddress
	}
	if u.MinDays != nil {
		updates["min_days"] = *u.MinDays
	}
	if u.MaxDays != nil {
		updates["max_days"] = *u.MaxDays
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u DeliverySettingsUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// ProductTypeUpdates 商品类型更新字段
type ProductTypeUpdates struct {
	Name *string
	Slug *string
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u ProductTypeUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Slug != nil {
		updates["slug"] = *u.Slug
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u ProductTypeUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// AttributeUpdates 商品类型属性更新字段
type AttributeUpdates struct {
	Name       *string
	Slug       *string
	Kind       *string
	Options    *common.StringArray
	Unit       *string
	IsRequired *bool
	SortOrder  *int
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u AttributeUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Slug != nil {
		updates["slug"] = *u.Slug
	}
	if u.Kind != nil {
		updates["kind"] = *u.Kind
	}
	if u.Options != nil {
		updates["options"] = *u.Options
	}
	if u.Unit != nil {
		updates["unit"] = *u.Unit
	}
	if u.IsRequired != nil {
		updates["is_required"] = *u.IsRequired
	}
	if u.SortOrder != nil {
		updates["sort_order"] = *u.SortOrder
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u AttributeUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// ProductUpdates 商品更新字段。BrandID/ProductTypeID 指向 0 表示清空关联，ClearSalePrice 清空折扣价。
type ProductUpdates struct {
	Name           *string
	Slug           *string
	Description    *string
	BrandID        *uint
	ProductTypeID  *uint
	BasePrice      *float64
	SalePrice      *float64
	ClearSalePrice bool
	Stock          *int
	Images         *common.StringArray
	IsActive       *bool
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u ProductUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Slug != nil {
		updates["slug"] = *u.Slug
	}
	if u.Description != nil {
		updates["description"] = *u.Description
	}
	if u.BrandID != nil {
		updates["brand_id"] = nullableID(*u.BrandID)
	}
	if u.ProductTypeID != nil {
		updates["product_type_id"] = nullableID(*u.ProductTypeID)
	}
	if u.BasePrice != nil {
		updates["base_price"] = *u.BasePrice
	}
	if u.SalePrice != nil {
		updates["sale_price"] = *u.SalePrice
	} else if u.ClearSalePrice {
		updates["sale_price"] = nil
	}
	if u.Stock != nil {
		updates["stock"] = *u.Stock
	}
	if u.Images != nil {
		updates["images"] = *u.Images
	}
	if u.IsActive != nil {
		updates["is_active"] = *u.IsActive
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u ProductUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

func nullableID(id uint) interface{} {
	if id == 0 {
		return nil
	}
	return id
}
