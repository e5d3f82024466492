package db

import (
	"shop/internal/entity/common"
	"time"
)

// Product 商品。价格单位为卢布，SalePrice 为空表示无折扣。
type Product struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`

	BrandID       *uint        `gorm:"index" json:"brand_id"`
	Brand         *Brand       `gorm:"foreignKey:BrandID" json:"-"`
	ProductTypeID *uint        `gorm:"index" json:"product_type_id"`
	ProductType   *ProductType `gorm:"foreignKey:ProductTypeID" json:"-"`

	BasePrice float64            `gorm:"column:base_price;type:decimal(12,2);not null" json:"base_price"`
	SalePrice *float64           `gorm:"column:sale_price;type:decimal(12,2)" json:"sale_price"`
	Stock     int                `gorm:"column:stock" json:"stock"`
	Images    common.StringArray `gorm:"type:json" json:"images"`
	IsActive  bool               `gorm:"column:is_active" json:"is_active"`

	Variants        []ProductVariant        `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	AttributeValues []ProductAttributeValue `gorm:"foreignKey:ProductID" json:"attribute_values,omitempty"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// ProductVariant 商品的可购买规格（尺码、颜色等），拥有独立价格与库存。
type ProductVariant struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProductID uint           `gorm:"index;not null" json:"product_id"`
	SKU       string         `gorm:"column:sku;type:varchar(128);index" json:"sku"`
	Name      string         `gorm:"type:varchar(255)" json:"name"`
	Price     *float64       `gorm:"type:decimal(12,2)" json:"price"`
	SalePrice *float64       `gorm:"column:sale_price;type:decimal(12,2)" json:"sale_price"`
	Stock     int            `gorm:"column:stock" json:"stock"`
	Options   common.JSONMap `gorm:"type:json" json:"options"`
	IsActive  bool           `gorm:"column:is_active" json:"is_active"`
}

// TableName 指定表名
func (ProductVariant) TableName() string {
	return "product_variants"
}

// ProductAttributeValue 商品在其类型属性上的取值。
type ProductAttributeValue struct {
	ID          uint                  `gorm:"primarykey" json:"id"`
	ProductID   uint                  `gorm:"index:idx_product_attr,priority:1;not null" json:"product_id"`
	AttributeID uint                  `gorm:"index:idx_product_attr,priority:2;not null" json:"attribute_id"`
	Attribute   *ProductTypeAttribute `gorm:"foreignKey:AttributeID" json:"-"`
	Value       string                `gorm:"type:text" json:"value"`
}

// TableName 指定表名
func (ProductAttributeValue) TableName() string {
	return "product_attribute_values"
}
