package db

import (
	"shop/internal/entity/common"
	"time"
)

const (
	AttributeKindText    = "text"
	AttributeKindNumber  = "number"
	AttributeKindSelect  = "select"
	AttributeKindBoolean = "boolean"
)

// ProductType 商品类型，决定商品需要填写的属性集合。
type ProductType struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"type:varchar(128);not null" json:"name"`
	Slug      string    `gorm:"type:varchar(160);uniqueIndex;not null" json:"slug"`

	Attributes []ProductTypeAttribute `gorm:"foreignKey:ProductTypeID" json:"attributes,omitempty"`
}

// TableName 指定表名
func (ProductType) TableName() string {
	return "product_types"
}

// ProductTypeAttribute 商品类型下的属性定义。
type ProductTypeAttribute struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProductTypeID uint               `gorm:"column:product_type_id;index:idx_type_attr,priority:1;not null" json:"product_type_id"`
	Name          string             `gorm:"type:varchar(128);not null" json:"name"`
	Slug          string             `gorm:"type:varchar(160);index:idx_type_attr,priority:2;not null" json:"slug"`
	Kind          string             `gorm:"type:varchar(32);not null" json:"kind"`
	Options       common.StringArray `gorm:"type:json" json:"options"`
	Unit          string             `gorm:"type:varchar(32)" json:"unit"`
	IsRequired    bool               `gorm:"column:is_required;default:false" json:"is_required"`
	SortOrder     int                `gorm:"column:sort_order" json:"sort_order"`
}

// TableName 指定表名
func (ProductTypeAttribute) TableName() string {
	return "product_type_attributes"
}
