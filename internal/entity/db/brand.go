package db

import "time"

// Brand 商品品牌。
type Brand struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"type:varchar(128);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(160);uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	LogoURL     string    `gorm:"column:logo_url;type:text" json:"logo_url"`
	Country     string    `gorm:"type:varchar(64)" json:"country"`
	IsActive    bool      `gorm:"column:is_active" json:"is_active"`

	ProductCount int64 `gorm:"->;-:migration" json:"product_count,omitempty"`
}

// TableName 指定表名
func (Brand) TableName() string {
	return "brands"
}
