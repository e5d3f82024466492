package db

import "time"

// CartItem 购物车条目，归属登录用户或访客 ID 二者之一。
// Price 为加入购物车时记录的单价，仅在商品与规格都没有有效价格时兜底使用。
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID  *uint  `gorm:"index" json:"user_id"`
	GuestID string `gorm:"column:guest_id;type:varchar(64);index" json:"guest_id"`

	ProductID uint            `gorm:"index;not null" json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"-"`
	VariantID *uint           `gorm:"index" json:"variant_id"`
	Variant   *ProductVariant `gorm:"foreignKey:VariantID" json:"-"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     float64         `gorm:"type:decimal(12,2)" json:"price"`
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
