package db

import "time"

// Favorite 收藏记录，归属登录用户或访客 ID 二者之一。
type Favorite struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID    *uint    `gorm:"index" json:"user_id"`
	GuestID   string   `gorm:"column:guest_id;type:varchar(64);index" json:"guest_id"`
	ProductID uint     `gorm:"index;not null" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"-"`
}

// TableName 指定表名
func (Favorite) TableName() string {
	return "favorites"
}
