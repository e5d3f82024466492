package db

import "time"

// Banner 首页轮播图。
type Banner struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title     string     `gorm:"type:varchar(255);not null" json:"title"`
	Subtitle  string     `gorm:"type:varchar(255)" json:"subtitle"`
	ImageURL  string     `gorm:"column:image_url;type:text;not null" json:"image_url"`
	LinkURL   string     `gorm:"column:link_url;type:text" json:"link_url"`
	SortOrder int        `gorm:"column:sort_order;index" json:"sort_order"`
	IsActive  bool       `gorm:"column:is_active" json:"is_active"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
}

// TableName 指定表名
func (Banner) TableName() string {
	return "banners"
}

// VisibleAt 判断轮播图在给定时间是否应展示。
func (b *Banner) VisibleAt(now time.Time) bool {
	if b == nil || !b.IsActive {
		return false
	}
	if b.StartsAt != nil && now.Before(*b.StartsAt) {
		return false
	}
	if b.EndsAt != nil && now.After(*b.EndsAt) {
		return false
	}
	return true
}
