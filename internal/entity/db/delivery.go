package db

import "time"

// DeliverySettings 配送设置，全局仅一条记录。
type DeliverySettings struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	IsDeliveryEnabled     bool    `gorm:"column:is_delivery_enabled" json:"is_delivery_enabled"`
	DeliveryCost          float64 `gorm:"column:delivery_cost;type:decimal(12,2)" json:"delivery_cost"`
	FreeDeliveryThreshold float64 `gorm:"column:free_delivery_threshold;type:decimal(12,2)" json:"free_delivery_threshold"`
	PickupEnabled         bool    `gorm:"column:pickup_enabled" json:"pickup_enabled"`
	PickupAddress         string  `gorm:"column:pickup_address;type:text" json:"pickup_address"`
	MinDays               int     `gorm:"column:min_days" json:"min_days"`
	MaxDays               int     `gorm:"column:max_days" json:"max_days"`
}

// TableName 指定表名
func (DeliverySettings) TableName() string {
	return "delivery_settings"
}
