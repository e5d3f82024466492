package db

import "time"

const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	DeliveryMethodCourier = "courier"
	DeliveryMethodPickup  = "pickup"
)

const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

// Order 订单。金额在下单时固化，不随商品价格变动。
type Order struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Number string `gorm:"type:varchar(64);uniqueIndex" json:"number"`
	UserID uint   `gorm:"index;not null" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID" json:"-"`
	Status string `gorm:"type:varchar(32);index;not null" json:"status"`

	ContactName    string `gorm:"type:varchar(255)" json:"contact_name"`
	ContactPhone   string `gorm:"type:varchar(32)" json:"contact_phone"`
	ContactEmail   string `gorm:"type:varchar(255)" json:"contact_email"`
	DeliveryMethod string `gorm:"type:varchar(32)" json:"delivery_method"`
	Address        string `gorm:"type:text" json:"address"`
	PaymentMethod  string `gorm:"type:varchar(32)" json:"payment_method"`
	Comment        string `gorm:"type:text" json:"comment"`

	Subtotal     float64 `gorm:"type:decimal(12,2)" json:"subtotal"`
	DeliveryCost float64 `gorm:"type:decimal(12,2)" json:"delivery_cost"`
	Discount     float64 `gorm:"type:decimal(12,2)" json:"discount"`
	Total        float64 `gorm:"type:decimal(12,2)" json:"total"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单行，保存下单时的商品快照。
type OrderItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	OrderID      uint    `gorm:"index;not null" json:"order_id"`
	ProductID    uint    `gorm:"index" json:"product_id"`
	VariantID    *uint   `json:"variant_id"`
	ProductName  string  `gorm:"type:varchar(255)" json:"product_name"`
	VariantName  string  `gorm:"type:varchar(255)" json:"variant_name"`
	ImageURL     string  `gorm:"type:text" json:"image_url"`
	UnitPrice    float64 `gorm:"type:decimal(12,2)" json:"unit_price"`
	ComparePrice float64 `gorm:"type:decimal(12,2)" json:"compare_price"`
	Quantity     int     `json:"quantity"`
	LineTotal    float64 `gorm:"type:decimal(12,2)" json:"line_total"`
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
