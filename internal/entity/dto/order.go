package dto

import (
	"shop/internal/entity/common"
	"time"
)

// CheckoutRequest places an order from the caller's cart.
type CheckoutRequest struct {
	ContactName    string `json:"contact_name" binding:"required,max=255"`
	ContactPhone   string `json:"contact_phone" binding:"required,max=32"`
	ContactEmail   string `json:"contact_email" binding:"omitempty,email,max=255"`
	DeliveryMethod string `json:"delivery_method" binding:"required,oneof=courier pickup"`
	Address        string `json:"address" binding:"max=1000"`
	PaymentMethod  string `json:"payment_method" binding:"required,oneof=cash card"`
	Comment        string `json:"comment" binding:"max=1000"`
}

// CheckoutQuoteResponse previews the totals of the current cart.
type CheckoutQuoteResponse struct {
	Cart           CartResponse  `json:"cart"`
	Delivery       DeliveryQuote `json:"delivery"`
	Total          float64       `json:"total"`
	TotalFormatted string        `json:"total_formatted"`
}

// OrderSummary is an order in a listing.
type OrderSummary struct {
	ID             uint      `json:"id"`
	Number         string    `json:"number"`
	Status         string    `json:"status"`
	StatusLabel    string    `json:"status_label"`
	ContactName    string    `json:"contact_name"`
	ItemCount      int       `json:"item_count"`
	Total          float64   `json:"total"`
	TotalFormatted string    `json:"total_formatted"`
	CreatedAt      time.Time `json:"created_at"`
}

// OrderItem is an order line.
type OrderItem struct {
	ID                 uint    `json:"id"`
	ProductID          uint    `json:"product_id"`
	VariantID          *uint   `json:"variant_id"`
	ProductName        string  `json:"product_name"`
	VariantName        string  `json:"variant_name,omitempty"`
	ImageURL           string  `json:"image_url"`
	UnitPrice          float64 `json:"unit_price"`
	ComparePrice       float64 `json:"compare_price,omitempty"`
	Quantity           int     `json:"quantity"`
	LineTotal          float64 `json:"line_total"`
	LineTotalFormatted string  `json:"line_total_formatted"`
}

// OrderDetail is a full order.
type OrderDetail struct {
	OrderSummary
	ContactPhone        string       `json:"contact_phone"`
	ContactEmail        string       `json:"contact_email"`
	DeliveryMethod      string       `json:"delivery_method"`
	DeliveryMethodLabel string       `json:"delivery_method_label"`
	Address             string       `json:"address"`
	PaymentMethod       string       `json:"payment_method"`
	PaymentMethodLabel  string       `json:"payment_method_label"`
	Comment             string       `json:"comment"`
	Subtotal            float64      `json:"subtotal"`
	DeliveryCost        float64      `json:"delivery_cost"`
	Discount            float64      `json:"discount"`
	Items               []OrderItem  `json:"items"`
	NextStatuses        []string     `json:"next_statuses"`
	Customer            *UserSummary `json:"customer,omitempty"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// OrderQuery filters orders.
type OrderQuery struct {
	common.BaseParams
	Status  string `json:"status" form:"status" query:"status"`
	Keyword string `json:"keyword" form:"keyword" query:"keyword"`
	UserID  uint   `json:"-" form:"-" query:"-"`
}

// OrderListResponse is the response for listing orders.
type OrderListResponse struct {
	Orders []OrderSummary `json:"orders"`
	Meta   *common.Meta   `json:"meta"`
}

// OrderStatusRequest moves an order to another status.
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
