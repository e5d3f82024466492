package service

import (
	"errors"
	"fmt"
)

var (
	ErrSlugExists            = errors.New("slug already exists")
	ErrSlugInvalid           = errors.New("slug is empty or invalid")
	ErrProductUnavailable    = errors.New("product is not available")
	ErrVariantRequired       = errors.New("variant must be selected")
	ErrVariantMismatch       = errors.New("variant does not belong to product")
	ErrDuplicateSKU          = errors.New("duplicate variant sku")
	ErrOutOfStock            = errors.New("not enough stock")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrOwnerRequired         = errors.New("user or guest id is required")
	ErrDeliveryDisabled      = errors.New("courier delivery is disabled")
	ErrPickupDisabled        = errors.New("pickup is disabled")
	ErrAddressRequired       = errors.New("address is required for courier delivery")
	ErrInvalidStatus         = errors.New("unknown order status")
	ErrInvalidTransition     = errors.New("order status transition is not allowed")
	ErrDeliverySettingsExist = errors.New("delivery settings already exist")
	ErrInvalidDeliveryDays   = errors.New("min_days must not exceed max_days")
	ErrInvalidDeliveryCost   = errors.New("delivery cost and threshold must not be negative")
	ErrInvalidAttribute      = errors.New("invalid attribute value")
	ErrProductTypeRequired   = errors.New("product type is required for attributes")
)

// AttributeError 描述某个属性值校验失败的原因
type AttributeError struct {
	Attribute string
	Reason    string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("attribute %s: %s", e.Attribute, e.Reason)
}

func (e *AttributeError) Unwrap() error {
	return ErrInvalidAttribute
}

// StockError 指出库存不足的商品
type StockError struct {
	Product   string
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("not enough stock for %s (available %d)", e.Product, e.Available)
}

func (e *StockError) Unwrap() error {
	return ErrOutOfStock
}
