package entity

import "errors"

var (
	// ErrInsufficientStock 扣减库存时剩余数量不足。
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrStatusConflict 订单状态在更新前已被修改。
	ErrStatusConflict = errors.New("order status changed concurrently")
)

// OrderNumberFunc 根据订单自增 ID 生成对外展示的订单号。
type OrderNumberFunc func(id uint) (string, error)
