package utils

import "shop/internal/entity/db"

var orderStatusLabels = map[string]string{
	db.OrderStatusPending:    "Ожидает подтверждения",
	db.OrderStatusConfirmed:  "Подтверждён",
	db.OrderStatusProcessing: "В обработке",
	db.OrderStatusShipped:    "Отправлен",
	db.OrderStatusDelivered:  "Доставлен",
	db.OrderStatusCancelled:  "Отменён",
}

var deliveryMethodLabels = map[string]string{
	db.DeliveryMethodCourier: "Курьерская доставка",
	db.DeliveryMethodPickup:  "Самовывоз",
}

var paymentMethodLabels = map[string]string{
	db.PaymentMethodCash: "Наличными при получении",
	db.PaymentMethodCard: "Картой при получении",
}

var postStatusLabels = map[string]string{
	db.PostStatusDraft:     "Черновик",
	db.PostStatusPublished: "Опубликовано",
}

// OrderStatusLabel 返回订单状态的展示文案，未知状态原样返回。
func OrderStatusLabel(status string) string {
	return lookupLabel(orderStatusLabels, status)
}

// DeliveryMethodLabel 返回配送方式的展示文案。
func DeliveryMethodLabel(method string) string {
	return lookupLabel(deliveryMethodLabels, method)
}

// PaymentMethodLabel 返回支付方式的展示文案。
func PaymentMethodLabel(method string) string {
	return lookupLabel(paymentMethodLabels, method)
}

// PostStatusLabel 返回文章状态的展示文案。
func PostStatusLabel(status string) string {
	return lookupLabel(postStatusLabels, status)
}

func lookupLabel(labels map[string]string, key string) string {
	if label, ok := labels[key]; ok {
		return label
	}
	return key
}

// OrderStatuses 按流程顺序返回全部订单状态。
func OrderStatuses() []string {
	return []string{
		db.OrderStatusPending,
		db.OrderStatusConfirmed,
		db.OrderStatusProcessing,
		db.OrderStatusShipped,
		db.OrderStatusDelivered,
		db.OrderStatusCancelled,
	}
}

var orderTransitions = map[string][]string{
	db.OrderStatusPending:    {db.OrderStatusConfirmed, db.OrderStatusCancelled},
	db.OrderStatusConfirmed:  {db.OrderStatusProcessing, db.OrderStatusCancelled},
	db.OrderStatusProcessing: {db.OrderStatusShipped, db.OrderStatusCancelled},
	db.OrderStatusShipped:    {db.OrderStatusDelivered},
}

// IsValidOrderStatus 判断状态值是否合法。
func IsValidOrderStatus(status string) bool {
	_, ok := orderStatusLabels[status]
	return ok
}

// NextOrderStatuses 返回当前状态允许流转到的状态，终态返回空切片。
func NextOrderStatuses(current string) []string {
	next := orderTransitions[current]
	out := make([]string, len(next))
	copy(out, next)
	return out
}

// CanTransitionOrder 判断订单能否从 from 流转到 to。
func CanTransitionOrder(from, to string) bool {
	for _, candidate := range orderTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}
