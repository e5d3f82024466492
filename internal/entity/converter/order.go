package converter

import (
	"shop/internal/entity/db"
	"shop/internal/entity/dto"
	"shop/internal/pricing"
	"shop/internal/utils"
)

// OrderToSummary converts an order to its listing form.
func OrderToSummary(o *db.Order) dto.OrderSummary {
	if o == nil {
		return dto.OrderSummary{}
	}
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return dto.OrderSummary{
		ID:             o.ID,
		Number:         o.Number,
		Status:         o.Status,
		StatusLabel:    utils.OrderStatusLabel(o.Status),
		ContactName:    o.ContactName,
		ItemCount:      count,
		Total:          o.Total,
		TotalFormatted: pricing.FormatPrice(o.Total),
		CreatedAt:      o.CreatedAt,
	}
}

// OrdersToSummaries converts a slice of orders.
func OrdersToSummaries(orders []db.Order) []dto.OrderSummary {
	out := make([]dto.OrderSummary, len(orders))
	for i := range orders {
		out[i] = OrderToSummary(&orders[i])
	}
	return out
}

// OrderToDetail converts an order with its items.
func OrderToDetail(o *db.Order) dto.OrderDetail {
	if o == nil {
		return dto.OrderDetail{}
	}
	out := dto.OrderDetail{
		OrderSummary:        OrderToSummary(o),
		ContactPhone:        o.ContactPhone,
		ContactEmail:        o.ContactEmail,
		DeliveryMethod:      o.DeliveryMethod,
		DeliveryMethodLabel: utils.DeliveryMethodLabel(o.DeliveryMethod),
		Address:             o.Address,
		PaymentMethod:       o.PaymentMethod,
		PaymentMethodLabel:  utils.PaymentMethodLabel(o.PaymentMethod),
		Comment:             o.Comment,
		Subtotal:            o.Subtotal,
		DeliveryCost:        o.DeliveryCost,
		Discount:            o.Discount,
		Items:               make([]dto.OrderItem, 0, len(o.Items)),
		NextStatuses:        utils.NextOrderStatuses(o.Status),
		UpdatedAt:           o.UpdatedAt,
	}
	for _, item := range o.Items {
		out.Items = append(out.Items, dto.OrderItem{
			ID:                 item.ID,
			ProductID:          item.ProductID,
			VariantID:          item.VariantID,
			ProductName:        item.ProductName,
			VariantName:        item.VariantName,
			ImageURL:           item.ImageURL,
			UnitPrice:          item.UnitPrice,
			ComparePrice:       item.ComparePrice,
			Quantity:           item.Quantity,
			LineTotal:          item.LineTotal,
			LineTotalFormatted: pricing.FormatPrice(item.LineTotal),
		})
	}
	if o.User != nil && o.User.ID != 0 {
		customer := UserToSummary(o.User)
		out.Customer = &customer
	}
	return out
}
