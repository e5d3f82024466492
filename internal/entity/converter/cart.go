package converter

import (
	"shop/internal/entity/db"
	"shop/internal/entity/dto"
	"shop/internal/pricing"
)

// CartItemPrice resolves the unit price of a cart line.
func CartItemPrice(item *db.CartItem) pricing.Resolved {
	if item == nil {
		return pricing.Resolved{Source: pricing.SourceNone}
	}
	in := pricing.Input{}
	if item.Variant != nil {
		in.VariantSalePrice = item.Variant.SalePrice
		in.VariantPrice = item.Variant.Price
	}
	if item.Product != nil {
		base := item.Product.BasePrice
		in.ProductSalePrice = item.Product.SalePrice
		in.ProductBasePrice = &base
	}
	line := item.Price
	in.LinePrice = &line
	return pricing.Resolve(in)
}

// CartItemToDTO converts a cart line with its preloaded product and variant.
func CartItemToDTO(item *db.CartItem) dto.CartItem {
	if item == nil {
		return dto.CartItem{}
	}
	price := CartItemPrice(item)
	lineTotal := pricing.LineTotal(price.UnitPrice, item.Quantity)
	out := dto.CartItem{
		ID:                 item.ID,
		ProductID:          item.ProductID,
		VariantID:          item.VariantID,
		Quantity:           item.Quantity,
		UnitPrice:          price.UnitPrice,
		PriceSource:        price.Source,
		LineTotal:          lineTotal,
		UnitPriceFormatted: pricing.FormatPrice(price.UnitPrice),
		LineTotalFormatted: pricing.FormatPrice(lineTotal),
		Available:          CartItemAvailable(item),
	}
	if price.HasDiscount() {
		out.ComparePrice = price.ComparePrice
	}
	if item.Product != nil {
		out.Product = &dto.CartProduct{
			ID:    item.Product.ID,
			Name:  item.Product.Name,
			Slug:  item.Product.Slug,
			Image: item.Product.Images.First(),
			Stock: item.Product.Stock,
		}
	}
	if item.Variant != nil {
		options := map[string]interface{}(item.Variant.Options)
		if options == nil {
			options = map[string]interface{}{}
		}
		out.Variant = &dto.CartVariant{
			ID:      item.Variant.ID,
			SKU:     item.Variant.SKU,
			Name:    item.Variant.Name,
			Stock:   item.Variant.Stock,
			Options: options,
		}
	}
	return out
}

// CartItemAvailable reports whether the line can be ordered in its current quantity.
func CartItemAvailable(item *db.CartItem) bool {
	if item == nil || item.Product == nil || !item.Product.IsActive {
		return false
	}
	if item.VariantID != nil {
		if item.Variant == nil || !item.Variant.IsActive {
			return false
		}
		return item.Variant.Stock >= item.Quantity
	}
	return item.Product.Stock >= item.Quantity
}

// CartToDTO converts the cart lines and computes the totals.
func CartToDTO(items []db.CartItem) dto.CartResponse {
	out := dto.CartResponse{Items: make([]dto.CartItem, 0, len(items))}
	subtotal := 0.0
	for i := range items {
		line := CartItemToDTO(&items[i])
		out.Items = append(out.Items, line)
		out.ItemCount += line.Quantity
		subtotal += line.LineTotal
	}
	out.Subtotal = pricing.Round(subtotal)
	out.SubtotalFormatted = pricing.FormatPrice(out.Subtotal)
	return out
}
