package converter

import (
	"testing"

	"shop/internal/entity/common"
	"shop/internal/entity/db"
	"shop/internal/pricing"
)

func TestCartItemPriceUsesVariantSale(t *testing.T) {
	variantID := uint(7)
	item := &db.CartItem{
		ProductID: 1,
		VariantID: &variantID,
		Quantity:  2,
		Price:     90,
		Product:   &db.Product{ID: 1, BasePrice: 200, IsActive: true, Stock: 10},
		Variant: &db.ProductVariant{
			ID:        variantID,
			Price:     pricing.Ptr(150),
			SalePrice: pricing.Ptr(100),
			Stock:     5,
			IsActive:  true,
		},
	}

	line := CartItemToDTO(item)
	if line.UnitPrice != 100 {
		t.Fatalf("expected unit price 100, got %v", line.UnitPrice)
	}
	if line.ComparePrice != 150 {
		t.Fatalf("expected compare price 150, got %v", line.ComparePrice)
	}
	if line.LineTotal != 200 {
		t.Fatalf("expected line total 200, got %v", line.LineTotal)
	}
	if !line.Available {
		t.Fatal("expected line to be available")
	}
	if line.LineTotalFormatted != "200 ₽" {
		t.Fatalf("unexpected formatted total %q", line.LineTotalFormatted)
	}
}

func TestCartItemPriceFallsBackToLinePrice(t *testing.T) {
	item := &db.CartItem{ProductID: 1, Quantity: 1, Price: 55.5}
	price := CartItemPrice(item)
	if price.UnitPrice != 55.5 || price.Source != pricing.SourceLinePrice {
		t.Fatalf("expected stored line price, got %+v", price)
	}
	if CartItemAvailable(item) {
		t.Fatal("line without product must not be available")
	}
}

func TestCartToDTOTotals(t *testing.T) {
	product := &db.Product{ID: 1, BasePrice: 1000, SalePrice: pricing.Ptr(750.5), IsActive: true, Stock: 1}
	items := []db.CartItem{
		{ID: 1, ProductID: 1, Quantity: 2, Product: product},
		{ID: 2, ProductID: 2, Quantity: 1, Price: 99.99},
	}

	cart := CartToDTO(items)
	if cart.ItemCount != 3 {
		t.Fatalf("expected 3 items, got %d", cart.ItemCount)
	}
	if cart.Subtotal != 1600.99 {
		t.Fatalf("expected subtotal 1600.99, got %v", cart.Subtotal)
	}
	if cart.Items[0].Available {
		t.Fatal("quantity above stock must not be available")
	}
	if cart.SubtotalFormatted != "1 600,99 ₽" {
		t.Fatalf("unexpected formatted subtotal %q", cart.SubtotalFormatted)
	}
}

func TestProductToCard(t *testing.T) {
	p := &db.Product{
		ID:        3,
		Name:      "Кеды",
		Slug:      "кеды",
		BasePrice: 5000,
		SalePrice: pricing.Ptr(4000),
		Images:    common.StringArray{"/files/a.jpg", "/files/b.jpg"},
		IsActive:  true,
		Brand:     &db.Brand{ID: 2, Name: "Converse", Slug: "converse"},
		Variants: []db.ProductVariant{
			{ID: 1, Stock: 2, IsActive: true},
			{ID: 2, Stock: 3, IsActive: true},
			{ID: 3, Stock: 50, IsActive: false},
		},
	}

	card := ProductToCard(p)
	if !card.Pricing.IsOnSale || card.Pricing.DiscountPercent != 20 {
		t.Fatalf("unexpected pricing %+v", card.Pricing)
	}
	if card.Pricing.ComparePrice != 5000 || card.Pricing.Price != 4000 {
		t.Fatalf("unexpected prices %+v", card.Pricing)
	}
	if card.Stock != 5 || !card.InStock {
		t.Fatalf("expected stock 5 from active variants, got %d", card.Stock)
	}
	if card.Image != "/files/a.jpg" || card.Brand == nil || card.Brand.Slug != "converse" {
		t.Fatalf("unexpected card %+v", card)
	}

	detail := ProductToDetail(p, false)
	if len(detail.Variants) != 2 {
		t.Fatalf("expected inactive variant to be hidden, got %d variants", len(detail.Variants))
	}
}

func TestGroupBrands(t *testing.T) {
	groups := GroupBrands([]db.Brand{{Name: "Nike"}, {Name: "Adidas"}, {Name: "New Balance"}})
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Letter != "A" || groups[1].Letter != "N" || len(groups[1].Brands) != 2 {
		t.Fatalf("unexpected groups %+v", groups)
	}
	if groups[1].Brands[0].Name != "New Balance" {
		t.Fatalf("expected brands sorted within the group, got %+v", groups[1].Brands)
	}
}

func TestOrderToDetailLabels(t *testing.T) {
	order := &db.Order{
		Number:         "AbC9",
		Status:         db.OrderStatusPending,
		DeliveryMethod: db.DeliveryMethodPickup,
		PaymentMethod:  db.PaymentMethodCard,
		Total:          1234.5,
		Items:          []db.OrderItem{{Quantity: 2, LineTotal: 1234.5}},
	}
	detail := OrderToDetail(order)
	if detail.StatusLabel != "Ожидает подтверждения" || detail.DeliveryMethodLabel != "Самовывоз" {
		t.Fatalf("unexpected labels %+v", detail)
	}
	if detail.TotalFormatted != "1 234,5 ₽" || detail.ItemCount != 2 {
		t.Fatalf("unexpected totals %+v", detail.OrderSummary)
	}
	if len(detail.NextStatuses) != 2 {
		t.Fatalf("expected two next statuses, got %v", detail.NextStatuses)
	}
}

func TestProductToCardZeroSalePrice(t *testing.T) {
	p := &db.Product{
		ID:        4,
		Name:      "Пальто",
		Slug:      "palto",
		BasePrice: 1000,
		SalePrice: pricing.Ptr(0),
		Stock:     1,
		IsActive:  true,
	}

	card := ProductToCard(p)
	if card.Pricing.IsOnSale || card.Pricing.Price != 1000 || card.Pricing.ComparePrice != 0 || card.Pricing.DiscountPercent != 0 {
		t.Fatalf("zero sale price must not mark product on sale: %+v", card.Pricing)
	}
	if detail := ProductToDetail(p, false); detail.Pricing.IsOnSale {
		t.Fatalf("zero sale price must not mark detail on sale: %+v", detail.Pricing)
	}
}
