package service

import (
	"context"
	"errors"
	"testing"

	"shop/internal/entity"
	"shop/internal/entity/db"
	"shop/internal/entity/dto"
	"shop/internal/idgen"
	"shop/internal/model"

	"gorm.io/gorm"
)

func newOrderFixture(t *testing.T) (model.Repository, *OrderService, *CartService) {
	t.Helper()
	repo := newTestRepo(t)
	settings := &db.DeliverySettings{
		IsDeliveryEnabled:     true,
		DeliveryCost:          300,
		FreeDeliveryThreshold: 5000,
		PickupEnabled:         true,
		PickupAddress:         "Москва, ул. Тверская, 1",
		MinDays:               1,
		MaxDays:               3,
	}
	if err := repo.CreateDeliverySettings(context.Background(), settings); err != nil {
		t.Fatalf("create delivery settings: %v", err)
	}
	encoder, err := idgen.NewEncoder(idgen.DefaultAlphabet, "test-seed", 8)
	if err != nil {
		t.Fatalf("encoder: %v", err)
	}
	catalog := NewCatalogService(repo, nil, 0)
	return repo, NewOrderService(repo, catalog, encoder), NewCartService(repo)
}

func TestQuoteDelivery(t *testing.T) {
	settings := &db.DeliverySettings{
		IsDeliveryEnabled:     true,
		DeliveryCost:          300,
		FreeDeliveryThreshold: 5000,
		PickupEnabled:         false,
		MinDays:               2,
		MaxDays:               4,
	}

	tests := []struct {
		name       string
		settings   *db.DeliverySettings
		method     string
		subtotal   float64
		wantCost   float64
		wantToFree float64
		wantMethod string
		wantErr    error
	}{
		{name: "未达到免邮门槛", settings: settings, method: "courier", subtotal: 4000, wantCost: 300, wantToFree: 1000, wantMethod: "courier"},
		{name: "恰好达到门槛免运费", settings: settings, method: "courier", subtotal: 5000, wantCost: 0, wantMethod: "courier"},
		{name: "默认快递", settings: settings, method: "", subtotal: 100, wantCost: 300, wantToFree: 4900, wantMethod: "courier"},
		{name: "自提未开启", settings: settings, method: "pickup", subtotal: 100, wantErr: ErrPickupDisabled},
		{name: "快递关闭", settings: &db.DeliverySettings{PickupEnabled: true}, method: "courier", subtotal: 100, wantErr: ErrDeliveryDisabled},
		{name: "快递关闭时默认自提", settings: &db.DeliverySettings{PickupEnabled: true}, method: "", subtotal: 100, wantCost: 0, wantMethod: "pickup"},
		{name: "未配置时快递免费", settings: nil, method: "courier", subtotal: 100, wantCost: 0, wantMethod: "courier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := QuoteDelivery(tt.settings, tt.method, tt.subtotal)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if quote.Method != tt.wantMethod {
				t.Fatalf("method = %s, want %s", quote.Method, tt.wantMethod)
			}
			if quote.Cost != tt.wantCost {
				t.Fatalf("cost = %v, want %v", quote.Cost, tt.wantCost)
			}
			if quote.AmountToFree != tt.wantToFree {
				t.Fatalf("amount to free = %v, want %v", quote.AmountToFree, tt.wantToFree)
			}
			if quote.IsFree != (tt.wantCost == 0) {
				t.Fatalf("is_free = %v", quote.IsFree)
			}
		})
	}
}

func TestCheckoutPlacesOrder(t *testing.T) {
	repo, orders, cart := newOrderFixture(t)
	ctx := context.Background()
	user := mustUser(t, repo, "client@example.com")
	other := mustUser(t, repo, "other@example.com")
	product := mustProduct(t, repo, &db.Product{Name: "Джинсы", Slug: "dzhinsy", BasePrice: 2500, SalePrice: floatPtr(2000), Stock: 5, IsActive: true})
	owner := entity.UserOwner(user.ID)

	if _, err := cart.Add(ctx, owner, dto.CartAddRequest{ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	quote, err := orders.Quote(ctx, owner, "courier")
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if quote.Total != 4300 {
		t.Fatalf("expected quote total 4300, got %v", quote.Total)
	}

	detail, err := orders.Checkout(ctx, user.ID, dto.CheckoutRequest{
		ContactName:    "Анна",
		ContactPhone:   "+79990000000",
		DeliveryMethod: "courier",
		Address:        "Санкт-Петербург, Невский пр., 10",
		PaymentMethod:  "card",
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if detail.Subtotal != 4000 || detail.DeliveryCost != 300 || detail.Total != 4300 {
		t.Fatalf("unexpected totals: %+v", detail)
	}
	if detail.Status != db.OrderStatusPending || detail.StatusLabel == "" {
		t.Fatalf("unexpected status %q/%q", detail.Status, detail.StatusLabel)
	}
	if len(detail.Number) < 8 {
		t.Fatalf("expected encoded number, got %q", detail.Number)
	}
	if len(detail.Items) != 1 || detail.Items[0].UnitPrice != 2000 || detail.Items[0].ComparePrice != 2500 {
		t.Fatalf("unexpected items: %+v", detail.Items)
	}

	stored, err := repo.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if stored.Stock != 3 {
		t.Fatalf("expected stock 3, got %d", stored.Stock)
	}
	remaining, err := cart.Get(ctx, owner)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(remaining.Items) != 0 {
		t.Fatalf("expected cart cleared, got %d items", len(remaining.Items))
	}

	mine, err := orders.GetForUser(ctx, user.ID, detail.Number)
	if err != nil {
		t.Fatalf("get own order: %v", err)
	}
	if mine.ID != detail.ID {
		t.Fatalf("unexpected order %d", mine.ID)
	}
	if _, err := orders.GetForUser(ctx, other.ID, detail.Number); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected other user to get not found, got %v", err)
	}
	if _, err := orders.GetForUser(ctx, user.ID, "garbage!"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected invalid number to be not found, got %v", err)
	}

	list, err := orders.ListForUser(ctx, user.ID, &dto.OrderQuery{})
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(list.Orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(list.Orders))
	}
}

func TestCheckoutRules(t *testing.T) {
	repo, orders, cart := newOrderFixture(t)
	ctx := context.Background()
	user := mustUser(t, repo, "rules@example.com")
	product := mustProduct(t, repo, &db.Product{Name: "Пальто", Slug: "palto", BasePrice: 12000, Stock: 1, IsActive: true})

	base := dto.CheckoutRequest{ContactName: "Иван", ContactPhone: "+7900", PaymentMethod: "cash"}

	if _, err := orders.Checkout(ctx, user.ID, withMethod(base, "courier", "")); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected empty cart, got %v", err)
	}

	if _, err := cart.Add(ctx, entity.UserOwner(user.ID), dto.CartAddRequest{ProductID: product.ID}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := orders.Checkout(ctx, user.ID, withMethod(base, "courier", "")); !errors.Is(err, ErrAddressRequired) {
		t.Fatalf("expected address required, got %v", err)
	}

	// 加入购物车后库存被清空
	zero := 0
	if err := repo.UpdateProduct(ctx, product.ID, entity.ProductUpdates{Stock: &zero}, nil, nil); err != nil {
		t.Fatalf("update stock: %v", err)
	}
	if _, err := orders.Checkout(ctx, user.ID, withMethod(base, "pickup", "")); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected out of stock, got %v", err)
	}

	one := 1
	if err := repo.UpdateProduct(ctx, product.ID, entity.ProductUpdates{Stock: &one}, nil, nil); err != nil {
		t.Fatalf("restore stock: %v", err)
	}
	detail, err := orders.Checkout(ctx, user.ID, withMethod(base, "pickup", ""))
	if err != nil {
		t.Fatalf("pickup checkout: %v", err)
	}
	if detail.DeliveryCost != 0 || detail.Address != "Москва, ул. Тверская, 1" {
		t.Fatalf("unexpected pickup order: %+v", detail)
	}
}

func withMethod(req dto.CheckoutRequest, method, address string) dto.CheckoutRequest {
	req.DeliveryMethod = method
	req.Address = address
	return req
}

func TestUpdateOrderStatus(t *testing.T) {
	repo, orders, cart := newOrderFixture(t)
	ctx := context.Background()
	user := mustUser(t, repo, "status@example.com")
	product := mustProduct(t, repo, &db.Product{Name: "Свитер", Slug: "sviter", BasePrice: 3500, Stock: 4, IsActive: true})

	if _, err := cart.Add(ctx, entity.UserOwner(user.ID), dto.CartAddRequest{ProductID: product.ID, Quantity: 3}); err != nil {
		t.Fatalf("add: %v", err)
	}
	placed, err := orders.Checkout(ctx, user.ID, dto.CheckoutRequest{
		ContactName: "Олег", ContactPhone: "+7901", DeliveryMethod: "pickup", PaymentMethod: "cash",
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	tests := []struct {
		name    string
		status  string
		wantErr error
	}{
		{name: "未知状态", status: "lost", wantErr: ErrInvalidStatus},
		{name: "不能跳过流程直接送达", status: db.OrderStatusDelivered, wantErr: ErrInvalidTransition},
		{name: "确认订单", status: db.OrderStatusConfirmed},
		{name: "已确认不能回到待处理", status: db.OrderStatusPending, wantErr: ErrInvalidTransition},
		{name: "取消订单", status: db.OrderStatusCancelled},
		{name: "已取消为终态", status: db.OrderStatusConfirmed, wantErr: ErrInvalidTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail, err := orders.UpdateStatus(ctx, placed.ID, tt.status)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("update status: %v", err)
			}
			if detail.Status != tt.status {
				t.Fatalf("status = %s, want %s", detail.Status, tt.status)
			}
		})
	}

	stored, err := repo.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if stored.Stock != 4 {
		t.Fatalf("expected stock restored to 4, got %d", stored.Stock)
	}

	dashboard, err := Dashboard(ctx, repo)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dashboard.Orders != 1 || dashboard.Revenue != 0 {
		t.Fatalf("cancelled order must not count as revenue: %+v", dashboard)
	}
	if dashboard.Customers != 1 || dashboard.Products != 1 {
		t.Fatalf("unexpected counters: %+v", dashboard)
	}
	var cancelled int64
	for _, c := range dashboard.OrdersByStatus {
		if c.Status == db.OrderStatusCancelled {
			cancelled = c.Count
		}
	}
	if cancelled != 1 {
		t.Fatalf("expected 1 cancelled order, got %d", cancelled)
	}
	if len(dashboard.RecentOrders) != 1 {
		t.Fatalf("expected recent order, got %d", len(dashboard.RecentOrders))
	}
}
