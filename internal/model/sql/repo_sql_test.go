package sql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"shop/internal/entity"
	"shop/internal/entity/db"
	"shop/internal/entity/dto"
	"shop/internal/model"
	"shop/internal/model/sql"

	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) *sql.GormRepository {
	t.Helper()
	repo, err := model.OpenSQLiteRepository(model.MemoryDSN)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := repo.DB().DB(); err == nil {
			sqlDB.Close()
		}
	})
	return repo
}

func floatPtr(v float64) *float64 { return &v }

func createUser(t *testing.T, repo *sql.GormRepository, email string) *db.User {
	t.Helper()
	user := &db.User{Email: email, PasswordHash: "x", Role: db.UserRoleUser, IsActive: true}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createProduct(t *testing.T, repo *sql.GormRepository, product *db.Product) *db.Product {
	t.Helper()
	if err := repo.CreateProduct(context.Background(), product); err != nil {
		t.Fatalf("create product %s: %v", product.Slug, err)
	}
	return product
}

func TestListProductsFilters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	brand := &db.Brand{Name: "Zara", Slug: "zara", IsActive: true}
	if err := repo.CreateBrand(ctx, brand); err != nil {
		t.Fatalf("create brand: %v", err)
	}
	createProduct(t, repo, &db.Product{Name: "Платье", Slug: "plate", BrandID: &brand.ID, BasePrice: 5000, SalePrice: floatPtr(4000), Stock: 3, IsActive: true})
	createProduct(t, repo, &db.Product{Name: "Куртка", Slug: "kurtka", BasePrice: 9000, IsActive: true,
		Variants: []db.ProductVariant{{SKU: "K-M", Name: "M", Stock: 2, IsActive: true}}})
	createProduct(t, repo, &db.Product{Name: "Шарф", Slug: "sharf", BasePrice: 1000, SalePrice: floatPtr(1200), IsActive: true})
	createProduct(t, repo, &db.Product{Name: "Архив", Slug: "arhiv", BasePrice: 100, Stock: 10, IsActive: false})

	tests := []struct {
		name  string
		query dto.ProductQuery
		want  int64
	}{
		{"默认只返回上架商品", dto.ProductQuery{}, 3},
		{"包含下架商品", dto.ProductQuery{IncludeInactive: true}, 4},
		{"按品牌过滤", dto.ProductQuery{Brand: "zara"}, 1},
		{"折扣商品不含高于原价的折扣价", dto.ProductQuery{OnSale: true}, 1},
		{"有库存包含规格库存", dto.ProductQuery{InStock: true}, 2},
		{"关键词搜索不区分大小写", dto.ProductQuery{Search: "куртка"}, 1},
		{"关键词搜索前缀", dto.ProductQuery{Search: "Курт"}, 1},
		{"关键词无匹配", dto.ProductQuery{Search: "носки"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := tt.query
			_, meta, err := repo.ListProducts(ctx, &query)
			if err != nil {
				t.Fatalf("ListProducts error: %v", err)
			}
			if meta.Total != tt.want {
				t.Fatalf("total = %d, want %d", meta.Total, tt.want)
			}
		})
	}

	brands, err := repo.ListBrands(ctx, true)
	if err != nil {
		t.Fatalf("ListBrands error: %v", err)
	}
	if len(brands) != 1 || brands[0].ProductCount != 1 {
		t.Fatalf("unexpected brands %+v", brands)
	}
}

func TestUpdateProductKeepsVariantIDsBySKU(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	product := createProduct(t, repo, &db.Product{Name: "Рубашка", Slug: "rubashka", BasePrice: 2000, IsActive: true,
		Variants: []db.ProductVariant{
			{SKU: "R-S", Name: "S", Stock: 1, IsActive: true},
			{SKU: "R-M", Name: "M", Stock: 1, IsActive: true},
		}})
	keptID := product.Variants[0].ID

	variants := []db.ProductVariant{
		{SKU: "R-S", Name: "S", Stock: 5, IsActive: true},
		{SKU: "R-L", Name: "L", Stock: 2, IsActive: true},
	}
	name := "Рубашка льняная"
	if err := repo.UpdateProduct(ctx, product.ID, entity.ProductUpdates{Name: &name}, &variants, nil); err != nil {
		t.Fatalf("UpdateProduct error: %v", err)
	}

	updated, err := repo.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetProduct error: %v", err)
	}
	if updated.Name != name {
		t.Fatalf("name = %q, want %q", updated.Name, name)
	}
	if len(updated.Variants) != 2 {
		t.Fatalf("variants = %d, want 2", len(updated.Variants))
	}
	if updated.Variants[0].ID != keptID || updated.Variants[0].Stock != 5 {
		t.Fatalf("variant R-S should keep id %d with stock 5, got %+v", keptID, updated.Variants[0])
	}
	if err := repo.UpdateProduct(ctx, 9999, entity.ProductUpdates{Name: &name}, nil, nil); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPlaceOrderDecrementsStockAndClearsCart(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	user := createUser(t, repo, "buyer@example.com")
	owner := entity.UserOwner(user.ID)

	product := createProduct(t, repo, &db.Product{Name: "Кеды", Slug: "kedy", BasePrice: 3000, Stock: 2, IsActive: true})
	if err := repo.CreateCartItem(ctx, &db.CartItem{UserID: owner.UserIDPtr(), ProductID: product.ID, Quantity: 2, Price: 3000}); err != nil {
		t.Fatalf("create cart item: %v", err)
	}

	order := &db.Order{
		UserID: user.ID,
		Status: db.OrderStatusPending,
		Total:  6000,
		Items:  []db.OrderItem{{ProductID: product.ID, ProductName: product.Name, UnitPrice: 3000, Quantity: 2, LineTotal: 6000}},
	}
	numberer := func(id uint) (string, error) { return "ORD-" + string(rune('A'+id)), nil }
	if err := repo.PlaceOrder(ctx, order, owner, numberer); err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}
	if order.Number != "ORD-B" {
		t.Fatalf("order number = %q", order.Number)
	}

	stored, err := repo.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetProduct error: %v", err)
	}
	if stored.Stock != 0 {
		t.Fatalf("stock = %d, want 0", stored.Stock)
	}
	items, err := repo.ListCartItems(ctx, owner)
	if err != nil {
		t.Fatalf("ListCartItems error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cart should be empty, got %d items", len(items))
	}

	again := &db.Order{
		UserID: user.ID,
		Status: db.OrderStatusPending,
		Items:  []db.OrderItem{{ProductID: product.ID, ProductName: product.Name, Quantity: 1}},
	}
	if err := repo.PlaceOrder(ctx, again, owner, numberer); !errors.Is(err, entity.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	count, err := repo.CountOrders(ctx)
	if err != nil {
		t.Fatalf("CountOrders error: %v", err)
	}
	if count != 1 {
		t.Fatalf("failed order must roll back, count = %d", count)
	}

	found, err := repo.GetOrderByNumber(ctx, "ORD-B")
	if err != nil {
		t.Fatalf("GetOrderByNumber error: %v", err)
	}
	if len(found.Items) != 1 || found.User == nil {
		t.Fatalf("order relations not loaded: %+v", found)
	}
}

func TestUpdateOrderStatusRestocksAndDetectsConflict(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	user := createUser(t, repo, "cancel@example.com")

	product := createProduct(t, repo, &db.Product{Name: "Сумка", Slug: "sumka", BasePrice: 4000, IsActive: true,
		Variants: []db.ProductVariant{{SKU: "S-1", Name: "Чёрная", Stock: 3, IsActive: true}}})
	variantID := product.Variants[0].ID

	order := &db.Order{
		UserID: user.ID,
		Status: db.OrderStatusPending,
		Total:  8000,
		Items:  []db.OrderItem{{ProductID: product.ID, VariantID: &variantID, ProductName: product.Name, Quantity: 2}},
	}
	if err := repo.PlaceOrder(ctx, order, entity.UserOwner(user.ID), nil); err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}

	if err := repo.UpdateOrderStatus(ctx, order.ID, db.OrderStatusPending, db.OrderStatusCancelled, true); err != nil {
		t.Fatalf("UpdateOrderStatus error: %v", err)
	}
	variant, err := repo.GetVariant(ctx, variantID)
	if err != nil {
		t.Fatalf("GetVariant error: %v", err)
	}
	if variant.Stock != 3 {
		t.Fatalf("variant stock = %d, want 3 after restock", variant.Stock)
	}

	err = repo.UpdateOrderStatus(ctx, order.ID, db.OrderStatusPending, db.OrderStatusConfirmed, false)
	if !errors.Is(err, entity.ErrStatusConflict) {
		t.Fatalf("expected ErrStatusConflict, got %v", err)
	}
	if err := repo.UpdateOrderStatus(ctx, 4242, db.OrderStatusPending, db.OrderStatusConfirmed, false); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	revenue, err := repo.SumRevenue(ctx, db.OrderStatusCancelled)
	if err != nil {
		t.Fatalf("SumRevenue error: %v", err)
	}
	if revenue != 0 {
		t.Fatalf("cancelled orders must not count as revenue, got %v", revenue)
	}
	counts, err := repo.CountOrdersByStatus(ctx)
	if err != nil {
		t.Fatalf("CountOrdersByStatus error: %v", err)
	}
	if counts[db.OrderStatusCancelled] != 1 {
		t.Fatalf("unexpected status counts %v", counts)
	}
}

func TestMergeGuestCartSumsQuantities(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	user := createUser(t, repo, "merge@example.com")
	guest := entity.GuestOwner("6f9619ff-8b86-d011-b42d-00c04fc964ff")

	first := createProduct(t, repo, &db.Product{Name: "A", Slug: "a", BasePrice: 100, Stock: 10, IsActive: true})
	second := createProduct(t, repo, &db.Product{Name: "B", Slug: "b", BasePrice: 200, Stock: 10, IsActive: true})

	mustCreate := func(item *db.CartItem) {
		if err := repo.CreateCartItem(ctx, item); err != nil {
			t.Fatalf("create cart item: %v", err)
		}
	}
	mustCreate(&db.CartItem{UserID: &user.ID, ProductID: first.ID, Quantity: 1})
	mustCreate(&db.CartItem{GuestID: guest.GuestID, ProductID: first.ID, Quantity: 2})
	mustCreate(&db.CartItem{GuestID: guest.GuestID, ProductID: second.ID, Quantity: 1})

	merged, err := repo.MergeGuestCart(ctx, guest.GuestID, user.ID)
	if err != nil {
		t.Fatalf("MergeGuestCart error: %v", err)
	}
	if merged != 2 {
		t.Fatalf("merged = %d, want 2", merged)
	}

	items, err := repo.ListCartItems(ctx, entity.UserOwner(user.ID))
	if err != nil {
		t.Fatalf("ListCartItems error: %v", err)
	}
	if len(items) != 2 || items[0].Quantity != 3 || items[1].Quantity != 1 {
		t.Fatalf("unexpected user cart %+v", items)
	}
	guestItems, err := repo.ListCartItems(ctx, guest)
	if err != nil {
		t.Fatalf("ListCartItems guest error: %v", err)
	}
	if len(guestItems) != 0 {
		t.Fatalf("guest cart should be empty, got %d", len(guestItems))
	}
}

func TestMergeGuestCartCapsAtStock(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	user := createUser(t, repo, "cap@example.com")
	guest := entity.GuestOwner("9a7b3c2d-1e4f-4a5b-8c6d-7e8f9a0b1c2d")

	plain := createProduct(t, repo, &db.Product{Name: "Шапка", Slug: "shapka", BasePrice: 500, Stock: 3, IsActive: true})
	sized := createProduct(t, repo, &db.Product{
		Name: "Куртка", Slug: "kurtka", BasePrice: 9000, Stock: 100, IsActive: true,
		Variants: []db.ProductVariant{{SKU: "KR-M", Name: "M", Stock: 2, IsActive: true}},
	})
	variantID := sized.Variants[0].ID

	mustCreate := func(item *db.CartItem) {
		if err := repo.CreateCartItem(ctx, item); err != nil {
			t.Fatalf("create cart item: %v", err)
		}
	}
	mustCreate(&db.CartItem{UserID: &user.ID, ProductID: plain.ID, Quantity: 3})
	mustCreate(&db.CartItem{GuestID: guest.GuestID, ProductID: plain.ID, Quantity: 3})
	mustCreate(&db.CartItem{GuestID: guest.GuestID, ProductID: sized.ID, VariantID: &variantID, Quantity: 5})

	if _, err := repo.MergeGuestCart(ctx, guest.GuestID, user.ID); err != nil {
		t.Fatalf("MergeGuestCart error: %v", err)
	}

	items, err := repo.ListCartItems(ctx, entity.UserOwner(user.ID))
	if err != nil {
		t.Fatalf("ListCartItems error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %+v", items)
	}
	if items[0].Quantity != 3 {
		t.Fatalf("summed line should be capped at product stock 3, got %d", items[0].Quantity)
	}
	if items[1].Quantity != 2 {
		t.Fatalf("moved line should be capped at variant stock 2, got %d", items[1].Quantity)
	}
}

func TestSyncGuestFavoritesSkipsDuplicates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	user := createUser(t, repo, "fav@example.com")
	userOwner := entity.UserOwner(user.ID)
	guest := entity.GuestOwner("0b5c4c3e-3f2a-4d55-9f0e-2c1a4f6b7d88")

	first := createProduct(t, repo, &db.Product{Name: "A", Slug: "fa", BasePrice: 100, IsActive: true})
	second := createProduct(t, repo, &db.Product{Name: "B", Slug: "fb", BasePrice: 100, IsActive: true})

	if _, err := repo.AddFavorite(ctx, userOwner, first.ID); err != nil {
		t.Fatalf("AddFavorite error: %v", err)
	}
	created, err := repo.AddFavorite(ctx, userOwner, first.ID)
	if err != nil || created {
		t.Fatalf("second AddFavorite should be a no-op, created=%v err=%v", created, err)
	}
	for _, id := range []uint{first.ID, second.ID} {
		if _, err := repo.AddFavorite(ctx, guest, id); err != nil {
			t.Fatalf("AddFavorite guest error: %v", err)
		}
	}

	moved, err := repo.SyncGuestFavorites(ctx, guest.GuestID, user.ID)
	if err != nil {
		t.Fatalf("SyncGuestFavorites error: %v", err)
	}
	if moved != 1 {
		t.Fatalf("moved = %d, want 1", moved)
	}
	favorites, err := repo.ListFavorites(ctx, userOwner)
	if err != nil {
		t.Fatalf("ListFavorites error: %v", err)
	}
	if len(favorites) != 2 {
		t.Fatalf("user favorites = %d, want 2", len(favorites))
	}
	if ok, _ := repo.IsFavorite(ctx, guest, second.ID); ok {
		t.Fatal("guest favorites should be removed after sync")
	}

	if _, err := repo.AddFavorite(ctx, guest, first.ID); err != nil {
		t.Fatalf("AddFavorite guest error: %v", err)
	}
	purged, err := repo.PurgeGuestFavorites(ctx, time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("PurgeGuestFavorites error: %v", err)
	}
	if purged != 1 {
		t.Fatalf("purged = %d, want 1", purged)
	}
}

func TestBannerVisibilityWindow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	banners := []*db.Banner{
		{Title: "Всегда", ImageURL: "/a.png", IsActive: true, SortOrder: 2},
		{Title: "Скоро", ImageURL: "/b.png", IsActive: true, StartsAt: &future},
		{Title: "Сейчас", ImageURL: "/c.png", IsActive: true, StartsAt: &past, EndsAt: &future, SortOrder: 1},
		{Title: "Выключен", ImageURL: "/d.png", IsActive: false},
	}
	for _, b := range banners {
		if err := repo.CreateBanner(ctx, b); err != nil {
			t.Fatalf("CreateBanner error: %v", err)
		}
	}

	visible, err := repo.ListBanners(ctx, &now)
	if err != nil {
		t.Fatalf("ListBanners error: %v", err)
	}
	if len(visible) != 2 || visible[0].Title != "Сейчас" || visible[1].Title != "Всегда" {
		t.Fatalf("unexpected visible banners %+v", visible)
	}
	all, err := repo.ListBanners(ctx, nil)
	if err != nil {
		t.Fatalf("ListBanners error: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("admin listing = %d, want 4", len(all))
	}
}

func TestListUsersKeywordMatchesCyrillic(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	user := &db.User{Email: "anna@example.com", PasswordHash: "x", DisplayName: "Анна Иванова", Role: db.UserRoleUser, IsActive: true}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	createUser(t, repo, "boris@example.com")

	for _, keyword := range []string{"анна", "Иванова", "ANNA@"} {
		users, meta, err := repo.ListUsers(ctx, &dto.UserQuery{Keyword: keyword})
		if err != nil {
			t.Fatalf("ListUsers(%q) error: %v", keyword, err)
		}
		if meta.Total != 1 || users[0].ID != user.ID {
			t.Fatalf("ListUsers(%q) total = %d", keyword, meta.Total)
		}
	}
}

func TestSlugExists(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	brand := &db.Brand{Name: "Mango", Slug: "mango", IsActive: true}
	if err := repo.CreateBrand(ctx, brand); err != nil {
		t.Fatalf("CreateBrand error: %v", err)
	}

	exists, err := repo.SlugExists(ctx, "brands", "mango", 0)
	if err != nil || !exists {
		t.Fatalf("expected slug to exist, got %v %v", exists, err)
	}
	exists, err = repo.SlugExists(ctx, "brands", "mango", brand.ID)
	if err != nil || exists {
		t.Fatalf("own slug should be excluded, got %v %v", exists, err)
	}
	if _, err := repo.SlugExists(ctx, "users", "x", 0); err == nil {
		t.Fatal("expected error for table without slug")
	}
	if err := repo.CreateBrand(ctx, &db.Brand{Name: "Mango 2", Slug: "mango"}); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected ErrDuplicatedKey, got %v", err)
	}
}
