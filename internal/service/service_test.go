package service

import (
	"context"
	"errors"
	"testing"

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

func mustUser(t *testing.T, repo model.Repository, email string) *db.User {
	t.Helper()
	user := &db.User{Email: email, PasswordHash: "x", Role: db.UserRoleUser, IsActive: true}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustProduct(t *testing.T, repo model.Repository, product *db.Product) *db.Product {
	t.Helper()
	if err := repo.CreateProduct(context.Background(), product); err != nil {
		t.Fatalf("create product %s: %v", product.Slug, err)
	}
	return product
}

func TestCartAddMergesLinesAndCapsAtStock(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	product := mustProduct(t, repo, &db.Product{Name: "Футболка", Slug: "futbolka", BasePrice: 1500, Stock: 3, IsActive: true})
	svc := NewCartService(repo)
	owner := entity.GuestOwner("guest-1")

	if _, err := svc.Add(ctx, owner, dto.CartAddRequest{ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add: %v", err)
	}
	cart, err := svc.Add(ctx, owner, dto.CartAddRequest{ProductID: product.ID, Quantity: 5})
	if err != nil {
		t.Fatalf("add again: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected merged line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity capped at 3, got %d", cart.Items[0].Quantity)
	}
	if cart.Subtotal != 4500 {
		t.Fatalf("expected subtotal 4500, got %v", cart.Subtotal)
	}
	if cart.SubtotalFormatted != "4 500 ₽" {
		t.Fatalf("unexpected formatted subtotal %q", cart.SubtotalFormatted)
	}
}

func TestCartAddRules(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	withVariants := mustProduct(t, repo, &db.Product{
		Name: "Кеды", Slug: "kedy", BasePrice: 4000, IsActive: true,
		Variants: []db.ProductVariant{
			{SKU: "KD-40", Name: "40", Stock: 2, IsActive: true},
			{SKU: "KD-41", Name: "41", Stock: 0, IsActive: true},
		},
	})
	other := mustProduct(t, repo, &db.Product{
		Name: "Шарф", Slug: "sharf", BasePrice: 900, Stock: 1, IsActive: true,
		Variants: []db.ProductVariant{{SKU: "SH-1", Name: "Серый", Stock: 1, IsActive: true}},
	})
	inactive := mustProduct(t, repo, &db.Product{Name: "Архив", Slug: "arhiv", BasePrice: 100, Stock: 5})
	soldOut := mustProduct(t, repo, &db.Product{Name: "Кепка", Slug: "kepka", BasePrice: 700, Stock: 0, IsActive: true})

	svc := NewCartService(repo)
	owner := entity.GuestOwner("guest-2")
	emptyVariant := withVariants.Variants[1].ID
	var zero uint
	foreignVariant := other.Variants[0].ID

	tests := []struct {
		name    string
		req     dto.CartAddRequest
		owner   entity.Owner
		wantErr error
	}{
		{name: "有规格的商品必须选择规格", req: dto.CartAddRequest{ProductID: withVariants.ID}, owner: owner, wantErr: ErrVariantRequired},
		{name: "规格不属于商品", req: dto.CartAddRequest{ProductID: withVariants.ID, VariantID: &foreignVariant}, owner: owner, wantErr: ErrVariantMismatch},
		{name: "规格无库存", req: dto.CartAddRequest{ProductID: withVariants.ID, VariantID: &emptyVariant}, owner: owner, wantErr: ErrOutOfStock},
		{name: "商品已下架", req: dto.CartAddRequest{ProductID: inactive.ID}, owner: owner, wantErr: ErrProductUnavailable},
		{name: "商品不存在", req: dto.CartAddRequest{ProductID: 9999}, owner: owner, wantErr: ErrProductUnavailable},
		{name: "商品无库存", req: dto.CartAddRequest{ProductID: soldOut.ID}, owner: owner, wantErr: ErrOutOfStock},
		{name: "缺少归属方", req: dto.CartAddRequest{ProductID: soldOut.ID}, owner: entity.Owner{}, wantErr: ErrOwnerRequired},
		{name: "规格 ID 为 0 视为未选择", req: dto.CartAddRequest{ProductID: withVariants.ID, VariantID: &zero}, owner: owner, wantErr: ErrVariantRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, tt.owner, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("规格 ID 为 0 的无规格商品合并为同一条目", func(t *testing.T) {
		plain := mustProduct(t, repo, &db.Product{Name: "Ремень", Slug: "remen", BasePrice: 1200, Stock: 5, IsActive: true})
		zeroOwner := entity.GuestOwner("guest-zero")
		for i := 0; i < 2; i++ {
			if _, err := svc.Add(ctx, zeroOwner, dto.CartAddRequest{ProductID: plain.ID, VariantID: &zero, Quantity: 1}); err != nil {
				t.Fatalf("add #%d: %v", i+1, err)
			}
		}
		items, err := repo.ListCartItems(ctx, zeroOwner)
		if err != nil {
			t.Fatalf("list cart: %v", err)
		}
		if len(items) != 1 || items[0].Quantity != 2 || items[0].VariantID != nil {
			t.Fatalf("expected one line with quantity 2 and no variant, got %+v", items)
		}
	})
}

func TestCartUpdateAndRemove(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	product := mustProduct(t, repo, &db.Product{Name: "Носки", Slug: "noski", BasePrice: 300, SalePrice: floatPtr(250), Stock: 10, IsActive: true})
	svc := NewCartService(repo)
	owner := entity.GuestOwner("guest-3")

	cart, err := svc.Add(ctx, owner, dto.CartAddRequest{ProductID: product.ID})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	itemID := cart.Items[0].ID
	if cart.Items[0].UnitPrice != 250 || cart.Items[0].ComparePrice != 300 {
		t.Fatalf("unexpected prices %+v", cart.Items[0])
	}

	cart, err = svc.Update(ctx, owner, itemID, 4)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if cart.ItemCount != 4 || cart.Subtotal != 1000 {
		t.Fatalf("unexpected cart after update: %+v", cart)
	}

	cart, err = svc.Update(ctx, owner, itemID, 0)
	if err != nil {
		t.Fatalf("update to zero: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cart.Items))
	}

	if _, err := svc.Remove(ctx, owner, itemID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found on second remove, got %v", err)
	}
}

func TestMergeGuestData(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	user := mustUser(t, repo, "buyer@example.com")
	first := mustProduct(t, repo, &db.Product{Name: "Сумка", Slug: "sumka", BasePrice: 3000, Stock: 5, IsActive: true})
	second := mustProduct(t, repo, &db.Product{Name: "Ремень", Slug: "remen", BasePrice: 1200, Stock: 5, IsActive: true})

	favorites := NewFavoriteService(repo)
	cart := NewCartService(repo)
	guestID := "6f1c2b9e-4a43-4c55-9f3e-0a1b2c3d4e5f"
	guest := entity.GuestOwner(guestID)
	account := entity.UserOwner(user.ID)

	for _, id := range []uint{first.ID, second.ID} {
		if _, err := favorites.Add(ctx, guest, id); err != nil {
			t.Fatalf("guest favorite: %v", err)
		}
	}
	if _, err := favorites.Add(ctx, account, first.ID); err != nil {
		t.Fatalf("user favorite: %v", err)
	}
	if _, err := cart.Add(ctx, guest, dto.CartAddRequest{ProductID: first.ID, Quantity: 2}); err != nil {
		t.Fatalf("guest cart: %v", err)
	}
	if _, err := cart.Add(ctx, account, dto.CartAddRequest{ProductID: first.ID, Quantity: 1}); err != nil {
		t.Fatalf("user cart: %v", err)
	}

	result := MergeGuestData(ctx, favorites, cart, guestID, user.ID)
	if !result.Cleared {
		t.Fatal("expected guest id to be cleared")
	}
	if result.Favorites != 1 {
		t.Fatalf("expected 1 favorite moved (duplicate skipped), got %d", result.Favorites)
	}

	list, err := favorites.List(ctx, account)
	if err != nil {
		t.Fatalf("list favorites: %v", err)
	}
	if list.Total != 2 {
		t.Fatalf("expected 2 favorites, got %d", list.Total)
	}
	guestList, err := favorites.List(ctx, guest)
	if err != nil {
		t.Fatalf("list guest favorites: %v", err)
	}
	if guestList.Total != 0 {
		t.Fatalf("expected guest favorites removed, got %d", guestList.Total)
	}

	userCart, err := cart.Get(ctx, account)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(userCart.Items) != 1 || userCart.Items[0].Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %+v", userCart.Items)
	}

	if res := MergeGuestData(ctx, favorites, cart, "not-a-uuid", user.ID); res.Cleared {
		t.Fatal("invalid guest id must not be reported as cleared")
	}
}

func TestFavoriteCheckAndIdempotentAdd(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	product := mustProduct(t, repo, &db.Product{Name: "Очки", Slug: "ochki", BasePrice: 2500, Stock: 1, IsActive: true})
	svc := NewFavoriteService(repo)
	owner := entity.GuestOwner("guest-fav")

	created, err := svc.Add(ctx, owner, product.ID)
	if err != nil || !created {
		t.Fatalf("first add: created=%v err=%v", created, err)
	}
	created, err = svc.Add(ctx, owner, product.ID)
	if err != nil || created {
		t.Fatalf("second add must be a no-op: created=%v err=%v", created, err)
	}

	check, err := svc.Check(ctx, owner, product.ID)
	if err != nil || !check.IsFavorite {
		t.Fatalf("expected favorite, got %+v err=%v", check, err)
	}
	if err := svc.Remove(ctx, owner, product.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	check, _ = svc.Check(ctx, owner, product.ID)
	if check.IsFavorite {
		t.Fatal("expected favorite removed")
	}
	anonymous, err := svc.Check(ctx, entity.Owner{}, product.ID)
	if err != nil || anonymous.IsFavorite {
		t.Fatalf("anonymous check: %+v err=%v", anonymous, err)
	}
}
