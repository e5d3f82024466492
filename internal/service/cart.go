package service

import (
	"context"
	"errors"
	"fmt"

	"shop/internal/entity"
	"shop/internal/entity/converter"
	"shop/internal/entity/db"
	"shop/internal/entity/dto"
	"shop/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CartService 购物车服务：加购、改数量、删除以及登录时合并访客购物车
type CartService struct {
	repo model.Repository
}

// NewCartService 创建购物车服务实例
func NewCartService(repo model.Repository) *CartService {
	return &CartService{repo: repo}
}

// Get 返回归属方的完整购物车
func (s *CartService) Get(ctx context.Context, owner entity.Owner) (dto.CartResponse, error) {
	if owner.IsZero() {
		return dto.CartResponse{}, ErrOwnerRequired
	}
	items, err := s.repo.ListCartItems(ctx, owner)
	if err != nil {
		return dto.CartResponse{}, err
	}
	return converter.CartToDTO(items), nil
}

// Add 把商品（或其规格）加入购物车。同一商品与规格的条目合并数量，数量不超过库存。
func (s *CartService) Add(ctx context.Context, owner entity.Owner, req dto.CartAddRequest) (dto.CartResponse, error) {
	if owner.IsZero() {
		return dto.CartResponse{}, ErrOwnerRequired
	}
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	// variant_id 为 0 与缺省同义，统一为 nil 后再查询与落库
	variantID := nonZeroID(req.VariantID)
	product, variant, err := s.resolvePurchasable(ctx, req.ProductID, variantID)
	if err != nil {
		return dto.CartResponse{}, err
	}
	stock := availableStock(product, variant)
	if stock <= 0 {
		return dto.CartResponse{}, &StockError{Product: product.Name, Available: 0}
	}
	price := converter.VariantPrice(product, variant).UnitPrice

	existing, err := s.repo.FindCartItem(ctx, owner, product.ID, variantID)
	switch {
	case err == nil:
		total := existing.Quantity + quantity
		if total > stock {
			total = stock
		}
		if err := s.repo.UpdateCartItem(ctx, existing.ID, total, price); err != nil {
			return dto.CartResponse{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if quantity > stock {
			quantity = stock
		}
		item := &db.CartItem{
			UserID:    owner.UserIDPtr(),
			GuestID:   owner.GuestValue(),
			ProductID: product.ID,
			VariantID: variantID,
			Quantity:  quantity,
			Price:     price,
		}
		if err := s.repo.CreateCartItem(ctx, item); err != nil {
			return dto.CartResponse{}, err
		}
	default:
		return dto.CartResponse{}, err
	}

	return s.Get(ctx, owner)
}

// Update 修改条目数量；数量为 0 时删除条目
func (s *CartService) Update(ctx context.Context, owner entity.Owner, itemID uint, quantity int) (dto.CartResponse, error) {
	if owner.IsZero() {
		return dto.CartResponse{}, ErrOwnerRequired
	}
	if quantity <= 0 {
		return s.Remove(ctx, owner, itemID)
	}

	item, err := s.repo.GetCartItem(ctx, owner, itemID)
	if err != nil {
		return dto.CartResponse{}, err
	}
	if item.Product == nil || !item.Product.IsActive {
		return dto.CartResponse{}, ErrProductUnavailable
	}
	if item.VariantID != nil && (item.Variant == nil || !item.Variant.IsActive) {
		return dto.CartResponse{}, ErrProductUnavailable
	}
	stock := availableStock(item.Product, item.Variant)
	if stock <= 0 {
		return dto.CartResponse{}, &StockError{Product: item.Product.Name, Available: 0}
	}
	if quantity > stock {
		quantity = stock
	}
	price := converter.VariantPrice(item.Product, item.Variant).UnitPrice
	if err := s.repo.UpdateCartItem(ctx, item.ID, quantity, price); err != nil {
		return dto.CartResponse{}, err
	}
	return s.Get(ctx, owner)
}

// Remove 删除一条购物车条目
func (s *CartService) Remove(ctx context.Context, owner entity.Owner, itemID uint) (dto.CartResponse, error) {
	if owner.IsZero() {
		return dto.CartResponse{}, ErrOwnerRequired
	}
	if err := s.repo.DeleteCartItem(ctx, owner, itemID); err != nil {
		return dto.CartResponse{}, err
	}
	return s.Get(ctx, owner)
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, owner entity.Owner) error {
	if owner.IsZero() {
		return ErrOwnerRequired
	}
	return s.repo.ClearCart(ctx, owner)
}

// Merge 把访客购物车并入用户购物车，返回受影响的条目数
func (s *CartService) Merge(ctx context.Context, guestID string, userID uint) (int, error) {
	guest := entity.GuestOwner(guestID)
	if guest.GuestID == "" || userID == 0 {
		return 0, nil
	}
	merged, err := s.repo.MergeGuestCart(ctx, guest.GuestID, userID)
	if err != nil {
		return 0, fmt.Errorf("merge guest cart: %w", err)
	}
	if merged > 0 {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"merged":  merged,
		}).Info("guest cart merged")
	}
	return merged, nil
}

// resolvePurchasable 校验商品与规格是否可购买
func (s *CartService) resolvePurchasable(ctx context.Context, productID uint, variantID *uint) (*db.Product, *db.ProductVariant, error) {
	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProductUnavailable
		}
		return nil, nil, err
	}
	if !product.IsActive {
		return nil, nil, ErrProductUnavailable
	}

	if variantID == nil || *variantID == 0 {
		if hasActiveVariants(product) {
			return nil, nil, ErrVariantRequired
		}
		return product, nil, nil
	}

	variant, err := s.repo.GetVariant(ctx, *variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrVariantMismatch
		}
		return nil, nil, err
	}
	if variant.ProductID != product.ID {
		return nil, nil, ErrVariantMismatch
	}
	if !variant.IsActive {
		return nil, nil, ErrProductUnavailable
	}
	return product, variant, nil
}

func hasActiveVariants(p *db.Product) bool {
	for _, v := range p.Variants {
		if v.IsActive {
			return true
		}
	}
	return false
}

func availableStock(p *db.Product, v *db.ProductVariant) int {
	if v != nil {
		return v.Stock
	}
	if p == nil {
		return 0
	}
	return p.Stock
}
