package service

import (
	"context"
	"errors"
	"fmt"

	"shop/internal/entity"
	"shop/internal/entity/converter"
	"shop/internal/entity/dto"
	"shop/internal/model"

	"gorm.io/gorm"
)

// FavoriteService 收藏服务
type FavoriteService struct {
	repo model.Repository
}

// NewFavoriteService 创建收藏服务实例
func NewFavoriteService(repo model.Repository) *FavoriteService {
	return &FavoriteService{repo: repo}
}

// List 返回收藏列表
func (s *FavoriteService) List(ctx context.Context, owner entity.Owner) (dto.FavoriteListResponse, error) {
	if owner.IsZero() {
		return dto.FavoriteListResponse{}, ErrOwnerRequired
	}
	favorites, err := s.repo.ListFavorites(ctx, owner)
	if err != nil {
		return dto.FavoriteListResponse{}, err
	}
	items := make([]dto.FavoriteItem, 0, len(favorites))
	for i := range favorites {
		fav := &favorites[i]
		if fav.Product == nil {
			continue
		}
		items = append(items, dto.FavoriteItem{
			ID:        fav.ID,
			ProductID: fav.ProductID,
			CreatedAt: fav.CreatedAt,
			Product:   converter.ProductToCard(fav.Product),
		})
	}
	return dto.FavoriteListResponse{Items: items, Total: len(items)}, nil
}

// Add 加入收藏；已收藏时不报错。返回是否新建。
func (s *FavoriteService) Add(ctx context.Context, owner entity.Owner, productID uint) (bool, error) {
	if owner.IsZero() {
		return false, ErrOwnerRequired
	}
	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrProductUnavailable
		}
		return false, err
	}
	if !product.IsActive {
		return false, ErrProductUnavailable
	}
	return s.repo.AddFavorite(ctx, owner, productID)
}

// Remove 取消收藏
func (s *FavoriteService) Remove(ctx context.Context, owner entity.Owner, productID uint) error {
	if owner.IsZero() {
		return ErrOwnerRequired
	}
	return s.repo.RemoveFavorite(ctx, owner, productID)
}

// Check 判断商品是否已收藏；没有归属方时视为未收藏
func (s *FavoriteService) Check(ctx context.Context, owner entity.Owner, productID uint) (dto.FavoriteCheckResponse, error) {
	resp := dto.FavoriteCheckResponse{ProductID: productID}
	if owner.IsZero() {
		return resp, nil
	}
	ok, err := s.repo.IsFavorite(ctx, owner, productID)
	if err != nil {
		return resp, err
	}
	resp.IsFavorite = ok
	return resp, nil
}

// Sync 把访客收藏迁移到用户名下，重复的跳过，访客记录删除
func (s *FavoriteService) Sync(ctx context.Context, guestID string, userID uint) (dto.FavoriteSyncResponse, error) {
	guest := entity.GuestOwner(guestID)
	if guest.GuestID == "" {
		return dto.FavoriteSyncResponse{}, ErrOwnerRequired
	}
	if userID == 0 {
		return dto.FavoriteSyncResponse{}, ErrOwnerRequired
	}
	moved, err := s.repo.SyncGuestFavorites(ctx, guest.GuestID, userID)
	if err != nil {
		return dto.FavoriteSyncResponse{}, fmt.Errorf("sync guest favorites: %w", err)
	}
	return dto.FavoriteSyncResponse{Synced: moved, GuestIDCleared: true}, nil
}
