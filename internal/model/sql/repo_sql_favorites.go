package sql

import (
	"context"
	"errors"
	"time"

	"shop/internal/entity"
	"shop/internal/entity/db"

	"gorm.io/gorm"
)

// ListFavorites returns the owner's favorites, newest first.
func (r *GormRepository) ListFavorites(ctx context.Context, owner entity.Owner) ([]db.Favorite, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if owner.IsZero() {
		return nil, errOwnerRequired
	}
	var favorites []db.Favorite
	err := r.db.WithContext(ctx).
		Scopes(ownerScope(owner)).
		Preload("Product").
		Preload("Product.Brand").
		Preload("Product.Variants").
		Order("created_at DESC").
		Order("id DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

// AddFavorite stores a favorite; it reports false when it already existed.
func (r *GormRepository) AddFavorite(ctx context.Context, owner entity.Owner, productID uint) (bool, error) {
	if err := r.ready(); err != nil {
		return false, err
	}
	if owner.IsZero() {
		return false, errOwnerRequired
	}
	exists, err := r.IsFavorite(ctx, owner, productID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	favorite := db.Favorite{
		UserID:    owner.UserIDPtr(),
		GuestID:   owner.GuestValue(),
		ProductID: productID,
	}
	if err := r.db.WithContext(ctx).Omit("Product").Create(&favorite).Error; err != nil {
		return false, err
	}
	return true, nil
}

// RemoveFavorite deletes a favorite. Removing a missing favorite is not an error.
func (r *GormRepository) RemoveFavorite(ctx context.Context, owner entity.Owner, productID uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	if owner.IsZero() {
		return errOwnerRequired
	}
	return r.db.WithContext(ctx).
		Scopes(ownerScope(owner)).
		Where("product_id = ?", productID).
		Delete(&db.Favorite{}).Error
}

// IsFavorite reports whether the owner favorited the product.
func (r *GormRepository) IsFavorite(ctx context.Context, owner entity.Owner, productID uint) (bool, error) {
	if err := r.ready(); err != nil {
		return false, err
	}
	if owner.IsZero() {
		return false, errOwnerRequired
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&db.Favorite{}).
		Scopes(ownerScope(owner)).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SyncGuestFavorites copies guest favorites to the user, skipping products the user already has,
// then deletes every guest row. It returns the number of favorites moved.
func (r *GormRepository) SyncGuestFavorites(ctx context.Context, guestID string, userID uint) (int, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	guest := entity.GuestOwner(guestID)
	if guest.IsZero() || userID == 0 {
		return 0, errOwnerRequired
	}
	user := entity.UserOwner(userID)

	moved := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var guestFavorites []db.Favorite
		if err := tx.Scopes(ownerScope(guest)).Order("id ASC").Find(&guestFavorites).Error; err != nil {
			return err
		}
		for _, fav := range guestFavorites {
			var existing db.Favorite
			err := tx.Scopes(ownerScope(user)).Where("product_id = ?", fav.ProductID).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := tx.Omit("Product").Create(&db.Favorite{
				UserID:    user.UserIDPtr(),
				ProductID: fav.ProductID,
			}).Error; err != nil {
				return err
			}
			moved++
		}
		return tx.Scopes(ownerScope(guest)).Delete(&db.Favorite{}).Error
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}

// PurgeGuestFavorites deletes guest favorites created before the cutoff.
func (r *GormRepository) PurgeGuestFavorites(ctx context.Context, before time.Time) (int64, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	result := r.db.WithContext(ctx).
		Where("user_id IS NULL AND created_at < ?", before).
		Delete(&db.Favorite{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
