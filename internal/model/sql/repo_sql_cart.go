package sql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shop/internal/entity"
	"shop/internal/entity/db"

	"gorm.io/gorm"
)

var errOwnerRequired = errors.New("owner is required")

// ownerScope restricts a query to rows owned by the user or, for guests, to unclaimed rows of the guest id.
func ownerScope(owner entity.Owner) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if owner.IsUser() {
			return tx.Where("user_id = ?", owner.UserID)
		}
		return tx.Where("user_id IS NULL AND guest_id = ?", owner.GuestValue())
	}
}

func variantScope(variantID *uint) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if variantID == nil || *variantID == 0 {
			return tx.Where("variant_id IS NULL")
		}
		return tx.Where("variant_id = ?", *variantID)
	}
}

// ListCartItems returns the owner's cart lines with product and variant.
func (r *GormRepository) ListCartItems(ctx context.Context, owner entity.Owner) ([]db.CartItem, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if owner.IsZero() {
		return nil, errOwnerRequired
	}
	var items []db.CartItem
	err := r.db.WithContext(ctx).
		Scopes(ownerScope(owner)).
		Preload("Product").
		Preload("Product.Brand").
		Preload("Variant").
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetCartItem loads a single cart line of the owner.
func (r *GormRepository) GetCartItem(ctx context.Context, owner entity.Owner, id uint) (*db.CartItem, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if owner.IsZero() {
		return nil, errOwnerRequired
	}
	var item db.CartItem
	err := r.db.WithContext(ctx).
		Scopes(ownerScope(owner)).
		Preload("Product").
		Preload("Variant").
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindCartItem looks up the owner's line for a product and variant.
func (r *GormRepository) FindCartItem(ctx context.Context, owner entity.Owner, productID uint, variantID *uint) (*db.CartItem, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if owner.IsZero() {
		return nil, errOwnerRequired
	}
	var item db.CartItem
	err := r.db.WithContext(ctx).
		Scopes(ownerScope(owner), variantScope(variantID)).
		Where("product_id = ?", productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateCartItem inserts a cart line.
func (r *GormRepository) CreateCartItem(ctx context.Context, item *db.CartItem) error {
	if err := r.ready(); err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("cart item is nil")
	}
	if item.UserID == nil && strings.TrimSpace(item.GuestID) == "" {
		return errOwnerRequired
	}
	return r.db.WithContext(ctx).Omit("Product", "Variant").Create(item).Error
}

// UpdateCartItem sets the quantity and line price.
func (r *GormRepository) UpdateCartItem(ctx context.Context, id uint, quantity int, price float64) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid cart item id")
	}
	result := r.db.WithContext(ctx).Model(&db.CartItem{}).Where("id = ?", id).Updates(map[string]interface{}{
		"quantity": quantity,
		"price":    price,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCartItem removes a line of the owner.
func (r *GormRepository) DeleteCartItem(ctx context.Context, owner entity.Owner, id uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	if owner.IsZero() {
		return errOwnerRequired
	}
	result := r.db.WithContext(ctx).Scopes(ownerScope(owner)).Where("id = ?", id).Delete(&db.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearCart removes every line of the owner.
func (r *GormRepository) ClearCart(ctx context.Context, owner entity.Owner) error {
	if err := r.ready(); err != nil {
		return err
	}
	if owner.IsZero() {
		return errOwnerRequired
	}
	return r.db.WithContext(ctx).Scopes(ownerScope(owner)).Delete(&db.CartItem{}).Error
}

// MergeGuestCart moves the guest's lines to the user. Lines for the same product and variant are summed.
func (r *GormRepository) MergeGuestCart(ctx context.Context, guestID string, userID uint) (int, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	guest := entity.GuestOwner(guestID)
	if guest.IsZero() || userID == 0 {
		return 0, errOwnerRequired
	}
	user := entity.UserOwner(userID)

	merged := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var guestItems []db.CartItem
		if err := tx.Scopes(ownerScope(guest)).Order("id ASC").Find(&guestItems).Error; err != nil {
			return err
		}
		for _, item := range guestItems {
			var existing db.CartItem
			err := tx.Scopes(ownerScope(user), variantScope(item.VariantID)).
				Where("product_id = ?", item.ProductID).
				First(&existing).Error
			stock, stockErr := lineStock(tx, item.ProductID, item.VariantID)
			if stockErr != nil {
				return stockErr
			}
			switch {
			case err == nil:
				if err := tx.Model(&db.CartItem{}).Where("id = ?", existing.ID).
					Update("quantity", capQuantity(existing.Quantity+item.Quantity, stock)).Error; err != nil {
					return err
				}
				if err := tx.Delete(&db.CartItem{}, item.ID).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Model(&db.CartItem{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
					"user_id":  userID,
					"guest_id": "",
					"quantity": capQuantity(item.Quantity, stock),
				}).Error; err != nil {
					return err
				}
			default:
				return err
			}
			merged++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return merged, nil
}

// lineStock reads the stock backing a cart line: the variant's when set, otherwise the product's.
// A deleted product or variant counts as zero stock.
func lineStock(tx *gorm.DB, productID uint, variantID *uint) (int, error) {
	var stocks []int
	query := tx.Model(&db.Product{}).Where("id = ?", productID)
	if variantID != nil && *variantID != 0 {
		query = tx.Model(&db.ProductVariant{}).Where("id = ? AND product_id = ?", *variantID, productID)
	}
	if err := query.Pluck("stock", &stocks).Error; err != nil {
		return 0, fmt.Errorf("load stock: %w", err)
	}
	if len(stocks) == 0 {
		return 0, nil
	}
	return stocks[0], nil
}

// capQuantity clamps a merged quantity to stock. Lines without stock keep
// their quantity so checkout reports them as unavailable.
func capQuantity(quantity, stock int) int {
	if stock > 0 && quantity > stock {
		return stock
	}
	return quantity
}

// PurgeGuestCart deletes guest lines not touched since before.
func (r *GormRepository) PurgeGuestCart(ctx context.Context, before time.Time) (int64, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	result := r.db.WithContext(ctx).
		Where("user_id IS NULL AND updated_at < ?", before).
		Delete(&db.CartItem{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
