package sql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shop/internal/entity"
	"shop/internal/entity/common"
	"shop/internal/entity/db"
	"shop/internal/entity/dto"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlaceOrder stores the order with its items, decrements stock and clears the owner's cart in one transaction.
// When number is set, the public order number is derived from the generated id.
func (r *GormRepository) PlaceOrder(ctx context.Context, order *db.Order, owner entity.Owner, number entity.OrderNumberFunc) error {
	if err := r.ready(); err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("order is nil")
	}
	if len(order.Items) == 0 {
		return fmt.Errorf("order has no items")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			if err := decrementStock(tx, item); err != nil {
				return err
			}
		}

		if strings.TrimSpace(order.Number) == "" {
			// unique placeholder until the id is known
			order.Number = "tmp-" + uuid.NewString()
		}
		if err := tx.Omit("User").Create(order).Error; err != nil {
			return err
		}

		if number != nil {
			value, err := number(order.ID)
			if err != nil {
				return fmt.Errorf("generate order number: %w", err)
			}
			if err := tx.Model(&db.Order{}).Where("id = ?", order.ID).Update("number", value).Error; err != nil {
				return err
			}
			order.Number = value
		}

		if !owner.IsZero() {
			if err := tx.Scopes(ownerScope(owner)).Delete(&db.CartItem{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func decrementStock(tx *gorm.DB, item db.OrderItem) error {
	if item.Quantity <= 0 {
		return fmt.Errorf("invalid quantity for %s", item.ProductName)
	}
	var result *gorm.DB
	if item.VariantID != nil && *item.VariantID > 0 {
		result = tx.Model(&db.ProductVariant{}).
			Where("id = ? AND stock >= ?", *item.VariantID, item.Quantity).
			Update("stock", gorm.Expr("stock - ?", item.Quantity))
	} else {
		result = tx.Model(&db.Product{}).
			Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
			Update("stock", gorm.Expr("stock - ?", item.Quantity))
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", entity.ErrInsufficientStock, item.ProductName)
	}
	return nil
}

func restockItems(tx *gorm.DB, orderID uint) error {
	var items []db.OrderItem
	if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return err
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		var err error
		if item.VariantID != nil && *item.VariantID > 0 {
			err = tx.Model(&db.ProductVariant{}).Where("id = ?", *item.VariantID).
				Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error
		} else {
			err = tx.Model(&db.Product{}).Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ListOrders returns paginated orders, newest first.
func (r *GormRepository) ListOrders(ctx context.Context, params *dto.OrderQuery) ([]db.Order, *common.Meta, error) {
	if err := r.ready(); err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).Model(&db.Order{})
	var base *common.BaseParams
	if params != nil {
		base = &params.BaseParams
		if params.UserID > 0 {
			query = query.Where("user_id = ?", params.UserID)
		}
		if status := strings.TrimSpace(params.Status); status != "" {
			query = query.Where("status = ?", status)
		}
		if keyword := strings.TrimSpace(params.Keyword); keyword != "" {
			query = keywordFilter(query, keyword, "number", "contact_name", "contact_email", "contact_phone")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	page, pageSize, offset := pageWindow(base)
	var orders []db.Order
	err := query.
		Preload("Items").
		Preload("User").
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).Limit(pageSize).
		Find(&orders).Error
	if err != nil {
		return nil, nil, err
	}
	return orders, r.calculatePagination(total, page, pageSize), nil
}

// GetOrder loads an order with items and customer.
func (r *GormRepository) GetOrder(ctx context.Context, id uint) (*db.Order, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid order id")
	}
	var order db.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("User").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderByNumber loads an order by its public number.
func (r *GormRepository) GetOrderByNumber(ctx context.Context, number string) (*db.Order, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(number)
	if trimmed == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var order db.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("User").
		Where("number = ?", trimmed).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus moves an order from one status to another. The update only applies while the
// order still has the expected status; restock returns the items to stock.
func (r *GormRepository) UpdateOrderStatus(ctx context.Context, id uint, from, to string, restock bool) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid order id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&db.Order{}).
			Where("id = ? AND status = ?", id, from).
			Update("status", to)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&db.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
			return entity.ErrStatusConflict
		}
		if restock {
			return restockItems(tx, id)
		}
		return nil
	})
}

// CountOrders returns the number of orders.
func (r *GormRepository) CountOrders(ctx context.Context) (int64, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&db.Order{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountOrdersByStatus returns order counts keyed by status.
func (r *GormRepository) CountOrdersByStatus(ctx context.Context) (map[string]int64, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&db.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// SumRevenue sums order totals, skipping the given statuses.
func (r *GormRepository) SumRevenue(ctx context.Context, excludeStatuses ...string) (float64, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	query := r.db.WithContext(ctx).Model(&db.Order{})
	if len(excludeStatuses) > 0 {
		query = query.Where("status NOT IN ?", excludeStatuses)
	}
	var sum float64
	if err := query.Select("COALESCE(SUM(total), 0)").Scan(&sum).Error; err != nil {
		return 0, err
	}
	return sum, nil
}

// RecentOrders returns the latest orders, optionally for one user.
func (r *GormRepository) RecentOrders(ctx context.Context, userID uint, limit int) ([]db.Order, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 5
	}
	query := r.db.WithContext(ctx).Model(&db.Order{})
	if userID > 0 {
		query = query.Where("user_id = ?", userID)
	}
	var orders []db.Order
	err := query.
		Preload("User").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []db.Order{}, nil
		}
		return nil, err
	}
	return orders, nil
}
