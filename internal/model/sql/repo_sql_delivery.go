package sql

import (
	"context"
	"fmt"

	"shop/internal/entity"
	"shop/internal/entity/db"

	"gorm.io/gorm"
)

// GetDeliverySettings returns the singleton delivery settings row.
func (r *GormRepository) GetDeliverySettings(ctx context.Context) (*db.DeliverySettings, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	var settings db.DeliverySettings
	if err := r.db.WithContext(ctx).Order("id ASC").First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// CreateDeliverySettings inserts the settings row.
func (r *GormRepository) CreateDeliverySettings(ctx context.Context, settings *db.DeliverySettings) error {
	if err := r.ready(); err != nil {
		return err
	}
	if settings == nil {
		return fmt.Errorf("delivery settings are nil")
	}
	return r.db.WithContext(ctx).Create(settings).Error
}

// UpdateDeliverySettings updates the settings row.
func (r *GormRepository) UpdateDeliverySettings(ctx context.Context, id uint, updates entity.DeliverySettingsUpdates) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid delivery settings id")
	}
	if updates.IsEmpty() {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&db.DeliverySettings{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
