package sql

import (
	"context"
	"fmt"
	"time"

	"shop/internal/entity"
	"shop/internal/entity/db"

	"gorm.io/gorm"
)

// ListBanners returns banners ordered for display. When visibleAt is set only
// active banners whose window contains that moment are returned.
func (r *GormRepository) ListBanners(ctx context.Context, visibleAt *time.Time) ([]db.Banner, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&db.Banner{})
	if visibleAt != nil {
		at := *visibleAt
		query = query.
			Where("is_active = ?", true).
			Where("starts_at IS NULL OR starts_at <= ?", at).
			Where("ends_at IS NULL OR ends_at >= ?", at)
	}
	var banners []db.Banner
	if err := query.Order("sort_order ASC").Order("id ASC").Find(&banners).Error; err != nil {
		return nil, err
	}
	return banners, nil
}

// GetBanner loads a banner by id.
func (r *GormRepository) GetBanner(ctx context.Context, id uint) (*db.Banner, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid banner id")
	}
	var banner db.Banner
	if err := r.db.WithContext(ctx).First(&banner, id).Error; err != nil {
		return nil, err
	}
	return &banner, nil
}

// CreateBanner inserts a new banner.
func (r *GormRepository) CreateBanner(ctx context.Context, banner *db.Banner) error {
	if err := r.ready(); err != nil {
		return err
	}
	if banner == nil {
		return fmt.Errorf("banner is nil")
	}
	return r.db.WithContext(ctx).Create(banner).Error
}

// UpdateBanner updates banner fields.
func (r *GormRepository) UpdateBanner(ctx context.Context, id uint, updates entity.BannerUpdates) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid banner id")
	}
	if updates.IsEmpty() {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&db.Banner{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteBanner removes a banner.
func (r *GormRepository) DeleteBanner(ctx context.Context, id uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid banner id")
	}
	result := r.db.WithContext(ctx).Delete(&db.Banner{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
