package sql

import (
	"context"
	"fmt"
	"strings"

	"shop/internal/entity"
	"shop/internal/entity/db"

	"gorm.io/gorm"
)

const brandWithCount = "brands.*, (SELECT COUNT(*) FROM products WHERE products.brand_id = brands.id AND products.is_active = ?) AS product_count"

// ListBrands returns brands ordered by name with their active product counts.
func (r *GormRepository) ListBrands(ctx context.Context, activeOnly bool) ([]db.Brand, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&db.Brand{}).Select(brandWithCount, true)
	if activeOnly {
		query = query.Where("brands.is_active = ?", true)
	}
	var brands []db.Brand
	if err := query.Order("brands.name ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

// GetBrand loads a brand by id.
func (r *GormRepository) GetBrand(ctx context.Context, id uint) (*db.Brand, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid brand id")
	}
	var brand db.Brand
	if err := r.db.WithContext(ctx).Select(brandWithCount, true).First(&brand, id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

// GetBrandBySlug loads a brand by slug.
func (r *GormRepository) GetBrandBySlug(ctx context.Context, slug string) (*db.Brand, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	var brand db.Brand
	err := r.db.WithContext(ctx).
		Select(brandWithCount, true).
		Where("slug = ?", strings.TrimSpace(slug)).
		First(&brand).Error
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

// CreateBrand inserts a new brand.
func (r *GormRepository) CreateBrand(ctx context.Context, brand *db.Brand) error {
	if err := r.ready(); err != nil {
		return err
	}
	if brand == nil {
		return fmt.Errorf("brand is nil")
	}
	return r.db.WithContext(ctx).Create(brand).Error
}

// UpdateBrand updates brand fields.
func (r *GormRepository) UpdateBrand(ctx context.Context, id uint, updates entity.BrandUpdates) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid brand id")
	}
	if updates.IsEmpty() {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&db.Brand{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteBrand removes a brand and detaches its products.
func (r *GormRepository) DeleteBrand(ctx context.Context, id uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid brand id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db.Product{}).Where("brand_id = ?", id).Update("brand_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&db.Brand{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CountBrands returns the number of brands.
func (r *GormRepository) CountBrands(ctx context.Context) (int64, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&db.Brand{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
