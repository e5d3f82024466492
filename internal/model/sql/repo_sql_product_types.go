package sql

import (
	"context"
	"fmt"

	"shop/internal/entity"
	"shop/internal/entity/db"

	"gorm.io/gorm"
)

func orderedAttributes(tx *gorm.DB) *gorm.DB {
	return tx.Order("sort_order ASC").Order("id ASC")
}

// ListProductTypes returns product types with their attributes.
func (r *GormRepository) ListProductTypes(ctx context.Context) ([]db.ProductType, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	var types []db.ProductType
	err := r.db.WithContext(ctx).
		Preload("Attributes", orderedAttributes).
		Order("name ASC").
		Find(&types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

// GetProductType loads a product type with its attributes.
func (r *GormRepository) GetProductType(ctx context.Context, id uint) (*db.ProductType, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid product type id")
	}
	var productType db.ProductType
	if err := r.db.WithContext(ctx).Preload("Attributes", orderedAttributes).First(&productType, id).Error; err != nil {
		return nil, err
	}
	return &productType, nil
}

// CreateProductType inserts a product type and any attributes attached to it.
func (r *GormRepository) CreateProductType(ctx context.Context, productType *db.ProductType) error {
	if err := r.ready(); err != nil {
		return err
	}
	if productType == nil {
		return fmt.Errorf("product type is nil")
	}
	return r.db.WithContext(ctx).Create(productType).Error
}

// UpdateProductType updates product type fields.
func (r *GormRepository) UpdateProductType(ctx context.Context, id uint, updates entity.ProductTypeUpdates) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid product type id")
	}
	if updates.IsEmpty() {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&db.ProductType{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteProductType removes a product type, its attributes and the values stored for them.
func (r *GormRepository) DeleteProductType(ctx context.Context, id uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid product type id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		attributeIDs := tx.Model(&db.ProductTypeAttribute{}).Select("id").Where("product_type_id = ?", id)
		if err := tx.Where("attribute_id IN (?)", attributeIDs).Delete(&db.ProductAttributeValue{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_type_id = ?", id).Delete(&db.ProductTypeAttribute{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&db.Product{}).Where("product_type_id = ?", id).Update("product_type_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&db.ProductType{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListAttributes returns the attributes of a product type.
func (r *GormRepository) ListAttributes(ctx context.Context, productTypeID uint) ([]db.ProductTypeAttribute, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	var attributes []db.ProductTypeAttribute
	err := orderedAttributes(r.db.WithContext(ctx).Where("product_type_id = ?", productTypeID)).
		Find(&attributes).Error
	if err != nil {
		return nil, err
	}
	return attributes, nil
}

// GetAttribute loads an attribute by id.
func (r *GormRepository) GetAttribute(ctx context.Context, id uint) (*db.ProductTypeAttribute, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid attribute id")
	}
	var attribute db.ProductTypeAttribute
	if err := r.db.WithContext(ctx).First(&attribute, id).Error; err != nil {
		return nil, err
	}
	return &attribute, nil
}

// CreateAttribute inserts an attribute; the slug must be unique within its type.
func (r *GormRepository) CreateAttribute(ctx context.Context, attribute *db.ProductTypeAttribute) error {
	if err := r.ready(); err != nil {
		return err
	}
	if attribute == nil {
		return fmt.Errorf("attribute is nil")
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&db.ProductTypeAttribute{}).
		Where("product_type_id = ? AND slug = ?", attribute.ProductTypeID, attribute.Slug).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return gorm.ErrDuplicatedKey
	}
	return r.db.WithContext(ctx).Create(attribute).Error
}

// UpdateAttribute updates attribute fields.
func (r *GormRepository) UpdateAttribute(ctx context.Context, id uint, updates entity.AttributeUpdates) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid attribute id")
	}
	if updates.IsEmpty() {
		return nil
	}
	if updates.Slug != nil {
		var current db.ProductTypeAttribute
		if err := r.db.WithContext(ctx).First(&current, id).Error; err != nil {
			return err
		}
		var count int64
		err := r.db.WithContext(ctx).Model(&db.ProductTypeAttribute{}).
			Where("product_type_id = ? AND slug = ? AND id <> ?", current.ProductTypeID, *updates.Slug, id).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}
	}
	result := r.db.WithContext(ctx).Model(&db.ProductTypeAttribute{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteAttribute removes an attribute and its stored values.
func (r *GormRepository) DeleteAttribute(ctx context.Context, id uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid attribute id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("attribute_id = ?", id).Delete(&db.ProductAttributeValue{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&db.ProductTypeAttribute{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
