package sql

import (
	"context"
	"fmt"
	"strings"

	"shop/internal/entity"
	"shop/internal/entity/common"
	"shop/internal/entity/db"
	"shop/internal/entity/dto"

	"gorm.io/gorm"
)

var productSortColumns = map[string]string{
	"":           "products.id",
	"created_at": "products.created_at",
	"name":       "products.name",
	"price":      "COALESCE(NULLIF(products.sale_price, 0), products.base_price)",
	"stock":      "products.stock",
}

func productDetailPreloads(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Brand").
		Preload("ProductType").
		Preload("Variants", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("AttributeValues.Attribute").
		Preload("AttributeValues", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") })
}

// ListProducts returns paginated products with brand and variants.
func (r *GormRepository) ListProducts(ctx context.Context, params *dto.ProductQuery) ([]db.Product, *common.Meta, error) {
	if err := r.ready(); err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).Model(&db.Product{})
	var base *common.BaseParams
	sortColumn := productSortColumns[""]
	sortDesc := true
	if params != nil {
		base = &params.BaseParams
		if !params.IncludeInactive {
			query = query.Where("products.is_active = ?", true)
		}
		if brand := strings.TrimSpace(params.Brand); brand != "" {
			query = query.Where("products.brand_id IN (?)",
				r.db.Model(&db.Brand{}).Select("id").Where("slug = ?", brand))
		}
		if productType := strings.TrimSpace(params.ProductType); productType != "" {
			query = query.Where("products.product_type_id IN (?)",
				r.db.Model(&db.ProductType{}).Select("id").Where("slug = ?", productType))
		}
		if search := strings.TrimSpace(params.Search); search != "" {
			query = keywordFilter(query, search, "products.name", "products.description")
		}
		if params.OnSale {
			query = query.Where("products.sale_price IS NOT NULL AND products.sale_price > 0 AND products.sale_price < products.base_price")
		}
		if params.InStock {
			query = query.Where("products.stock > 0 OR EXISTS (SELECT 1 FROM product_variants pv WHERE pv.product_id = products.id AND pv.is_active = ? AND pv.stock > 0)", true)
		}
		if column, ok := productSortColumns[strings.TrimSpace(params.SortBy)]; ok && params.SortBy != "" {
			sortColumn = column
			sortDesc = params.SortDesc
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	page, pageSize, offset := pageWindow(base)
	direction := " ASC"
	if sortDesc {
		direction = " DESC"
	}

	var products []db.Product
	err := query.
		Preload("Brand").
		Preload("Variants", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Order(sortColumn + direction).
		Order("products.id DESC").
		Offset(offset).Limit(pageSize).
		Find(&products).Error
	if err != nil {
		return nil, nil, err
	}
	return products, r.calculatePagination(total, page, pageSize), nil
}

// GetProduct loads a product with all relations.
func (r *GormRepository) GetProduct(ctx context.Context, id uint) (*db.Product, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid product id")
	}
	var product db.Product
	if err := productDetailPreloads(r.db.WithContext(ctx)).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductBySlug loads a product by slug with all relations.
func (r *GormRepository) GetProductBySlug(ctx context.Context, slug string) (*db.Product, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	var product db.Product
	err := productDetailPreloads(r.db.WithContext(ctx)).
		Where("slug = ?", strings.TrimSpace(slug)).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct inserts a product with its variants and attribute values.
func (r *GormRepository) CreateProduct(ctx context.Context, product *db.Product) error {
	if err := r.ready(); err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("product is nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		variants := product.Variants
		values := product.AttributeValues
		product.Variants = nil
		product.AttributeValues = nil

		if err := tx.Omit("Brand", "ProductType").Create(product).Error; err != nil {
			return err
		}
		if err := insertVariants(tx, product.ID, variants); err != nil {
			return err
		}
		if err := insertAttributeValues(tx, product.ID, values); err != nil {
			return err
		}
		product.Variants = variants
		product.AttributeValues = values
		return nil
	})
}

// UpdateProduct updates product fields and, when provided, replaces variants and attribute values.
// Variants keep their ids when the SKU matches an existing variant so cart lines stay valid.
func (r *GormRepository) UpdateProduct(ctx context.Context, id uint, updates entity.ProductUpdates, variants *[]db.ProductVariant, values *[]db.ProductAttributeValue) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid product id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product db.Product
		if err := tx.Select("id").First(&product, id).Error; err != nil {
			return err
		}
		if !updates.IsEmpty() {
			if err := tx.Model(&db.Product{}).Where("id = ?", id).Updates(updates.ToMap()).Error; err != nil {
				return err
			}
		}
		if variants != nil {
			if err := replaceVariants(tx, id, *variants); err != nil {
				return err
			}
		}
		if values != nil {
			if err := tx.Where("product_id = ?", id).Delete(&db.ProductAttributeValue{}).Error; err != nil {
				return err
			}
			if err := insertAttributeValues(tx, id, *values); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertVariants(tx *gorm.DB, productID uint, variants []db.ProductVariant) error {
	for i := range variants {
		variants[i].ID = 0
		variants[i].ProductID = productID
		if err := tx.Create(&variants[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func insertAttributeValues(tx *gorm.DB, productID uint, values []db.ProductAttributeValue) error {
	for i := range values {
		values[i].ID = 0
		values[i].ProductID = productID
		if err := tx.Omit("Attribute").Create(&values[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceVariants(tx *gorm.DB, productID uint, variants []db.ProductVariant) error {
	var existing []db.ProductVariant
	if err := tx.Where("product_id = ?", productID).Find(&existing).Error; err != nil {
		return err
	}
	bySKU := make(map[string]db.ProductVariant, len(existing))
	for _, v := range existing {
		if sku := strings.TrimSpace(v.SKU); sku != "" {
			bySKU[sku] = v
		}
	}

	kept := make(map[uint]struct{}, len(variants))
	for i := range variants {
		variant := &variants[i]
		variant.ProductID = productID
		if current, ok := bySKU[strings.TrimSpace(variant.SKU)]; ok && variant.SKU != "" {
			variant.ID = current.ID
			variant.CreatedAt = current.CreatedAt
			if err := tx.Select("*").Omit("created_at").Save(variant).Error; err != nil {
				return err
			}
			kept[current.ID] = struct{}{}
			continue
		}
		variant.ID = 0
		if err := tx.Create(variant).Error; err != nil {
			return err
		}
		kept[variant.ID] = struct{}{}
	}

	var removed []uint
	for _, v := range existing {
		if _, ok := kept[v.ID]; !ok {
			removed = append(removed, v.ID)
		}
	}
	if len(removed) == 0 {
		return nil
	}
	if err := tx.Where("variant_id IN ?", removed).Delete(&db.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", removed).Delete(&db.ProductVariant{}).Error
}

// DeleteProduct removes a product with its variants, attribute values, cart lines and favorites.
// Order lines keep their snapshot.
func (r *GormRepository) DeleteProduct(ctx context.Context, id uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid product id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&db.CartItem{}, &db.Favorite{}, &db.ProductAttributeValue{}, &db.ProductVariant{}} {
			if err := tx.Where("product_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		result := tx.Delete(&db.Product{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CountProducts returns the number of products.
func (r *GormRepository) CountProducts(ctx context.Context) (int64, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&db.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetVariant loads a variant by id.
func (r *GormRepository) GetVariant(ctx context.Context, id uint) (*db.ProductVariant, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid variant id")
	}
	var variant db.ProductVariant
	if err := r.db.WithContext(ctx).First(&variant, id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}
