package service

import (
	"context"
	"strings"

	"shop/internal/entity"
	"shop/internal/entity/common"
	"shop/internal/entity/converter"
	"shop/internal/entity/db"
	"shop/internal/entity/dto"
	"shop/internal/model"

	"gorm.io/gorm"
)

// ProductService 商品服务：列表、详情以及包含规格和属性值的后台维护
type ProductService struct {
	repo model.Repository
}

// NewProductService 创建商品服务实例
func NewProductService(repo model.Repository) *ProductService {
	return &ProductService{repo: repo}
}

// List 返回分页商品卡片
func (s *ProductService) List(ctx context.Context, query *dto.ProductQuery) (dto.ProductListResponse, error) {
	products, meta, err := s.repo.ListProducts(ctx, query)
	if err != nil {
		return dto.ProductListResponse{}, err
	}
	return dto.ProductListResponse{Products: converter.ProductsToCards(products), Meta: meta}, nil
}

// GetBySlug 返回店铺端商品详情；下架商品视为不存在
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*dto.ProductDetail, error) {
	product, err := s.repo.GetProductBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	detail := converter.ProductToDetail(product, false)
	return &detail, nil
}

// Get 返回后台商品详情，包含已停用的规格
func (s *ProductService) Get(ctx context.Context, id uint) (*dto.ProductDetail, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := converter.ProductToDetail(product, true)
	return &detail, nil
}

// Create 创建商品及其规格和属性值
func (s *ProductService) Create(ctx context.Context, req dto.ProductRequest) (*dto.ProductDetail, error) {
	slug, err := ResolveUniqueSlug(ctx, s.repo, db.Product{}.TableName(), req.Slug, req.Name, 0)
	if err != nil {
		return nil, err
	}
	if err := s.checkBrand(ctx, req.BrandID); err != nil {
		return nil, err
	}
	values, err := s.attributeValues(ctx, req.ProductTypeID, req.Attributes)
	if err != nil {
		return nil, err
	}
	variants, err := BuildVariants(req.Variants)
	if err != nil {
		return nil, err
	}

	product := &db.Product{
		Name:            strings.TrimSpace(req.Name),
		Slug:            slug,
		Description:     req.Description,
		BrandID:         nonZeroID(req.BrandID),
		ProductTypeID:   nonZeroID(req.ProductTypeID),
		BasePrice:       req.BasePrice,
		SalePrice:       req.SalePrice,
		Stock:           req.Stock,
		Images:          cleanImages(req.Images),
		IsActive:        true,
		Variants:        variants,
		AttributeValues: values,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return s.Get(ctx, product.ID)
}

// Update 更新商品。规格与属性值在请求中给出时整体替换；
// 更换商品类型而未给出属性值时，按新类型重新校验并清空旧值。
func (s *ProductService) Update(ctx context.Context, id uint, req dto.ProductUpdateRequest) (*dto.ProductDetail, error) {
	current, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	slug, err := ResolveSlugUpdate(ctx, s.repo, db.Product{}.TableName(), req.Slug, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkBrand(ctx, req.BrandID); err != nil {
		return nil, err
	}

	updates := entity.ProductUpdates{
		Name:           trimmedPtr(req.Name),
		Slug:           slug,
		Description:    req.Description,
		BrandID:        req.BrandID,
		ProductTypeID:  req.ProductTypeID,
		BasePrice:      req.BasePrice,
		SalePrice:      req.SalePrice,
		ClearSalePrice: req.ClearSalePrice,
		Stock:          req.Stock,
		IsActive:       req.IsActive,
	}
	if req.Images != nil {
		images := cleanImages(*req.Images)
		updates.Images = &images
	}

	typeID := current.ProductTypeID
	typeChanged := false
	if req.ProductTypeID != nil {
		typeID = nonZeroID(req.ProductTypeID)
		typeChanged = !sameID(typeID, current.ProductTypeID)
	}

	var values *[]db.ProductAttributeValue
	switch {
	case req.Attributes != nil:
		built, err := s.attributeValues(ctx, typeID, *req.Attributes)
		if err != nil {
			return nil, err
		}
		values = &built
	case typeChanged:
		built, err := s.attributeValues(ctx, typeID, nil)
		if err != nil {
			return nil, err
		}
		values = &built
	}

	var variants *[]db.ProductVariant
	if req.Variants != nil {
		built, err := BuildVariants(*req.Variants)
		if err != nil {
			return nil, err
		}
		variants = &built
	}

	if err := s.repo.UpdateProduct(ctx, id, updates, variants, values); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete 删除商品及其规格、属性值、购物车条目与收藏
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	return s.repo.DeleteProduct(ctx, id)
}

func (s *ProductService) attributeValues(ctx context.Context, productTypeID *uint, values []dto.AttributeValueRequest) ([]db.ProductAttributeValue, error) {
	if productTypeID == nil || *productTypeID == 0 {
		if len(values) > 0 {
			return nil, ErrProductTypeRequired
		}
		return []db.ProductAttributeValue{}, nil
	}
	productType, err := s.repo.GetProductType(ctx, *productTypeID)
	if err != nil {
		return nil, err
	}
	return ValidateAttributeValues(productType.Attributes, values)
}

func (s *ProductService) checkBrand(ctx context.Context, brandID *uint) error {
	if brandID == nil || *brandID == 0 {
		return nil
	}
	_, err := s.repo.GetBrand(ctx, *brandID)
	return err
}

func nonZeroID(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	v := *id
	return &v
}

func sameID(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func cleanImages(images []string) common.StringArray {
	out := make(common.StringArray, 0, len(images))
	for _, img := range images {
		if trimmed := strings.TrimSpace(img); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
