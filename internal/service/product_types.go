package service

import (
	"context"
	"errors"
	"strings"

	"shop/internal/entity"
	"shop/internal/entity/common"
	"shop/internal/entity/db"
	"shop/internal/entity/dto"
	"shop/internal/model"
	"shop/internal/utils"

	"gorm.io/gorm"
)

// ProductTypeService 商品类型与属性定义
type ProductTypeService struct {
	repo model.Repository
}

func NewProductTypeService(repo model.Repository) *ProductTypeService {
	return &ProductTypeService{repo: repo}
}

func (s *ProductTypeService) List(ctx context.Context) ([]db.ProductType, error) {
	return s.repo.ListProductTypes(ctx)
}

func (s *ProductTypeService) Get(ctx context.Context, id uint) (*db.ProductType, error) {
	return s.repo.GetProductType(ctx, id)
}

// Create 创建商品类型
func (s *ProductTypeService) Create(ctx context.Context, req dto.ProductTypeRequest) (*db.ProductType, error) {
	slug, err := ResolveUniqueSlug(ctx, s.repo, db.ProductType{}.TableName(), req.Slug, req.Name, 0)
	if err != nil {
		return nil, err
	}
	productType := &db.ProductType{Name: strings.TrimSpace(req.Name), Slug: slug}
	if err := s.repo.CreateProductType(ctx, productType); err != nil {
		return nil, err
	}
	return productType, nil
}

// Update 更新商品类型
func (s *ProductTypeService) Update(ctx context.Context, id uint, req dto.ProductTypeUpdateRequest) (*db.ProductType, error) {
	slug, err := ResolveSlugUpdate(ctx, s.repo, db.ProductType{}.TableName(), req.Slug, id)
	if err != nil {
		return nil, err
	}
	updates := entity.ProductTypeUpdates{Name: trimmedPtr(req.Name), Slug: slug}
	if err := s.repo.UpdateProductType(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.repo.GetProductType(ctx, id)
}

func (s *ProductTypeService) Delete(ctx context.Context, id uint) error {
	return s.repo.DeleteProductType(ctx, id)
}

// CreateAttribute 为商品类型添加属性。slug 在类型内唯一，由名称生成。
func (s *ProductTypeService) CreateAttribute(ctx context.Context, productTypeID uint, req dto.AttributeRequest) (*db.ProductTypeAttribute, error) {
	if _, err := s.repo.GetProductType(ctx, productTypeID); err != nil {
		return nil, err
	}
	slug := utils.ResolveSlug(req.Slug, req.Name)
	if !utils.IsValidSlug(slug) {
		return nil, ErrSlugInvalid
	}
	options, err := NormalizeAttributeOptions(req.Name, req.Kind, req.Options)
	if err != nil {
		return nil, err
	}
	attribute := &db.ProductTypeAttribute{
		ProductTypeID: productTypeID,
		Name:          strings.TrimSpace(req.Name),
		Slug:          slug,
		Kind:          req.Kind,
		Options:       common.StringArray(options),
		Unit:          strings.TrimSpace(req.Unit),
		IsRequired:    req.IsRequired,
		SortOrder:     req.SortOrder,
	}
	if err := s.repo.CreateAttribute(ctx, attribute); err != nil {
		return nil, mapDuplicateSlug(err)
	}
	return attribute, nil
}

// UpdateAttribute 更新属性定义；修改类型或候选项时重新校验
func (s *ProductTypeService) UpdateAttribute(ctx context.Context, id uint, req dto.AttributeUpdateRequest) (*db.ProductTypeAttribute, error) {
	current, err := s.repo.GetAttribute(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := entity.AttributeUpdates{
		Name:       trimmedPtr(req.Name),
		Kind:       req.Kind,
		Unit:       trimmedPtr(req.Unit),
		IsRequired: req.IsRequired,
		SortOrder:  req.SortOrder,
	}
	if req.Slug != nil {
		slug := utils.ResolveSlug(*req.Slug, "")
		if !utils.IsValidSlug(slug) {
			return nil, ErrSlugInvalid
		}
		updates.Slug = &slug
	}
	if req.Kind != nil || req.Options != nil {
		kind := current.Kind
		if req.Kind != nil {
			kind = *req.Kind
		}
		options := current.Options.ToSlice()
		if req.Options != nil {
			options = *req.Options
		}
		name := current.Name
		if updates.Name != nil {
			name = *updates.Name
		}
		normalized, err := NormalizeAttributeOptions(name, kind, options)
		if err != nil {
			return nil, err
		}
		arr := common.StringArray(normalized)
		updates.Options = &arr
	}

	if err := s.repo.UpdateAttribute(ctx, id, updates); err != nil {
		return nil, mapDuplicateSlug(err)
	}
	return s.repo.GetAttribute(ctx, id)
}

func (s *ProductTypeService) DeleteAttribute(ctx context.Context, id uint) error {
	return s.repo.DeleteAttribute(ctx, id)
}

func mapDuplicateSlug(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlugExists
	}
	return err
}
