package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"shop/internal/cache"
	"shop/internal/entity"
	"shop/internal/entity/converter"
	"shop/internal/entity/db"
	"shop/internal/entity/dto"
	"shop/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DefaultCacheTTL 品牌与配送设置的默认缓存时间
const DefaultCacheTTL = 10 * time.Minute

// CatalogService 品牌与配送设置服务。两者读多写少，读取走缓存，任何写操作都会使缓存失效。
type CatalogService struct {
	repo  model.Repository
	cache cache.Cache
	ttl   time.Duration
}

// NewCatalogService 创建目录服务实例；cache 为空时不缓存
func NewCatalogService(repo model.Repository, c cache.Cache, ttl time.Duration) *CatalogService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CatalogService{repo: repo, cache: c, ttl: ttl}
}

// ActiveBrands 返回所有启用的品牌（按名称排序）
func (s *CatalogService) ActiveBrands(ctx context.Context) ([]db.Brand, error) {
	var brands []db.Brand
	hit, err := cache.GetJSON(ctx, s.cache, cache.KeyBrands, &brands)
	if err != nil {
		logrus.WithError(err).Warn("failed to read brands from cache")
	}
	if hit {
		return brands, nil
	}

	brands, err = s.repo.ListBrands(ctx, true)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, s.cache, cache.KeyBrands, brands, s.ttl); err != nil {
		logrus.WithError(err).Warn("failed to cache brands")
	}
	return brands, nil
}

// GroupedBrands 返回按首字母分组的品牌索引，没有品牌的字母不出现
func (s *CatalogService) GroupedBrands(ctx context.Context) ([]dto.BrandGroup, error) {
	brands, err := s.ActiveBrands(ctx)
	if err != nil {
		return nil, err
	}
	return converter.GroupBrands(brands), nil
}

// BrandBySlug 返回启用的品牌及其在售商品
func (s *CatalogService) BrandBySlug(ctx context.Context, slug string) (*dto.BrandDetailResponse, error) {
	brand, err := s.repo.GetBrandBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if !brand.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	query := &dto.ProductQuery{Brand: brand.Slug}
	query.PageSize = 100
	products, _, err := s.repo.ListProducts(ctx, query)
	if err != nil {
		return nil, err
	}
	return &dto.BrandDetailResponse{Brand: *brand, Products: converter.ProductsToCards(products)}, nil
}

// CreateBrand 创建品牌
func (s *CatalogService) CreateBrand(ctx context.Context, req dto.BrandRequest) (*db.Brand, error) {
	slug, err := ResolveUniqueSlug(ctx, s.repo, db.Brand{}.TableName(), req.Slug, req.Name, 0)
	if err != nil {
		return nil, err
	}
	brand := &db.Brand{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Description: req.Description,
		LogoURL:     strings.TrimSpace(req.LogoURL),
		Country:     strings.TrimSpace(req.Country),
		IsActive:    true,
	}
	if req.IsActive != nil {
		brand.IsActive = *req.IsActive
	}
	if err := s.repo.CreateBrand(ctx, brand); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cache.KeyBrands)
	return brand, nil
}

// UpdateBrand 更新品牌
func (s *CatalogService) UpdateBrand(ctx context.Context, id uint, req dto.BrandUpdateRequest) (*db.Brand, error) {
	slug, err := ResolveSlugUpdate(ctx, s.repo, db.Brand{}.TableName(), req.Slug, id)
	if err != nil {
		return nil, err
	}
	updates := entity.BrandUpdates{
		Name:        trimmedPtr(req.Name),
		Slug:        slug,
		Description: req.Description,
		LogoURL:     trimmedPtr(req.LogoURL),
		Country:     trimmedPtr(req.Country),
		IsActive:    req.IsActive,
	}
	if !updates.IsEmpty() {
		if err := s.repo.UpdateBrand(ctx, id, updates); err != nil {
			return nil, err
		}
		s.invalidate(ctx, cache.KeyBrands)
	}
	return s.repo.GetBrand(ctx, id)
}

// DeleteBrand 删除品牌，其商品的品牌关联被清空
func (s *CatalogService) DeleteBrand(ctx context.Context, id uint) error {
	if err := s.repo.DeleteBrand(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cache.KeyBrands)
	return nil
}

// DeliverySettings 返回配送设置；尚未配置时返回默认值（快递免费、不支持自提）
func (s *CatalogService) DeliverySettings(ctx context.Context) (*db.DeliverySettings, error) {
	var settings db.DeliverySettings
	hit, err := cache.GetJSON(ctx, s.cache, cache.KeyDeliverySettings, &settings)
	if err != nil {
		logrus.WithError(err).Warn("failed to read delivery settings from cache")
	}
	if hit {
		return &settings, nil
	}

	stored, err := s.repo.GetDeliverySettings(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DefaultDeliverySettings(), nil
		}
		return nil, err
	}
	if err := cache.SetJSON(ctx, s.cache, cache.KeyDeliverySettings, stored, s.ttl); err != nil {
		logrus.WithError(err).Warn("failed to cache delivery settings")
	}
	return stored, nil
}

// DefaultDeliverySettings 未配置时使用的配送设置
func DefaultDeliverySettings() *db.DeliverySettings {
	return &db.DeliverySettings{
		IsDeliveryEnabled: true,
		MinDays:           1,
		MaxDays:           3,
	}
}

// CreateDeliverySettings 首次创建配送设置；已存在时返回 ErrDeliverySettingsExist
func (s *CatalogService) CreateDeliverySettings(ctx context.Context, req dto.DeliverySettingsRequest) (*db.DeliverySettings, error) {
	if _, err := s.repo.GetDeliverySettings(ctx); err == nil {
		return nil, ErrDeliverySettingsExist
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings := DefaultDeliverySettings()
	applyDeliveryRequest(settings, req)
	if err := validateDeliverySettings(settings); err != nil {
		return nil, err
	}
	if err := s.repo.CreateDeliverySettings(ctx, settings); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cache.KeyDeliverySettings)
	return settings, nil
}

// UpdateDeliverySettings 更新配送设置
func (s *CatalogService) UpdateDeliverySettings(ctx context.Context, req dto.DeliverySettingsRequest) (*db.DeliverySettings, error) {
	current, err := s.repo.GetDeliverySettings(ctx)
	if err != nil {
		return nil, err
	}
	merged := *current
	applyDeliveryRequest(&merged, req)
	if err := validateDeliverySettings(&merged); err != nil {
		return nil, err
	}

	updates := entity.DeliverySettingsUpdates{
		IsDeliveryEnabled:     req.IsDeliveryEnabled,
		DeliveryCost:          req.DeliveryCost,
		FreeDeliveryThreshold: req.FreeDeliveryThreshold,
		PickupEnabled:         req.PickupEnabled,
		PickupAddress:         trimmedPtr(req.PickupAddress),
		MinDays:               req.MinDays,
		MaxDays:               req.MaxDays,
	}
	if !updates.IsEmpty() {
		if err := s.repo.UpdateDeliverySettings(ctx, current.ID, updates); err != nil {
			return nil, err
		}
		s.invalidate(ctx, cache.KeyDeliverySettings)
	}
	return s.repo.GetDeliverySettings(ctx)
}

func applyDeliveryRequest(settings *db.DeliverySettings, req dto.DeliverySettingsRequest) {
	if req.IsDeliveryEnabled != nil {
		settings.IsDeliveryEnabled = *req.IsDeliveryEnabled
	}
	if req.DeliveryCost != nil {
		settings.DeliveryCost = *req.DeliveryCost
	}
	if req.FreeDeliveryThreshold != nil {
		settings.FreeDeliveryThreshold = *req.FreeDeliveryThreshold
	}
	if req.PickupEnabled != nil {
		settings.PickupEnabled = *req.PickupEnabled
	}
	if req.PickupAddress != nil {
		settings.PickupAddress = strings.TrimSpace(*req.PickupAddress)
	}
	if req.MinDays != nil {
		settings.MinDays = *req.MinDays
	}
	if req.MaxDays != nil {
		settings.MaxDays = *req.MaxDays
	}
}

func validateDeliverySettings(settings *db.DeliverySettings) error {
	if settings.DeliveryCost < 0 || settings.FreeDeliveryThreshold < 0 {
		return ErrInvalidDeliveryCost
	}
	if settings.MinDays < 0 || settings.MaxDays < 0 || settings.MinDays > settings.MaxDays {
		return ErrInvalidDeliveryDays
	}
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logrus.WithError(err).WithField("keys", keys).Warn("failed to invalidate cache")
	}
}

func trimmedPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}
