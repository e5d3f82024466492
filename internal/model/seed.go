package model

import (
	"context"
	"errors"

	"shop/internal/config"
	"shop/internal/entity/common"
	"shop/internal/entity/db"

	"gorm.io/gorm"
)

type productTypeSeed struct {
	Type       db.ProductType
	Attributes []db.ProductTypeAttribute
}

// SeedDefaults ensures the delivery settings singleton and the starter product types exist.
func SeedDefaults(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil || !cfg.DBSeed {
		return nil
	}
	if err := seedDeliverySettings(ctx, repo); err != nil {
		return err
	}
	return seedProductTypes(ctx, repo)
}

func seedDeliverySettings(ctx context.Context, repo Repository) error {
	_, err := repo.GetDeliverySettings(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		settings := defaultDeliverySettings()
		return repo.CreateDeliverySettings(ctx, &settings)
	default:
		return err
	}
}

func defaultDeliverySettings() db.DeliverySettings {
	return db.DeliverySettings{
		IsDeliveryEnabled:     true,
		DeliveryCost:          300,
		FreeDeliveryThreshold: 5000,
		PickupEnabled:         false,
		MinDays:               1,
		MaxDays:               3,
	}
}

func seedProductTypes(ctx context.Context, repo Repository) error {
	existing, err := repo.ListProductTypes(ctx)
	if err != nil {
		return err
	}
	bySlug := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		bySlug[t.Slug] = struct{}{}
	}
	for _, seed := range buildProductTypeSeeds() {
		if _, ok := bySlug[seed.Type.Slug]; ok {
			continue
		}
		productType := seed.Type
		productType.Attributes = seed.Attributes
		if err := repo.CreateProductType(ctx, &productType); err != nil {
			return err
		}
	}
	return nil
}

func buildProductTypeSeeds() []productTypeSeed {
	clothingSizes := common.StringArray{"XS", "S", "M", "L", "XL", "XXL"}
	return []productTypeSeed{
		{
			Type: db.ProductType{Name: "Одежда", Slug: "odezhda"},
			Attributes: []db.ProductTypeAttribute{
				{Name: "Размер", Slug: "razmer", Kind: db.AttributeKindSelect, Options: clothingSizes, IsRequired: true, SortOrder: 1},
				{Name: "Цвет", Slug: "cvet", Kind: db.AttributeKindText, SortOrder: 2},
				{Name: "Состав", Slug: "sostav", Kind: db.AttributeKindText, SortOrder: 3},
			},
		},
		{
			Type: db.ProductType{Name: "Обувь", Slug: "obuv"},
			Attributes: []db.ProductTypeAttribute{
				{Name: "Размер", Slug: "razmer", Kind: db.AttributeKindNumber, Unit: "EU", IsRequired: true, SortOrder: 1},
				{Name: "Цвет", Slug: "cvet", Kind: db.AttributeKindText, SortOrder: 2},
				{Name: "Водонепроницаемые", Slug: "vodonepronicaemye", Kind: db.AttributeKindBoolean, SortOrder: 3},
			},
		},
		{
			Type: db.ProductType{Name: "Аксессуары", Slug: "aksessuary"},
			Attributes: []db.ProductTypeAttribute{
				{Name: "Материал", Slug: "material", Kind: db.AttributeKindText, SortOrder: 1},
			},
		},
	}
}
