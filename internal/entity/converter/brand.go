package converter

import (
	"shop/internal/entity/db"
	"shop/internal/entity/dto"
	"shop/internal/utils"
)

// GroupBrands builds the alphabetical brand index.
func GroupBrands(brands []db.Brand) []dto.BrandGroup {
	groups := utils.GroupByFirstLetter(brands, func(b db.Brand) string { return b.Name })
	out := make([]dto.BrandGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, dto.BrandGroup{Letter: g.Letter, Brands: g.Items})
	}
	return out
}

// BrandToRef converts a brand to its embedded form.
func BrandToRef(b *db.Brand) *dto.BrandRef {
	if b == nil || b.ID == 0 {
		return nil
	}
	return &dto.BrandRef{ID: b.ID, Name: b.Name, Slug: b.Slug}
}
