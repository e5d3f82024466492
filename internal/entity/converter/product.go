package converter

import (
	"shop/internal/entity/db"
	"shop/internal/entity/dto"
	"shop/internal/pricing"
)

// ProductPrice resolves the product-level display price.
func ProductPrice(p *db.Product) pricing.Resolved {
	if p == nil {
		return pricing.Resolved{Source: pricing.SourceNone}
	}
	base := p.BasePrice
	return pricing.Resolve(pricing.Input{
		ProductSalePrice: p.SalePrice,
		ProductBasePrice: &base,
	})
}

// VariantPrice resolves the price of a variant, falling back to the product prices.
func VariantPrice(p *db.Product, v *db.ProductVariant) pricing.Resolved {
	in := pricing.Input{}
	if v != nil {
		in.VariantSalePrice = v.SalePrice
		in.VariantPrice = v.Price
	}
	if p != nil {
		base := p.BasePrice
		in.ProductSalePrice = p.SalePrice
		in.ProductBasePrice = &base
	}
	return pricing.Resolve(in)
}

// PriceInfo formats a resolved price for clients.
func PriceInfo(r pricing.Resolved) dto.PriceInfo {
	info := dto.PriceInfo{
		Price:          r.UnitPrice,
		PriceFormatted: pricing.FormatPrice(r.UnitPrice),
	}
	if r.HasDiscount() {
		info.ComparePrice = r.ComparePrice
		info.ComparePriceFormatted = pricing.FormatPrice(r.ComparePrice)
		info.IsOnSale = true
		info.DiscountPercent = r.DiscountPercent()
	}
	return info
}

// ProductToCard converts a product to its listing form.
func ProductToCard(p *db.Product) dto.ProductCard {
	if p == nil {
		return dto.ProductCard{}
	}
	info := PriceInfo(ProductPrice(p))
	info.IsOnSale = pricing.IsProductOnSale(p.BasePrice, p.SalePrice)
	stock := totalStock(p)
	return dto.ProductCard{
		ID:       p.ID,
		Name:     p.Name,
		Slug:     p.Slug,
		Image:    p.Images.First(),
		Brand:    BrandToRef(p.Brand),
		Pricing:  info,
		Stock:    stock,
		InStock:  stock > 0,
		IsActive: p.IsActive,
	}
}

// ProductsToCards converts a slice of products.
func ProductsToCards(products []db.Product) []dto.ProductCard {
	out := make([]dto.ProductCard, len(products))
	for i := range products {
		out[i] = ProductToCard(&products[i])
	}
	return out
}

// ProductToDetail converts a product with its relations to the full page form.
func ProductToDetail(p *db.Product, includeInactiveVariants bool) dto.ProductDetail {
	if p == nil {
		return dto.ProductDetail{}
	}
	info := PriceInfo(ProductPrice(p))
	info.IsOnSale = pricing.IsProductOnSale(p.BasePrice, p.SalePrice)

	out := dto.ProductDetail{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Brand:       BrandToRef(p.Brand),
		BasePrice:   p.BasePrice,
		SalePrice:   p.SalePrice,
		Stock:       p.Stock,
		Images:      p.Images.ToSlice(),
		IsActive:    p.IsActive,
		Pricing:     info,
		Variants:    make([]dto.VariantDetail, 0, len(p.Variants)),
		Attributes:  make([]dto.AttributeValueDetail, 0, len(p.AttributeValues)),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.ProductType != nil && p.ProductType.ID != 0 {
		out.ProductType = &dto.ProductTypeRef{ID: p.ProductType.ID, Name: p.ProductType.Name, Slug: p.ProductType.Slug}
	}
	for i := range p.Variants {
		v := &p.Variants[i]
		if !v.IsActive && !includeInactiveVariants {
			continue
		}
		options := map[string]interface{}(v.Options)
		if options == nil {
			options = map[string]interface{}{}
		}
		out.Variants = append(out.Variants, dto.VariantDetail{
			ID:        v.ID,
			SKU:       v.SKU,
			Name:      v.Name,
			Price:     v.Price,
			SalePrice: v.SalePrice,
			Stock:     v.Stock,
			Options:   options,
			IsActive:  v.IsActive,
			Pricing:   PriceInfo(VariantPrice(p, v)),
		})
	}
	for _, value := range p.AttributeValues {
		detail := dto.AttributeValueDetail{AttributeID: value.AttributeID, Value: value.Value}
		if value.Attribute != nil {
			detail.Name = value.Attribute.Name
			detail.Slug = value.Attribute.Slug
			detail.Kind = value.Attribute.Kind
			detail.Unit = value.Attribute.Unit
		}
		out.Attributes = append(out.Attributes, detail)
	}
	return out
}

// totalStock 有启用的规格时库存为规格库存之和，否则取商品库存。
func totalStock(p *db.Product) int {
	hasVariants := false
	sum := 0
	for _, v := range p.Variants {
		if !v.IsActive {
			continue
		}
		hasVariants = true
		if v.Stock > 0 {
			sum += v.Stock
		}
	}
	if hasVariants {
		return sum
	}
	return p.Stock
}
