package service

import (
	"strconv"
	"strings"

	"shop/internal/entity/db"
	"shop/internal/entity/dto"
	"shop/internal/utils"
)

// ValidateAttributeValues 按商品类型的属性定义校验取值并转换为待保存的记录。
// 空值视为未填写；必填属性缺失、数字无法解析、选项不在候选列表内都返回 *AttributeError。
func ValidateAttributeValues(attributes []db.ProductTypeAttribute, values []dto.AttributeValueRequest) ([]db.ProductAttributeValue, error) {
	byID := make(map[uint]*db.ProductTypeAttribute, len(attributes))
	for i := range attributes {
		byID[attributes[i].ID] = &attributes[i]
	}

	seen := make(map[uint]struct{}, len(values))
	out := make([]db.ProductAttributeValue, 0, len(values))
	for _, v := range values {
		attr, ok := byID[v.AttributeID]
		if !ok {
			return nil, &AttributeError{Attribute: strconv.FormatUint(uint64(v.AttributeID), 10), Reason: "does not belong to the product type"}
		}
		if _, dup := seen[attr.ID]; dup {
			return nil, &AttributeError{Attribute: attr.Name, Reason: "specified more than once"}
		}
		seen[attr.ID] = struct{}{}

		value := strings.TrimSpace(v.Value)
		if value == "" {
			continue
		}
		normalized, err := normalizeAttributeValue(attr, value)
		if err != nil {
			return nil, err
		}
		out = append(out, db.ProductAttributeValue{AttributeID: attr.ID, Value: normalized})
	}

	filled := make(map[uint]struct{}, len(out))
	for _, v := range out {
		filled[v.AttributeID] = struct{}{}
	}
	for i := range attributes {
		attr := &attributes[i]
		if !attr.IsRequired {
			continue
		}
		if _, ok := filled[attr.ID]; !ok {
			return nil, &AttributeError{Attribute: attr.Name, Reason: "is required"}
		}
	}
	return out, nil
}

func normalizeAttributeValue(attr *db.ProductTypeAttribute, value string) (string, error) {
	switch attr.Kind {
	case db.AttributeKindNumber:
		number, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
		if err != nil {
			return "", &AttributeError{Attribute: attr.Name, Reason: "must be a number"}
		}
		return strconv.FormatFloat(number, 'f', -1, 64), nil
	case db.AttributeKindBoolean:
		flag, ok := utils.ParseBool(value)
		if !ok {
			return "", &AttributeError{Attribute: attr.Name, Reason: "must be true or false"}
		}
		return strconv.FormatBool(flag), nil
	case db.AttributeKindSelect:
		if !attr.Options.Contains(value) {
			return "", &AttributeError{Attribute: attr.Name, Reason: "is not one of the allowed options"}
		}
		return value, nil
	default:
		return value, nil
	}
}

// NormalizeAttributeOptions 清理 select 属性的候选项：去空白、去重，保持顺序
func NormalizeAttributeOptions(name, kind string, options []string) ([]string, error) {
	if kind != db.AttributeKindSelect {
		return []string{}, nil
	}
	seen := make(map[string]struct{}, len(options))
	out := make([]string, 0, len(options))
	for _, opt := range options {
		trimmed := strings.TrimSpace(opt)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil, &AttributeError{Attribute: name, Reason: "select attributes need at least one option"}
	}
	return out, nil
}

// BuildVariants 把请求中的规格转换为记录，SKU 在同一商品内不能重复
func BuildVariants(reqs []dto.VariantRequest) ([]db.ProductVariant, error) {
	seen := make(map[string]struct{}, len(reqs))
	out := make([]db.ProductVariant, 0, len(reqs))
	for _, r := range reqs {
		sku := strings.TrimSpace(r.SKU)
		if sku != "" {
			key := strings.ToLower(sku)
			if _, dup := seen[key]; dup {
				return nil, ErrDuplicateSKU
			}
			seen[key] = struct{}{}
		}
		variant := db.ProductVariant{
			SKU:       sku,
			Name:      strings.TrimSpace(r.Name),
			Price:     r.Price,
			SalePrice: r.SalePrice,
			Stock:     r.Stock,
			Options:   r.Options,
			IsActive:  true,
		}
		if variant.Options == nil {
			variant.Options = map[string]interface{}{}
		}
		if r.IsActive != nil {
			variant.IsActive = *r.IsActive
		}
		out = append(out, variant)
	}
	return out, nil
}
