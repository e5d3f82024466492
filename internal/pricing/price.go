// Package pricing 汇总商品价格相关的纯函数：价格优先级解析、折扣判断与卢布金额格式化。
package pricing

import "math"

// 价格来源
const (
	SourceVariantSale  = "variant_sale"
	SourceVariantPrice = "variant_price"
	SourceProductSale  = "product_sale"
	SourceProductBase  = "product_base"
	SourceLinePrice    = "line_price"
	SourceNone         = "none"
)

// Input 是价格解析的输入。为 nil 的字段表示该价格不存在。
type Input struct {
	VariantSalePrice *float64
	VariantPrice     *float64
	ProductSalePrice *float64
	ProductBasePrice *float64
	LinePrice        *float64
}

// Resolved 是解析后的价格。ComparePrice 为 0 表示没有划线价。
type Resolved struct {
	UnitPrice    float64 `json:"unit_price"`
	ComparePrice float64 `json:"compare_price,omitempty"`
	Source       string  `json:"source"`
}

// HasDiscount 判断是否存在划线价。
func (r Resolved) HasDiscount() bool {
	return r.ComparePrice > r.UnitPrice && r.UnitPrice > 0
}

// DiscountPercent 返回取整后的折扣百分比。
func (r Resolved) DiscountPercent() int {
	return DiscountPercent(r.ComparePrice, r.UnitPrice)
}

// Resolve 按 规格促销价 → 规格价 → 商品促销价 → 商品原价 → 购物车记录价 的顺序
// 取第一个为正数的价格。划线价只取与所选价格同一层级（规格或商品）的常规价，且必须严格大于所选价格。
func Resolve(in Input) Resolved {
	if v, ok := positive(in.VariantSalePrice); ok {
		return withCompare(v, SourceVariantSale, in.VariantPrice)
	}
	if v, ok := positive(in.VariantPrice); ok {
		return Resolved{UnitPrice: v, Source: SourceVariantPrice}
	}
	if v, ok := positive(in.ProductSalePrice); ok {
		return withCompare(v, SourceProductSale, in.ProductBasePrice)
	}
	if v, ok := positive(in.ProductBasePrice); ok {
		return Resolved{UnitPrice: v, Source: SourceProductBase}
	}
	if v, ok := positive(in.LinePrice); ok {
		return Resolved{UnitPrice: v, Source: SourceLinePrice}
	}
	return Resolved{Source: SourceNone}
}

func withCompare(unit float64, source string, regular *float64) Resolved {
	out := Resolved{UnitPrice: unit, Source: source}
	if v, ok := positive(regular); ok && v > unit {
		out.ComparePrice = v
	}
	return out
}

func positive(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0 {
		return 0, false
	}
	return Round(*v), true
}

// IsProductOnSale 当且仅当设置了促销价且严格低于原价时返回 true。
func IsProductOnSale(basePrice float64, salePrice *float64) bool {
	sale, ok := positive(salePrice)
	if !ok || math.IsNaN(basePrice) {
		return false
	}
	return sale < basePrice
}

// DiscountPercent 计算 compare 相对 unit 的折扣百分比，四舍五入。
func DiscountPercent(compare, unit float64) int {
	if compare <= 0 || unit <= 0 || unit >= compare || math.IsNaN(compare) || math.IsNaN(unit) {
		return 0
	}
	return int(math.Round((compare - unit) / compare * 100))
}

// LineTotal 计算单行金额，保留两位小数。
func LineTotal(unit float64, quantity int) float64 {
	if quantity <= 0 || unit <= 0 || math.IsNaN(unit) {
		return 0
	}
	return Round(unit * float64(quantity))
}

// DeliveryCost 根据小计计算运费：达到免邮门槛后免运费，门槛为 0 表示不设门槛。
func DeliveryCost(subtotal, cost, freeThreshold float64) float64 {
	if cost <= 0 || math.IsNaN(cost) {
		return 0
	}
	if freeThreshold > 0 && subtotal >= freeThreshold {
		return 0
	}
	return Round(cost)
}

// Round 保留两位小数（戈比精度）。
func Round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}

// Ptr 返回浮点数指针，便于构造可选价格。
func Ptr(v float64) *float64 {
	return &v
}
