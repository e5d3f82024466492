package pricing

import (
	"math"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		input       Input
		wantUnit    float64
		wantCompare float64
		wantSource  string
	}{
		{
			name:        "规格促销价优先，规格价为划线价",
			input:       Input{VariantSalePrice: Ptr(100), VariantPrice: Ptr(150), ProductBasePrice: Ptr(300)},
			wantUnit:    100,
			wantCompare: 150,
			wantSource:  SourceVariantSale,
		},
		{
			name:       "规格价优先于商品促销价",
			input:      Input{VariantPrice: Ptr(150), ProductSalePrice: Ptr(80), ProductBasePrice: Ptr(200)},
			wantUnit:   150,
			wantSource: SourceVariantPrice,
		},
		{
			name:        "商品促销价与原价",
			input:       Input{ProductSalePrice: Ptr(80), ProductBasePrice: Ptr(100)},
			wantUnit:    80,
			wantCompare: 100,
			wantSource:  SourceProductSale,
		},
		{
			name:       "促销价不低于原价时无划线价",
			input:      Input{ProductSalePrice: Ptr(120), ProductBasePrice: Ptr(100)},
			wantUnit:   120,
			wantSource: SourceProductSale,
		},
		{
			name:       "零与负数被跳过",
			input:      Input{VariantSalePrice: Ptr(0), VariantPrice: Ptr(-5), ProductBasePrice: Ptr(42)},
			wantUnit:   42,
			wantSource: SourceProductBase,
		},
		{
			name:       "NaN 被跳过",
			input:      Input{ProductSalePrice: Ptr(math.NaN()), ProductBasePrice: Ptr(10)},
			wantUnit:   10,
			wantSource: SourceProductBase,
		},
		{
			name:       "回退到购物车记录价",
			input:      Input{ProductBasePrice: Ptr(0), LinePrice: Ptr(55.5)},
			wantUnit:   55.5,
			wantSource: SourceLinePrice,
		},
		{
			name:       "没有任何价格",
			input:      Input{},
			wantUnit:   0,
			wantSource: SourceNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.input)
			if got.UnitPrice != tt.wantUnit {
				t.Errorf("expected unit %v, got %v", tt.wantUnit, got.UnitPrice)
			}
			if got.ComparePrice != tt.wantCompare {
				t.Errorf("expected compare %v, got %v", tt.wantCompare, got.ComparePrice)
			}
			if got.Source != tt.wantSource {
				t.Errorf("expected source %q, got %q", tt.wantSource, got.Source)
			}
		})
	}
}

func TestIsProductOnSale(t *testing.T) {
	tests := []struct {
		name string
		base float64
		sale *float64
		want bool
	}{
		{name: "未设置促销价", base: 100, sale: nil, want: false},
		{name: "促销价更低", base: 100, sale: Ptr(90), want: true},
		{name: "促销价相等", base: 100, sale: Ptr(100), want: false},
		{name: "促销价更高", base: 100, sale: Ptr(110), want: false},
		{name: "促销价为 0 视为未设置", base: 100, sale: Ptr(0), want: false},
		{name: "促销价为负数", base: 100, sale: Ptr(-5), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsProductOnSale(tt.base, tt.sale); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDiscountPercent(t *testing.T) {
	if got := DiscountPercent(150, 100); got != 33 {
		t.Errorf("expected 33, got %d", got)
	}
	if got := DiscountPercent(100, 100); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := DiscountPercent(0, 100); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	resolved := Resolve(Input{VariantSalePrice: Ptr(100), VariantPrice: Ptr(150)})
	if !resolved.HasDiscount() || resolved.DiscountPercent() != 33 {
		t.Errorf("unexpected discount for %+v", resolved)
	}
}

func TestLineTotalAndDeliveryCost(t *testing.T) {
	if got := LineTotal(19.99, 3); got != 59.97 {
		t.Errorf("expected 59.97, got %v", got)
	}
	if got := LineTotal(10, 0); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}

	tests := []struct {
		name      string
		subtotal  float64
		cost      float64
		threshold float64
		want      float64
	}{
		{name: "低于门槛", subtotal: 1000, cost: 300, threshold: 5000, want: 300},
		{name: "达到门槛", subtotal: 5000, cost: 300, threshold: 5000, want: 0},
		{name: "无门槛", subtotal: 100000, cost: 300, threshold: 0, want: 300},
		{name: "运费为零", subtotal: 10, cost: 0, threshold: 5000, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeliveryCost(tt.subtotal, tt.cost, tt.threshold); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
