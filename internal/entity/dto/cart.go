package dto

// CartAddRequest adds a product (optionally a variant) to the cart.
type CartAddRequest struct {
	ProductID uint  `json:"product_id" binding:"required"`
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity" binding:"omitempty,gte=1,lte=999"`
}

// CartUpdateRequest sets the quantity of a cart line; 0 removes it.
type CartUpdateRequest struct {
	Quantity *int `json:"quantity" binding:"required,gte=0,lte=999"`
}

// CartProduct is the product embedded in a cart line.
type CartProduct struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image"`
	Stock int    `json:"stock"`
}

// CartVariant is the variant embedded in a cart line.
type CartVariant struct {
	ID      uint                   `json:"id"`
	SKU     string                 `json:"sku"`
	Name    string                 `json:"name"`
	Stock   int                    `json:"stock"`
	Options map[string]interface{} `json:"options"`
}

// CartItem is one cart line with its resolved price.
type CartItem struct {
	ID                 uint         `json:"id"`
	ProductID          uint         `json:"product_id"`
	VariantID          *uint        `json:"variant_id"`
	Quantity           int          `json:"quantity"`
	UnitPrice          float64      `json:"unit_price"`
	ComparePrice       float64      `json:"compare_price,omitempty"`
	PriceSource        string       `json:"price_source"`
	LineTotal          float64      `json:"line_total"`
	UnitPriceFormatted string       `json:"unit_price_formatted"`
	LineTotalFormatted string       `json:"line_total_formatted"`
	Available          bool         `json:"available"`
	Product            *CartProduct `json:"product,omitempty"`
	Variant            *CartVariant `json:"variant,omitempty"`
}

// CartResponse is the whole cart.
type CartResponse struct {
	Items             []CartItem `json:"items"`
	ItemCount         int        `json:"item_count"`
	Subtotal          float64    `json:"subtotal"`
	SubtotalFormatted string     `json:"subtotal_formatted"`
}
