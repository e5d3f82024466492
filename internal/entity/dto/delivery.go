package dto

// DeliverySettingsRequest creates or updates delivery settings.
type DeliverySettingsRequest struct {
	IsDeliveryEnabled     *bool    `json:"is_delivery_enabled"`
	DeliveryCost          *float64 `json:"delivery_cost" binding:"omitempty,gte=0"`
	FreeDeliveryThreshold *float64 `json:"free_delivery_threshold" binding:"omitempty,gte=0"`
	PickupEnabled         *bool    `json:"pickup_enabled"`
	PickupAddress         *string  `json:"pickup_address" binding:"omitempty,max=1000"`
	MinDays               *int     `json:"min_days" binding:"omitempty,gte=0,lte=365"`
	MaxDays               *int     `json:"max_days" binding:"omitempty,gte=0,lte=365"`
}

// DeliveryQuote is the delivery part of a checkout preview.
type DeliveryQuote struct {
	Method        string  `json:"method"`
	MethodLabel   string  `json:"method_label"`
	Cost          float64 `json:"cost"`
	CostFormatted string  `json:"cost_formatted"`
	IsFree        bool    `json:"is_free"`
	// AmountToFree is how much more is needed for free delivery; 0 when already free.
	AmountToFree float64 `json:"amount_to_free"`
	MinDays      int     `json:"min_days"`
	MaxDays      int     `json:"max_days"`
}
