package dto

// StatusCount is the number of orders in one status.
type StatusCount struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Count  int64  `json:"count"`
}

// DashboardResponse aggregates back-office counters.
type DashboardResponse struct {
	Products         int64          `json:"products"`
	Brands           int64          `json:"brands"`
	Customers        int64          `json:"customers"`
	Orders           int64          `json:"orders"`
	Revenue          float64        `json:"revenue"`
	RevenueFormatted string         `json:"revenue_formatted"`
	OrdersByStatus   []StatusCount  `json:"orders_by_status"`
	RecentOrders     []OrderSummary `json:"recent_orders"`
}
