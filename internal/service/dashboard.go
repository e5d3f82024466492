package service

import (
	"context"

	"shop/internal/entity/converter"
	"shop/internal/entity/db"
	"shop/internal/entity/dto"
	"shop/internal/model"
	"shop/internal/pricing"
	"shop/internal/utils"
)

const recentOrdersLimit = 5

// Dashboard 汇总后台首页的统计数据
func Dashboard(ctx context.Context, repo model.Repository) (*dto.DashboardResponse, error) {
	products, err := repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	brands, err := repo.CountBrands(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := repo.CountUsersByRole(ctx, db.UserRoleUser)
	if err != nil {
		return nil, err
	}
	orders, err := repo.CountOrders(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := repo.SumRevenue(ctx, db.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}
	byStatus, err := repo.CountOrdersByStatus(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := repo.RecentOrders(ctx, 0, recentOrdersLimit)
	if err != nil {
		return nil, err
	}

	counts := make([]dto.StatusCount, 0, len(byStatus))
	for _, status := range utils.OrderStatuses() {
		counts = append(counts, dto.StatusCount{
			Status: status,
			Label:  utils.OrderStatusLabel(status),
			Count:  byStatus[status],
		})
	}

	revenue = pricing.Round(revenue)
	return &dto.DashboardResponse{
		Products:         products,
		Brands:           brands,
		Customers:        customers,
		Orders:           orders,
		Revenue:          revenue,
		RevenueFormatted: pricing.FormatPrice(revenue),
		OrdersByStatus:   counts,
		RecentOrders:     converter.OrdersToSummaries(recent),
	}, nil
}
