package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shop/internal/entity"
	"shop/internal/entity/converter"
	"shop/internal/entity/db"
	"shop/internal/entity/dto"
	"shop/internal/idgen"
	"shop/internal/metrics"
	"shop/internal/model"
	"shop/internal/pricing"
	"shop/internal/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// OrderService 下单与订单状态管理
type OrderService struct {
	repo    model.Repository
	catalog *CatalogService
	numbers *idgen.Encoder
}

// NewOrderService 创建订单服务实例；numbers 为空时使用数据库 ID 作为订单号
func NewOrderService(repo model.Repository, catalog *CatalogService, numbers *idgen.Encoder) *OrderService {
	return &OrderService{repo: repo, catalog: catalog, numbers: numbers}
}

// Quote 预览当前购物车在指定配送方式下的金额
func (s *OrderService) Quote(ctx context.Context, owner entity.Owner, method string) (*dto.CheckoutQuoteResponse, error) {
	if owner.IsZero() {
		return nil, ErrOwnerRequired
	}
	items, err := s.repo.ListCartItems(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	cart := converter.CartToDTO(items)

	settings, err := s.catalog.DeliverySettings(ctx)
	if err != nil {
		return nil, err
	}
	quote, err := QuoteDelivery(settings, method, cart.Subtotal)
	if err != nil {
		return nil, err
	}
	total := pricing.Round(cart.Subtotal + quote.Cost)
	return &dto.CheckoutQuoteResponse{
		Cart:           cart,
		Delivery:       quote,
		Total:          total,
		TotalFormatted: pricing.FormatPrice(total),
	}, nil
}

// QuoteDelivery 计算配送费用。method 为空时优先快递，快递关闭则选择自提。
func QuoteDelivery(settings *db.DeliverySettings, method string, subtotal float64) (dto.DeliveryQuote, error) {
	if settings == nil {
		settings = DefaultDeliverySettings()
	}
	method = strings.TrimSpace(method)
	if method == "" {
		method = db.DeliveryMethodCourier
		if !settings.IsDeliveryEnabled && settings.PickupEnabled {
			method = db.DeliveryMethodPickup
		}
	}

	quote := dto.DeliveryQuote{
		Method:      method,
		MethodLabel: utils.DeliveryMethodLabel(method),
		MinDays:     settings.MinDays,
		MaxDays:     settings.MaxDays,
	}
	switch method {
	case db.DeliveryMethodCourier:
		if !settings.IsDeliveryEnabled {
			return quote, ErrDeliveryDisabled
		}
		quote.Cost = pricing.DeliveryCost(subtotal, settings.DeliveryCost, settings.FreeDeliveryThreshold)
		if quote.Cost > 0 && settings.FreeDeliveryThreshold > 0 && subtotal < settings.FreeDeliveryThreshold {
			quote.AmountToFree = pricing.Round(settings.FreeDeliveryThreshold - subtotal)
		}
	case db.DeliveryMethodPickup:
		if !settings.PickupEnabled {
			return quote, ErrPickupDisabled
		}
		quote.MinDays, quote.MaxDays = 0, 0
	default:
		return quote, fmt.Errorf("unknown delivery method %q", method)
	}
	quote.IsFree = quote.Cost == 0
	quote.CostFormatted = pricing.FormatPrice(quote.Cost)
	return quote, nil
}

// Checkout 根据用户购物车下单：校验库存与配送方式，在同一事务中扣减库存、写入订单并清空购物车
func (s *OrderService) Checkout(ctx context.Context, userID uint, req dto.CheckoutRequest) (*dto.OrderDetail, error) {
	order, err := s.checkout(ctx, userID, req)
	if err != nil {
		metrics.RecordCheckoutFailure(checkoutFailureReason(err))
		return nil, err
	}
	metrics.RecordOrderPlaced(order.DeliveryMethod, order.PaymentMethod, order.Total)
	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"number":   order.Number,
		"user_id":  userID,
		"total":    order.Total,
	}).Info("order placed")

	stored, err := s.repo.GetOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	detail := converter.OrderToDetail(stored)
	return &detail, nil
}

func (s *OrderService) checkout(ctx context.Context, userID uint, req dto.CheckoutRequest) (*db.Order, error) {
	if userID == 0 {
		return nil, ErrOwnerRequired
	}
	owner := entity.UserOwner(userID)
	items, err := s.repo.ListCartItems(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	orderItems := make([]db.OrderItem, 0, len(items))
	subtotal := 0.0
	for i := range items {
		item := &items[i]
		if err := checkCartLine(item); err != nil {
			return nil, err
		}
		price := converter.CartItemPrice(item)
		line := pricing.LineTotal(price.UnitPrice, item.Quantity)
		snapshot := db.OrderItem{
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: item.Product.Name,
			ImageURL:    item.Product.Images.First(),
			UnitPrice:   price.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   line,
		}
		if item.Variant != nil {
			snapshot.VariantName = item.Variant.Name
		}
		if price.HasDiscount() {
			snapshot.ComparePrice = price.ComparePrice
		}
		orderItems = append(orderItems, snapshot)
		subtotal += line
	}
	subtotal = pricing.Round(subtotal)

	settings, err := s.catalog.DeliverySettings(ctx)
	if err != nil {
		return nil, err
	}
	quote, err := QuoteDelivery(settings, req.DeliveryMethod, subtotal)
	if err != nil {
		return nil, err
	}

	address := strings.TrimSpace(req.Address)
	switch quote.Method {
	case db.DeliveryMethodCourier:
		if address == "" {
			if user, err := s.repo.GetUserByID(ctx, userID); err == nil {
				address = strings.TrimSpace(user.DefaultAddress)
			}
		}
		if address == "" {
			return nil, ErrAddressRequired
		}
	case db.DeliveryMethodPickup:
		address = settings.PickupAddress
	}

	order := &db.Order{
		UserID:         userID,
		Status:         db.OrderStatusPending,
		ContactName:    strings.TrimSpace(req.ContactName),
		ContactPhone:   strings.TrimSpace(req.ContactPhone),
		ContactEmail:   strings.TrimSpace(req.ContactEmail),
		DeliveryMethod: quote.Method,
		Address:        address,
		PaymentMethod:  req.PaymentMethod,
		Comment:        strings.TrimSpace(req.Comment),
		Subtotal:       subtotal,
		DeliveryCost:   quote.Cost,
		Total:          pricing.Round(subtotal + quote.Cost),
		Items:          orderItems,
	}

	if err := s.repo.PlaceOrder(ctx, order, owner, s.numberFunc()); err != nil {
		if errors.Is(err, entity.ErrInsufficientStock) {
			return nil, fmt.Errorf("%w: %v", ErrOutOfStock, err)
		}
		return nil, err
	}
	return order, nil
}

func checkCartLine(item *db.CartItem) error {
	if item.Product == nil || !item.Product.IsActive {
		return ErrProductUnavailable
	}
	if item.VariantID != nil && (item.Variant == nil || !item.Variant.IsActive) {
		return ErrProductUnavailable
	}
	if item.VariantID == nil && hasActiveVariants(item.Product) {
		return ErrVariantRequired
	}
	if !converter.CartItemAvailable(item) {
		return &StockError{Product: item.Product.Name, Available: availableStock(item.Product, item.Variant)}
	}
	return nil
}

func (s *OrderService) numberFunc() entity.OrderNumberFunc {
	if s.numbers == nil {
		return func(id uint) (string, error) {
			return fmt.Sprintf("%08d", id), nil
		}
	}
	return s.numbers.Encode
}

func checkoutFailureReason(err error) string {
	switch {
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, ErrOutOfStock):
		return "out_of_stock"
	case errors.Is(err, ErrProductUnavailable), errors.Is(err, ErrVariantRequired):
		return "unavailable"
	case errors.Is(err, ErrDeliveryDisabled), errors.Is(err, ErrPickupDisabled), errors.Is(err, ErrAddressRequired):
		return "delivery"
	default:
		return "internal"
	}
}

// ListForUser 返回用户自己的订单
func (s *OrderService) ListForUser(ctx context.Context, userID uint, query *dto.OrderQuery) (dto.OrderListResponse, error) {
	if userID == 0 {
		return dto.OrderListResponse{}, ErrOwnerRequired
	}
	if query == nil {
		query = &dto.OrderQuery{}
	}
	query.UserID = userID
	return s.List(ctx, query)
}

// GetForUser 按订单号返回用户自己的订单；他人的订单视为不存在
func (s *OrderService) GetForUser(ctx context.Context, userID uint, number string) (*dto.OrderDetail, error) {
	number = strings.TrimSpace(number)
	if s.numbers != nil {
		if _, err := s.numbers.Decode(number); err != nil {
			return nil, gorm.ErrRecordNotFound
		}
		number = strings.ToUpper(number)
	}
	order, err := s.repo.GetOrderByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	detail := converter.OrderToDetail(order)
	return &detail, nil
}

// List 后台订单列表
func (s *OrderService) List(ctx context.Context, query *dto.OrderQuery) (dto.OrderListResponse, error) {
	if query != nil && query.Status != "" && !utils.IsValidOrderStatus(query.Status) {
		return dto.OrderListResponse{}, ErrInvalidStatus
	}
	orders, meta, err := s.repo.ListOrders(ctx, query)
	if err != nil {
		return dto.OrderListResponse{}, err
	}
	return dto.OrderListResponse{Orders: converter.OrdersToSummaries(orders), Meta: meta}, nil
}

// Get 后台订单详情
func (s *OrderService) Get(ctx context.Context, id uint) (*dto.OrderDetail, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := converter.OrderToDetail(order)
	return &detail, nil
}

// UpdateStatus 按状态流转表修改订单状态；取消订单时归还库存
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) (*dto.OrderDetail, error) {
	status = strings.TrimSpace(status)
	if !utils.IsValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !utils.CanTransitionOrder(order.Status, status) {
		return nil, ErrInvalidTransition
	}
	restock := status == db.OrderStatusCancelled
	if err := s.repo.UpdateOrderStatus(ctx, id, order.Status, status, restock); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"order_id": id,
		"from":     order.Status,
		"to":       status,
	}).Info("order status updated")
	return s.Get(ctx, id)
}
