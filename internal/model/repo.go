package model

import (
	"context"
	"time"

	"shop/internal/entity"
	"shop/internal/entity/common"
	"shop/internal/entity/db"
	"shop/internal/entity/dto"
)

// Repository 定义数据库操作接口
type Repository interface {
	// 用户管理
	CreateUser(ctx context.Context, user *db.User) error
	UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) error
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	GetUserByID(ctx context.Context, id uint) (*db.User, error)
	ListUsers(ctx context.Context, params *dto.UserQuery) ([]db.User, *common.Meta, error)
	DeleteUser(ctx context.Context, id uint) error
	CountUsers(ctx context.Context) (int64, error)
	CountUsersByRole(ctx context.Context, role string) (int64, error)

	// 博客
	ListBlogCategories(ctx context.Context) ([]db.BlogCategory, error)
	GetBlogCategory(ctx context.Context, id uint) (*db.BlogCategory, error)
	GetBlogCategoryBySlug(ctx context.Context, slug string) (*db.BlogCategory, error)
	CreateBlogCategory(ctx context.Context, category *db.BlogCategory) error
	UpdateBlogCategory(ctx context.Context, id uint, updates entity.BlogCategoryUpdates) error
	DeleteBlogCategory(ctx context.Context, id uint) error
	ListBlogPosts(ctx context.Context, params *dto.BlogPostQuery) ([]db.BlogPost, *common.Meta, error)
	GetBlogPost(ctx context.Context, id uint) (*db.BlogPost, error)
	GetBlogPostBySlug(ctx context.Context, slug string) (*db.BlogPost, error)
	CreateBlogPost(ctx context.Context, post *db.BlogPost) error
	UpdateBlogPost(ctx context.Context, id uint, updates entity.BlogPostUpdates) error
	DeleteBlogPost(ctx context.Context, id uint) error

	// 轮播图
	ListBanners(ctx context.Context, visibleAt *time.Time) ([]db.Banner, error)
	GetBanner(ctx context.Context, id uint) (*db.Banner, error)
	CreateBanner(ctx context.Context, banner *db.Banner) error
	UpdateBanner(ctx context.Context, id uint, updates entity.BannerUpdates) error
	DeleteBanner(ctx context.Context, id uint) error

	// 品牌
	ListBrands(ctx context.Context, activeOnly bool) ([]db.Brand, error)
	GetBrand(ctx context.Context, id uint) (*db.Brand, error)
	GetBrandBySlug(ctx context.Context, slug string) (*db.Brand, error)
	CreateBrand(ctx context.Context, brand *db.Brand) error
	UpdateBrand(ctx context.Context, id uint, updates entity.BrandUpdates) error
	DeleteBrand(ctx context.Context, id uint) error
	CountBrands(ctx context.Context) (int64, error)

	// 配送设置
	GetDeliverySettings(ctx context.Context) (*db.DeliverySettings, error)
	CreateDeliverySettings(ctx context.Context, settings *db.DeliverySettings) error
	UpdateDeliverySettings(ctx context.Context, id uint, updates entity.DeliverySettingsUpdates) error

	// 商品类型与属性
	ListProductTypes(ctx context.Context) ([]db.ProductType, error)
	GetProductType(ctx context.Context, id uint) (*db.ProductType, error)
	CreateProductType(ctx context.Context, productType *db.ProductType) error
	UpdateProductType(ctx context.Context, id uint, updates entity.ProductTypeUpdates) error
	DeleteProductType(ctx context.Context, id uint) error
	ListAttributes(ctx context.Context, productTypeID uint) ([]db.ProductTypeAttribute, error)
	GetAttribute(ctx context.Context, id uint) (*db.ProductTypeAttribute, error)
	CreateAttribute(ctx context.Context, attribute *db.ProductTypeAttribute) error
	UpdateAttribute(ctx context.Context, id uint, updates entity.AttributeUpdates) error
	DeleteAttribute(ctx context.Context, id uint) error

	// 商品
	ListProducts(ctx context.Context, params *dto.ProductQuery) ([]db.Product, *common.Meta, error)
	GetProduct(ctx context.Context, id uint) (*db.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*db.Product, error)
	CreateProduct(ctx context.Context, product *db.Product) error
	UpdateProduct(ctx context.Context, id uint, updates entity.ProductUpdates, variants *[]db.ProductVariant, values *[]db.ProductAttributeValue) error
	DeleteProduct(ctx context.Context, id uint) error
	CountProducts(ctx context.Context) (int64, error)
	GetVariant(ctx context.Context, id uint) (*db.ProductVariant, error)

	// 通用
	SlugExists(ctx context.Context, table string, slug string, excludeID uint) (bool, error)

	// 购物车
	ListCartItems(ctx context.Context, owner entity.Owner) ([]db.CartItem, error)
	GetCartItem(ctx context.Context, owner entity.Owner, id uint) (*db.CartItem, error)
	FindCartItem(ctx context.Context, owner entity.Owner, productID uint, variantID *uint) (*db.CartItem, error)
	CreateCartItem(ctx context.Context, item *db.CartItem) error
	UpdateCartItem(ctx context.Context, id uint, quantity int, price float64) error
	DeleteCartItem(ctx context.Context, owner entity.Owner, id uint) error
	ClearCart(ctx context.Context, owner entity.Owner) error
	MergeGuestCart(ctx context.Context, guestID string, userID uint) (int, error)
	PurgeGuestCart(ctx context.Context, before time.Time) (int64, error)

	// 收藏
	ListFavorites(ctx context.Context, owner entity.Owner) ([]db.Favorite, error)
	AddFavorite(ctx context.Context, owner entity.Owner, productID uint) (bool, error)
	RemoveFavorite(ctx context.Context, owner entity.Owner, productID uint) error
	IsFavorite(ctx context.Context, owner entity.Owner, productID uint) (bool, error)
	SyncGuestFavorites(ctx context.Context, guestID string, userID uint) (int, error)
	PurgeGuestFavorites(ctx context.Context, before time.Time) (int64, error)

	// 订单
	PlaceOrder(ctx context.Context, order *db.Order, owner entity.Owner, number entity.OrderNumberFunc) error
	ListOrders(ctx context.Context, params *dto.OrderQuery) ([]db.Order, *common.Meta, error)
	GetOrder(ctx context.Context, id uint) (*db.Order, error)
	GetOrderByNumber(ctx context.Context, number string) (*db.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint, from, to string, restock bool) error
	CountOrders(ctx context.Context) (int64, error)
	CountOrdersByStatus(ctx context.Context) (map[string]int64, error)
	SumRevenue(ctx context.Context, excludeStatuses ...string) (float64, error)
	RecentOrders(ctx context.Context, userID uint, limit int) ([]db.Order, error)
}
