package api

import (
	"shop/internal/auth"
	"shop/internal/cache"
	"shop/internal/config"
	"shop/internal/idgen"
	"shop/internal/metrics"
	"shop/internal/model"
	"shop/internal/service"
	"shop/internal/storage"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg               config.Config
	repo              model.Repository
	storage           storage.Storage
	storagePublicBase string
	authManager       *auth.Manager
	limiter           *IPRateLimiter

	// 服务层
	catalog      *service.CatalogService
	products     *service.ProductService
	productTypes *service.ProductTypeService
	blog         *service.BlogService
	cart         *service.CartService
	favorites    *service.FavoriteService
	orders       *service.OrderService
}

// NewHTTPHandler 创建 HTTP 处理器实例
func NewHTTPHandler(cfg config.Config, repo model.Repository, store storage.Storage, c cache.Cache, numbers *idgen.Encoder) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	if numbers == nil {
		numbers, err = idgen.NewEncoder(cfg.OrderNumberAlphabet, cfg.OrderNumberSeed, cfg.OrderNumberMinLength)
		if err != nil {
			return nil, err
		}
	}
	if c == nil {
		c = cache.NewMemory()
	}

	registerValidators()

	catalog := service.NewCatalogService(repo, c, time.Duration(cfg.CacheTTLSec)*time.Second)

	return &HTTPHandler{
		cfg:               cfg,
		repo:              repo,
		storage:           store,
		storagePublicBase: normalisePublicBase(cfg.StoragePublicBaseURL),
		authManager:       authManager,
		limiter:           NewIPRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst),
		catalog:           catalog,
		products:          service.NewProductService(repo),
		productTypes:      service.NewProductTypeService(repo),
		blog:              service.NewBlogService(repo),
		cart:              service.NewCartService(repo),
		favorites:         service.NewFavoriteService(repo),
		orders:            service.NewOrderService(repo, catalog, numbers),
	}, nil
}

// RateLimiter 返回认证接口使用的限流器，供定时任务清理
func (h *HTTPHandler) RateLimiter() *IPRateLimiter {
	return h.limiter
}

// normalisePublicBase 规范化公共 URL 基础路径
func normalisePublicBase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "/files"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}

// RegisterRoutes 注册店铺前台 (/api) 与管理后台 (/api/admin) 的全部路由
func (h *HTTPHandler) RegisterRoutes(r gin.IRouter) {
	apiGroup := r.Group("/api")
	if h.cfg.MetricsEnabled {
		apiGroup.Use(metrics.Middleware())
	}

	limited := h.limiter.Middleware()

	authGroup := apiGroup.Group("/auth")
	authGroup.GET("/status", h.AuthStatus)
	authGroup.POST("/register", limited, h.RegisterCustomer)
	authGroup.POST("/login", limited, h.Login)
	authGroup.POST("/guest", h.IssueGuestID)
	authGroup.GET("/me", h.AuthMiddleware(), h.Me)

	// 店铺前台：公开读取
	apiGroup.GET("/banners", h.ListActiveBanners)
	apiGroup.GET("/brands", h.ListBrands)
	apiGroup.GET("/brands/grouped", h.ListGroupedBrands)
	apiGroup.GET("/brands/:slug", h.GetBrandBySlug)
	apiGroup.GET("/delivery-settings", h.GetDeliverySettings)
	apiGroup.GET("/product-types", h.ListProductTypes)
	apiGroup.GET("/product-types/:id", h.GetProductType)
	apiGroup.GET("/products", h.ListProducts)
	apiGroup.GET("/products/:slug", h.GetProductBySlug)
	apiGroup.GET("/blog/categories", h.ListBlogCategories)
	apiGroup.GET("/blog/posts", h.ListPublishedPosts)
	apiGroup.GET("/blog/posts/:slug", h.GetPublishedPost)

	// 购物车与收藏：登录用户或访客
	shopper := apiGroup.Group("")
	shopper.Use(h.OptionalAuth())

	cartGroup := shopper.Group("/cart")
	cartGroup.GET("", h.GetCart)
	cartGroup.POST("/items", h.AddCartItem)
	cartGroup.PATCH("/items/:id", h.UpdateCartItem)
	cartGroup.DELETE("/items/:id", h.RemoveCartItem)
	cartGroup.DELETE("", h.ClearCart)

	favoritesGroup := shopper.Group("/favorites")
	favoritesGroup.GET("", h.ListFavorites)
	favoritesGroup.POST("", h.AddFavorite)
	favoritesGroup.GET("/:product_id", h.CheckFavorite)
	favoritesGroup.DELETE("/:product_id", h.RemoveFavorite)

	shopper.GET("/checkout/quote", h.QuoteCheckout)

	// 需要登录
	protected := apiGroup.Group("")
	protected.Use(h.AuthMiddleware())
	protected.POST("/favorites/sync", h.SyncFavorites)
	protected.POST("/checkout", h.Checkout)
	protected.GET("/orders", h.ListMyOrders)
	protected.GET("/orders/:number", h.GetMyOrder)

	profile := protected.Group("/profile")
	profile.GET("", h.Me)
	profile.PATCH("", h.UpdateProfile)
	profile.POST("/password", h.ChangePassword)

	// 管理后台
	adminGroup := apiGroup.Group("/admin")
	adminGroup.POST("/auth/register", limited, h.Register)

	admin := adminGroup.Group("")
	admin.Use(h.AuthMiddleware(), h.RequireAdmin())

	admin.GET("/dashboard", h.Dashboard)
	admin.POST("/uploads", h.Upload)
	admin.DELETE("/uploads", h.DeleteUpload)

	userAdmin := admin.Group("/users")
	userAdmin.GET("", h.ListUsers)
	userAdmin.POST("", h.CreateUser)
	userAdmin.PATCH("/:id", h.UpdateUser)
	userAdmin.DELETE("/:id", h.DeleteUser)

	customers := admin.Group("/customers")
	customers.GET("", h.ListCustomers)
	customers.GET("/:id", h.GetCustomer)
	customers.PATCH("/:id/status", h.UpdateCustomerStatus)

	blogCategories := admin.Group("/blog/categories")
	blogCategories.GET("", h.ListBlogCategories)
	blogCategories.POST("", h.CreateBlogCategory)
	blogCategories.PATCH("/:id", h.UpdateBlogCategory)
	blogCategories.DELETE("/:id", h.DeleteBlogCategory)

	blogPosts := admin.Group("/blog/posts")
	blogPosts.GET("", h.AdminListPosts)
	blogPosts.POST("", h.CreatePost)
	blogPosts.GET("/:id", h.AdminGetPost)
	blogPosts.PATCH("/:id", h.UpdatePost)
	blogPosts.DELETE("/:id", h.DeletePost)

	banners := admin.Group("/banners")
	banners.GET("", h.AdminListBanners)
	banners.POST("", h.CreateBanner)
	banners.GET("/:id", h.GetBanner)
	banners.PATCH("/:id", h.UpdateBanner)
	banners.DELETE("/:id", h.DeleteBanner)

	brands := admin.Group("/brands")
	brands.GET("", h.AdminListBrands)
	brands.POST("", h.CreateBrand)
	brands.PATCH("/:id", h.UpdateBrand)
	brands.DELETE("/:id", h.DeleteBrand)

	delivery := admin.Group("/delivery-settings")
	delivery.GET("", h.GetDeliverySettings)
	delivery.POST("", h.CreateDeliverySettings)
	delivery.PATCH("", h.UpdateDeliverySettings)

	productTypes := admin.Group("/product-types")
	productTypes.GET("", h.ListProductTypes)
	productTypes.POST("", h.CreateProductType)
	productTypes.GET("/:id", h.GetProductType)
	productTypes.PATCH("/:id", h.UpdateProductType)
	productTypes.DELETE("/:id", h.DeleteProductType)
	productTypes.POST("/:id/attributes", h.CreateAttribute)

	attributes := admin.Group("/attributes")
	attributes.PATCH("/:id", h.UpdateAttribute)
	attributes.DELETE("/:id", h.DeleteAttribute)

	products := admin.Group("/products")
	products.GET("", h.AdminListProducts)
	products.POST("", h.CreateProduct)
	products.GET("/:id", h.AdminGetProduct)
	products.PATCH("/:id", h.UpdateProduct)
	products.DELETE("/:id", h.DeleteProduct)

	orders := admin.Group("/orders")
	orders.GET("", h.AdminListOrders)
	orders.GET("/:id", h.AdminGetOrder)
	orders.PATCH("/:id/status", h.UpdateOrderStatus)
}
