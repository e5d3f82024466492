package api

import (
	"context"
	"errors"
	"net/http"

	"shop/internal/entity"
	"shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// 错误码定义
const (
	// 通用错误码 (1xxx)
	ErrCodeInvalidRequest     = "ERR_INVALID_REQUEST"
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeNotFound           = "ERR_NOT_FOUND"
	ErrCodeInternalError      = "ERR_INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"
	ErrCodeRateLimited        = "ERR_RATE_LIMITED"
	ErrCodeDuplicate          = "ERR_DUPLICATE"

	// 认证错误码 (2xxx)
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeEmailExists        = "ERR_EMAIL_EXISTS"
	ErrCodeRegistrationClosed = "ERR_REGISTRATION_CLOSED"
	ErrCodeUserDisabled       = "ERR_USER_DISABLED"
	ErrCodeSessionExpired     = "ERR_SESSION_EXPIRED"
	ErrCodeWeakPassword       = "ERR_WEAK_PASSWORD"
	ErrCodeGuestIDRequired    = "ERR_GUEST_ID_REQUIRED"

	// 资源错误码 (3xxx)
	ErrCodeUserNotFound        = "ERR_USER_NOT_FOUND"
	ErrCodeProductNotFound     = "ERR_PRODUCT_NOT_FOUND"
	ErrCodeProductTypeNotFound = "ERR_PRODUCT_TYPE_NOT_FOUND"
	ErrCodeAttributeNotFound   = "ERR_ATTRIBUTE_NOT_FOUND"
	ErrCodeBrandNotFound       = "ERR_BRAND_NOT_FOUND"
	ErrCodeBannerNotFound      = "ERR_BANNER_NOT_FOUND"
	ErrCodePostNotFound        = "ERR_POST_NOT_FOUND"
	ErrCodeCategoryNotFound    = "ERR_CATEGORY_NOT_FOUND"
	ErrCodeCartItemNotFound    = "ERR_CART_ITEM_NOT_FOUND"
	ErrCodeOrderNotFound       = "ERR_ORDER_NOT_FOUND"
	ErrCodeDeliveryNotFound    = "ERR_DELIVERY_SETTINGS_NOT_FOUND"

	// 业务逻辑错误码 (4xxx)
	ErrCodeMissingField         = "ERR_MISSING_FIELD"
	ErrCodeCannotDeleteSelf     = "ERR_CANNOT_DELETE_SELF"
	ErrCodeSlugExists           = "ERR_SLUG_EXISTS"
	ErrCodeSlugInvalid          = "ERR_SLUG_INVALID"
	ErrCodeProductUnavailable   = "ERR_PRODUCT_UNAVAILABLE"
	ErrCodeVariantRequired      = "ERR_VARIANT_REQUIRED"
	ErrCodeVariantMismatch      = "ERR_VARIANT_MISMATCH"
	ErrCodeDuplicateSKU         = "ERR_DUPLICATE_SKU"
	ErrCodeOutOfStock           = "ERR_OUT_OF_STOCK"
	ErrCodeEmptyCart            = "ERR_EMPTY_CART"
	ErrCodeDeliveryDisabled     = "ERR_DELIVERY_DISABLED"
	ErrCodePickupDisabled       = "ERR_PICKUP_DISABLED"
	ErrCodeAddressRequired      = "ERR_ADDRESS_REQUIRED"
	ErrCodeInvalidStatus        = "ERR_INVALID_STATUS"
	ErrCodeInvalidTransition    = "ERR_INVALID_TRANSITION"
	ErrCodeStatusConflict       = "ERR_STATUS_CONFLICT"
	ErrCodeDeliveryExists       = "ERR_DELIVERY_SETTINGS_EXIST"
	ErrCodeInvalidDelivery      = "ERR_INVALID_DELIVERY_SETTINGS"
	ErrCodeInvalidAttribute     = "ERR_INVALID_ATTRIBUTE"
	ErrCodeProductTypeRequired  = "ERR_PRODUCT_TYPE_REQUIRED"
	ErrCodeInvalidFile          = "ERR_INVALID_FILE"
	ErrCodeFileTooLarge         = "ERR_FILE_TOO_LARGE"
	ErrCodeUploadFailed         = "ERR_UPLOAD_FAILED"
	ErrCodeInvalidBannerWindow  = "ERR_INVALID_BANNER_WINDOW"
)

// APIError 统一的 API 错误响应结构
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse 返回统一格式的错误响应
func ErrorResponse(c *gin.Context, status int, code string, message string) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
	})
}

// ErrorResponseWithDetails 返回带详情的错误响应
func ErrorResponseWithDetails(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// 常用错误响应快捷函数

// BadRequest 400 错误请求
func BadRequest(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401 未授权
func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// Forbidden 403 禁止访问
func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, ErrCodeForbidden, message)
}

// NotFound 404 资源不存在
func NotFound(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusNotFound, code, message)
}

// InternalError 500 服务器内部错误
func InternalError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// ServiceUnavailable 503 服务不可用
func ServiceUnavailable(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, message)
}

// MissingField 缺少必填字段
func MissingField(c *gin.Context, field string) {
	ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeMissingField, field+" is required", gin.H{"field": field})
}

// InvalidPayload 无效的请求体
func InvalidPayload(c *gin.Context) {
	ErrorResponse(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request payload")
}

// InvalidPayloadWithError 无效的请求体，附带校验失败的原因
func InvalidPayloadWithError(c *gin.Context, err error) {
	if err == nil {
		InvalidPayload(c)
		return
	}
	ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request payload", gin.H{"reason": err.Error()})
}

// serviceErrors 业务错误到 HTTP 状态与错误码的映射
var serviceErrors = []struct {
	target  error
	status  int
	code    string
	message string
}{
	{service.ErrSlugExists, http.StatusBadRequest, ErrCodeSlugExists, "slug already exists"},
	{service.ErrSlugInvalid, http.StatusBadRequest, ErrCodeSlugInvalid, "slug is empty or invalid"},
	{service.ErrProductUnavailable, http.StatusConflict, ErrCodeProductUnavailable, "product is not available"},
	{service.ErrVariantRequired, http.StatusBadRequest, ErrCodeVariantRequired, "please select a variant"},
	{service.ErrVariantMismatch, http.StatusBadRequest, ErrCodeVariantMismatch, "variant does not belong to product"},
	{service.ErrDuplicateSKU, http.StatusBadRequest, ErrCodeDuplicateSKU, "variant sku must be unique"},
	{service.ErrOutOfStock, http.StatusConflict, ErrCodeOutOfStock, "not enough stock"},
	{service.ErrEmptyCart, http.StatusBadRequest, ErrCodeEmptyCart, "cart is empty"},
	{service.ErrOwnerRequired, http.StatusBadRequest, ErrCodeGuestIDRequired, "sign in or provide a guest id"},
	{service.ErrDeliveryDisabled, http.StatusBadRequest, ErrCodeDeliveryDisabled, "courier delivery is not available"},
	{service.ErrPickupDisabled, http.StatusBadRequest, ErrCodePickupDisabled, "pickup is not available"},
	{service.ErrAddressRequired, http.StatusBadRequest, ErrCodeAddressRequired, "delivery address is required"},
	{service.ErrInvalidStatus, http.StatusBadRequest, ErrCodeInvalidStatus, "unknown order status"},
	{service.ErrInvalidTransition, http.StatusConflict, ErrCodeInvalidTransition, "order status transition is not allowed"},
	{entity.ErrStatusConflict, http.StatusConflict, ErrCodeStatusConflict, "order was modified, reload and try again"},
	{service.ErrDeliverySettingsExist, http.StatusConflict, ErrCodeDeliveryExists, "delivery settings already exist"},
	{service.ErrInvalidDeliveryDays, http.StatusBadRequest, ErrCodeInvalidDelivery, "min_days must not exceed max_days"},
	{service.ErrInvalidDeliveryCost, http.StatusBadRequest, ErrCodeInvalidDelivery, "delivery cost must not be negative"},
	{service.ErrProductTypeRequired, http.StatusBadRequest, ErrCodeProductTypeRequired, "product type is required for attributes"},
}

// RespondError 把仓储与业务层错误转换为统一的错误响应。
// notFoundCode 为记录不存在时使用的错误码，action 用于日志。
func RespondError(c *gin.Context, err error, notFoundCode string, action string) {
	var attrErr *service.AttributeError
	if errors.As(err, &attrErr) {
		ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeInvalidAttribute, attrErr.Error(), gin.H{
			"attribute": attrErr.Attribute,
			"reason":    attrErr.Reason,
		})
		return
	}
	var stockErr *service.StockError
	if errors.As(err, &stockErr) {
		ErrorResponseWithDetails(c, http.StatusConflict, ErrCodeOutOfStock, stockErr.Error(), gin.H{
			"product":   stockErr.Product,
			"available": stockErr.Available,
		})
		return
	}

	for _, mapping := range serviceErrors {
		if errors.Is(err, mapping.target) {
			ErrorResponse(c, mapping.status, mapping.code, mapping.message)
			return
		}
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if notFoundCode == "" {
			notFoundCode = ErrCodeNotFound
		}
		NotFound(c, notFoundCode, "resource not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		BadRequest(c, ErrCodeDuplicate, "resource already exists")
	case errors.Is(err, context.DeadlineExceeded):
		logrus.WithError(err).WithField("action", action).Warn("request timed out")
		ServiceUnavailable(c, "request timed out")
	default:
		logrus.WithError(err).WithField("action", action).Error("request failed")
		InternalError(c, "failed to "+action)
	}
}
