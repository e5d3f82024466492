package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"shop/internal/entity"
	"shop/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func decodeAPIError(t *testing.T, w *httptest.ResponseRecorder) APIError {
	t.Helper()
	var response APIError
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return response
}

func TestErrorHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		respond        func(c *gin.Context)
		expectedStatus int
		expectedCode   string
	}{
		{"BadRequest", func(c *gin.Context) { BadRequest(c, ErrCodeSlugInvalid, "slug 格式不正确") }, http.StatusBadRequest, ErrCodeSlugInvalid},
		{"Unauthorized", func(c *gin.Context) { Unauthorized(c, "需要登录") }, http.StatusUnauthorized, ErrCodeUnauthorized},
		{"Forbidden", func(c *gin.Context) { Forbidden(c, "仅限管理员") }, http.StatusForbidden, ErrCodeForbidden},
		{"NotFound", func(c *gin.Context) { NotFound(c, ErrCodeBrandNotFound, "品牌不存在") }, http.StatusNotFound, ErrCodeBrandNotFound},
		{"InternalError", func(c *gin.Context) { InternalError(c, "服务器错误") }, http.StatusInternalServerError, ErrCodeInternalError},
		{"ServiceUnavailable", func(c *gin.Context) { ServiceUnavailable(c, "存储未配置") }, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"MissingField", func(c *gin.Context) { MissingField(c, "contact_phone") }, http.StatusBadRequest, ErrCodeMissingField},
		{"InvalidPayload", func(c *gin.Context) { InvalidPayload(c) }, http.StatusBadRequest, ErrCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tt.respond(c)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if got := decodeAPIError(t, w).Code; got != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, got)
			}
		})
	}
}

func TestErrorResponseWithDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ErrorResponseWithDetails(c, http.StatusRequestEntityTooLarge, ErrCodeFileTooLarge, "文件过大", gin.H{"max_bytes": 1024})

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected status %d, got %d", http.StatusRequestEntityTooLarge, w.Code)
	}
	response := decodeAPIError(t, w)
	if response.Code != ErrCodeFileTooLarge || response.Message != "文件过大" {
		t.Errorf("unexpected response %+v", response)
	}
	if response.Details == nil {
		t.Error("expected details to be set")
	}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		notFoundCode   string
		expectedStatus int
		expectedCode   string
	}{
		{"记录不存在", gorm.ErrRecordNotFound, ErrCodeOrderNotFound, http.StatusNotFound, ErrCodeOrderNotFound},
		{"记录不存在使用默认错误码", fmt.Errorf("load: %w", gorm.ErrRecordNotFound), "", http.StatusNotFound, ErrCodeNotFound},
		{"唯一键冲突", gorm.ErrDuplicatedKey, "", http.StatusBadRequest, ErrCodeDuplicate},
		{"slug 已存在", service.ErrSlugExists, "", http.StatusBadRequest, ErrCodeSlugExists},
		{"购物车为空", fmt.Errorf("checkout: %w", service.ErrEmptyCart), "", http.StatusBadRequest, ErrCodeEmptyCart},
		{"库存不足", &service.StockError{Product: "Худи", Available: 1}, "", http.StatusConflict, ErrCodeOutOfStock},
		{"属性值非法", &service.AttributeError{Attribute: "Размер", Reason: "unknown option"}, "", http.StatusBadRequest, ErrCodeInvalidAttribute},
		{"状态并发冲突", entity.ErrStatusConflict, "", http.StatusConflict, ErrCodeStatusConflict},
		{"状态流转非法", service.ErrInvalidTransition, "", http.StatusConflict, ErrCodeInvalidTransition},
		{"请求超时", context.DeadlineExceeded, "", http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"未知错误", errors.New("boom"), "", http.StatusInternalServerError, ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			RespondError(c, tt.err, tt.notFoundCode, "test")

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if got := decodeAPIError(t, w).Code; got != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, got)
			}
		})
	}
}
