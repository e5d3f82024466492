package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"shop/internal/auth"
	"shop/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	currentUserContextKey = "current-user"
)

// RequestUser 存储请求上下文中的认证用户信息
type RequestUser struct {
	ID          uint
	Email       string
	DisplayName string
	Role        string
}

// IsAdmin 判断用户是否具有管理员权限
func (u *RequestUser) IsAdmin() bool {
	return u != nil && auth.IsStaffRole(u.Role)
}

// IsSuperAdmin 判断用户是否为超级管理员
func (u *RequestUser) IsSuperAdmin() bool {
	return u != nil && auth.IsSuperAdminRole(u.Role)
}

// authFailure 描述认证失败时应返回的响应
type authFailure struct {
	status  int
	code    string
	message string
}

func (f *authFailure) abort(c *gin.Context) {
	c.AbortWithStatusJSON(f.status, APIError{Code: f.code, Message: f.message})
}

// AuthMiddleware JWT 认证中间件，未携带或携带无效 Token 时拒绝请求
func (h *HTTPHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, failure := h.authenticate(c, true)
		if failure != nil {
			failure.abort(c)
			return
		}
		c.Set(currentUserContextKey, user)
		c.Next()
	}
}

// OptionalAuth 可选认证：没有授权头时按访客处理，授权头无效时仍然拒绝
func (h *HTTPHandler) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(c.GetHeader("Authorization")) == "" {
			c.Next()
			return
		}
		user, failure := h.authenticate(c, false)
		if failure != nil {
			failure.abort(c)
			return
		}
		c.Set(currentUserContextKey, user)
		c.Next()
	}
}

func (h *HTTPHandler) authenticate(c *gin.Context, required bool) (*RequestUser, *authFailure) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return nil, &authFailure{http.StatusUnauthorized, ErrCodeUnauthorized, "missing authorization header"}
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, &authFailure{http.StatusUnauthorized, ErrCodeUnauthorized, "invalid authorization header format"}
	}

	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return nil, &authFailure{http.StatusUnauthorized, ErrCodeUnauthorized, "missing bearer token"}
	}

	claims, err := h.authManager.ParseToken(tokenString)
	if err != nil {
		logrus.WithError(err).WithField("required", required).Warn("failed to parse jwt token")
		return nil, &authFailure{http.StatusUnauthorized, ErrCodeSessionExpired, "token is invalid or expired"}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &authFailure{http.StatusUnauthorized, ErrCodeUserNotFound, "user not found"}
		}
		logrus.WithError(err).WithField("user_id", claims.UserID).Error("failed to load user")
		return nil, &authFailure{http.StatusInternalServerError, ErrCodeInternalError, "failed to verify user"}
	}

	if !user.IsActive {
		return nil, &authFailure{http.StatusForbidden, ErrCodeUserDisabled, "account is disabled"}
	}

	return &RequestUser{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
	}, nil
}

// RequireAdmin 管理员权限守卫中间件
func (h *HTTPHandler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, APIError{
				Code:    ErrCodeForbidden,
				Message: "admin privileges required",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser 从上下文获取当前认证用户
func CurrentUser(c *gin.Context) *RequestUser {
	value, exists := c.Get(currentUserContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*RequestUser)
	if !ok {
		return nil
	}
	return user
}

// GuestID 读取请求头中的访客 ID，非法值视为空
func GuestID(c *gin.Context) string {
	return auth.NormalizeGuestID(c.GetHeader(auth.GuestHeader))
}

// CurrentOwner 返回购物车与收藏的归属方：登录用户优先，其次是访客 ID。
// 两者都没有时返回 false。
func CurrentOwner(c *gin.Context) (entity.Owner, bool) {
	if user := CurrentUser(c); user != nil {
		return entity.UserOwner(user.ID), true
	}
	if guestID := GuestID(c); guestID != "" {
		return entity.GuestOwner(guestID), true
	}
	return entity.Owner{}, false
}

// requireOwner 获取归属方，缺失时直接写出错误响应
func requireOwner(c *gin.Context) (entity.Owner, bool) {
	owner, ok := CurrentOwner(c)
	if !ok {
		BadRequest(c, ErrCodeGuestIDRequired, "sign in or send a valid "+auth.GuestHeader+" header")
		return entity.Owner{}, false
	}
	return owner, true
}
