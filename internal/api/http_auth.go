package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"shop/internal/auth"
	"shop/internal/entity/converter"
	"shop/internal/entity/db"
	"shop/internal/entity/dto"
	"shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Register 初始化管理后台：仅在系统中没有任何用户时创建超级管理员
func (h *HTTPHandler) Register(c *gin.Context) {
	var req dto.AuthRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	count, err := h.repo.CountUsers(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to count users during registration")
		InternalError(c, "failed to process registration")
		return
	}
	if count > 0 {
		Forbidden(c, "registration disabled")
		return
	}

	user, ok := h.createAccount(ctx, c, req, db.UserRoleSuperAdmin)
	if !ok {
		return
	}
	h.respondSession(ctx, c, http.StatusCreated, user)
}

// RegisterCustomer 店铺前台注册，创建普通用户并合并访客数据
func (h *HTTPHandler) RegisterCustomer(c *gin.Context) {
	var req dto.AuthRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user, ok := h.createAccount(ctx, c, req, db.UserRoleUser)
	if !ok {
		return
	}
	h.respondSession(ctx, c, http.StatusCreated, user)
}

func (h *HTTPHandler) createAccount(ctx context.Context, c *gin.Context, req dto.AuthRegisterRequest, role string) (*db.User, bool) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		MissingField(c, "email")
		return nil, false
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		BadRequest(c, ErrCodeWeakPassword, err.Error())
		return nil, false
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		InternalError(c, "failed to register user")
		return nil, false
	}

	user := &db.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         role,
		IsActive:     true,
	}

	if err := h.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, ErrCodeEmailExists, "email already registered")
			return nil, false
		}
		logrus.WithError(err).WithField("role", role).Error("failed to create user")
		InternalError(c, "failed to register user")
		return nil, false
	}
	return user, true
}

// Login 邮箱密码登录；携带访客 ID 时同步访客收藏与购物车
func (h *HTTPHandler) Login(c *gin.Context) {
	var req dto.AuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		BadRequest(c, ErrCodeMissingField, "email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user, err := h.repo.GetUserByEmail(ctx, email)
	if err != nil {
		logrus.WithError(err).WithField("email", email).Warn("login attempt failed")
		ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid email or password")
		return
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		logrus.WithError(err).WithField("email", email).Warn("password verification failed")
		ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid email or password")
		return
	}

	if !user.IsActive {
		ErrorResponse(c, http.StatusForbidden, ErrCodeUserDisabled, "account is disabled")
		return
	}

	h.respondSession(ctx, c, http.StatusOK, user)
}

// respondSession 签发 Token，并把请求中访客 ID 名下的数据并入该账户
func (h *HTTPHandler) respondSession(ctx context.Context, c *gin.Context, status int, user *db.User) {
	token, expiresAt, err := h.authManager.GenerateToken(user)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to generate token")
		InternalError(c, "failed to create session")
		return
	}

	resp := dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      converter.UserToSummary(user),
	}

	if guestID := GuestID(c); guestID != "" {
		merged := service.MergeGuestData(ctx, h.favorites, h.cart, guestID, user.ID)
		resp.GuestIDCleared = merged.Cleared
		resp.SyncedFavorites = merged.Favorites
		resp.MergedCartItems = merged.CartItems
	}

	c.JSON(status, resp)
}

// AuthStatus 返回系统是否已初始化
func (h *HTTPHandler) AuthStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()
	count, err := h.repo.CountUsers(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to count users for auth status")
		InternalError(c, "failed to check auth status")
		return
	}
	c.JSON(http.StatusOK, dto.AuthStatusResponse{HasUser: count > 0})
}

// IssueGuestID 为未登录访客分配新的访客 ID
func (h *HTTPHandler) IssueGuestID(c *gin.Context) {
	c.JSON(http.StatusCreated, dto.GuestIDResponse{GuestID: auth.NewGuestID()})
}

func (h *HTTPHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	dbUser, err := h.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		RespondError(c, err, ErrCodeUserNotFound, "load profile")
		return
	}

	c.JSON(http.StatusOK, converter.UserToSummary(dbUser))
}
