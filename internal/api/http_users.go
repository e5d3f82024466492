package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"shop/internal/auth"
	"shop/internal/entity"
	"shop/internal/entity/converter"
	"shop/internal/entity/db"
	"shop/internal/entity/dto"
	"shop/internal/service"
	"shop/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const customerRecentOrders = 5

func (h *HTTPHandler) ListUsers(c *gin.Context) {
	var query dto.UserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}
	query.Normalize(20, 100)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, meta, err := h.repo.ListUsers(ctx, &query)
	if err != nil {
		RespondError(c, err, "", "load users")
		return
	}

	c.JSON(http.StatusOK, dto.UserListResponse{
		Users: converter.UsersToSummaries(users),
		Meta:  meta,
	})
}

func (h *HTTPHandler) CreateUser(c *gin.Context) {
	requestUser := CurrentUser(c)

	var req dto.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		MissingField(c, "email")
		return
	}

	role := sanitizeRole(req.Role)
	if role == "" {
		BadRequest(c, ErrCodeInvalidRequest, "invalid role")
		return
	}
	if role == db.UserRoleAdmin && !requestUser.IsSuperAdmin() {
		Forbidden(c, "only super admin can create admin users")
		return
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		BadRequest(c, ErrCodeWeakPassword, err.Error())
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password for new user")
		InternalError(c, "failed to create user")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	user := &db.User{
		Email:        email,
		DisplayName:  strings.TrimSpace(req.DisplayName),
		PasswordHash: hash,
		Role:         role,
		IsActive:     isActive,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, ErrCodeEmailExists, "email already registered")
			return
		}
		RespondError(c, err, "", "create user")
		return
	}

	c.JSON(http.StatusCreated, converter.UserToSummary(user))
}

func (h *HTTPHandler) UpdateUser(c *gin.Context) {
	requestUser := CurrentUser(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	dbUser, err := h.repo.GetUserByID(ctx, id)
	if err != nil {
		RespondError(c, err, ErrCodeUserNotFound, "update user")
		return
	}

	if dbUser.Role == db.UserRoleSuperAdmin && requestUser.ID != dbUser.ID {
		Forbidden(c, "super admin cannot be modified")
		return
	}

	var updates entity.UserUpdates
	updates.DisplayName = trimmed(req.DisplayName)

	if req.Password != nil {
		if err := auth.ValidatePassword(*req.Password); err != nil {
			BadRequest(c, ErrCodeWeakPassword, err.Error())
			return
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			logrus.WithError(err).Error("failed to hash password for update")
			InternalError(c, "failed to update user")
			return
		}
		updates.PasswordHash = &hash
	}

	if req.Role != nil {
		if !requestUser.IsSuperAdmin() {
			Forbidden(c, "only super admin can change roles")
			return
		}
		targetRole := sanitizeRole(*req.Role)
		if targetRole == "" || dbUser.Role == db.UserRoleSuperAdmin {
			BadRequest(c, ErrCodeInvalidRequest, "invalid role")
			return
		}
		updates.Role = &targetRole
	}

	if req.IsActive != nil {
		if dbUser.Role == db.UserRoleSuperAdmin {
			BadRequest(c, ErrCodeInvalidRequest, "super admin must remain active")
			return
		}
		if dbUser.Role == db.UserRoleAdmin && !requestUser.IsSuperAdmin() {
			Forbidden(c, "only super admin can change admin status")
			return
		}
		updates.IsActive = req.IsActive
	}

	if updates.IsEmpty() {
		c.JSON(http.StatusOK, converter.UserToSummary(dbUser))
		return
	}

	if err := h.repo.UpdateUser(ctx, dbUser.ID, updates); err != nil {
		RespondError(c, err, ErrCodeUserNotFound, "update user")
		return
	}

	updated, err := h.repo.GetUserByID(ctx, dbUser.ID)
	if err != nil {
		RespondError(c, err, ErrCodeUserNotFound, "load updated user")
		return
	}

	c.JSON(http.StatusOK, converter.UserToSummary(updated))
}

func (h *HTTPHandler) DeleteUser(c *gin.Context) {
	requestUser := CurrentUser(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if requestUser.ID == id {
		BadRequest(c, ErrCodeCannotDeleteSelf, "cannot delete current user")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	dbUser, err := h.repo.GetUserByID(ctx, id)
	if err != nil {
		RespondError(c, err, ErrCodeUserNotFound, "delete user")
		return
	}

	if dbUser.Role == db.UserRoleSuperAdmin {
		Forbidden(c, "super admin cannot be deleted")
		return
	}

	if dbUser.Role == db.UserRoleAdmin && !requestUser.IsSuperAdmin() {
		Forbidden(c, "only super admin can delete admin user")
		return
	}

	if err := h.repo.DeleteUser(ctx, id); err != nil {
		RespondError(c, err, ErrCodeUserNotFound, "delete user")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListCustomers 店铺客户列表（角色为 user），附带订单数
func (h *HTTPHandler) ListCustomers(c *gin.Context) {
	var query dto.UserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}
	query.Normalize(20, 100)
	query.Role = db.UserRoleUser

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, meta, err := h.repo.ListUsers(ctx, &query)
	if err != nil {
		RespondError(c, err, "", "load customers")
		return
	}

	c.JSON(http.StatusOK, dto.CustomerListResponse{
		Customers: converter.UsersToCustomers(users),
		Meta:      meta,
	})
}

// GetCustomer 客户详情与最近订单
func (h *HTTPHandler) GetCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.customer(ctx, id)
	if err != nil {
		RespondError(c, err, ErrCodeUserNotFound, "load customer")
		return
	}

	query := &dto.OrderQuery{}
	query.Page = 1
	query.PageSize = customerRecentOrders
	orders, err := h.orders.ListForUser(ctx, user.ID, query)
	if err != nil {
		RespondError(c, err, "", "load customer orders")
		return
	}

	customer := converter.UserToCustomer(user)
	if orders.Meta != nil {
		customer.OrderCount = orders.Meta.Total
	}
	c.JSON(http.StatusOK, dto.CustomerDetailResponse{
		Customer:     customer,
		RecentOrders: orders.Orders,
	})
}

// UpdateCustomerStatus 启用或停用客户账户
func (h *HTTPHandler) UpdateCustomerStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CustomerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.customer(ctx, id); err != nil {
		RespondError(c, err, ErrCodeUserNotFound, "update customer")
		return
	}
	if err := h.repo.UpdateUser(ctx, id, entity.UserUpdates{IsActive: req.IsActive}); err != nil {
		RespondError(c, err, ErrCodeUserNotFound, "update customer")
		return
	}
	updated, err := h.repo.GetUserByID(ctx, id)
	if err != nil {
		RespondError(c, err, ErrCodeUserNotFound, "load customer")
		return
	}
	logrus.WithFields(logrus.Fields{
		"customer_id": id,
		"is_active":   updated.IsActive,
	}).Info("customer status changed")
	c.JSON(http.StatusOK, converter.UserToCustomer(updated))
}

// customer 加载客户；管理员账户不在客户管理范围内，按不存在处理
func (h *HTTPHandler) customer(ctx context.Context, id uint) (*db.User, error) {
	user, err := h.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != db.UserRoleUser {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

// Dashboard 后台首页统计
func (h *HTTPHandler) Dashboard(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	resp, err := service.Dashboard(ctx, h.repo)
	if err != nil {
		RespondError(c, err, "", "load dashboard")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func sanitizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case db.UserRoleAdmin:
		return db.UserRoleAdmin
	case db.UserRoleUser:
		return db.UserRoleUser
	default:
		return ""
	}
}

// parseIDParam 解析路径中的数字 ID，非法时写出 400
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := utils.ParseID(c.Param(name))
	if err != nil {
		ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid "+name, gin.H{"param": name})
		return 0, false
	}
	return id, true
}
