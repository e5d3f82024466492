package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"shop/internal/auth"
	"shop/internal/entity"
	"shop/internal/entity/converter"
	"shop/internal/entity/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UpdateProfile 修改当前用户的昵称、电话与默认收货地址
func (h *HTTPHandler) UpdateProfile(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req dto.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}

	updates := entity.UserUpdates{
		DisplayName:    trimmed(req.DisplayName),
		Phone:          trimmed(req.Phone),
		DefaultAddress: trimmed(req.DefaultAddress),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if !updates.IsEmpty() {
		if err := h.repo.UpdateUser(ctx, user.ID, updates); err != nil {
			RespondError(c, err, ErrCodeUserNotFound, "update profile")
			return
		}
	}

	updated, err := h.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		RespondError(c, err, ErrCodeUserNotFound, "load profile")
		return
	}
	c.JSON(http.StatusOK, converter.UserToSummary(updated))
}

// ChangePassword 校验旧密码后设置新密码
func (h *HTTPHandler) ChangePassword(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req dto.PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayloadWithError(c, err)
		return
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		BadRequest(c, ErrCodeWeakPassword, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	dbUser, err := h.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		RespondError(c, err, ErrCodeUserNotFound, "change password")
		return
	}
	if err := auth.VerifyPassword(dbUser.PasswordHash, req.CurrentPassword); err != nil {
		logrus.WithField("user_id", user.ID).Warn("password change rejected: current password mismatch")
		BadRequest(c, ErrCodeInvalidCredentials, "current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password for update")
		InternalError(c, "failed to change password")
		return
	}
	if err := h.repo.UpdateUser(ctx, user.ID, entity.UserUpdates{PasswordHash: &hash}); err != nil {
		RespondError(c, err, ErrCodeUserNotFound, "change password")
		return
	}
	c.Status(http.StatusNoContent)
}

// trimmed 去掉首尾空白，nil 原样返回
func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}
