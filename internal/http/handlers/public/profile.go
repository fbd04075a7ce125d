package public

import (
	"errors"

	"github.com/octaverum/octaverum-api/internal/constants"
	"github.com/octaverum/octaverum-api/internal/http/response"
	"github.com/octaverum/octaverum-api/internal/i18n"
	"github.com/octaverum/octaverum-api/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCurrentUser 获取当前用户资料
func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.UserAuthService.GetUserByID(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		return
	}

	response.Success(c, gin.H{"user": userPayload(user)})
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangeUserPassword 登录态修改密码，成功后旧会话全部失效并返回新会话。
func (h *Handler) ChangeUserPassword(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	session, err := h.UserAuthService.ChangePassword(userID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeUnauthorized, "error.password_old_invalid", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondWeakPasswordError(c, err)
		default:
			respondError(c, response.CodeInternal, "error.user_update_failed", err)
		}
		return
	}

	h.recordActivity(c, userID, constants.ActivityActionPasswordChange, "password changed", nil)
	locale := i18n.ResolveLocale(c)
	response.SuccessWithMsg(c, i18n.T(locale, "msg.password_updated"), gin.H{
		"session": sessionPayload(session),
	})
}

// UpdateProfileRequest 更新资料请求，缺省字段不修改。
type UpdateProfileRequest struct {
	Nickname         *string `json:"nickname"`
	SecurityQuestion *string `json:"security_question"`
	SecurityAnswer   *string `json:"security_answer"`
	CountryCode      *string `json:"country_code"`
	Phone            *string `json:"phone"`
}

// UpdateUserProfile 更新当前用户资料
func (h *Handler) UpdateUserProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserAuthService.UpdateProfile(userID, service.ProfileUpdate{
		Nickname:         req.Nickname,
		SecurityQuestion: req.SecurityQuestion,
		SecurityAnswer:   req.SecurityAnswer,
		CountryCode:      req.CountryCode,
		Phone:            req.Phone,
	})
	if err != nil {
		respondProfileUpdateError(c, err)
		return
	}

	h.recordActivity(c, userID, constants.ActivityActionProfileUpdate, "profile updated", nil)
	response.Success(c, gin.H{"user": userPayload(user)})
}
