package public

import (
	"errors"
	"time"

	"github.com/octaverum/octaverum-api/internal/constants"
	"github.com/octaverum/octaverum-api/internal/http/response"
	"github.com/octaverum/octaverum-api/internal/i18n"
	"github.com/octaverum/octaverum-api/internal/models"
	"github.com/octaverum/octaverum-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Nickname         string `json:"nickname" binding:"required"`
	Email            string `json:"email" binding:"required"`
	Password         string `json:"password" binding:"required"`
	SecurityQuestion string `json:"security_question" binding:"required"`
	SecurityAnswer   string `json:"security_answer" binding:"required"`
	CountryCode      string `json:"country_code"`
	Phone            string `json:"phone"`
}

// UserRegister 用户注册
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, session, err := h.UserAuthService.Register(service.RegisterInput{
		Nickname:         req.Nickname,
		Email:            req.Email,
		Password:         req.Password,
		SecurityQuestion: req.SecurityQuestion,
		SecurityAnswer:   req.SecurityAnswer,
		CountryCode:      req.CountryCode,
		Phone:            req.Phone,
	})
	if err != nil {
		respondRegisterError(c, err)
		return
	}

	h.recordActivity(c, user.ID, constants.ActivityActionRegister, "user registered", nil)
	response.Success(c, gin.H{
		"user":    userPayload(user),
		"session": sessionPayload(session),
	})
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.recordActivity(c, 0, constants.ActivityActionLoginFailed, "malformed login request", gin.H{
			"reason": constants.LoginFailReasonBadRequest,
		})
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, session, err := h.UserAuthService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			h.recordActivity(c, 0, constants.ActivityActionLoginFailed, "invalid credentials", gin.H{
				"reason": constants.LoginFailReasonInvalidCredentials,
				"email":  req.Email,
			})
			respondError(c, response.CodeUnauthorized, "error.login_invalid", nil)
		case errors.Is(err, service.ErrUserDisabled):
			h.recordActivity(c, 0, constants.ActivityActionLoginFailed, "disabled account", gin.H{
				"reason": constants.LoginFailReasonUserDisabled,
				"email":  req.Email,
			})
			respondError(c, response.CodeForbidden, "error.user_disabled", nil)
		default:
			h.recordActivity(c, 0, constants.ActivityActionLoginFailed, "login error", gin.H{
				"reason": constants.LoginFailReasonInternalError,
			})
			respondError(c, response.CodeInternal, "error.login_failed", err)
		}
		return
	}

	h.recordActivity(c, user.ID, constants.ActivityActionLoginSuccess, "user logged in", nil)
	response.Success(c, gin.H{
		"user":    userPayload(user),
		"session": sessionPayload(session),
	})
}

// UserLogoutRequest 登出请求
type UserLogoutRequest struct {
	RefreshToken         string `json:"refresh_token"`
	LogoutFromAllDevices bool   `json:"logout_from_all_devices"`
}

// UserLogout 用户登出。撤销失败也返回成功，客户端总能清理本地会话。
func (h *Handler) UserLogout(c *gin.Context) {
	var req UserLogoutRequest
	_ = c.ShouldBindJSON(&req)

	h.SessionService.EndSession(req.RefreshToken, req.LogoutFromAllDevices)
	if userID, ok := c.Get("user_id"); ok {
		if id, ok := userID.(uint); ok {
			h.recordActivity(c, id, constants.ActivityActionLogout, "user logged out", nil)
		}
	}

	locale := i18n.ResolveLocale(c)
	response.SuccessWithMsg(c, i18n.T(locale, "msg.logged_out"), nil)
}

// RefreshTokenRequest 刷新令牌请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshToken 用刷新令牌换新的访问令牌
func (h *Handler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.refresh_token_required", err)
		return
	}

	session, err := h.SessionService.Refresh(req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			respondError(c, response.CodeUnauthorized, "error.token_invalid", nil)
		case errors.Is(err, service.ErrUserDisabled):
			respondError(c, response.CodeForbidden, "error.user_disabled", nil)
		default:
			respondError(c, response.CodeInternal, "error.refresh_failed", err)
		}
		return
	}

	response.Success(c, gin.H{"session": sessionPayload(session)})
}

func sessionPayload(session *service.Session) gin.H {
	if session == nil {
		return nil
	}
	return gin.H{
		"access_token":  session.AccessToken,
		"refresh_token": session.RefreshToken,
		"expires_in":    session.ExpiresIn,
	}
}

func userPayload(user *models.User) gin.H {
	if user == nil {
		return nil
	}
	payload := gin.H{
		"id":                user.ID,
		"nickname":          user.Nickname,
		"email":             user.Email,
		"security_question": user.SecurityQuestion,
		"country_code":      user.CountryCode,
		"phone":             user.Phone,
		"role":              user.Role,
		"status":            user.Status,
		"subscription": gin.H{
			"plan":       user.SubscriptionPlan,
			"start_date": formatNullableTime(user.SubscriptionStartDate),
			"end_date":   formatNullableTime(user.SubscriptionEndDate),
		},
		"created_at": user.CreatedAt.Format(time.RFC3339),
	}
	if user.LastLoginAt != nil {
		payload["last_login_at"] = user.LastLoginAt.Format(time.RFC3339)
	}
	return payload
}

func formatNullableTime(value *time.Time) interface{} {
	if value == nil {
		return nil
	}
	return value.Format(time.RFC3339)
}

func (h *Handler) recordActivity(c *gin.Context, userID uint, action, description string, metadata gin.H) {
	requestID := ""
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			requestID = id
		}
	}
	h.ActivityLogService.Record(service.ActivityEntry{
		UserID:      userID,
		Action:      action,
		Description: description,
		ClientIP:    c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
		RequestID:   requestID,
		Metadata:    metadata,
	})
}
