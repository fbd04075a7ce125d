package public

import (
	"errors"

	"github.com/octaverum/octaverum-api/internal/constants"
	"github.com/octaverum/octaverum-api/internal/http/response"
	"github.com/octaverum/octaverum-api/internal/i18n"
	"github.com/octaverum/octaverum-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ForgotPasswordRequest 找回密码请求
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPassword 发起邮件重置。
// 无论邮箱是否注册都返回同一段提示。
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	locale := i18n.ResolveLocale(c)
	if err := h.PasswordResetService.RequestReset(req.Email, locale); err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			respondError(c, response.CodeBadRequest, "error.email_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.reset_request_failed", err)
		return
	}

	h.recordActivity(c, 0, constants.ActivityActionPasswordResetReq, "password reset requested", gin.H{
		"email": req.Email,
	})
	response.SuccessWithMsg(c, i18n.T(locale, "msg.reset_email_sent"), nil)
}

// ResetPasswordRequest 邮件令牌重置请求
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// ResetPassword 用邮件里的令牌设置新密码
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	rawToken := c.Param("token")
	if err := h.PasswordResetService.ConsumeReset(rawToken, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrResetTokenInvalid):
			respondError(c, response.CodeBadRequest, "error.reset_token_invalid", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondWeakPasswordError(c, err)
		default:
			respondError(c, response.CodeInternal, "error.reset_failed", err)
		}
		return
	}

	h.recordActivity(c, 0, constants.ActivityActionPasswordReset, "password reset via email token", nil)
	locale := i18n.ResolveLocale(c)
	response.SuccessWithMsg(c, i18n.T(locale, "msg.password_updated"), nil)
}

// ResetBySecurityRequest 安全问题重置请求
type ResetBySecurityRequest struct {
	Email            string `json:"email" binding:"required"`
	SecurityQuestion string `json:"security_question" binding:"required"`
	SecurityAnswer   string `json:"security_answer" binding:"required"`
	NewPassword      string `json:"new_password" binding:"required"`
}

// ResetBySecurity 用安全问题设置新密码。
// 身份校验失败只返回一种错误，不暴露具体不匹配的字段。
func (h *Handler) ResetBySecurity(c *gin.Context) {
	var req ResetBySecurityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	err := h.PasswordResetService.ResetBySecurityQuestion(req.Email, req.SecurityQuestion, req.SecurityAnswer, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSecurityAnswerInvalid):
			respondError(c, response.CodeBadRequest, "error.security_answer_invalid", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondWeakPasswordError(c, err)
		default:
			respondError(c, response.CodeInternal, "error.reset_failed", err)
		}
		return
	}

	h.recordActivity(c, 0, constants.ActivityActionPasswordReset, "password reset via security question", gin.H{
		"email": req.Email,
	})
	locale := i18n.ResolveLocale(c)
	response.SuccessWithMsg(c, i18n.T(locale, "msg.password_updated"), nil)
}
