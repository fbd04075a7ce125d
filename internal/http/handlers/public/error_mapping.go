package public

import (
	"errors"

	"github.com/octaverum/octaverum-api/internal/http/response"
	"github.com/octaverum/octaverum-api/internal/i18n"
	"github.com/octaverum/octaverum-api/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	if errors.Is(err, service.ErrWeakPassword) {
		respondWeakPasswordError(c, err)
		return
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

// respondWeakPasswordError 输出带策略参数的密码强度错误。
func respondWeakPasswordError(c *gin.Context, err error) {
	locale := i18n.ResolveLocale(c)
	if perr, ok := err.(interface {
		Key() string
		Args() []interface{}
	}); ok {
		msg := i18n.Sprintf(locale, perr.Key(), perr.Args()...)
		respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return
	}
	respondError(c, response.CodeBadRequest, "error.password_weak", nil)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var identityFieldErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrNicknameInvalid, code: response.CodeBadRequest, key: "error.nickname_invalid"},
	{target: service.ErrNicknameReserved, code: response.CodeBadRequest, key: "error.nickname_reserved"},
	{target: service.ErrSecurityQuestionInvalid, code: response.CodeBadRequest, key: "error.security_question_invalid"},
	{target: service.ErrSecurityAnswerInvalid, code: response.CodeBadRequest, key: "error.security_answer_invalid"},
	{target: service.ErrInvalidCountryCode, code: response.CodeBadRequest, key: "error.country_code_invalid"},
	{target: service.ErrInvalidPhone, code: response.CodeBadRequest, key: "error.phone_invalid"},
}

var registerErrorRules = concatMappedHandlerErrors(identityFieldErrorRules, []mappedHandlerError{
	{target: service.ErrEmailExists, code: response.CodeConflict, key: "error.email_exists"},
	{target: service.ErrNicknameExists, code: response.CodeConflict, key: "error.nickname_exists"},
})

var profileUpdateErrorRules = concatMappedHandlerErrors(identityFieldErrorRules, []mappedHandlerError{
	{target: service.ErrNicknameExists, code: response.CodeConflict, key: "error.nickname_exists"},
	{target: service.ErrProfileEmpty, code: response.CodeBadRequest, key: "error.profile_empty"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
})

var subscriptionErrorRules = []mappedHandlerError{
	{target: service.ErrPlanInvalid, code: response.CodeBadRequest, key: "error.plan_invalid"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}

func respondRegisterError(c *gin.Context, err error) {
	respondWithMappedError(c, err, registerErrorRules, response.CodeInternal, "error.register_failed")
}

func respondProfileUpdateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, profileUpdateErrorRules, response.CodeInternal, "error.user_update_failed")
}

func respondSubscriptionError(c *gin.Context, err error) {
	respondWithMappedError(c, err, subscriptionErrorRules, response.CodeInternal, "error.subscription_update_failed")
}
