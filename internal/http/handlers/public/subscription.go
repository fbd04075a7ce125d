package public

import (
	"github.com/octaverum/octaverum-api/internal/constants"
	"github.com/octaverum/octaverum-api/internal/http/response"
	"github.com/octaverum/octaverum-api/internal/i18n"

	"github.com/gin-gonic/gin"
)

// GetPlans 公开的套餐目录
func (h *Handler) GetPlans(c *gin.Context) {
	plans := h.SubscriptionService.Plans()
	items := make([]gin.H, 0, len(plans))
	for _, plan := range plans {
		items = append(items, gin.H{
			"code":          plan.Code,
			"name":          plan.Name,
			"monthly_price": plan.MonthlyPrice.StringFixed(2),
			"currency":      plan.Currency,
		})
	}
	response.Success(c, gin.H{"plans": items})
}

// UpdateSubscriptionRequest 切换套餐请求
type UpdateSubscriptionRequest struct {
	Plan string `json:"plan" binding:"required"`
}

// UpdateSubscription 切换当前用户的订阅套餐
func (h *Handler) UpdateSubscription(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.SubscriptionService.ChangePlan(userID, req.Plan)
	if err != nil {
		respondSubscriptionError(c, err)
		return
	}

	h.recordActivity(c, userID, constants.ActivityActionSubscriptionChange, "subscription changed", gin.H{
		"plan": user.SubscriptionPlan,
	})
	locale := i18n.ResolveLocale(c)
	response.SuccessWithMsg(c, i18n.T(locale, "msg.subscription_updated"), gin.H{
		"user": userPayload(user),
	})
}
