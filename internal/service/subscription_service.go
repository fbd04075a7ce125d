package service

import (
	"context"
	"strings"
	"time"

	"github.com/octaverum/octaverum-api/internal/cache"
	"github.com/octaverum/octaverum-api/internal/constants"
	"github.com/octaverum/octaverum-api/internal/logger"
	"github.com/octaverum/octaverum-api/internal/models"
	"github.com/octaverum/octaverum-api/internal/repository"

	"github.com/shopspring/decimal"
)

// Plan 订阅套餐定义
type Plan struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	Currency     string          `json:"currency"`
}

var planCatalog = []Plan{
	{Code: constants.SubscriptionPlanFree, Name: "Free", MonthlyPrice: decimal.Zero, Currency: constants.SubscriptionCurrencyDefault},
	{Code: constants.SubscriptionPlanStarter, Name: "Starter", MonthlyPrice: decimal.RequireFromString("39.99"), Currency: constants.SubscriptionCurrencyDefault},
	{Code: constants.SubscriptionPlanPlus, Name: "Plus", MonthlyPrice: decimal.RequireFromString("69.99"), Currency: constants.SubscriptionCurrencyDefault},
	{Code: constants.SubscriptionPlanPro, Name: "Pro", MonthlyPrice: decimal.RequireFromString("99.99"), Currency: constants.SubscriptionCurrencyDefault},
}

// SubscriptionService 订阅管理服务
type SubscriptionService struct {
	userRepo repository.UserRepository
}

// NewSubscriptionService 创建订阅服务
func NewSubscriptionService(userRepo repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{userRepo: userRepo}
}

// Plans 返回套餐目录
func (s *SubscriptionService) Plans() []Plan {
	plans := make([]Plan, len(planCatalog))
	copy(plans, planCatalog)
	return plans
}

// FindPlan 按编码查找套餐
func (s *SubscriptionService) FindPlan(code string) (*Plan, bool) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	for _, plan := range planCatalog {
		if plan.Code == normalized {
			found := plan
			return &found, true
		}
	}
	return nil, false
}

// ChangePlan 切换用户订阅套餐。
// 付费套餐从当前时间起一个月有效，免费套餐清空起止时间。
func (s *SubscriptionService) ChangePlan(userID uint, planCode string) (*models.User, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}
	plan, ok := s.FindPlan(planCode)
	if !ok {
		return nil, ErrPlanInvalid
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	previous := user.SubscriptionPlan
	user.SubscriptionPlan = plan.Code
	if plan.Code == constants.SubscriptionPlanFree {
		user.SubscriptionStartDate = nil
		user.SubscriptionEndDate = nil
	} else {
		endDate := now.AddDate(0, 1, 0)
		user.SubscriptionStartDate = &now
		user.SubscriptionEndDate = &endDate
	}
	user.UpdatedAt = now
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))

	logger.Infow("subscription_changed",
		"user_id", user.ID,
		"from", previous,
		"to", plan.Code,
		"monthly_price", plan.MonthlyPrice.StringFixed(2),
	)
	return user, nil
}
