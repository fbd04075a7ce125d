package models

import (
	"strings"
	"time"

	"github.com/octaverum/octaverum-api/internal/constants"
	"github.com/octaverum/octaverum-api/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin 初始化默认管理员账号
func InitDefaultAdmin(email, password string) error {
	var count int64
	DB.Model(&User{}).Where("role = ?", constants.UserRoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	// 创建默认管理员
	if email == "" {
		email = "admin@octaverum.local"
	}
	if password == "" {
		password = "Admin12345"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	admin := User{
		Nickname:         "admin",
		Email:            strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:     string(hash),
		Role:             constants.UserRoleAdmin,
		Status:           constants.UserStatusActive,
		SubscriptionPlan: constants.SubscriptionPlanFree,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "Admin12345" {
		logger.Warnw("default_admin_created_with_default_password", "email", admin.Email)
		logger.Warnw("default_admin_password_change_required", "email", admin.Email)
	} else {
		logger.Warnw("default_admin_created", "email", admin.Email, "password_hidden", true)
	}

	return nil
}
