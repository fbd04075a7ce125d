package main

import (
	"strings"
	"time"

	"github.com/octaverum/octaverum-api/internal/config"
	"github.com/octaverum/octaverum-api/internal/constants"
	"github.com/octaverum/octaverum-api/internal/logger"
	"github.com/octaverum/octaverum-api/internal/models"

	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	Nickname         string
	Email            string
	Password         string
	SecurityQuestion string
	SecurityAnswer   string
	CountryCode      string
	Phone            string
	Plan             string
	Status           string
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 演示用户
	users := []seedUser{
		{
			Nickname:         "ayse_demir",
			Email:            "ayse@example.com",
			Password:         "Ayse12345",
			SecurityQuestion: constants.SecurityQuestionFirstPet,
			SecurityAnswer:   "boncuk",
			CountryCode:      "+90",
			Phone:            "5321112233",
			Plan:             constants.SubscriptionPlanPro,
			Status:           constants.UserStatusActive,
		},
		{
			Nickname:         "mehmet_kaya",
			Email:            "mehmet@example.com",
			Password:         "Mehmet12345",
			SecurityQuestion: constants.SecurityQuestionFavoriteColor,
			SecurityAnswer:   "mavi",
			Plan:             constants.SubscriptionPlanStarter,
			Status:           constants.UserStatusActive,
		},
		{
			Nickname:         "zeynep_ak",
			Email:            "zeynep@example.com",
			Password:         "Zeynep12345",
			SecurityQuestion: constants.SecurityQuestionMotherMaiden,
			SecurityAnswer:   "yilmaz",
			Plan:             constants.SubscriptionPlanFree,
			Status:           constants.UserStatusActive,
		},
		{
			Nickname:         "deneme_pasif",
			Email:            "pasif@example.com",
			Password:         "Pasif12345",
			SecurityQuestion: constants.SecurityQuestionFirstPet,
			SecurityAnswer:   "pamuk",
			Plan:             constants.SubscriptionPlanFree,
			Status:           constants.UserStatusDisabled,
		},
	}

	now := time.Now()
	for _, seed := range users {
		email := strings.ToLower(strings.TrimSpace(seed.Email))
		var existing models.User
		if err := models.DB.Where("email = ?", email).First(&existing).Error; err == nil {
			stdLog.Printf("User already exists: %s", email)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Printf("Failed to hash password for %s: %v", email, err)
			continue
		}

		user := models.User{
			Nickname:         seed.Nickname,
			Email:            email,
			PasswordHash:     string(hash),
			SecurityQuestion: seed.SecurityQuestion,
			SecurityAnswer:   strings.ToLower(strings.TrimSpace(seed.SecurityAnswer)),
			CountryCode:      seed.CountryCode,
			Phone:            seed.Phone,
			Role:             constants.UserRoleUser,
			Status:           seed.Status,
			SubscriptionPlan: seed.Plan,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if seed.Plan != constants.SubscriptionPlanFree {
			start := now
			end := now.AddDate(0, 1, 0)
			user.SubscriptionStartDate = &start
			user.SubscriptionEndDate = &end
		}

		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", email, err)
			continue
		}
		stdLog.Printf("Created user: %s (%s)", email, seed.Plan)
	}

	stdLog.Printf("Seed finished")
}
