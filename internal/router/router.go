package router

import (
	"fmt"
	"strings"

	"github.com/octaverum/octaverum-api/internal/cache"
	"github.com/octaverum/octaverum-api/internal/config"
	"github.com/octaverum/octaverum-api/internal/constants"
	adminhandlers "github.com/octaverum/octaverum-api/internal/http/handlers/admin"
	publichandlers "github.com/octaverum/octaverum-api/internal/http/handlers/public"
	"github.com/octaverum/octaverum-api/internal/logger"
	"github.com/octaverum/octaverum-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "octa"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	registerRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:register", redisPrefix),
		WindowSeconds: cfg.Security.RegisterRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.RegisterRateLimit.MaxAttempts,
		MessageKey:    "error.register_too_many",
	}
	resetRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:reset", redisPrefix),
		WindowSeconds: cfg.Security.PasswordResetRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.PasswordResetRateLimit.MaxAttempts,
		MessageKey:    "error.reset_too_many",
	}

	authRequired := AuthMiddleware(c.SessionService.AccessCodec(), c.UserRepo)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/plans", publicHandler.GetPlans)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", RateLimitMiddleware(redisClient, registerRule, KeyByIP), publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
			auth.POST("/refresh-token", publicHandler.RefreshToken)
			auth.POST("/logout", publicHandler.UserLogout)
			auth.POST("/forgot-password", RateLimitMiddleware(redisClient, resetRule, KeyByIPAndJSONField("email")), publicHandler.ForgotPassword)
			auth.POST("/reset-password/:token", publicHandler.ResetPassword)
			auth.POST("/reset-by-security", RateLimitMiddleware(redisClient, resetRule, KeyByIPAndJSONField("email")), publicHandler.ResetBySecurity)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(authRequired)
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.PUT("/me/profile", publicHandler.UpdateUserProfile)
			user.PUT("/me/password", publicHandler.ChangeUserPassword)
			user.PUT("/me/subscription", publicHandler.UpdateSubscription)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		admin.Use(authRequired, RequireRoles(constants.UserRoleAdmin))
		{
			admin.GET("/users", adminHandler.GetAdminUsers)
			admin.GET("/users/:id", adminHandler.GetAdminUser)
			admin.DELETE("/users/:id", adminHandler.DeleteAdminUser)
			admin.GET("/activity-logs", adminHandler.GetActivityLogs)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
