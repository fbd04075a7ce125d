package provider

import (
	"github.com/octaverum/octaverum-api/internal/cache"
	"github.com/octaverum/octaverum-api/internal/config"
	"github.com/octaverum/octaverum-api/internal/logger"
	"github.com/octaverum/octaverum-api/internal/models"
	"github.com/octaverum/octaverum-api/internal/queue"
	"github.com/octaverum/octaverum-api/internal/repository"
	"github.com/octaverum/octaverum-api/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo        repository.UserRepository
	TokenRepo       repository.TokenRepository
	ActivityLogRepo repository.ActivityLogRepository

	// Services
	SessionService       *service.SessionService
	UserAuthService      *service.UserAuthService
	PasswordResetService *service.PasswordResetService
	SubscriptionService  *service.SubscriptionService
	ActivityLogService   *service.ActivityLogService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.TokenRepo = repository.NewTokenRepository(db)
	c.ActivityLogRepo = repository.NewActivityLogRepository(db)
}

func (c *Container) initServices() {
	sessionService, err := service.NewSessionService(c.Config, c.UserRepo, c.TokenRepo)
	if err != nil {
		logger.Errorw("provider_init_session_service_failed", "error", err)
		panic(err)
	}
	c.SessionService = sessionService
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.SessionService)
	c.PasswordResetService = service.NewPasswordResetService(c.Config, c.UserRepo, c.TokenRepo, c.SessionService, c.QueueClient)
	c.SubscriptionService = service.NewSubscriptionService(c.UserRepo)
	c.ActivityLogService = service.NewActivityLogService(c.ActivityLogRepo)
}
