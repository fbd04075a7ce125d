package worker

import (
	"context"
	"errors"
	"time"

	"github.com/octaverum/octaverum-api/internal/config"
	"github.com/octaverum/octaverum-api/internal/logger"
	"github.com/octaverum/octaverum-api/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	maintenanceInterval = time.Hour
)

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.Container != nil {
		go s.runMaintenanceLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runMaintenanceLoop 周期清理过期令牌台账与超期活动日志。
func (s *Service) runMaintenanceLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.Container == nil {
		return
	}
	cfg := s.consumer.Config
	if cfg == nil {
		return
	}
	runOnce := func() {
		if s.consumer.TokenRepo != nil {
			removed, err := s.consumer.TokenRepo.Sweep(cfg.Security.TokenRetentionDays)
			if err != nil {
				logger.Warnw("worker_token_sweep_failed", "retention_days", cfg.Security.TokenRetentionDays, "error", err)
			} else if removed > 0 {
				logger.Infow("worker_token_sweep_done", "retention_days", cfg.Security.TokenRetentionDays, "removed", removed)
			}
		}
		if s.consumer.ActivityLogService != nil {
			removed, err := s.consumer.ActivityLogService.Purge(cfg.Security.ActivityLog.RetentionDays)
			if err != nil {
				logger.Warnw("worker_activity_log_purge_failed", "retention_days", cfg.Security.ActivityLog.RetentionDays, "error", err)
			} else if removed > 0 {
				logger.Infow("worker_activity_log_purge_done", "retention_days", cfg.Security.ActivityLog.RetentionDays, "removed", removed)
			}
		}
	}
	runOnce()

	ticker := time.NewTicker(maintenanceInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
