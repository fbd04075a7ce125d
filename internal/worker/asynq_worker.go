package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/octaverum/octaverum-api/internal/logger"
	"github.com/octaverum/octaverum-api/internal/provider"
	"github.com/octaverum/octaverum-api/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPasswordResetEmail, c.handlePasswordResetEmail)
	mux.HandleFunc(queue.TaskAuthTokenSweep, c.handleTokenSweep)
	mux.HandleFunc(queue.TaskActivityLogPurge, c.handleActivityLogPurge)
}

// handlePasswordResetEmail 投递密码重置邮件。
// 邮件通道尚未接入，先输出结构化日志占位，后续由 SMTP 服务接管。
// TODO: 接入 SMTP 投递后移除日志占位
func (c *Consumer) handlePasswordResetEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_password_reset_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PasswordResetEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_password_reset_email_unmarshal_failed", "error", err)
		return err
	}
	receiver := strings.TrimSpace(payload.Email)
	if payload.UserID == 0 || receiver == "" {
		logger.Debugw("worker_password_reset_email_skip_invalid_payload", "user_id", payload.UserID)
		return nil
	}
	user, err := c.UserRepo.GetByID(payload.UserID)
	if err != nil {
		logger.Warnw("worker_password_reset_email_fetch_user_failed", "user_id", payload.UserID, "error", err)
		return err
	}
	if user == nil {
		logger.Debugw("worker_password_reset_email_skip_user_not_found", "user_id", payload.UserID)
		return nil
	}
	logger.Infow("worker_password_reset_email_delivered",
		"user_id", payload.UserID,
		"receiver_email", receiver,
		"reset_url", payload.ResetURL,
		"locale", payload.Locale,
	)
	return nil
}

func (c *Consumer) handleTokenSweep(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_token_sweep_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.TokenSweepPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_token_sweep_unmarshal_failed", "error", err)
		return err
	}
	removed, err := c.TokenRepo.Sweep(payload.RetentionDays)
	if err != nil {
		logger.Warnw("worker_token_sweep_failed", "retention_days", payload.RetentionDays, "error", err)
		return err
	}
	if removed > 0 {
		logger.Infow("worker_token_sweep_done", "retention_days", payload.RetentionDays, "removed", removed)
	}
	return nil
}

func (c *Consumer) handleActivityLogPurge(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_activity_log_purge_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ActivityLogPurgePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_activity_log_purge_unmarshal_failed", "error", err)
		return err
	}
	if c.ActivityLogService == nil {
		logger.Warnw("worker_activity_log_purge_skip_service_nil", "retention_days", payload.RetentionDays)
		return nil
	}
	removed, err := c.ActivityLogService.Purge(payload.RetentionDays)
	if err != nil {
		logger.Warnw("worker_activity_log_purge_failed", "retention_days", payload.RetentionDays, "error", err)
		return err
	}
	if removed > 0 {
		logger.Infow("worker_activity_log_purge_done", "retention_days", payload.RetentionDays, "removed", removed)
	}
	return nil
}
