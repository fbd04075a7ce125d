package queue

import (
	"encoding/json"

	"github.com/octaverum/octaverum-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPasswordResetEmail 密码重置邮件任务
	TaskPasswordResetEmail = constants.TaskPasswordResetEmail
	// TaskAuthTokenSweep 令牌台账清理任务
	TaskAuthTokenSweep = constants.TaskAuthTokenSweep
	// TaskActivityLogPurge 活动日志清理任务
	TaskActivityLogPurge = constants.TaskActivityLogPurge
)

// PasswordResetEmailPayload 密码重置邮件任务载荷
// ResetURL 已包含明文令牌，台账中只保存其摘要。
type PasswordResetEmailPayload struct {
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	ResetURL string `json:"reset_url"`
	Locale   string `json:"locale"`
}

// TokenSweepPayload 令牌台账清理任务载荷
type TokenSweepPayload struct {
	RetentionDays int `json:"retention_days"`
}

// ActivityLogPurgePayload 活动日志清理任务载荷
type ActivityLogPurgePayload struct {
	RetentionDays int `json:"retention_days"`
}

// NewPasswordResetEmailTask 创建密码重置邮件任务
func NewPasswordResetEmailTask(payload PasswordResetEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPasswordResetEmail, body), nil
}

// NewTokenSweepTask 创建令牌台账清理任务
func NewTokenSweepTask(payload TokenSweepPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAuthTokenSweep, body), nil
}

// NewActivityLogPurgeTask 创建活动日志清理任务
func NewActivityLogPurgeTask(payload ActivityLogPurgePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskActivityLogPurge, body), nil
}
