package service

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/octaverum/octaverum-api/internal/logger"
	"github.com/octaverum/octaverum-api/internal/models"
	"github.com/octaverum/octaverum-api/internal/repository"
)

// ActivityEntry 一条活动记录
type ActivityEntry struct {
	UserID      uint
	Action      string
	Description string
	ClientIP    string
	UserAgent   string
	RequestID   string
	Metadata    map[string]interface{}
}

// ActivityLogService 活动日志服务。
// 只写审计流水，记录失败不影响主流程。
type ActivityLogService struct {
	repo repository.ActivityLogRepository
}

// NewActivityLogService 创建活动日志服务
func NewActivityLogService(repo repository.ActivityLogRepository) *ActivityLogService {
	return &ActivityLogService{repo: repo}
}

// Record 写入活动记录，失败只记日志。
func (s *ActivityLogService) Record(entry ActivityEntry) {
	if s == nil || s.repo == nil {
		return
	}
	action := strings.TrimSpace(entry.Action)
	if action == "" {
		return
	}

	metadata := ""
	if len(entry.Metadata) > 0 {
		payload, err := json.Marshal(entry.Metadata)
		if err != nil {
			logger.Warnw("activity_log_metadata_marshal_failed", "action", action, "error", err)
		} else {
			metadata = string(payload)
		}
	}

	record := &models.ActivityLog{
		UserID:      entry.UserID,
		Action:      action,
		Description: entry.Description,
		ClientIP:    entry.ClientIP,
		UserAgent:   entry.UserAgent,
		RequestID:   entry.RequestID,
		Metadata:    metadata,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(record); err != nil {
		logger.Warnw("activity_log_write_failed", "action", action, "error", err)
	}
}

// ListAdmin 管理端查询活动日志
func (s *ActivityLogService) ListAdmin(filter repository.ActivityLogListFilter) ([]models.ActivityLog, int64, error) {
	return s.repo.ListAdmin(filter)
}

// Purge 清理超过保留期的活动日志
func (s *ActivityLogService) Purge(retentionDays int) (int64, error) {
	return s.repo.Purge(retentionDays)
}
