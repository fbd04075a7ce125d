package repository

import (
	"time"

	"github.com/octaverum/octaverum-api/internal/models"

	"gorm.io/gorm"
)

// ActivityLogRepository 活动日志数据访问接口
type ActivityLogRepository interface {
	Create(entry *models.ActivityLog) error
	ListAdmin(filter ActivityLogListFilter) ([]models.ActivityLog, int64, error)
	Purge(retentionDays int) (int64, error)
}

// GormActivityLogRepository GORM 实现
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository 创建活动日志仓库
func NewActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Create 写入活动日志
func (r *GormActivityLogRepository) Create(entry *models.ActivityLog) error {
	if entry == nil {
		return nil
	}
	return r.db.Create(entry).Error
}

// ListAdmin 管理端查询活动日志
func (r *GormActivityLogRepository) ListAdmin(filter ActivityLogListFilter) ([]models.ActivityLog, int64, error) {
	query := r.db.Model(&models.ActivityLog{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.ClientIP != "" {
		query = query.Where("client_ip = ?", filter.ClientIP)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var logs []models.ActivityLog
	if err := query.Order("id desc").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// Purge 清理超过保留期的活动日志，返回删除行数。
func (r *GormActivityLogRepository) Purge(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := r.db.
		Where("created_at < ?", cutoff).
		Delete(&models.ActivityLog{})
	return result.RowsAffected, result.Error
}
