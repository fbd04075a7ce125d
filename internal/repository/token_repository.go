package repository

import (
	"errors"
	"time"

	"github.com/octaverum/octaverum-api/internal/models"

	"gorm.io/gorm"
)

// TokenRepository 令牌台账数据访问接口
type TokenRepository interface {
	Record(token *models.Token) error
	Find(token, tokenType string) (*models.Token, error)
	Revoke(token, tokenType string) error
	RevokeAllByUser(userID uint, tokenType string) error
	Sweep(retentionDays int) (int64, error)
}

// GormTokenRepository GORM 实现
type GormTokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository 创建令牌台账仓库
func NewTokenRepository(db *gorm.DB) *GormTokenRepository {
	return &GormTokenRepository{db: db}
}

// Record 登记令牌
func (r *GormTokenRepository) Record(token *models.Token) error {
	if token == nil {
		return nil
	}
	return r.db.Create(token).Error
}

// Find 查找未撤销且未过期的令牌
func (r *GormTokenRepository) Find(token, tokenType string) (*models.Token, error) {
	var record models.Token
	err := r.db.
		Where("token = ? AND type = ? AND is_revoked = ? AND expires_at > ?",
			token, tokenType, false, time.Now()).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Revoke 撤销单个令牌，幂等。
func (r *GormTokenRepository) Revoke(token, tokenType string) error {
	return r.db.Model(&models.Token{}).
		Where("token = ? AND type = ?", token, tokenType).
		Update("is_revoked", true).Error
}

// RevokeAllByUser 撤销用户名下某类型的全部令牌
func (r *GormTokenRepository) RevokeAllByUser(userID uint, tokenType string) error {
	return r.db.Model(&models.Token{}).
		Where("user_id = ? AND type = ? AND is_revoked = ?", userID, tokenType, false).
		Update("is_revoked", true).Error
}

// Sweep 清理超过保留期的令牌记录，返回删除行数。
// 过期超过保留期的按过期时间删，已撤销的按签发时间删。
func (r *GormTokenRepository) Sweep(retentionDays int) (int64, error) {
	if retentionDays < 0 {
		retentionDays = 0
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := r.db.
		Where("expires_at < ? OR (is_revoked = ? AND created_at < ?)", cutoff, true, cutoff).
		Delete(&models.Token{})
	return result.RowsAffected, result.Error
}
