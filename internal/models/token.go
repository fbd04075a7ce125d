package models

import "time"

// Token 令牌台账表
// 说明：记录 refresh/reset 两类令牌的签发与吊销状态，签名有效但台账缺失或已吊销的令牌一律拒绝。
// reset 类型仅存储原始令牌的 SHA-256 十六进制摘要，原始值不落库。
type Token struct {
	ID        uint      `gorm:"primarykey" json:"id"`                    // 主键
	Token     string    `gorm:"index;not null;type:text" json:"-"`       // 令牌值（reset 为摘要）
	UserID    uint      `gorm:"index;not null" json:"user_id"`           // 所属用户
	Type      string    `gorm:"type:varchar(16);index;not null" json:"type"` // 令牌类型（refresh/reset）
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`        // 过期时间
	IsRevoked bool      `gorm:"not null;default:false" json:"is_revoked"` // 是否已吊销
	CreatedAt time.Time `gorm:"index" json:"created_at"`                 // 签发时间
}

// TableName 指定表名
func (Token) TableName() string {
	return "tokens"
}
