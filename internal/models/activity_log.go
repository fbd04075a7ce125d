package models

import "time"

// ActivityLog 用户活动日志
// 说明：记录认证与账号相关行为，用于后台审计。写入失败不影响主流程。
type ActivityLog struct {
	ID          uint      `gorm:"primarykey" json:"id"`                     // 主键
	UserID      uint      `gorm:"index" json:"user_id"`                     // 用户ID（失败时可为0）
	Action      string    `gorm:"type:varchar(64);index;not null" json:"action"` // 动作枚举
	Description string    `gorm:"type:text" json:"description"`             // 描述
	ClientIP    string    `gorm:"type:varchar(64);index" json:"client_ip"`  // 客户端IP
	UserAgent   string    `gorm:"type:text" json:"user_agent"`              // 客户端UA
	Metadata    string    `gorm:"type:text" json:"metadata"`                // 附加信息（JSON 字符串）
	RequestID   string    `gorm:"type:varchar(64);index" json:"request_id"` // 请求追踪ID
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                  // 记录时间
}

// TableName 指定表名
func (ActivityLog) TableName() string {
	return "activity_logs"
}
