package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID                    uint           `gorm:"primarykey" json:"id"`                        // 主键
	Nickname              string         `gorm:"uniqueIndex;not null" json:"nickname"`        // 昵称（唯一）
	Email                 string         `gorm:"uniqueIndex;not null" json:"email"`           // 邮箱（小写）
	PasswordHash          string         `gorm:"not null" json:"-"`                           // 密码哈希（不返回给前端）
	SecurityQuestion      string         `gorm:"type:varchar(32)" json:"security_question"`   // 安全问题枚举
	SecurityAnswer        string         `gorm:"type:varchar(128)" json:"-"`                  // 安全问题答案（不返回给前端）
	CountryCode           string         `gorm:"type:varchar(8)" json:"country_code"`         // 国家区号
	Phone                 string         `gorm:"type:varchar(32)" json:"phone"`               // 手机号
	Role                  string         `gorm:"type:varchar(16);default:'user'" json:"role"` // 角色（user/admin）
	Status                string         `gorm:"default:'active'" json:"status"`              // 账号状态
	SubscriptionPlan      string         `gorm:"default:'free'" json:"subscription_plan"`     // 订阅套餐
	SubscriptionStartDate *time.Time     `json:"subscription_start_date"`                     // 订阅开始时间
	SubscriptionEndDate   *time.Time     `json:"subscription_end_date"`                       // 订阅结束时间
	LastLoginAt           *time.Time     `json:"last_login_at"`                               // 最后登录时间
	CreatedAt             time.Time      `gorm:"index" json:"created_at"`                     // 创建时间
	UpdatedAt             time.Time      `gorm:"index" json:"updated_at"`                     // 更新时间
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`                              // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
