package repository

import "time"

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Status      string
	Plan        string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ActivityLogListFilter 查询活动日志列表的过滤条件
type ActivityLogListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Action      string
	ClientIP    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
