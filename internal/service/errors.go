package service

import "errors"

// 服务层错误定义，处理器按 errors.Is 映射为对应文案与状态码。
var (
	ErrNotFound                = errors.New("记录不存在")
	ErrInvalidEmail            = errors.New("邮箱格式不合法")
	ErrEmailExists             = errors.New("邮箱已被注册")
	ErrNicknameInvalid         = errors.New("昵称格式不合法")
	ErrNicknameReserved        = errors.New("昵称为保留名称")
	ErrNicknameExists          = errors.New("昵称已被占用")
	ErrWeakPassword            = errors.New("密码强度不足")
	ErrInvalidCredentials      = errors.New("邮箱或密码错误")
	ErrInvalidPassword         = errors.New("原密码错误")
	ErrUserDisabled            = errors.New("账号已被禁用")
	ErrProfileEmpty            = errors.New("没有需要更新的字段")
	ErrInvalidToken            = errors.New("令牌无效或已过期")
	ErrResetTokenInvalid       = errors.New("重置令牌无效或已过期")
	ErrSecurityQuestionInvalid = errors.New("安全问题不受支持")
	ErrSecurityAnswerInvalid   = errors.New("安全验证失败")
	ErrInvalidCountryCode      = errors.New("国家代码不合法")
	ErrInvalidPhone            = errors.New("手机号不合法")
	ErrPlanInvalid             = errors.New("订阅套餐不受支持")
	ErrAdminSelfDelete         = errors.New("不能删除当前登录的管理员")
)
