package constants

// 用户角色常量
const (
	UserRoleUser  = "user"
	UserRoleAdmin = "admin"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 令牌类型常量
const (
	TokenTypeRefresh = "refresh"
	TokenTypeReset   = "reset"
)

// 安全问题常量
const (
	SecurityQuestionMotherMaiden  = "mother-maiden"
	SecurityQuestionFirstPet      = "first-pet"
	SecurityQuestionFavoriteColor = "favorite-color"
)

// 支持的安全问题列表
var SupportedSecurityQuestions = []string{
	SecurityQuestionMotherMaiden,
	SecurityQuestionFirstPet,
	SecurityQuestionFavoriteColor,
}

// 订阅套餐常量
const (
	SubscriptionPlanFree    = "free"
	SubscriptionPlanStarter = "starter"
	SubscriptionPlanPlus    = "plus"
	SubscriptionPlanPro     = "pro"
)

// 支持的订阅套餐列表
var SupportedSubscriptionPlans = []string{
	SubscriptionPlanFree,
	SubscriptionPlanStarter,
	SubscriptionPlanPlus,
	SubscriptionPlanPro,
}

// 昵称规则常量
const (
	NicknameMinLength = 3
	NicknameMaxLength = 30
)

// 保留昵称列表（不允许注册）
var ReservedNicknames = []string{
	"admin",
	"administrator",
	"root",
	"system",
	"support",
	"moderator",
	"octaverum",
	"official",
	"api",
	"null",
	"undefined",
}

// 活动日志动作常量
const (
	ActivityActionRegister           = "register"
	ActivityActionLoginSuccess       = "login_success"
	ActivityActionLoginFailed        = "login_failed"
	ActivityActionLogout             = "logout"
	ActivityActionTokenRefresh       = "token_refresh"
	ActivityActionPasswordChange     = "password_change"
	ActivityActionPasswordResetReq   = "password_reset_requested"
	ActivityActionPasswordReset      = "password_reset"
	ActivityActionProfileUpdate      = "profile_update"
	ActivityActionSubscriptionChange = "subscription_change"
	ActivityActionAdminUserDelete    = "admin_user_delete"
)

// 登录失败原因常量
const (
	LoginFailReasonBadRequest         = "bad_request"
	LoginFailReasonInvalidEmail       = "invalid_email"
	LoginFailReasonInvalidCredentials = "invalid_credentials"
	LoginFailReasonUserDisabled       = "user_disabled"
	LoginFailReasonInternalError      = "internal_error"
)

// 队列常量
const (
	QueueDefault           = "default"
	TaskPasswordResetEmail = "auth:password_reset_email"
	TaskAuthTokenSweep     = "auth:token_sweep"
	TaskActivityLogPurge   = "auth:activity_log_purge"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "octa"
)

// 订阅币种常量
const (
	SubscriptionCurrencyDefault = "TRY"
)

// 站点语言常量
const (
	LocaleEnUS = "en-US"
	LocaleTrTR = "tr-TR"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleEnUS, LocaleTrTR}
