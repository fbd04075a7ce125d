package i18n

// 英文文案
var messagesEnUS = map[string]string{
	"error.bad_request":              "Invalid request payload",
	"error.unauthorized":             "Authentication required",
	"error.forbidden":                "You do not have permission to access this resource",
	"error.internal":                 "Internal server error",
	"error.user_not_found":           "User not found",
	"error.user_fetch_failed":        "Failed to load user",
	"error.user_update_failed":       "Failed to update user",
	"error.user_delete_failed":       "Failed to delete user",
	"error.admin_self_delete":        "You cannot delete your own account",
	"error.email_invalid":            "Please provide a valid email address",
	"error.email_exists":             "This email address is already registered",
	"error.nickname_invalid":         "Nickname must be 3-30 characters and contain only letters, digits and underscores",
	"error.nickname_reserved":        "This nickname is not available",
	"error.nickname_exists":          "This nickname is already taken",
	"error.password_weak":            "Password does not meet the security requirements",
	"error.password_min_length":      "Password must be at least %d characters long",
	"error.password_require_upper":   "Password must contain an uppercase letter",
	"error.password_require_lower":   "Password must contain a lowercase letter",
	"error.password_require_number":  "Password must contain a digit",
	"error.password_require_special": "Password must contain a special character",
	"error.password_old_invalid":     "Current password is incorrect",
	"error.security_question_invalid": "Unsupported security question",
	"error.security_answer_invalid":   "Security verification failed",
	"error.country_code_invalid":      "Invalid country code",
	"error.phone_invalid":             "Invalid phone number",
	"error.login_invalid":             "Invalid email or password",
	"error.login_failed":              "Login failed, please try again later",
	"error.register_failed":           "Registration failed, please try again later",
	"error.user_disabled":             "This account has been disabled",
	"error.auth_header_missing":       "Authorization header is missing",
	"error.auth_header_invalid":       "Authorization header is malformed",
	"error.jwt_secret_missing":        "Authentication is not configured",
	"error.token_invalid":             "Invalid or expired token",
	"error.token_revoked":             "This session has been revoked",
	"error.refresh_token_required":    "Refresh token is required",
	"error.refresh_failed":            "Could not refresh the session",
	"error.reset_token_invalid":       "Invalid or expired reset token",
	"error.reset_request_failed":      "Could not process the reset request",
	"error.reset_failed":              "Password reset failed, please try again later",
	"error.profile_empty":             "Nothing to update",
	"error.plan_invalid":              "Unsupported subscription plan",
	"error.subscription_update_failed": "Failed to update subscription",
	"error.save_failed":                "Failed to save changes",
	"error.user_id_invalid":            "Invalid user id",
	"error.user_id_type_invalid":       "Unexpected user id type",
	"error.rate_limited":               "Too many requests, please retry in %d seconds",
	"error.login_too_many":             "Too many login attempts, please retry in %d seconds",
	"error.register_too_many":          "Too many registrations from this address, please retry in %d seconds",
	"error.reset_too_many":             "Too many reset requests, please retry in %d seconds",
	"error.rate_limit_unavailable":     "Rate limiter is unavailable",

	"msg.reset_email_sent":    "If an account exists for this address, a reset link has been sent",
	"msg.password_updated":    "Password updated successfully",
	"msg.logged_out":          "Logged out",
	"msg.subscription_updated": "Subscription updated",
}
