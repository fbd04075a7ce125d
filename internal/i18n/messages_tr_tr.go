package i18n

// 土耳其语文案
var messagesTrTR = map[string]string{
	"error.bad_request":              "Geçersiz istek gövdesi",
	"error.unauthorized":             "Bu işlem için giriş yapmalısınız",
	"error.forbidden":                "Bu kaynağa erişim yetkiniz yok",
	"error.internal":                 "Sunucu hatası",
	"error.user_not_found":           "Kullanıcı bulunamadı",
	"error.user_fetch_failed":        "Kullanıcı bilgileri yüklenemedi",
	"error.user_update_failed":       "Kullanıcı güncellenemedi",
	"error.user_delete_failed":       "Kullanıcı silinemedi",
	"error.admin_self_delete":        "Kendi hesabınızı silemezsiniz",
	"error.email_invalid":            "Lütfen geçerli bir e-posta adresi girin",
	"error.email_exists":             "Bu e-posta adresi zaten kayıtlı",
	"error.nickname_invalid":         "Kullanıcı adı 3-30 karakter olmalı ve yalnızca harf, rakam ve alt çizgi içermelidir",
	"error.nickname_reserved":        "Bu kullanıcı adı kullanılamaz",
	"error.nickname_exists":          "Bu kullanıcı adı zaten alınmış",
	"error.password_weak":            "Şifre güvenlik gereksinimlerini karşılamıyor",
	"error.password_min_length":      "Şifre en az %d karakter olmalıdır",
	"error.password_require_upper":   "Şifre en az bir büyük harf içermelidir",
	"error.password_require_lower":   "Şifre en az bir küçük harf içermelidir",
	"error.password_require_number":  "Şifre en az bir rakam içermelidir",
	"error.password_require_special": "Şifre en az bir özel karakter içermelidir",
	"error.password_old_invalid":     "Mevcut şifre hatalı",
	"error.security_question_invalid": "Desteklenmeyen güvenlik sorusu",
	"error.security_answer_invalid":   "Güvenlik doğrulaması başarısız",
	"error.country_code_invalid":      "Geçersiz ülke kodu",
	"error.phone_invalid":             "Geçersiz telefon numarası",
	"error.login_invalid":             "E-posta veya şifre hatalı",
	"error.login_failed":              "Giriş başarısız, lütfen daha sonra tekrar deneyin",
	"error.register_failed":           "Kayıt başarısız, lütfen daha sonra tekrar deneyin",
	"error.user_disabled":             "Bu hesap devre dışı bırakılmış",
	"error.auth_header_missing":       "Authorization başlığı eksik",
	"error.auth_header_invalid":       "Authorization başlığı hatalı",
	"error.jwt_secret_missing":        "Kimlik doğrulama yapılandırılmamış",
	"error.token_invalid":             "Geçersiz veya süresi dolmuş oturum",
	"error.token_revoked":             "Bu oturum iptal edilmiş",
	"error.refresh_token_required":    "Yenileme anahtarı gerekli",
	"error.refresh_failed":            "Oturum yenilenemedi",
	"error.reset_token_invalid":       "Geçersiz veya süresi dolmuş sıfırlama bağlantısı",
	"error.reset_request_failed":      "Sıfırlama isteği işlenemedi",
	"error.reset_failed":              "Şifre sıfırlama başarısız, lütfen daha sonra tekrar deneyin",
	"error.profile_empty":             "Güncellenecek bir alan yok",
	"error.plan_invalid":              "Desteklenmeyen abonelik planı",
	"error.subscription_update_failed": "Abonelik güncellenemedi",
	"error.save_failed":                "Değişiklikler kaydedilemedi",
	"error.user_id_invalid":            "Geçersiz kullanıcı kimliği",
	"error.user_id_type_invalid":       "Beklenmeyen kullanıcı kimliği türü",
	"error.rate_limited":               "Çok fazla istek, lütfen %d saniye sonra tekrar deneyin",
	"error.login_too_many":             "Çok fazla giriş denemesi, lütfen %d saniye sonra tekrar deneyin",
	"error.register_too_many":          "Bu adresten çok fazla kayıt denemesi, lütfen %d saniye sonra tekrar deneyin",
	"error.reset_too_many":             "Çok fazla sıfırlama isteği, lütfen %d saniye sonra tekrar deneyin",
	"error.rate_limit_unavailable":     "Hız sınırlayıcı kullanılamıyor",

	"msg.reset_email_sent":     "Bu adrese ait bir hesap varsa sıfırlama bağlantısı gönderildi",
	"msg.password_updated":     "Şifre başarıyla güncellendi",
	"msg.logged_out":           "Çıkış yapıldı",
	"msg.subscription_updated": "Abonelik güncellendi",
}
