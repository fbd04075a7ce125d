package i18n

import (
	"fmt"
	"strings"

	"github.com/octaverum/octaverum-api/internal/constants"

	"github.com/gin-gonic/gin"
)

// DefaultLocale 默认站点语言
const DefaultLocale = constants.LocaleEnUS

var messages = map[string]map[string]string{
	constants.LocaleEnUS: messagesEnUS,
	constants.LocaleTrTR: messagesTrTR,
}

// T 按语言与 key 返回文案，未命中时回退默认语言，再回退 key 本身。
func T(locale, key string) string {
	normalized := NormalizeLocale(locale)
	if table, ok := messages[normalized]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if normalized != DefaultLocale {
		if msg, ok := messages[DefaultLocale][key]; ok {
			return msg
		}
	}
	return key
}

// Sprintf 按语言与 key 返回带参数的文案。
func Sprintf(locale, key string, args ...interface{}) string {
	template := T(locale, key)
	if len(args) == 0 {
		return template
	}
	return fmt.Sprintf(template, args...)
}

// NormalizeLocale 归一化语言标识，不支持的语言回退默认语言。
func NormalizeLocale(locale string) string {
	trimmed := strings.TrimSpace(locale)
	if trimmed == "" {
		return DefaultLocale
	}
	for _, supported := range constants.SupportedLocales {
		if strings.EqualFold(trimmed, supported) {
			return supported
		}
	}
	// 仅匹配语言主标签（如 tr → tr-TR）
	primary := strings.SplitN(trimmed, "-", 2)[0]
	for _, supported := range constants.SupportedLocales {
		if strings.EqualFold(primary, strings.SplitN(supported, "-", 2)[0]) {
			return supported
		}
	}
	return DefaultLocale
}

// ResolveLocale 从请求中解析语言：lang 查询参数优先，其次 Accept-Language。
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return NormalizeLocale(lang)
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		candidate := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if candidate == "" {
			continue
		}
		normalized := NormalizeLocale(candidate)
		if normalized != DefaultLocale || strings.EqualFold(candidate, DefaultLocale) ||
			strings.EqualFold(strings.SplitN(candidate, "-", 2)[0], "en") {
			return normalized
		}
	}
	return DefaultLocale
}
