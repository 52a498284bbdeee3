package i18n

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultLocale 默认语言
const DefaultLocale = "en-US"

var supportedLocales = map[string]struct{}{
	"en-US": {},
	"zh-CN": {},
}

// ResolveLocale 解析请求语言（优先 query，其次 Accept-Language）
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := normalizeLocale(c.Query("lang")); lang != "" {
		return lang
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := part
		if idx := strings.Index(tag, ";"); idx >= 0 {
			tag = tag[:idx]
		}
		if lang := normalizeLocale(tag); lang != "" {
			return lang
		}
	}
	return DefaultLocale
}

// T 返回指定语言的文案，缺失时回退默认语言，再回退 key 本身
func T(locale, key string) string {
	if messages, ok := catalog[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

func normalizeLocale(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if _, ok := supportedLocales[trimmed]; ok {
		return trimmed
	}
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "zh"):
		return "zh-CN"
	case strings.HasPrefix(lower, "en"):
		return "en-US"
	}
	return ""
}
