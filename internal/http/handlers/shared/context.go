package shared

import (
	"github.com/wordmart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CurrentUserID 从上下文读取当前登录用户ID，缺失时统一返回未认证响应。
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, "error.internal", nil)
		return 0, false
	}
}
