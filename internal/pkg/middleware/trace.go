package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const traceIDKey = "traceID"

// TraceMiddleware 请求追踪ID
// 小程序端/网关透传的 X-Trace-ID 优先，没有则在入口生成，
// 后续访问日志与错误排查都用它串联
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.New().String()
		}

		c.Set(traceIDKey, traceID)
		c.Header("X-Trace-ID", traceID)

		c.Next()
	}
}

// TraceID 取当前请求的追踪ID，未经过 TraceMiddleware 时返回空串
func TraceID(c *gin.Context) string {
	return c.GetString(traceIDKey)
}
