package middleware

import (
	"Murmur/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TraceHeader 请求链路 ID 头
const TraceHeader = "X-Trace-ID"

func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}

		c.Set(logger.TraceIDKey, traceID)
		c.Request = c.Request.WithContext(logger.WithTraceID(c.Request.Context(), traceID))

		c.Header(TraceHeader, traceID)
		c.Next()
	}
}
