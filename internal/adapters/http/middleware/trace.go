package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/iconplus/catalog/internal/adapters/telemetry"
)

// Trace opens a server span per request. Handlers see it through the
// request context, so service spans join the caller's trace.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := telemetry.StartServerSpan(c.Request)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		telemetry.EndServerSpan(span, c.Request.Method, c.FullPath(), c.Writer.Status())
	}
}
