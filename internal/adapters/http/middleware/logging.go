package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iconplus/catalog/internal/core/logger"
)

// LogRequest logs every request once the rest of the chain has written
// its response.
func LogRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := logger.Request{
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Route:     c.FullPath(),
			Status:    c.Writer.Status(),
			Duration:  time.Since(start),
			ClientIP:  c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Size:      int64(max(c.Writer.Size(), 0)),
		}
		if len(c.Errors) > 0 {
			entry.Errors = c.Errors.String()
		}
		logger.LogRequest(c.Request.Context(), entry)
	}
}
