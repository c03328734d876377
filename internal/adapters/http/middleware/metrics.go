package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iconplus/catalog/internal/adapters/metrics"
)

func Metrics(recorder *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		done := recorder.TrackInFlight()
		defer done()

		start := time.Now()
		c.Next()

		recorder.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
