package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iconplus/catalog/internal/core/dto"
	"github.com/iconplus/catalog/internal/core/logger"
	"github.com/iconplus/catalog/internal/core/service"
)

// WriteResult renders a service result with the status code its outcome
// maps to.
func WriteResult(c *gin.Context, result service.Result) {
	WriteEnvelope(c, StatusCode(result.Status), result.Envelope)
}

func WriteEnvelope(c *gin.Context, code int, envelope dto.Envelope) {
	c.JSON(code, envelope)
}

func StatusCode(status service.Status) int {
	switch status {
	case service.StatusOK:
		return http.StatusOK
	case service.StatusNotFound:
		return http.StatusNotFound
	case service.StatusInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func RouteNotFound(c *gin.Context) {
	WriteEnvelope(c, http.StatusNotFound, service.NewRouteNotFoundEnvelope(c.Request.Method, c.Request.URL.Path))
}

func MethodNotAllowed(c *gin.Context) {
	WriteEnvelope(c, http.StatusMethodNotAllowed, service.NewMethodNotAllowedEnvelope(c.Request.Method, c.Request.URL.Path))
}

// Recovery turns a handler panic into a 500 failure envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.Error(c.Request.Context(), "http: handler panicked", nil, map[string]any{
			"panic":     recovered,
			"http.path": c.Request.URL.Path,
		})
		WriteEnvelope(c, http.StatusInternalServerError, dto.NewFailureEnvelope(service.MessageInternalError, service.ErrUnexpected))
		c.Abort()
	})
}
