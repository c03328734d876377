package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iconplus/catalog/internal/core/dto"
)

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

// Health godoc
// @Summary     Liveness check
// @Description Reports that the process is serving. Never touches the catalog store.
// @Tags        health
// @Produce     json
// @Success     200 {object} dto.HealthResponse
// @Router      /health [get]
func (h *HealthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
