package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iconplus/catalog/internal/adapters/http/handlers"
	"github.com/iconplus/catalog/internal/core/service"
)

type InfoController struct{}

func NewInfoController() *InfoController {
	return &InfoController{}
}

// Index godoc
// @Summary     API index
// @Description Lists the available endpoints
// @Tags        info
// @Produce     json
// @Success     200 {object} dto.Envelope
// @Router      / [get]
func (ic *InfoController) Index(c *gin.Context) {
	handlers.WriteEnvelope(c, http.StatusOK, service.NewAPIInfoEnvelope())
}
