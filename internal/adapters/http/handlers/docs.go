package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iconplus/catalog/internal/core/dto"
	"github.com/iconplus/catalog/internal/core/logger"
	"github.com/iconplus/catalog/internal/core/service"
	"github.com/swaggo/swag"

	_ "github.com/iconplus/catalog/docs"
)

// SwaggerPath serves the generated Swagger 2.0 document.
const SwaggerPath = "/swagger/doc.json"

func APIDocs(c *gin.Context) {
	doc, err := swag.ReadDoc()
	if err != nil {
		logger.Error(c.Request.Context(), "http: render api docs", err, nil)
		WriteEnvelope(c, http.StatusInternalServerError, dto.NewFailureEnvelope(service.MessageInternalError, service.ErrUnexpected))
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}
