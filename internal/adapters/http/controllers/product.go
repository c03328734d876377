package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/iconplus/catalog/internal/adapters/http/handlers"
	"github.com/iconplus/catalog/internal/core/service"
)

type ProductController struct {
	catalogService *service.CatalogService
}

func NewProductController(catalogService *service.CatalogService) *ProductController {
	return &ProductController{catalogService: catalogService}
}

// GetAll godoc
// @Summary     List all products
// @Description Returns every product in the catalog, ordered by id
// @Tags        products
// @Produce     json
// @Success     200 {object} dto.Envelope{data=[]dto.ProductResponse}
// @Failure     500 {object} dto.Envelope
// @Router      /products [get]
func (pc *ProductController) GetAll(c *gin.Context) {
	handlers.WriteResult(c, pc.catalogService.ListProducts(c.Request.Context()))
}

// GetByID godoc
// @Summary     Get a product
// @Description Returns a single product by its numeric id
// @Tags        products
// @Produce     json
// @Param       id  path     int true "Product ID"
// @Success     200 {object} dto.Envelope{data=dto.ProductResponse}
// @Failure     400 {object} dto.Envelope
// @Failure     404 {object} dto.Envelope
// @Failure     500 {object} dto.Envelope
// @Router      /products/{id} [get]
func (pc *ProductController) GetByID(c *gin.Context) {
	handlers.WriteResult(c, pc.catalogService.GetProductByRawID(c.Request.Context(), c.Param("id")))
}
