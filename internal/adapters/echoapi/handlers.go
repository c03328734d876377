package echoapi

import (
	"net/http"
	"strings"

	"github.com/iconplus/catalog/internal/core/dto"
	"github.com/iconplus/catalog/internal/core/logger"
	"github.com/iconplus/catalog/internal/core/service"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"

	_ "github.com/iconplus/catalog/docs"
)

const swaggerPath = "/swagger/doc.json"

func (s *Server) index(c echo.Context) error {
	return writeJSON(c, http.StatusOK, service.NewAPIInfoEnvelope())
}

// health never touches the catalog store.
func (s *Server) health(c echo.Context) error {
	return writeJSON(c, http.StatusOK, dto.HealthResponse{Status: "ok"})
}

func (s *Server) listProducts(c echo.Context) error {
	return writeResult(c, s.catalogService.ListProducts(c.Request().Context()))
}

func (s *Server) getProduct(c echo.Context) error {
	raw, ok := productID(c)
	if !ok {
		return echo.ErrNotFound
	}
	return writeResult(c, s.catalogService.GetProductByRawID(c.Request().Context(), raw))
}

// productID returns the :id segment. echo matches "/products/" and
// "/products/1/" against the :id route, where gin has no route at all.
func productID(c echo.Context) (string, bool) {
	if len(c.ParamNames()) == 0 {
		return "", true
	}
	raw := c.Param("id")
	return raw, raw != "" && !strings.Contains(raw, "/")
}

func methodNotAllowed(c echo.Context) error {
	if _, ok := productID(c); !ok {
		return echo.ErrNotFound
	}
	return echo.ErrMethodNotAllowed
}

func (s *Server) apiDocs(c echo.Context) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		logger.Error(c.Request().Context(), "http: render api docs", err, nil)
		return writeJSON(c, http.StatusInternalServerError, dto.NewFailureEnvelope(service.MessageInternalError, service.ErrUnexpected))
	}
	return c.Blob(http.StatusOK, contentTypeJSON, []byte(doc))
}
