package echoapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iconplus/catalog/internal/core/dto"
	"github.com/iconplus/catalog/internal/core/logger"
	"github.com/iconplus/catalog/internal/core/service"
	"github.com/labstack/echo/v4"
)

// jsonSerializer writes compact JSON without echo's trailing newline, so
// bodies match the gin deployment byte for byte. The indent echo derives
// from a ?pretty query is ignored.
type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i interface{}, _ string) error {
	body, err := json.Marshal(i)
	if err != nil {
		return err
	}
	_, err = c.Response().Write(body)
	return err
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	return echo.DefaultJSONSerializer{}.Deserialize(c, i)
}

// Same header value gin sends; echo's own constant spells the charset
// in upper case.
const contentTypeJSON = "application/json; charset=utf-8"

func writeJSON(c echo.Context, code int, v any) error {
	c.Response().Header().Set(echo.HeaderContentType, contentTypeJSON)
	return c.JSON(code, v)
}

func writeResult(c echo.Context, result service.Result) error {
	return writeJSON(c, statusCode(result.Status), result.Envelope)
}

func statusCode(status service.Status) int {
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

// httpErrorHandler answers every error that reaches echo with a failure
// envelope. Routing errors keep their status; anything else is a 500.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	req := c.Request()
	var envelope dto.Envelope
	code := http.StatusInternalServerError

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he) && he.Code == http.StatusNotFound:
		code, envelope = http.StatusNotFound, service.NewRouteNotFoundEnvelope(req.Method, req.URL.Path)
	case errors.As(err, &he) && he.Code == http.StatusMethodNotAllowed:
		code, envelope = http.StatusMethodNotAllowed, service.NewMethodNotAllowedEnvelope(req.Method, req.URL.Path)
	case errors.As(err, &he) && he.Code < http.StatusInternalServerError:
		code, envelope = he.Code, dto.NewFailureEnvelope(http.StatusText(he.Code), errorText(he))
	default:
		logger.Error(req.Context(), "http: unhandled error", err, map[string]any{
			"http.path": req.URL.Path,
		})
		envelope = dto.NewFailureEnvelope(service.MessageInternalError, service.ErrUnexpected)
	}

	if err := writeJSON(c, code, envelope); err != nil {
		logger.Error(req.Context(), "http: failed to write error response", err, nil)
	}
}

func errorText(he *echo.HTTPError) string {
	if msg, ok := he.Message.(string); ok {
		return msg
	}
	return http.StatusText(he.Code)
}
