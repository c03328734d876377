package echoapi

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/iconplus/catalog/internal/adapters/metrics"
	"github.com/iconplus/catalog/internal/adapters/telemetry"
	"github.com/iconplus/catalog/internal/core/dto"
	"github.com/iconplus/catalog/internal/core/logger"
	"github.com/iconplus/catalog/internal/core/port"
	"github.com/iconplus/catalog/internal/core/service"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// handled runs next and resolves a returned error into a written response,
// so the status seen afterwards is final.
func handled(c echo.Context, next echo.HandlerFunc) {
	if err := next(c); err != nil {
		c.Error(err)
	}
}

// traceRequests opens a server span per request and hands it to the
// handlers through the request context.
func traceRequests() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := telemetry.StartServerSpan(c.Request())
			c.SetRequest(c.Request().WithContext(ctx))

			handled(c, next)

			telemetry.EndServerSpan(span, c.Request().Method, c.Path(), c.Response().Status)
			return nil
		}
	}
}

func logRequest() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			handled(c, next)

			req, res := c.Request(), c.Response()
			logger.LogRequest(req.Context(), logger.Request{
				Method:    req.Method,
				Path:      req.URL.Path,
				Route:     c.Path(),
				Status:    res.Status,
				Duration:  time.Since(start),
				ClientIP:  c.RealIP(),
				UserAgent: req.UserAgent(),
				Size:      res.Size,
			})
			return nil
		}
	}
}

func recordMetrics(recorder *metrics.Recorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			done := recorder.TrackInFlight()
			defer done()

			start := time.Now()
			handled(c, next)

			recorder.ObserveRequest(c.Request().Method, c.Path(), c.Response().Status, time.Since(start))
			return nil
		}
	}
}

func recoverPanics() echo.MiddlewareFunc {
	return echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisablePrintStack: true,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error(c.Request().Context(), "http: handler panicked", err, map[string]any{
				"http.path": c.Request().URL.Path,
				"stack":     string(stack),
			})
			return err
		},
	})
}

// rateLimit applies a fixed window per client and route. Limiter errors let
// the request through.
func rateLimit(limiter port.RateLimiterPort, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := fmt.Sprintf("%s:%s:%s", c.Request().Method, c.Path(), c.RealIP())

			decision, err := limiter.Allow(c.Request().Context(), key, limit, window)
			if err != nil {
				logger.Warn(c.Request().Context(), "rate limiter unavailable, allowing request", map[string]any{
					"error": err.Error(),
				})
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			if !decision.Allowed {
				h.Set("Retry-After", strconv.Itoa(int(math.Ceil(decision.RetryAfter.Seconds()))))
				return writeJSON(c, http.StatusTooManyRequests, dto.NewFailureEnvelope(service.MessageTooManyRequests, service.ErrRateLimitExceeded))
			}
			return next(c)
		}
	}
}
