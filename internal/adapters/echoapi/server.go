// Package echoapi serves the catalog over echo. It mirrors the gin
// deployment route for route and body for body.
package echoapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/iconplus/catalog/internal/adapters/config"
	"github.com/iconplus/catalog/internal/adapters/metrics"
	"github.com/iconplus/catalog/internal/core/logger"
	"github.com/iconplus/catalog/internal/core/port"
	"github.com/iconplus/catalog/internal/core/service"
	"github.com/labstack/echo/v4"
)

type Server struct {
	catalogService *service.CatalogService
	rateLimiter    port.RateLimiterPort
	rateLimit      config.RateLimitConfig
	recorder       *metrics.Recorder
	metricsPath    string
}

func NewServer(catalogService *service.CatalogService) *Server {
	return &Server{catalogService: catalogService}
}

func (s *Server) WithRateLimit(limiter port.RateLimiterPort, cfg config.RateLimitConfig) *Server {
	s.rateLimiter = limiter
	s.rateLimit = cfg
	return s
}

func (s *Server) WithMetrics(recorder *metrics.Recorder, path string) *Server {
	s.recorder = recorder
	s.metricsPath = path
	return s
}

func (s *Server) SetupRoutes(e *echo.Echo) {
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}
	e.HTTPErrorHandler = httpErrorHandler

	e.Use(traceRequests())
	e.Use(logRequest())
	if s.recorder != nil {
		e.Use(recordMetrics(s.recorder))
		s.get(e, s.metricsPath, echo.WrapHandler(s.recorder.Handler()))
	}
	e.Use(recoverPanics())

	s.get(e, "/", s.index)
	s.get(e, "/health", s.health)
	s.get(e, swaggerPath, s.apiDocs)

	var catalogMiddleware []echo.MiddlewareFunc
	if s.rateLimiter != nil {
		catalogMiddleware = append(catalogMiddleware, rateLimit(s.rateLimiter, s.rateLimit.Limit, s.rateLimit.Window))
	}

	// Route-level middleware: group-level Use would register catch-all
	// routes and turn 405s into 404s.
	for _, prefix := range []string{"", "/api"} {
		s.get(e, prefix+"/products", s.listProducts, catalogMiddleware...)
		s.get(e, prefix+"/products/:id", s.getProduct, catalogMiddleware...)
	}
}

// get registers a GET route and an OPTIONS route answering 405, since echo
// would otherwise reply 204 with no body to OPTIONS on any known path.
func (s *Server) get(e *echo.Echo, path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	e.GET(path, h, m...)
	e.OPTIONS(path, methodNotAllowed)
}

func (s *Server) Handler() http.Handler {
	e := echo.New()
	s.SetupRoutes(e)
	return e
}

func (s *Server) ListenAndServe(ctx context.Context, cfg config.HTTPConfig) error {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, "http: graceful shutdown failed", err, nil)
		}
	}()

	logger.Info(ctx, "http: listening", map[string]any{"addr": srv.Addr, "framework": "echo"})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
