package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iconplus/catalog/internal/adapters/config"
	"github.com/iconplus/catalog/internal/adapters/http/controllers"
	"github.com/iconplus/catalog/internal/adapters/http/handlers"
	"github.com/iconplus/catalog/internal/adapters/http/middleware"
	"github.com/iconplus/catalog/internal/adapters/metrics"
	"github.com/iconplus/catalog/internal/core/logger"
	"github.com/iconplus/catalog/internal/core/port"
)

type Router struct {
	infoController    *controllers.InfoController
	healthController  *controllers.HealthController
	productController *controllers.ProductController
	rateLimiter       port.RateLimiterPort
	rateLimit         config.RateLimitConfig
	recorder          *metrics.Recorder
	metricsPath       string
}

func NewRouter(
	infoController *controllers.InfoController,
	healthController *controllers.HealthController,
	productController *controllers.ProductController,
) *Router {
	return &Router{
		infoController:    infoController,
		healthController:  healthController,
		productController: productController,
	}
}

// WithRateLimit guards the product routes with limiter.
func (r *Router) WithRateLimit(limiter port.RateLimiterPort, cfg config.RateLimitConfig) *Router {
	r.rateLimiter = limiter
	r.rateLimit = cfg
	return r
}

// WithMetrics records RED metrics and exposes them on path.
func (r *Router) WithMetrics(recorder *metrics.Recorder, path string) *Router {
	r.recorder = recorder
	r.metricsPath = path
	return r
}

func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.RedirectTrailingSlash = false
	engine.HandleMethodNotAllowed = true

	engine.Use(middleware.Trace())
	engine.Use(middleware.LogRequest())
	if r.recorder != nil {
		engine.Use(middleware.Metrics(r.recorder))
		engine.GET(r.metricsPath, gin.WrapH(r.recorder.Handler()))
	}
	engine.Use(handlers.Recovery())

	engine.GET("/", r.infoController.Index)
	engine.GET("/health", r.healthController.Health)
	engine.GET(handlers.SwaggerPath, handlers.APIDocs)

	var catalogMiddleware []gin.HandlerFunc
	if r.rateLimiter != nil {
		catalogMiddleware = append(catalogMiddleware, middleware.RateLimit(r.rateLimiter, r.rateLimit.Limit, r.rateLimit.Window))
	}

	for _, group := range []*gin.RouterGroup{
		engine.Group("", catalogMiddleware...),
		engine.Group("/api", catalogMiddleware...),
	} {
		group.GET("/products", r.productController.GetAll)
		group.GET("/products/:id", r.productController.GetByID)
	}

	engine.NoRoute(handlers.RouteNotFound)
	engine.NoMethod(handlers.MethodNotAllowed)
}

func (r *Router) Handler() http.Handler {
	engine := gin.New()
	r.SetupRoutes(engine)
	return engine
}

func (r *Router) ListenAndServe(ctx context.Context, cfg config.HTTPConfig) error {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r.Handler(),
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

	logger.Info(ctx, "http: listening", map[string]any{"addr": srv.Addr, "framework": "gin"})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
