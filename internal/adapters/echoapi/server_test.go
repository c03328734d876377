package echoapi_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iconplus/catalog/internal/adapters/config"
	"github.com/iconplus/catalog/internal/adapters/contract"
	"github.com/iconplus/catalog/internal/adapters/echoapi"
	"github.com/iconplus/catalog/internal/adapters/metrics"
	"github.com/iconplus/catalog/internal/core/port"
	"github.com/iconplus/catalog/internal/core/port/mock"
	"github.com/iconplus/catalog/internal/core/service"
	"go.uber.org/mock/gomock"
)

func newServer(catalog port.CatalogPort, observer service.LookupObserver) *echoapi.Server {
	return echoapi.NewServer(service.NewCatalogService(catalog, observer))
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = "192.0.2.1:4711"
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_Contract(t *testing.T) {
	contract.Run(t, func(t *testing.T, catalog port.CatalogPort) http.Handler {
		return newServer(catalog, nil).Handler()
	})
}

func TestServer_TrailingSlashIsNotFound(t *testing.T) {
	h := newServer(contract.SeededStore(t), nil).Handler()

	for _, target := range []string{"/products/", "/products/1/", "/api/products/2/"} {
		rec := serve(h, http.MethodGet, target)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected status 404, got %d", target, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"message":"Route not found"`) {
			t.Fatalf("%s: expected route-not-found envelope, got %s", target, rec.Body.String())
		}
	}
}

func TestServer_RateLimit(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Limit: 3, Window: 30 * time.Second}

	t.Run("sets quota headers when allowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		limiter := mock.NewMockRateLimiterPort(ctrl)
		limiter.EXPECT().
			Allow(gomock.Any(), "GET:/api/products/:id:192.0.2.1", 3, 30*time.Second).
			Return(port.RateDecision{Allowed: true, Remaining: 2}, nil)

		h := newServer(contract.SeededStore(t), nil).WithRateLimit(limiter, cfg).Handler()
		rec := serve(h, http.MethodGet, "/api/products/2")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if got := rec.Header().Get("X-RateLimit-Limit"); got != "3" {
			t.Fatalf("expected limit 3, got %q", got)
		}
		if got := rec.Header().Get("X-RateLimit-Remaining"); got != "2" {
			t.Fatalf("expected remaining 2, got %q", got)
		}
	})

	t.Run("rejects with 429 envelope when exhausted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		limiter := mock.NewMockRateLimiterPort(ctrl)
		limiter.EXPECT().
			Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(port.RateDecision{Allowed: false, RetryAfter: 10 * time.Second}, nil)

		h := newServer(contract.SeededStore(t), nil).WithRateLimit(limiter, cfg).Handler()
		rec := serve(h, http.MethodGet, "/products")

		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("expected status 429, got %d", rec.Code)
		}
		if got := rec.Header().Get("Retry-After"); got != "10" {
			t.Fatalf("expected Retry-After 10, got %q", got)
		}
		want := `{"success":false,"message":"Too many requests","error":"rate limit exceeded"}`
		if rec.Body.String() != want {
			t.Fatalf("expected %s, got %s", want, rec.Body.String())
		}
	})

	t.Run("lets requests through when the limiter fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		limiter := mock.NewMockRateLimiterPort(ctrl)
		limiter.EXPECT().
			Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(port.RateDecision{}, errors.New("redis: i/o timeout"))

		h := newServer(contract.SeededStore(t), nil).WithRateLimit(limiter, cfg).Handler()
		if rec := serve(h, http.MethodGet, "/products"); rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
	})

	t.Run("keeps 405 for wrong methods", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		limiter := mock.NewMockRateLimiterPort(ctrl)

		h := newServer(contract.SeededStore(t), nil).WithRateLimit(limiter, cfg).Handler()
		if rec := serve(h, http.MethodDelete, "/products/1"); rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected status 405, got %d", rec.Code)
		}
	})
}

func TestServer_Metrics(t *testing.T) {
	recorder := metrics.NewRecorder("echo")
	h := newServer(contract.SeededStore(t), recorder).WithMetrics(recorder, "/metrics").Handler()

	serve(h, http.MethodGet, "/products")
	serve(h, http.MethodGet, "/products/77")

	rec := serve(h, http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`catalog_http_requests_total{deployment="echo",http_request_method="GET",http_response_status_code="200",http_route="/products"} 1`,
		`http_response_status_code="404",http_route="/products/:id"`,
		`catalog_lookups_total{deployment="echo",operation="list",outcome="ok"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected metrics to contain %q", want)
		}
	}
}
