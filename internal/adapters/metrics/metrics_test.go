package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iconplus/catalog/internal/adapters/metrics"
	"github.com/iconplus/catalog/internal/core/service"
)

func scrape(t *testing.T, r *metrics.Recorder) string {
	t.Helper()
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func TestRecorder_ObserveRequest(t *testing.T) {
	r := metrics.NewRecorder("gin")

	r.ObserveRequest(http.MethodGet, "/products/:id", http.StatusNotFound, 3*time.Millisecond)
	r.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	body := scrape(t, r)
	for _, want := range []string{
		`catalog_http_requests_total{deployment="gin",http_request_method="GET",http_response_status_code="404",http_route="/products/:id"} 1`,
		`http_route="unmatched"`,
		`catalog_http_server_request_duration_ms_count{deployment="gin",http_request_method="GET",http_route="/products/:id"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected scrape to contain %q", want)
		}
	}
}

func TestRecorder_TrackInFlight(t *testing.T) {
	r := metrics.NewRecorder("echo")

	done := r.TrackInFlight()
	if body := scrape(t, r); !strings.Contains(body, `catalog_http_requests_in_flight{deployment="echo"} 1`) {
		t.Fatal("expected one request in flight")
	}

	done()
	if body := scrape(t, r); !strings.Contains(body, `catalog_http_requests_in_flight{deployment="echo"} 0`) {
		t.Fatal("expected no request in flight")
	}
}

func TestRecorder_ObserveLookup(t *testing.T) {
	r := metrics.NewRecorder("gin")

	r.ObserveLookup("get", service.StatusNotFound)
	r.ObserveLookup("get", service.StatusNotFound)
	r.ObserveLookup("list", service.StatusOK)

	body := scrape(t, r)
	want := `catalog_lookups_total{deployment="gin",operation="get",outcome="` + service.StatusNotFound.String() + `"} 2`
	if !strings.Contains(body, want) {
		t.Fatalf("expected scrape to contain %q", want)
	}
}

func TestRecorder_SeparateRegistries(t *testing.T) {
	a := metrics.NewRecorder("gin")
	b := metrics.NewRecorder("gin")

	a.ObserveLookup("list", service.StatusOK)

	if strings.Contains(scrape(t, b), `catalog_lookups_total{`) {
		t.Fatal("expected second recorder to be unaffected")
	}
}
