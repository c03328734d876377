package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/iconplus/catalog/internal/core/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "catalog"

// Recorder owns a private registry so that two routers in one process (or
// in one test binary) never collide on metric names.
type Recorder struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
	lookups         *prometheus.CounterVec
}

var _ service.LookupObserver = (*Recorder)(nil)

func NewRecorder(deployment string) *Recorder {
	constLabels := prometheus.Labels{"deployment": deployment}

	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_total",
			Help:        "HTTP requests served, by method, route and status code",
			ConstLabels: constLabels,
		}, []string{"http_request_method", "http_route", "http_response_status_code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_server_request_duration_ms",
			Help:        "Request duration histogram for HTTP server in milliseconds",
			ConstLabels: constLabels,
			Buckets:     []float64{1, 5, 10, 25, 50, 100, 300, 500, 1000, 5000, 10000},
		}, []string{"http_request_method", "http_route"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "http_requests_in_flight",
			Help:        "Requests currently being served",
			ConstLabels: constLabels,
		}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "lookups_total",
			Help:        "Catalog lookups by operation and outcome",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),
	}

	r.registry.MustRegister(
		r.requests,
		r.requestDuration,
		r.inFlight,
		r.lookups,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

func (r *Recorder) ObserveRequest(method, route string, statusCode int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	r.requests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	r.requestDuration.WithLabelValues(method, route).Observe(float64(duration.Microseconds()) / 1000)
}

// TrackInFlight bumps the in-flight gauge and returns the matching decrement.
func (r *Recorder) TrackInFlight() func() {
	r.inFlight.Inc()
	return r.inFlight.Dec
}

func (r *Recorder) ObserveLookup(operation string, status service.Status) {
	r.lookups.WithLabelValues(operation, status.String()).Inc()
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.InstrumentMetricHandler(
		r.registry,
		promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}),
	)
}
