package observability

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequestsTotal counts HTTP requests by route, method and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	// HTTPRequestDuration observes HTTP request latency.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	// InvitesIssuedTotal counts test invites, split by reused vs created.
	InvitesIssuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invites_issued_total",
			Help: "Total number of test invites issued",
		},
		[]string{"outcome"},
	)
	// SubmissionsStartedTotal counts submissions started from invites.
	SubmissionsStartedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "submissions_started_total",
			Help: "Total number of test submissions started",
		},
	)
	// SubmissionsCompletedTotal counts answer sets persisted, by test type.
	SubmissionsCompletedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submissions_completed_total",
			Help: "Total number of test submissions completed",
		},
		[]string{"test_type"},
	)
)

var registerOnce sync.Once

// InitMetrics registers all collectors with the default registry. Safe to
// call more than once per process.
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			InvitesIssuedTotal,
			SubmissionsStartedTotal,
			SubmissionsCompletedTotal,
		)
	})
}

// HTTPMetricsMiddleware records request counts and durations labeled by
// the chi route pattern so cardinality stays bounded.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		route := ""
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
