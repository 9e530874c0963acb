package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "anagnostirio_http_requests_total",
		Help: "Total number of HTTP requests processed.",
	}, []string{"method", "route"})

	httpErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "anagnostirio_http_errors_total",
		Help: "Total number of HTTP requests resulting in server errors.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "anagnostirio_http_request_duration_seconds",
		Help:    "Histogram of latencies for HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	driveLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "anagnostirio_drive_latency_seconds",
		Help:    "Histogram of Google Drive upstream call latencies.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "route"})
)

// Middleware records per-request counters and latency, labelled by the chi
// route pattern rather than the raw path to keep cardinality bounded.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			// The route pattern is only known once chi has dispatched.
			route := routePattern(r.Context(), r.URL.Path)
			status := ww.Status()
			statusCode := strconv.Itoa(status)
			duration := time.Since(start).Seconds()

			httpRequestsTotal.WithLabelValues(r.Method, route).Inc()
			httpRequestDuration.WithLabelValues(r.Method, route, statusCode).Observe(duration)
			if status >= http.StatusInternalServerError {
				httpErrorsTotal.WithLabelValues(r.Method, route, statusCode).Inc()
			}
		})
	}
}

// Handler exposes the Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveDriveLatency records the latency of one Drive upstream call,
// attributed to the endpoint that made it.
func ObserveDriveLatency(ctx context.Context, operation string, start time.Time) {
	driveLatency.WithLabelValues(operation, routePattern(ctx, "unknown")).Observe(time.Since(start).Seconds())
}

func routePattern(ctx context.Context, fallback string) string {
	if rctx := chi.RouteContext(ctx); rctx != nil {
		if pattern := strings.TrimSpace(rctx.RoutePattern()); pattern != "" {
			return pattern
		}
	}
	return fallback
}
