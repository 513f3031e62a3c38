package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_http_requests_total",
		Help: "Requests handled, by method, path and status.",
	}, []string{"method", "path", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gateway_http_request_duration_seconds",
		Help:    "Request latency, by method and path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

var metricRoutes = map[string]struct{}{
	"/api/health":       {},
	"/health":           {},
	"/api/oil":          {},
	"/api/gold":         {},
	"/api/stocks":       {},
	"/api/stocks/quote": {},
	"/api/news":         {},
	"/api/ai/analyze":   {},
	"/metrics":          {},
}

// metricsPath collapses unregistered paths into one label value, keeping
// label cardinality bounded no matter what clients request.
func metricsPath(path string) string {
	if _, ok := metricRoutes[path]; ok {
		return path
	}
	return "unmatched"
}

func withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)
		path := metricsPath(r.URL.Path)
		requestCount.WithLabelValues(r.Method, path, strconv.Itoa(sw.status)).Inc()
		requestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
