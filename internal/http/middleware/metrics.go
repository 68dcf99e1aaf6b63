// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file exposes the Prometheus instrumentation for HTTP traffic. Label
// cardinality stays bounded by using the registered route pattern rather than
// the raw URL:
//
//   - method: HTTP verb (GET/POST/...)
//   - path:   registered Gin route (e.g. /api/pg/wo-monitoring/:woId);
//     the raw URL path only when no route matched
//   - status: numeric status code as a string ("200", "404")
//
// All collectors are safe for concurrent use.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// reqCount counts finished requests by method, route, and status.
	reqCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// reqDuration records wall time per request. Status is omitted to keep
	// histogram cardinality down. Buckets extend well past the defaults
	// because several routes block on the upstream warehouse API.
	reqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"method", "path"},
	)

	// reqInFlight gauges requests currently inside a handler.
	reqInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	// respBytes captures response body sizes. Exponential buckets from 256B
	// to ~4MiB cover everything from the error envelope to a full unpaged
	// cases listing relayed from upstream.
	respBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "Size of HTTP responses in bytes.",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		},
		[]string{"method", "path"},
	)
)

func init() {
	prometheus.MustRegister(reqCount, reqDuration, reqInFlight, respBytes)
}

// routeLabel returns the registered route pattern for the path label, falling
// back to the raw URL path when no route matched (404s, method mismatches).
func routeLabel(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return c.Request.URL.Path
}

// Metrics returns a Gin middleware instrumenting every request.
//
//	r := gin.New()
//	r.Use(middleware.Metrics())
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
// Per request it increments http_requests_total, observes
// http_request_duration_seconds and http_response_size_bytes, and tracks the
// http_requests_inflight gauge across handler execution. The size histogram
// is skipped when Gin reports an unknown size (-1), as with hijacked
// connections or bodyless responses.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqInFlight.Inc()
		defer reqInFlight.Dec()

		c.Next()

		method := c.Request.Method
		path := routeLabel(c)
		status := strconv.Itoa(c.Writer.Status())

		reqCount.WithLabelValues(method, path, status).Inc()
		reqDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		if size := c.Writer.Size(); size >= 0 {
			respBytes.WithLabelValues(method, path).Observe(float64(size))
		}
	}
}
