package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"code", "method", "path"},
	)
)

// normalizePath collapses id path segments so the metric label set stays
// bounded, e.g. /api/meals/123 -> /api/meals/:id.
func normalizePath(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, part := range parts {
		if _, err := strconv.Atoi(part); err == nil {
			parts[i] = ":id"
		}
	}
	return "/" + strings.Join(parts, "/")
}

// MetricsFiber collects request count and duration metrics.
func MetricsFiber() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		statusCode := c.Response().StatusCode()
		if err != nil {
			var fiberError *fiber.Error
			if errors.As(err, &fiberError) {
				statusCode = fiberError.Code
			} else if statusCode == http.StatusOK {
				statusCode = http.StatusInternalServerError
			}
		}

		// Prefer the matched route pattern; fall back to normalizing the
		// concrete path.
		path := c.Route().Path
		if path == "" || path == "/" {
			path = normalizePath(c.Path())
		}

		duration := time.Since(start).Seconds()
		httpRequestsTotal.WithLabelValues(strconv.Itoa(statusCode), c.Method(), path).Inc()
		httpRequestDuration.WithLabelValues(strconv.Itoa(statusCode), c.Method(), path).Observe(duration)

		return err
	}
}

// MetricsGin collects request count and duration metrics.
func MetricsGin() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		statusCode := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = normalizePath(c.Request.URL.Path)
		}

		duration := time.Since(start).Seconds()
		httpRequestsTotal.WithLabelValues(strconv.Itoa(statusCode), c.Request.Method, path).Inc()
		httpRequestDuration.WithLabelValues(strconv.Itoa(statusCode), c.Request.Method, path).Observe(duration)
	}
}
