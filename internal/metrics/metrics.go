package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	authErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_errors_total",
			Help: "Authentication and authorization failures by reason",
		},
		[]string{"reason"},
	)

	ordersPlacedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Orders successfully placed",
		},
	)
)

// Middleware records request counts and latency per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func RecordAuthError(reason string) {
	authErrorsTotal.WithLabelValues(reason).Inc()
}

func RecordOrderPlaced() {
	ordersPlacedTotal.Inc()
}

// Handler exposes the prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
