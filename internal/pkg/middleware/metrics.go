package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus collectors for the HTTP surface and the
// order-recording pipeline.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	OrdersRecorded  *prometheus.CounterVec
	OrdersDuplicate *prometheus.CounterVec
}

// NewMetrics registers the collectors with the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		OrdersRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_recorded_total",
				Help: "Orders written, labeled by payment provider",
			},
			[]string{"provider"},
		),
		OrdersDuplicate: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_duplicate_total",
				Help: "Order writes skipped because the payment id already existed",
			},
			[]string{"provider"},
		),
	}
}

// Handler instruments each request with count and duration.
func (m *Metrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(
			c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.httpRequestDuration.WithLabelValues(
			c.Request.Method, endpoint,
		).Observe(time.Since(start).Seconds())
	}
}
