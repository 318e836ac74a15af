// Package metrics exposes request and domain counters on /metrics.
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
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ceylontours_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ceylontours_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ceylontours_bookings_created_total",
		Help: "Bookings persisted through checkout.",
	})

	PayoutsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ceylontours_payouts_recorded_total",
		Help: "Guide payouts recorded.",
	})

	CheckoutSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ceylontours_checkout_sessions_open",
		Help: "Checkout sessions currently held in memory.",
	})
)

// Middleware records per-request counters and latency. The route
// template is used as the label, not the raw path, to keep cardinality
// bounded.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
