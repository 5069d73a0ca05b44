// Package metrics exposes Prometheus instrumentation for the HTTP server and
// the order lifecycle.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the collectors the service records.
type Metrics struct {
	Requests      *prometheus.CounterVec
	LatencyMS     *prometheus.HistogramVec
	OrdersPlaced  prometheus.Counter
	OrdersDeleted prometheus.Counter

	registry *prometheus.Registry
}

// New creates and registers all collectors on a private registry.
func New(service string) *Metrics {
	reg := prometheus.NewRegistry()
	labels := prometheus.Labels{"service": service}

	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "HTTP requests by method, route and status.",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_latency_ms",
			Help:        "HTTP request latency in milliseconds.",
			ConstLabels: labels,
			Buckets:     []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "route"}),
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "orders_placed_total",
			Help:        "Orders transitioned from processing to placed.",
			ConstLabels: labels,
		}),
		OrdersDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "orders_deleted_total",
			Help:        "Orders deleted in any state.",
			ConstLabels: labels,
		}),
		registry: reg,
	}
	reg.MustRegister(m.Requests, m.LatencyMS, m.OrdersPlaced, m.OrdersDeleted)
	return m
}

// Handler serves the /metrics endpoint for this registry.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

// Middleware records a counter and latency observation per request.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.LatencyMS.WithLabelValues(c.Request.Method, route).
			Observe(float64(time.Since(start).Milliseconds()))
	}
}
