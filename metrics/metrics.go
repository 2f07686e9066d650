// Package metrics exposes Prometheus instrumentation for the HTTP layer and
// the order book.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the application's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	customers      prometheus.Counter
	products       prometheus.Counter
	orders         prometheus.Counter
	cookiesOrdered prometheus.Counter
	seedSkipped    prometheus.Counter
	reports        *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cookie_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cookie_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		customers: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cookie_customers_created_total",
			Help: "Customers registered.",
		}),
		products: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cookie_products_created_total",
			Help: "Products added to the catalog.",
		}),
		orders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cookie_orders_created_total",
			Help: "Orders recorded.",
		}),
		cookiesOrdered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cookie_units_ordered_total",
			Help: "Cookies ordered across all orders.",
		}),
		seedSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cookie_seed_products_skipped_total",
			Help: "Default products skipped during seeding because the flavor already existed.",
		}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cookie_reports_generated_total",
			Help: "Weekly reports generated by output format.",
		}, []string{"format"}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.customers,
		m.products,
		m.orders,
		m.cookiesOrdered,
		m.seedSkipped,
		m.reports,
	)
	return m
}

func (m *Metrics) CustomerCreated() {
	if m == nil {
		return
	}
	m.customers.Inc()
}

func (m *Metrics) ProductCreated() {
	if m == nil {
		return
	}
	m.products.Inc()
}

// OrderCreated counts an order and the cookies it asked for
func (m *Metrics) OrderCreated(quantity int) {
	if m == nil {
		return
	}
	m.orders.Inc()
	if quantity > 0 {
		m.cookiesOrdered.Add(float64(quantity))
	}
}

// Seeded records the outcome of a seeding run
func (m *Metrics) Seeded(created, skipped int) {
	if m == nil {
		return
	}
	m.products.Add(float64(created))
	m.seedSkipped.Add(float64(skipped))
}

// ReportGenerated counts a report rendered as format (json, pdf, archive)
func (m *Metrics) ReportGenerated(format string) {
	if m == nil {
		return
	}
	m.reports.WithLabelValues(format).Inc()
}

// GinMiddleware records request counts and latency per matched route
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
