// Package routes assembles the Gin engine serving the cookie orders API.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/cookie-orders-api/controllers"
	"github.com/kendall-kelly/cookie-orders-api/metrics"
	"github.com/kendall-kelly/cookie-orders-api/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options configures the router
type Options struct {
	CORSAllowedOrigins []string
	Metrics            *metrics.Metrics
	// Gatherer backs /metrics; nil means prometheus.DefaultGatherer
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
}

// New builds the engine with middleware and every API route registered
func New(ctl *controllers.Controller, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(opts.Logger),
		opts.Metrics.GinMiddleware(),
		middleware.CORS(opts.CORSAllowedOrigins),
	)

	router.GET("/health", ctl.Health)
	router.GET("/database/status", ctl.DatabaseStatus)

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	customers := router.Group("/customers")
	{
		customers.POST("", ctl.CreateCustomer)
		customers.GET("", ctl.ListCustomers)
		customers.GET("/:id", ctl.GetCustomer)
	}

	products := router.Group("/products")
	{
		products.POST("", ctl.CreateProduct)
		products.GET("", ctl.ListProducts)
		products.GET("/:id", ctl.GetProduct)
	}

	router.POST("/orders", ctl.CreateOrder)

	reports := router.Group("/report/weekly")
	{
		reports.GET("", ctl.WeeklyReport)
		reports.GET("/pdf", ctl.WeeklyReportPDF)
		reports.POST("/archive", ctl.ArchiveWeeklyReport)
	}

	router.POST("/seed", ctl.Seed)

	return router
}
