package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/cookie-orders-api/metrics"
	"github.com/kendall-kelly/cookie-orders-api/models"
	"github.com/kendall-kelly/cookie-orders-api/services"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Store is the persistence the HTTP handlers depend on.
// *repository.Repository satisfies it.
type Store interface {
	CreateCustomer(ctx context.Context, name, phone, location string) (uint, error)
	GetCustomer(ctx context.Context, id uint) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	CreateProduct(ctx context.Context, flavor string, price, cost decimal.Decimal) (uint, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateOrder(ctx context.Context, customerID, productID uint, quantity int, placedAt *time.Time) (uint, error)
	Ping(ctx context.Context) error
	Tables(ctx context.Context) ([]string, error)
}

// Controller holds the dependencies shared by every handler
type Controller struct {
	store    Store
	reports  *services.ReportService
	seeder   *services.SeedService
	archiver *services.ReportArchiver
	metrics  *metrics.Metrics
	log      *zap.Logger
}

// Deps groups the constructor arguments of a Controller
type Deps struct {
	Store    Store
	Reports  *services.ReportService
	Seeder   *services.SeedService
	Archiver *services.ReportArchiver
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
}

func New(deps Deps) *Controller {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		store:    deps.Store,
		reports:  deps.Reports,
		seeder:   deps.Seeder,
		archiver: deps.Archiver,
		metrics:  deps.Metrics,
		log:      log,
	}
}

// parseID reads a positive numeric path parameter
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, CodeValidation, "Invalid "+name, "expected a positive integer, got "+strconv.Quote(raw))
		return 0, false
	}
	return uint(id), true
}
