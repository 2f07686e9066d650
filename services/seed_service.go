package services

import (
	"context"
	"fmt"

	"github.com/kendall-kelly/cookie-orders-api/models"
	"github.com/kendall-kelly/cookie-orders-api/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultCatalog is the menu inserted by SeedDefaultProducts
var DefaultCatalog = []models.Product{
	{Flavor: "Nutella", Price: decimal.RequireFromString("4.00"), Cost: decimal.RequireFromString("1.70")},
	{Flavor: "Mil Gotas", Price: decimal.RequireFromString("4.00"), Cost: decimal.RequireFromString("1.30")},
	{Flavor: "Ninho", Price: decimal.RequireFromString("4.00"), Cost: decimal.RequireFromString("1.90")},
	{Flavor: "Red", Price: decimal.RequireFromString("3.50"), Cost: decimal.RequireFromString("1.00")},
	{Flavor: "Tradicional", Price: decimal.RequireFromString("3.50"), Cost: decimal.RequireFromString("1.00")},
}

// ProductCreator inserts products
type ProductCreator interface {
	CreateProduct(ctx context.Context, flavor string, price, cost decimal.Decimal) (uint, error)
}

// SeedResult counts what a seeding run did
type SeedResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// SeedService inserts the default product catalog
type SeedService struct {
	products ProductCreator
	catalog  []models.Product
	log      *zap.Logger
}

func NewSeedService(products ProductCreator, log *zap.Logger) *SeedService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SeedService{products: products, catalog: DefaultCatalog, log: log}
}

// SeedDefaultProducts inserts every catalog product. Flavors that already exist
// are skipped; any other failure stops the run and is returned.
func (s *SeedService) SeedDefaultProducts(ctx context.Context) (SeedResult, error) {
	var result SeedResult
	for _, product := range s.catalog {
		_, err := s.products.CreateProduct(ctx, product.Flavor, product.Price, product.Cost)
		switch {
		case err == nil:
			result.Created++
		case repository.IsDuplicate(err):
			result.Skipped++
			s.log.Debug("seed product already exists", zap.String("flavor", product.Flavor))
		default:
			return result, fmt.Errorf("failed to seed product %q: %w", product.Flavor, err)
		}
	}

	s.log.Info("default products seeded",
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}
