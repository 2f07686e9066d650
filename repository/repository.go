package repository

import (
	"context"
	"errors"
	"time"

	"github.com/kendall-kelly/cookie-orders-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists customers, products and orders. Every call runs a single
// statement on a pooled connection that is released before the call returns.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

func New(db *gorm.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

func (r *Repository) CreateCustomer(ctx context.Context, name, phone, location string) (uint, error) {
	customer := models.Customer{
		Name:     name,
		Phone:    phone,
		Location: location,
	}
	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return 0, translateError("create customer", err)
	}
	return customer.ID, nil
}

// GetCustomer returns nil without an error when no customer has the given id
func (r *Repository) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Take(&customer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError("get customer", err)
	}
	return &customer, nil
}

func (r *Repository) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	customers := []models.Customer{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&customers).Error; err != nil {
		return nil, translateError("list customers", err)
	}
	return customers, nil
}

// CreateProduct inserts a product. A flavor that already exists fails with a
// ConstraintError; callers wanting create-if-absent ignore that error.
func (r *Repository) CreateProduct(ctx context.Context, flavor string, price, cost decimal.Decimal) (uint, error) {
	product := models.Product{
		Flavor: flavor,
		Price:  price,
		Cost:   cost,
	}
	if err := r.db.WithContext(ctx).Create(&product).Error; err != nil {
		return 0, translateError("create product", err)
	}
	return product.ID, nil
}

// GetProduct returns nil without an error when no product has the given id
func (r *Repository) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Take(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError("get product", err)
	}
	return &product, nil
}

func (r *Repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, translateError("list products", err)
	}
	return products, nil
}

// CreateOrder inserts an order. placedAt defaults to the current time.
// Customer and product existence is left to the foreign keys.
func (r *Repository) CreateOrder(ctx context.Context, customerID, productID uint, quantity int, placedAt *time.Time) (uint, error) {
	at := r.now()
	if placedAt != nil {
		at = *placedAt
	}

	order := models.Order{
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   quantity,
		PlacedAt:   at.UTC(),
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&order).Error; err != nil {
		return 0, translateError("create order", err)
	}
	return order.ID, nil
}

// ListOrdersInRange returns every order with start <= placed_at < end, joined
// with its customer name and product flavor, price and cost.
func (r *Repository) ListOrdersInRange(ctx context.Context, start, end time.Time) ([]models.OrderLine, error) {
	lines := []models.OrderLine{}
	err := r.db.WithContext(ctx).Raw(
		`SELECT o.id AS order_id, c.name AS customer_name, p.flavor AS flavor, o.quantity AS quantity,
		        p.price AS unit_price, p.cost AS unit_cost, o.placed_at AS placed_at
		 FROM orders o
		 JOIN customers c ON c.id = o.customer_id
		 JOIN products p ON p.id = o.product_id
		 WHERE o.placed_at >= ? AND o.placed_at < ?
		 ORDER BY o.placed_at ASC, o.id ASC`,
		start.UTC(),
		end.UTC(),
	).Scan(&lines).Error
	if err != nil {
		return nil, translateError("list orders in range", err)
	}
	return lines, nil
}

// Ping checks that the store is reachable
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return translateError("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return translateError("ping", err)
	}
	return nil
}

// Tables lists the tables present in the connected database
func (r *Repository) Tables(ctx context.Context) ([]string, error) {
	tables, err := r.db.WithContext(ctx).Migrator().GetTables()
	if err != nil {
		return nil, translateError("list tables", err)
	}
	return tables, nil
}
