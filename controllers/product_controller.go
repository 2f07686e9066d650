package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/cookie-orders-api/models"
	"github.com/kendall-kelly/cookie-orders-api/utils"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents the request body for adding a flavor.
// Prices accept JSON numbers or numeric strings.
type CreateProductRequest struct {
	Flavor string           `json:"flavor" binding:"required,max=100"`
	Price  *decimal.Decimal `json:"price" binding:"required"`
	Cost   *decimal.Decimal `json:"cost" binding:"required"`
}

// ProductResponse is a product with its derived unit margin
type ProductResponse struct {
	ID     uint        `json:"id"`
	Flavor string      `json:"flavor"`
	Price  utils.Money `json:"price"`
	Cost   utils.Money `json:"cost"`
	Margin utils.Money `json:"margin"`
}

func newProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:     p.ID,
		Flavor: p.Flavor,
		Price:  utils.NewMoney(p.Price),
		Cost:   utils.NewMoney(p.Cost),
		Margin: utils.NewMoney(p.Margin()),
	}
}

// CreateProduct handles POST /products
func (ctl *Controller) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request data", err)
		return
	}

	flavor := strings.TrimSpace(req.Flavor)
	if flavor == "" {
		respondValidation(c, "Flavor is required", nil)
		return
	}
	if req.Price.IsNegative() || req.Cost.IsNegative() {
		respondValidation(c, "Price and cost must not be negative", nil)
		return
	}

	id, err := ctl.store.CreateProduct(c.Request.Context(), flavor, *req.Price, *req.Cost)
	if err != nil {
		ctl.respondStoreError(c, "Failed to create product", err)
		return
	}
	ctl.metrics.ProductCreated()

	c.JSON(http.StatusCreated, gin.H{
		"id":      id,
		"message": "Product created successfully",
	})
}

// ListProducts handles GET /products
func (ctl *Controller) ListProducts(c *gin.Context) {
	products, err := ctl.store.ListProducts(c.Request.Context())
	if err != nil {
		ctl.respondStoreError(c, "Failed to list products", err)
		return
	}

	response := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, newProductResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// GetProduct handles GET /products/:id
func (ctl *Controller) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := ctl.store.GetProduct(c.Request.Context(), id)
	if err != nil {
		ctl.respondStoreError(c, "Failed to load product", err)
		return
	}
	if product == nil {
		respondError(c, http.StatusNotFound, CodeNotFound, "Product not found")
		return
	}
	c.JSON(http.StatusOK, newProductResponse(*product))
}
