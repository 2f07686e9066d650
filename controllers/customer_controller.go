package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CreateCustomerRequest represents the request body for registering a customer
type CreateCustomerRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"max=20"`
	Location string `json:"location" binding:"max=255"`
}

// CreateCustomer handles POST /customers
func (ctl *Controller) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request data", err)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondValidation(c, "Customer name is required", nil)
		return
	}

	id, err := ctl.store.CreateCustomer(c.Request.Context(), name, strings.TrimSpace(req.Phone), strings.TrimSpace(req.Location))
	if err != nil {
		ctl.respondStoreError(c, "Failed to create customer", err)
		return
	}
	ctl.metrics.CustomerCreated()

	c.JSON(http.StatusCreated, gin.H{
		"id":      id,
		"message": "Customer created successfully",
	})
}

// ListCustomers handles GET /customers
func (ctl *Controller) ListCustomers(c *gin.Context) {
	customers, err := ctl.store.ListCustomers(c.Request.Context())
	if err != nil {
		ctl.respondStoreError(c, "Failed to list customers", err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomer handles GET /customers/:id
func (ctl *Controller) GetCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	customer, err := ctl.store.GetCustomer(c.Request.Context(), id)
	if err != nil {
		ctl.respondStoreError(c, "Failed to load customer", err)
		return
	}
	if customer == nil {
		respondError(c, http.StatusNotFound, CodeNotFound, "Customer not found")
		return
	}
	c.JSON(http.StatusOK, customer)
}
