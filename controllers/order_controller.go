package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest represents the request body for recording an order.
// placedAt is optional RFC 3339; the current time is used when omitted.
type CreateOrderRequest struct {
	CustomerID uint       `json:"customerId" binding:"required"`
	ProductID  uint       `json:"productId" binding:"required"`
	Quantity   int        `json:"quantity" binding:"required,gt=0"`
	PlacedAt   *time.Time `json:"placedAt"`
}

// CreateOrder handles POST /orders
func (ctl *Controller) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request data", err)
		return
	}

	id, err := ctl.store.CreateOrder(c.Request.Context(), req.CustomerID, req.ProductID, req.Quantity, req.PlacedAt)
	if err != nil {
		ctl.respondStoreError(c, "Failed to create order", err)
		return
	}
	ctl.metrics.OrderCreated(req.Quantity)

	c.JSON(http.StatusCreated, gin.H{
		"id":      id,
		"message": "Order created successfully",
	})
}
