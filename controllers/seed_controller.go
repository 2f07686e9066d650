package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Seed handles POST /seed - inserts the default flavors, skipping existing ones
func (ctl *Controller) Seed(c *gin.Context) {
	result, err := ctl.seeder.SeedDefaultProducts(c.Request.Context())
	if err != nil {
		ctl.respondStoreError(c, "Failed to seed products", err)
		return
	}
	ctl.metrics.Seeded(result.Created, result.Skipped)

	c.JSON(http.StatusOK, gin.H{
		"message": "Seed completed",
		"created": result.Created,
		"skipped": result.Skipped,
	})
}
