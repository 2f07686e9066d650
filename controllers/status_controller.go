package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Health handles the health check endpoint
func (ctl *Controller) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cookie Orders API is running",
	})
}

// DatabaseStatus checks database connectivity and returns table information
func (ctl *Controller) DatabaseStatus(c *gin.Context) {
	ctx := c.Request.Context()

	if err := ctl.store.Ping(ctx); err != nil {
		ctl.log.Warn("database ping failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "DATABASE_CONNECTION_ERROR", "Database connection failed")
		return
	}

	tables, err := ctl.store.Tables(ctx)
	if err != nil {
		ctl.log.Warn("failed to list tables", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "DATABASE_QUERY_ERROR", "Failed to query tables")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
