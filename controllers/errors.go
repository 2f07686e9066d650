package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/cookie-orders-api/repository"
	"github.com/kendall-kelly/cookie-orders-api/services"
	"go.uber.org/zap"
)

// Error codes returned in the error envelope
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeDuplicateFlavor    = "DUPLICATE_FLAVOR"
	CodeInvalidReference   = "INVALID_REFERENCE"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeArchiveDisabled    = "ARCHIVE_DISABLED"
	CodeInternal           = "INTERNAL_ERROR"
)

// respondError writes the standard error envelope and aborts the request
func respondError(c *gin.Context, status int, code, message string, details ...string) {
	body := gin.H{
		"code":    code,
		"message": message,
	}
	if len(details) > 0 && details[0] != "" {
		body["details"] = details[0]
	}
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   body,
	})
}

func respondValidation(c *gin.Context, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	respondError(c, http.StatusBadRequest, CodeValidation, message, details)
}

// respondStoreError maps repository and service failures onto HTTP statuses.
// message describes the failed operation for the client.
func (ctl *Controller) respondStoreError(c *gin.Context, message string, err error) {
	_ = c.Error(err)

	switch {
	case repository.IsDuplicate(err):
		respondError(c, http.StatusConflict, CodeDuplicateFlavor, "A product with this flavor already exists")
	case repository.IsInvalidReference(err):
		respondError(c, http.StatusUnprocessableEntity, CodeInvalidReference, "Customer or product does not exist")
	case errors.Is(err, services.ErrArchiveDisabled):
		respondError(c, http.StatusServiceUnavailable, CodeArchiveDisabled, "Report archive is not configured")
	case errors.Is(err, repository.ErrStorageUnavailable):
		ctl.log.Warn(message, zap.Error(err))
		respondError(c, http.StatusServiceUnavailable, CodeStorageUnavailable, message)
	default:
		ctl.log.Error(message, zap.Error(err))
		respondError(c, http.StatusInternalServerError, CodeInternal, message)
	}
}
