package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/naitfess/prak-tpm-projek-akhir/pkg/errors"
	"github.com/naitfess/prak-tpm-projek-akhir/pkg/logger"
)

// respondError maps a service error to its HTTP status. Internal causes
// are logged but never surfaced to the client.
func respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= 500 {
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{
		"success": false,
		"message": apperrors.PublicMessage(err),
	})
}

// parsePagination reads page/limit query params with sane bounds.
func parsePagination(c *gin.Context) (page, limit int) {
	page = 1
	limit = 10

	if p, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(c.DefaultQuery("limit", "10")); err == nil && l > 0 && l <= 100 {
		limit = l
	}

	return page, limit
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}
