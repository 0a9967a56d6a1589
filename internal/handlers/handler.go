// Package handlers is the thin HTTP surface over the services. Handlers
// collect arguments and translate the service error taxonomy to status
// codes; every contract lives in the services.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/railtraits/traits-backend/internal/services"
)

// respondError maps the service error taxonomy onto HTTP status codes.
// Anything outside the taxonomy is an internal store error.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": err.Error(),
			"retry":   true,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "internal error",
		})
	}
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": "Invalid request format",
		"error":   err.Error(),
	})
}
