package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salespulse/salespulse-go/internal/utils"
)

// respondError maps the service error taxonomy onto HTTP status codes:
// invalid arguments to 400, lookup misses to 404, everything else to 500.
func respondError(c *gin.Context, err error) {
	switch {
	case utils.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case utils.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
