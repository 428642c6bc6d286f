// Package handler is the HTTP request boundary: it validates the shape of
// incoming payloads, invokes domain services, and translates domain
// outcomes into response codes. No business rules live here.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"projecthub/internal/apperr"
)

// writeError translates a domain error into a response code.
func writeError(c *gin.Context, err error) {
	switch {
	case apperr.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperr.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperr.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
