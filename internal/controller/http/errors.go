package http

import (
	"net/http"

	"snapfeed/internal/apperr"

	"github.com/gin-gonic/gin"
)

// respondError maps a failure kind to its transport status. Each category
// from the pipeline surfaces distinctly instead of collapsing into a single
// 500 with an opaque message.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch apperr.KindOf(err) {
	case apperr.Unauthorized:
		status = http.StatusUnauthorized
	case apperr.NotFound:
		status = http.StatusNotFound
	case apperr.Forbidden:
		status = http.StatusForbidden
	case apperr.Validation:
		status = http.StatusBadRequest
	case apperr.Staging, apperr.Storage, apperr.Persistence:
		status = http.StatusInternalServerError
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
