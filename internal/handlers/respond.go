package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dashboard-backend/internal/errs"
)

// writeError renders err as JSON. Only the generic message and its
// classification leave the process; the cause has already been logged.
func writeError(c *gin.Context, err error) {
	var e *errs.Error
	if !errors.As(err, &e) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(e.Status(), gin.H{
		"error":  e.Message,
		"kind":   e.Kind,
		"reason": e.Reason,
	})
}
