// Package api exposes the application services over HTTP with gin.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anilvs/casetrack/internal/errs"
)

// abortError maps service errors onto HTTP statuses. Unknown errors become a
// generic 500 so internals never leak to clients.
func abortError(c *gin.Context, err error) {
	var ve *errs.ValidationError
	switch {
	case errors.As(err, &ve):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ve.Reason, "field": ve.Field})
	case errors.Is(err, errs.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, errs.ErrInvalidTransition):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrAlreadyExists):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, errs.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, errs.ErrRateLimited):
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, try later"})
	default:
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
