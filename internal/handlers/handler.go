package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"simplecache/internal/auth"
	"simplecache/internal/cache"
	"simplecache/internal/realtime"

	"github.com/gin-gonic/gin"
)

// Handler serves the admin API over a cache.
type Handler struct {
	Cache       cache.ObjectCache
	Hub         *realtime.Hub
	Issuer      *auth.Issuer
	Credentials auth.Credentials
}

// respondError maps cache errors onto HTTP statuses.
func respondError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, cache.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
	case errors.Is(err, cache.ErrTypeMismatch):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, cache.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.Error("admin request failed", "action", action, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}
