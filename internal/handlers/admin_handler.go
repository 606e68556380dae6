package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// InvalidateType handles DELETE /api/types/:type
// Removes every entry stored under the type tag.
func (h *Handler) InvalidateType(c *gin.Context) {
	tag := c.Param("type")
	n, err := h.Cache.InvalidateTag(c.Request.Context(), tag)
	if err != nil {
		respondError(c, err, "invalidate type")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"type":    tag,
		"deleted": n,
	})
}

// Vacuum handles POST /api/vacuum
// Deletes expired entries and compacts the database.
func (h *Handler) Vacuum(c *gin.Context) {
	n, err := h.Cache.Vacuum(c.Request.Context())
	if err != nil {
		respondError(c, err, "vacuum cache")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}
