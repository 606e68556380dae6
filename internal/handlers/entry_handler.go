package handlers

import (
	"net/http"
	"time"

	"simplecache/internal/cache"
	"simplecache/internal/config"

	"github.com/gin-gonic/gin"
)

// PutEntryRequest represents the request payload for inserting an entry
type PutEntryRequest struct {
	Type      string     `json:"type" binding:"required"`
	Value     any        `json:"value"`
	ExpiresIn string     `json:"expiresIn"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// CreatedAtRequest represents the request payload for bulk creation times
type CreatedAtRequest struct {
	Keys []string `json:"keys" binding:"required"`
}

// ListKeys handles GET /api/keys
// Optional query param: type to list only the keys stored under a tag.
func (h *Handler) ListKeys(c *gin.Context) {
	keys, err := h.Cache.Keys(c.Request.Context(), c.Query("type"))
	if err != nil {
		respondError(c, err, "list keys")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"keys":  keys,
		"count": len(keys),
	})
}

// GetEntry handles GET /api/entries/:key
// Returns the entry metadata without decoding its value.
func (h *Handler) GetEntry(c *gin.Context) {
	info, err := h.Cache.Stat(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err, "fetch entry")
		return
	}
	c.JSON(http.StatusOK, info)
}

// GetEntryValue handles GET /api/entries/:key/value
func (h *Handler) GetEntryValue(c *gin.Context) {
	key := c.Param("key")
	v, err := h.Cache.GetValue(c.Request.Context(), key)
	if err != nil {
		respondError(c, err, "decode entry")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"key":   key,
		"value": v,
	})
}

// PutEntry handles PUT /api/entries/:key
// Inserts or replaces the entry under an explicit type tag.
func (h *Handler) PutEntry(c *gin.Context) {
	key := c.Param("key")

	var req PutEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var opts []cache.InsertOption
	switch {
	case req.ExpiresAt != nil:
		opts = append(opts, cache.ExpiresAt(*req.ExpiresAt))
	case req.ExpiresIn != "":
		d, err := config.ParseDuration(req.ExpiresIn)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expiresIn: " + err.Error()})
			return
		}
		// "off" and "0" mean the entry never expires
		if d != 0 {
			opts = append(opts, cache.ExpiresIn(d))
		}
	}

	n, err := h.Cache.InsertTagged(c.Request.Context(), key, req.Type, req.Value, opts...)
	if err != nil {
		respondError(c, err, "insert entry")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"key":      key,
		"type":     req.Type,
		"inserted": n,
	})
}

// DeleteEntry handles DELETE /api/entries/:key?type=
// The entry is only removed if it is stored under the given type.
func (h *Handler) DeleteEntry(c *gin.Context) {
	key := c.Param("key")
	tag := c.Query("type")
	if tag == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type query parameter is required"})
		return
	}

	n, err := h.Cache.InvalidateTagged(c.Request.Context(), key, tag)
	if err != nil {
		respondError(c, err, "invalidate entry")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Entry invalidated successfully",
		"key":     key,
		"deleted": n,
	})
}

// CreatedAt handles POST /api/created-at
// Every requested key is present in the response; absent keys map to null.
func (h *Handler) CreatedAt(c *gin.Context) {
	var req CreatedAtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	times, err := h.Cache.GetCreatedAtMany(c.Request.Context(), req.Keys)
	if err != nil {
		respondError(c, err, "fetch creation times")
		return
	}
	c.JSON(http.StatusOK, gin.H{"createdAt": times})
}
