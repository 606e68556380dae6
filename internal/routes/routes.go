package routes

import (
	"simplecache/internal/handlers"
	"simplecache/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes builds the admin API router.
func SetupRoutes(h *handlers.Handler) *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204) // This depends on the implementation of the frontend
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "SimpleCache admin API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		// Login endpoint
		api.POST("/login", h.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware(h.Issuer))
	{
		// Entry endpoints
		protectedRoutes.GET("/keys", h.ListKeys)
		protectedRoutes.GET("/entries/:key", h.GetEntry)
		protectedRoutes.GET("/entries/:key/value", h.GetEntryValue)
		protectedRoutes.PUT("/entries/:key", h.PutEntry)
		protectedRoutes.DELETE("/entries/:key", h.DeleteEntry)
		protectedRoutes.POST("/created-at", h.CreatedAt)
		// Maintenance endpoints
		protectedRoutes.DELETE("/types/:type", h.InvalidateType)
		protectedRoutes.POST("/vacuum", h.Vacuum)
		// Change feed
		protectedRoutes.GET("/ws", h.WebSocket)
	}

	return ginRouter
}
