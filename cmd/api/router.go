package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/middleware"
	"blog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupAuthorRoutes(v1, c)
		setupBlogRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := middleware.AuthMiddleware(c.JWTManager)
	admin := middleware.AdminMiddleware()

	authors := v1.Group("/authors")
	{
		// Public: registration + credential exchange
		authors.POST("", c.AuthorHandler.Register)
		authors.POST("/login", c.AuthorHandler.Login)
		authors.POST("/refresh-token", c.AuthorHandler.RefreshToken)
		authors.POST("/logout", c.AuthorHandler.Logout)
		authors.POST("/google/callback", c.AuthorHandler.GoogleCallback)

		// Authenticated self-service
		authors.GET("/me", auth, c.AuthorHandler.GetMe)
		authors.PUT("/me", auth, c.AuthorHandler.UpdateMe)
		authors.DELETE("/me", auth, c.AuthorHandler.DeleteMe)

		// Authenticated lookup
		authors.GET("/:id", auth, c.AuthorHandler.GetByID)

		// Admin only - the role check always runs after auth
		authors.GET("", auth, admin, c.AuthorHandler.List)
		authors.PUT("/:id", auth, admin, c.AuthorHandler.UpdateByID)
		authors.DELETE("/:id", auth, admin, c.AuthorHandler.DeleteByID)
	}
}

// ========================================
// BLOG ROUTES
// ========================================
// Blog and comment endpoints are public: posts carry no ownership and the
// comment lifecycle is anonymous.
func setupBlogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	blogs := v1.Group("/blogs")
	{
		blogs.POST("", c.BlogHandler.Create)
		blogs.GET("", c.BlogHandler.List)
		blogs.GET("/:id", c.BlogHandler.GetByID)
		blogs.PUT("/:id", c.BlogHandler.Update)
		blogs.DELETE("/:id", c.BlogHandler.Delete)

		// Embedded comments sub-resource
		blogs.POST("/:id/comments", c.BlogHandler.AddComment)
		blogs.GET("/:id/comments", c.BlogHandler.ListComments)
		blogs.GET("/:id/comments/:commentId", c.BlogHandler.GetComment)
		blogs.PUT("/:id/comments/:commentId", c.BlogHandler.UpdateComment)
		blogs.DELETE("/:id/comments/:commentId", c.BlogHandler.DeleteComment)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		dbStatus := "up"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			dbStatus = "down"
		}

		cacheStatus := "up"
		if err := c.Cache.Ping(checkCtx); err != nil {
			cacheStatus = "down"
		}

		status := http.StatusOK
		if dbStatus == "down" {
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"status":   dbStatus,
			"database": dbStatus,
			"cache":    cacheStatus,
			"time":     time.Now().UTC().Format(time.RFC3339),
		})
	}
}
