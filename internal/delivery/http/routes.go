package http

import (
	"github.com/gin-gonic/gin"

	"github.com/crawlproduct/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes, behind the shared-secret gate
	v1 := router.Group("/api/v1")
	v1.Use(APIKeyMiddleware(cfg.Server.APIKey))
	{
		products := v1.Group("/products")
		{
			products.GET("/crawled", handler.ListCrawled)
			products.GET("/transformed", handler.ListTransformed)
			products.GET("/crawl", handler.CrawlProduct)
			products.GET("/transform", handler.TransformProduct)
			products.POST("/translate", handler.TranslateProduct)
		}

		assistant := v1.Group("/assistant")
		{
			assistant.POST("/ask", handler.Ask)
			assistant.POST("/classify", handler.Classify)
		}
	}

	return router
}
