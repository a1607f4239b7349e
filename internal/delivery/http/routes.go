package http

import (
	"github.com/gin-gonic/gin"
	"github.com/stockview/backend/config"
	"github.com/stockview/backend/internal/metrics"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, reg *metrics.Registry) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	if reg != nil {
		router.Use(MetricsMiddleware(reg))
		router.GET("/metrics", gin.WrapH(reg.Handler()))
	}

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		inventory := v1.Group("/inventory")
		{
			inventory.GET("/report", handler.ReportInventory)
			inventory.GET("/live", handler.LiveInventory)
		}
	}

	return router
}
