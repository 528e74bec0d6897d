package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sammywachtel/harmonia-api/internal/analysis/interpretation"
	"github.com/sammywachtel/harmonia-api/internal/api/handlers"
	apimiddleware "github.com/sammywachtel/harmonia-api/internal/api/middleware"
	"github.com/sammywachtel/harmonia-api/internal/config"
	"github.com/sammywachtel/harmonia-api/internal/metrics"
	"github.com/sammywachtel/harmonia-api/internal/middleware"
	"github.com/sammywachtel/harmonia-api/internal/services"
)

func SetupRouter(db *gorm.DB, cfg *config.Config, cloudwatch *metrics.Client, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking())

	// CORS middleware
	router.Use(apimiddleware.CORS())

	service := interpretation.NewServiceWithCache(cfg.CacheCapacity, cfg.CacheTTL)
	history := services.NewHistoryService(db)

	// Health check
	router.GET("/health", handlers.HealthCheck(db))

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, service)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// Analysis endpoints (public: the engine is stateless and read-only)
	analysisHandler := handlers.NewAnalysisHandler(service, history, cloudwatch)
	v1 := router.Group("/api/v1")
	{
		v1.POST("/analyze", analysisHandler.Analyze)
		v1.POST("/analyze/functional", analysisHandler.AnalyzeFunctional)
		v1.POST("/analyze/modal", analysisHandler.AnalyzeModal)
		v1.POST("/analyze/chromatic", analysisHandler.AnalyzeChromatic)
	}

	// History endpoints (require auth, and a configured database)
	if cfg.HistoryEnabled() {
		historyHandler := handlers.NewHistoryHandler(history)
		protected := v1.Group("/analyses")
		switch cfg.AuthMode {
		case "jwt":
			protected.Use(middleware.JWTAuth(cfg))
		case "gateway":
			protected.Use(apimiddleware.GatewayAuth())
		}
		protected.GET("", historyHandler.List)
		protected.GET("/:id", historyHandler.Get)
	}

	return router
}
