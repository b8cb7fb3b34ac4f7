package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"teso/internal/handler"
	"teso/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router. Handlers
// for optional subsystems may be nil and their routes are skipped.
type RouterDeps struct {
	SimulationHandler *handler.SimulationHandler
	TripHandler       *handler.TripHandler
	DatasetHandler    *handler.DatasetHandler
	RedisClient       *redis.Client
	NewRelicApp       *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Simulation routes.
		simulations := v1.Group("/simulations")
		{
			simulations.POST("", deps.SimulationHandler.Run)
			simulations.GET("/current", deps.SimulationHandler.GetCurrent)
			simulations.GET("/export", deps.SimulationHandler.Export)
			simulations.POST("/verify", deps.SimulationHandler.Verify)
		}

		// Trip routes, available when PostgreSQL is connected.
		if deps.TripHandler != nil {
			trips := v1.Group("/trips")
			{
				trips.GET("", deps.TripHandler.GetAll)
				trips.GET("/:id", deps.TripHandler.GetTrip)
			}
		}

		// Dataset administration routes.
		if deps.DatasetHandler != nil {
			datasets := v1.Group("/datasets")
			{
				datasets.POST("/seed", deps.DatasetHandler.Seed)
			}
		}
	}

	return router
}
