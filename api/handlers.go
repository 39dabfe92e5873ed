// Package api exposes the user search service over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sajidahmed21/LearnR/internal/analytics"
	"github.com/sajidahmed21/LearnR/internal/logger"
	"github.com/sajidahmed21/LearnR/internal/metrics"
	"github.com/sajidahmed21/LearnR/services"
)

const healthCheckTimeout = 2 * time.Second

// Options carries the optional collaborators of the API.
type Options struct {
	Analytics *analytics.Service
	Health    services.HealthChecker
	Metrics   *metrics.Manager
	Logger    logger.Logger
}

// API holds dependencies for API handlers, primarily the searcher.
type API struct {
	searcher  services.Searcher
	analytics *analytics.Service
	health    services.HealthChecker
	metrics   *metrics.Manager
	log       logger.Logger
}

// NewAPI creates a new API handler structure.
func NewAPI(searcher services.Searcher, opts Options) *API {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &API{
		searcher:  searcher,
		analytics: opts.Analytics,
		health:    opts.Health,
		metrics:   opts.Metrics,
		log:       log.Named("api"),
	}
}

// SetupRoutes defines all the API routes of the search service.
func SetupRoutes(router *gin.Engine, searcher services.Searcher, opts Options) *API {
	apiHandler := NewAPI(searcher, opts)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Autocomplete route
	router.GET("/search", apiHandler.SearchHandler)

	if apiHandler.analytics != nil {
		router.GET("/analytics", apiHandler.GetAnalyticsHandler)
	}
	if apiHandler.metrics != nil {
		router.GET("/metrics", gin.WrapH(apiHandler.metrics.Handler()))
	}

	return apiHandler
}

// HealthCheckHandler reports service health, including the data source when
// a health checker is configured.
func (api *API) HealthCheckHandler(c *gin.Context) {
	response := gin.H{
		"status":    "healthy",
		"service":   "learnr-user-search",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	}

	if api.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		if err := api.health.Ping(ctx); err != nil {
			api.log.Warn(ctx, "health check failed", logger.Error(err))
			response["status"] = "unhealthy"
			response["database"] = "unreachable"
			c.JSON(http.StatusServiceUnavailable, response)
			return
		}
		response["database"] = "ok"
	}

	c.JSON(http.StatusOK, response)
}
