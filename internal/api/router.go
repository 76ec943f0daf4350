package api

import (
	"net/http"

	"grid-balance/internal/api/handlers"
	"grid-balance/internal/api/middleware"
	"grid-balance/internal/api/models"
	"grid-balance/internal/data"
	"grid-balance/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Options wires the router's dependencies.
type Options struct {
	Cache       *data.ResultCache
	Metrics     *metrics.Metrics
	ScenarioDir string
	// RequestLog enables the per-request log line.
	RequestLog bool
}

// NewRouter builds the HTTP API.
func NewRouter(opts Options) *gin.Engine {
	router := gin.New()

	router.Use(middleware.CORS())
	if opts.RequestLog {
		router.Use(middleware.Logger())
	}
	router.Use(opts.Metrics.Middleware())
	router.Use(middleware.ErrorHandler())

	simulationHandler := handlers.NewSimulationHandler(opts.Cache, opts.Metrics, opts.ScenarioDir)
	catalogHandler := handlers.NewCatalogHandler(opts.ScenarioDir)
	rankHandler := handlers.NewRankHandler(opts.Metrics)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulationHandler.RunSimulation)
		api.GET("/simulate/:id/hours", simulationHandler.GetHours)
		api.POST("/simulate/compare", simulationHandler.CompareScenarios)

		api.GET("/roadmap", catalogHandler.GetRoadmap)
		api.GET("/sources", catalogHandler.ListSources)
		api.GET("/weather", catalogHandler.ListWeather)
		api.GET("/scenarios", catalogHandler.ListScenarios)

		api.GET("/rank", rankHandler.RankYears)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.NewError(models.CodeInvalidRequest, "Not found"))
	})
	return router
}
