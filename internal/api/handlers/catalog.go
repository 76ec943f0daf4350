package handlers

import (
	"log"
	"math"
	"net/http"
	"path/filepath"

	"grid-balance/internal/api/models"
	"grid-balance/internal/data"
	"grid-balance/internal/model"
	"grid-balance/internal/roadmap"

	"github.com/gin-gonic/gin"
)

var weatherDescriptions = map[model.WeatherScenario]string{
	model.Dunkelflaute: "Cold, dark and still winter spell: little wind or sun, imports scarce.",
	model.SummerWindy:  "Bright, windy summer days: strong renewables, no imports available.",
}

// CatalogHandler serves the static reference data: sources, weather, presets, roadmap.
type CatalogHandler struct {
	scenarioDir string
}

// GetScenarioDir returns the preset directory path (for debugging)
func (h *CatalogHandler) GetScenarioDir() string {
	return h.scenarioDir
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(scenarioDir string) *CatalogHandler {
	if abs, err := filepath.Abs(scenarioDir); err == nil {
		scenarioDir = abs
	}
	log.Printf("CatalogHandler: Using scenario directory: %s", scenarioDir)
	return &CatalogHandler{scenarioDir: scenarioDir}
}

// ListSources handles GET /api/v1/sources
func (h *CatalogHandler) ListSources(c *gin.Context) {
	sources := make([]models.SourceInfo, 0, len(model.MeritOrder))
	for i, name := range model.MeritOrder {
		sources = append(sources, models.SourceInfo{
			Name:      name,
			MeritRank: i + 1,
			Renewable: model.IsRenewable(name),
		})
	}
	c.JSON(http.StatusOK, gin.H{"sources": sources})
}

// ListWeather handles GET /api/v1/weather
func (h *CatalogHandler) ListWeather(c *gin.Context) {
	out := make([]models.WeatherInfo, 0, len(model.WeatherScenarios))
	for _, w := range model.WeatherScenarios {
		out = append(out, models.WeatherInfo{
			Name:        w,
			Description: weatherDescriptions[w],
			Profile:     model.Weather[w],
		})
	}
	c.JSON(http.StatusOK, gin.H{"weather": out})
}

// ListScenarios handles GET /api/v1/scenarios
func (h *CatalogHandler) ListScenarios(c *gin.Context) {
	list, err := data.ListScenarios(h.scenarioDir)
	if err != nil {
		log.Printf("CatalogHandler: %v", err)
		c.JSON(http.StatusInternalServerError, models.NewError(models.CodeInternalError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"scenarios": list})
}

// GetRoadmap handles GET /api/v1/roadmap
func (h *CatalogHandler) GetRoadmap(c *gin.Context) {
	var req models.RoadmapRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidRequest, err.Error()))
		return
	}
	if math.IsNaN(req.Year) {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidRequest, "year must be a number"))
		return
	}
	weather := model.WeatherScenario(req.Weather)
	if weather == "" {
		weather = model.Dunkelflaute
	}

	params, err := roadmap.Interpolate(req.Year, weather)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidScenario, err.Error()))
		return
	}
	c.JSON(http.StatusOK, params)
}
