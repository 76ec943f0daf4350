package handlers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"grid-balance/internal/analysis"
	"grid-balance/internal/api/models"
	"grid-balance/internal/metrics"
	"grid-balance/internal/model"
	"grid-balance/internal/roadmap"
	"grid-balance/internal/simulation"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

var defaultRankYears = []float64{2025, 2030, 2035}

// maxRankYears bounds the work a single rank request may trigger.
const maxRankYears = 21

// RankHandler handles ranking-related requests
type RankHandler struct {
	engine  *simulation.Engine
	metrics *metrics.Metrics
}

// NewRankHandler creates a new rank handler
func NewRankHandler(m *metrics.Metrics) *RankHandler {
	return &RankHandler{engine: simulation.New(), metrics: m}
}

// RankYears handles GET /api/v1/rank
func (h *RankHandler) RankYears(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidRequest, err.Error()))
		return
	}

	weather := model.WeatherScenario(req.Weather)
	if weather == "" {
		weather = model.Dunkelflaute
	}
	if _, err := model.LookupWeather(weather); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidRequest, err.Error()))
		return
	}

	years, err := parseYears(req.Years)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidRequest, err.Error()))
		return
	}

	runs := make([]*simulation.Result, len(years))
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.SetLimit(maxParallelRuns)
	for i, year := range years {
		i, year := i, year
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			params, err := roadmap.Interpolate(year, weather)
			if err != nil {
				return err
			}
			res, err := runScenario(h.engine, h.metrics, params)
			if err != nil {
				return err
			}
			runs[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.JSON(http.StatusInternalServerError, models.NewError(models.CodeSimulationError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, models.RankResponse{
		Weather:  weather,
		Rankings: analysis.RankRuns(runs),
	})
}

func parseYears(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return defaultRankYears, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) > maxRankYears {
		return nil, fmt.Errorf("at most %d years per request", maxRankYears)
	}
	years := make([]float64, 0, len(parts))
	for _, p := range parts {
		y, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(y) {
			return nil, fmt.Errorf("invalid year %q", p)
		}
		years = append(years, y)
	}
	return years, nil
}
