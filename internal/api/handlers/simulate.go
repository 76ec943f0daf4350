package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"grid-balance/internal/analysis"
	"grid-balance/internal/api/models"
	"grid-balance/internal/config"
	"grid-balance/internal/data"
	"grid-balance/internal/metrics"
	"grid-balance/internal/model"
	"grid-balance/internal/simulation"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// maxParallelRuns bounds concurrent runs per compare/rank request.
const maxParallelRuns = 4

// SimulationHandler handles simulation-related requests
type SimulationHandler struct {
	engine      *simulation.Engine
	cache       *data.ResultCache
	metrics     *metrics.Metrics
	scenarioDir string
}

// NewSimulationHandler creates a new simulation handler.
// Presets are read from scenarioDir.
func NewSimulationHandler(cache *data.ResultCache, m *metrics.Metrics, scenarioDir string) *SimulationHandler {
	return &SimulationHandler{
		engine:      simulation.New(),
		cache:       cache,
		metrics:     m,
		scenarioDir: scenarioDir,
	}
}

// RunSimulation handles POST /api/v1/simulate
func (h *SimulationHandler) RunSimulation(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidRequest, err.Error()))
		return
	}

	cfg := req.Scenario
	if req.Preset != "" {
		base, err := data.LoadScenario(h.scenarioDir, req.Preset)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, os.ErrNotExist) {
				status = http.StatusNotFound
			}
			c.JSON(status, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    models.CodeInvalidRequest,
					Message: err.Error(),
					Details: map[string]interface{}{"preset": req.Preset},
				},
			})
			return
		}
		cfg = config.Merge(*base, req.Scenario)
	}

	params, err := cfg.Build(nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidScenario, err.Error()))
		return
	}

	res, err := runScenario(h.engine, h.metrics, params)
	if err != nil {
		if model.IsConfigError(err) {
			c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidScenario, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, models.NewError(models.CodeSimulationError, err.Error()))
		return
	}

	id := h.cache.Put(res)
	response := models.SimulateResponse{
		ID:      id,
		Status:  "completed",
		Summary: buildSummary(res),
	}
	if req.Options.IncludeHours {
		response.Hours = res.Hours
	}
	c.JSON(http.StatusOK, response)
}

// GetHours handles GET /api/v1/simulate/:id/hours
func (h *SimulationHandler) GetHours(c *gin.Context) {
	id := c.Param("id")
	res, ok := h.cache.Get(id)
	if !ok {
		h.metrics.CacheMiss()
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    models.CodeResultNotFound,
				Message: "No cached result for this id. Results expire; re-run the simulation.",
				Details: map[string]interface{}{"id": id},
			},
		})
		return
	}
	h.metrics.CacheHit()
	c.JSON(http.StatusOK, models.HoursResponse{ID: id, Hours: res.Hours})
}

// CompareScenarios handles POST /api/v1/simulate/compare.
// Each variation is merged onto the base and run concurrently. A variation that fails
// reports its own error; the others still complete.
func (h *SimulationHandler) CompareScenarios(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidRequest, err.Error()))
		return
	}

	comparison := make([]models.ComparisonResult, len(req.Variations))
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.SetLimit(maxParallelRuns)
	for i, variation := range req.Variations {
		i, variation := i, variation
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out := models.ComparisonResult{Name: variation.Name}

			merged := config.Merge(req.Base, variation.Scenario)
			params, err := merged.Build(nil)
			if err != nil {
				out.Error = &models.ErrorDetail{Code: models.CodeInvalidScenario, Message: err.Error()}
				comparison[i] = out
				return nil
			}
			res, err := runScenario(h.engine, h.metrics, params)
			if err != nil {
				out.Error = &models.ErrorDetail{Code: models.CodeSimulationError, Message: err.Error()}
				comparison[i] = out
				return nil
			}
			out.ID = h.cache.Put(res)
			out.Summary = buildSummary(res)
			comparison[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, context.Canceled) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, models.NewError(models.CodeInternalError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, models.CompareResponse{Comparison: comparison})
}

// Helper functions

func runScenario(engine *simulation.Engine, m *metrics.Metrics, params model.ScenarioParameters) (*simulation.Result, error) {
	start := time.Now()
	res, err := engine.Run(params)
	elapsed := time.Since(start)

	unmet := 0.0
	if res != nil {
		unmet = res.TotalUnmetGWh
	}
	m.Run(string(params.Weather), elapsed, unmet, err)
	if err != nil {
		log.Printf("SimulationHandler: run %g/%s failed: %v", params.Year, params.Weather, err)
		return nil, err
	}
	log.Printf("SimulationHandler: run %g/%s done in %s (unmet %.1f GWh, curtailed %.1f GWh)",
		params.Year, params.Weather, elapsed.Round(time.Microsecond), res.TotalUnmetGWh, res.TotalCurtailedGWh)
	return res, nil
}

func buildSummary(res *simulation.Result) models.SimulationSummary {
	return models.SimulationSummary{
		Adequacy:             analysis.Summarize(res),
		TotalGeneratedGWh:    res.TotalGeneratedGWh,
		TotalChargedGWh:      res.TotalChargedGWh,
		TotalDischargedGWh:   res.TotalDischargedGWh,
		GeneratedBySourceGWh: res.GeneratedBySourceGWh,
		FinalSoCGWh:          res.FinalSoC,
	}
}
