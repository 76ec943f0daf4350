package models

import (
	"grid-balance/internal/analysis"
	"grid-balance/internal/model"
	"grid-balance/internal/simulation"
)

// SimulateResponse represents the response from a simulation run
type SimulateResponse struct {
	ID      string                  `json:"id,omitempty"`
	Status  string                  `json:"status"`
	Summary SimulationSummary       `json:"summary"`
	Hours   []simulation.HourResult `json:"hours,omitempty"`
}

// SimulationSummary contains aggregated run results
type SimulationSummary struct {
	analysis.Adequacy

	TotalGeneratedGWh    float64                       `json:"total_generated_gwh"`
	TotalChargedGWh      float64                       `json:"total_charged_gwh"`
	TotalDischargedGWh   float64                       `json:"total_discharged_gwh"`
	GeneratedBySourceGWh map[model.SourceName]float64  `json:"generated_by_source_gwh"`
	FinalSoCGWh          map[model.StorageName]float64 `json:"final_soc_gwh"`
}

// HoursResponse is the hourly detail of a cached run
type HoursResponse struct {
	ID    string                  `json:"id"`
	Hours []simulation.HourResult `json:"hours"`
}

// CompareResponse represents the response from a comparison
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	Name    string            `json:"name"`
	ID      string            `json:"id,omitempty"`
	Summary SimulationSummary `json:"summary"`
	Error   *ErrorDetail      `json:"error,omitempty"`
}

// RankResponse represents the response from ranking runs
type RankResponse struct {
	Weather  model.WeatherScenario `json:"weather"`
	Rankings []analysis.RankedRun  `json:"rankings"`
}

// SourceInfo describes one generation source
type SourceInfo struct {
	Name      model.SourceName `json:"name"`
	MeritRank int              `json:"merit_rank"`
	Renewable bool             `json:"renewable"`
}

// WeatherInfo describes one weather scenario
type WeatherInfo struct {
	Name        model.WeatherScenario `json:"name"`
	Description string                `json:"description"`
	Profile     model.WeatherProfile  `json:"profile"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeInvalidScenario = "INVALID_SCENARIO"
	CodeResultNotFound  = "RESULT_NOT_FOUND"
	CodeSimulationError = "SIMULATION_ERROR"
	CodeInternalError   = "INTERNAL_ERROR"
)

// NewError builds an error body.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}
