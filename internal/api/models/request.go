package models

import "grid-balance/internal/config"

// SimulateRequest represents the request body for running a simulation
type SimulateRequest struct {
	// Scenario uses the same shape as the YAML config files.
	Scenario config.Config   `json:"scenario"`
	Preset   string          `json:"preset,omitempty"` // examples/scenarios/<preset>.yaml, Scenario overrides it
	Options  SimulateOptions `json:"options,omitempty"`
}

// SimulateOptions contains optional simulation parameters
type SimulateOptions struct {
	IncludeHours bool `json:"include_hours,omitempty"` // default: false
}

// CompareRequest represents a request to compare scenario variations
type CompareRequest struct {
	Base       config.Config `json:"base"`
	Variations []Variation   `json:"variations" binding:"required,min=1,dive"`
}

// Variation defines a variation to test
type Variation struct {
	Name     string        `json:"name" binding:"required"`
	Scenario config.Config `json:"scenario"`
}

// RoadmapRequest selects an interpolated roadmap point
type RoadmapRequest struct {
	Year    float64 `form:"year" binding:"required"`
	Weather string  `form:"weather,omitempty"` // default: Dunkelflaute
}

// RankRequest represents a request to rank roadmap years
type RankRequest struct {
	Weather string `form:"weather,omitempty"`
	Years   string `form:"years,omitempty"` // comma-separated, default: 2025,2030,2035
}
