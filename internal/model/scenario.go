package model

import (
	"errors"
	"fmt"
	"math"
)

const (
	MinYear = 2025.0
	MaxYear = 2035.0

	// HorizonHours is the length of one simulation run.
	HorizonHours = 96
)

// ScenarioParameters is the immutable input of one simulation run.
// Build it with roadmap.Interpolate (or config.Build), apply overrides, then Validate.
type ScenarioParameters struct {
	Year    float64            `json:"year" yaml:"year"`
	Weather WeatherScenario    `json:"weather" yaml:"weather"`
	Sources []GenerationSource `json:"sources" yaml:"sources"`
	Storage []StorageUnit      `json:"storage" yaml:"storage"`
	Demand  []DemandComponent  `json:"demand" yaml:"demand"`
}

// ClampYear forces y into [MinYear, MaxYear]. NaN is passed through; Validate rejects it.
func ClampYear(y float64) float64 {
	if y < MinYear {
		return MinYear
	}
	if y > MaxYear {
		return MaxYear
	}
	return y
}

// Validate rejects configurations the engine must never evaluate:
// negative capacities, bad efficiencies, duplicate merit ranks and unknown weather.
// Out-of-range load factors and years are not errors; see Normalize.
func (p ScenarioParameters) Validate() error {
	if math.IsNaN(p.Year) {
		return fmt.Errorf("year: %w", ErrNotANumber)
	}
	if _, err := LookupWeather(p.Weather); err != nil {
		return err
	}
	if err := validateSources(p.Sources); err != nil {
		return err
	}
	seen := make(map[StorageName]bool, len(p.Storage))
	for _, u := range p.Storage {
		if seen[u.Name] {
			return fmt.Errorf("%s listed twice: %w", u.Name, ErrInvalidStorage)
		}
		seen[u.Name] = true
		if err := u.Validate(); err != nil {
			return err
		}
	}
	for _, c := range p.Demand {
		if math.IsNaN(c.PeakGW) {
			return fmt.Errorf("demand %s peak_gw: %w", c.Name, ErrNotANumber)
		}
		if c.PeakGW < 0 {
			return fmt.Errorf("demand %s peak_gw=%g: %w", c.Name, c.PeakGW, ErrNegativeCapacity)
		}
	}
	return nil
}

// Normalize returns a deep copy with the year and every load factor clamped.
func (p ScenarioParameters) Normalize() ScenarioParameters {
	out := p.Clone()
	out.Year = ClampYear(out.Year)
	for i := range out.Sources {
		out.Sources[i].LoadFactor = ClampLoadFactor(out.Sources[i].LoadFactor)
	}
	return out
}

// Clone returns a deep copy so a run never shares slices with its caller.
func (p ScenarioParameters) Clone() ScenarioParameters {
	out := p
	out.Sources = append([]GenerationSource(nil), p.Sources...)
	out.Storage = append([]StorageUnit(nil), p.Storage...)
	out.Demand = append([]DemandComponent(nil), p.Demand...)
	return out
}

// Source returns a pointer into p.Sources for name, or nil.
func (p *ScenarioParameters) Source(name SourceName) *GenerationSource {
	for i := range p.Sources {
		if p.Sources[i].Name == name {
			return &p.Sources[i]
		}
	}
	return nil
}

// StorageUnit returns a pointer into p.Storage for name, or nil.
func (p *ScenarioParameters) StorageUnit(name StorageName) *StorageUnit {
	for i := range p.Storage {
		if p.Storage[i].Name == name {
			return &p.Storage[i]
		}
	}
	return nil
}

// Component returns a pointer into p.Demand for name, or nil.
func (p *ScenarioParameters) Component(name ComponentName) *DemandComponent {
	for i := range p.Demand {
		if p.Demand[i].Name == name {
			return &p.Demand[i]
		}
	}
	return nil
}

// IsConfigError reports whether err came from scenario validation.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrNegativeCapacity) ||
		errors.Is(err, ErrInvalidEfficiency) ||
		errors.Is(err, ErrInvalidMeritOrder) ||
		errors.Is(err, ErrInvalidStorage) ||
		errors.Is(err, ErrUnknownWeather) ||
		errors.Is(err, ErrNotANumber)
}
