package model

import (
	"fmt"
	"math"
)

// WeatherScenario selects the four-day weather pattern of a run.
type WeatherScenario string

const (
	Dunkelflaute WeatherScenario = "Dunkelflaute"
	SummerWindy  WeatherScenario = "Summer Windy"
)

// Season selects which seasonal hourly demand shapes apply.
type Season string

const (
	Winter Season = "winter"
	Summer Season = "summer"
)

// WeatherProfile is everything a weather scenario implies for a run.
type WeatherProfile struct {
	Season Season `json:"season"`

	// LoadFactors replaces the milestone default for weather-driven sources.
	LoadFactors map[SourceName]float64 `json:"load_factors"`

	// Solar output follows a half sine wave starting at SolarStartHour and
	// lasting SolarHours.
	SolarStartHour int `json:"solar_start_hour"`
	SolarHours     int `json:"solar_hours"`
}

// Weather is the single lookup from scenario to season, load-factor overrides,
// interconnector import default and solar window.
var Weather = map[WeatherScenario]WeatherProfile{
	Dunkelflaute: {
		Season: Winter,
		LoadFactors: map[SourceName]float64{
			Solar:           0.10,
			WindOffshore:    0.10,
			WindOnshore:     0.05,
			Interconnectors: 0.10, // importing from the continent
		},
		SolarStartHour: 8,
		SolarHours:     8,
	},
	SummerWindy: {
		Season: Summer,
		LoadFactors: map[SourceName]float64{
			Solar:           0.80,
			WindOffshore:    0.85,
			WindOnshore:     0.75,
			Interconnectors: 0.00, // exporting, no imports available
		},
		SolarStartHour: 5,
		SolarHours:     16,
	},
}

// WeatherScenarios lists the scenarios in display order.
var WeatherScenarios = []WeatherScenario{Dunkelflaute, SummerWindy}

// LookupWeather returns the profile for w.
func LookupWeather(w WeatherScenario) (WeatherProfile, error) {
	p, ok := Weather[w]
	if !ok {
		return WeatherProfile{}, fmt.Errorf("%q: %w", w, ErrUnknownWeather)
	}
	return p, nil
}

// HourlyFactor scales a source's capacity x load factor for the given hour of day.
// Only solar is shaped; every other source is flat across the day.
func (p WeatherProfile) HourlyFactor(name SourceName, hourOfDay int) float64 {
	if name != Solar {
		return 1
	}
	if p.SolarHours <= 0 {
		return 0
	}
	x := float64(hourOfDay-p.SolarStartHour) * math.Pi / float64(p.SolarHours)
	return math.Max(0, math.Sin(x))
}
