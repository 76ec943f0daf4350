package demand

import "grid-balance/internal/model"

// Shape is a 24-hour profile as a fraction of component peak, indexed by hour of day.
type Shape [24]float64

// Profiles holds the normalized hourly shapes per season and component
// (National Grid FES 2023, UK government projections).
var Profiles = map[model.Season]map[model.ComponentName]Shape{
	model.Winter: {
		// morning and evening peaks
		model.Baseload: {
			0.69, 0.67, 0.66, 0.65, 0.68, 0.80, 0.99, 1.00, 0.98, 0.95,
			0.93, 0.90, 0.88, 0.87, 0.88, 0.92, 0.97, 1.00, 0.98, 0.94,
			0.88, 0.78, 0.73, 0.70,
		},
		// heating: morning ramp, strong 17-19h peak
		model.HeatPump: {
			0.60, 0.55, 0.52, 0.50, 0.55, 0.70, 0.85, 0.90, 0.80, 0.70,
			0.65, 0.60, 0.55, 0.55, 0.60, 0.75, 0.95, 1.00, 1.00, 0.95,
			0.85, 0.75, 0.68, 0.63,
		},
		// charging when people get home
		model.EVCharging: {
			0.15, 0.12, 0.10, 0.08, 0.08, 0.10, 0.20, 0.35, 0.25, 0.15,
			0.12, 0.10, 0.10, 0.12, 0.15, 0.25, 0.50, 0.75, 1.00, 0.95,
			0.80, 0.60, 0.40, 0.25,
		},
		// 8h of weak, cloudy daylight
		model.SolarBTM: {
			0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.00, 0.05, 0.15,
			0.25, 0.30, 0.30, 0.28, 0.22, 0.12, 0.03, 0.00, 0.00, 0.00,
			0.00, 0.00, 0.00, 0.00,
		},
	},
	model.Summer: {
		model.Baseload: {
			0.63, 0.61, 0.60, 0.59, 0.61, 0.68, 0.78, 0.85, 0.88, 0.90,
			0.91, 0.92, 0.90, 0.88, 0.87, 0.88, 0.92, 0.95, 0.93, 0.88,
			0.82, 0.75, 0.70, 0.66,
		},
		// cooling only, high COP
		model.HeatPump: {
			0.10, 0.08, 0.08, 0.08, 0.08, 0.10, 0.12, 0.15, 0.18, 0.22,
			0.25, 0.28, 0.30, 0.32, 0.33, 0.33, 0.32, 0.30, 0.28, 0.25,
			0.20, 0.15, 0.12, 0.10,
		},
		model.EVCharging: {
			0.12, 0.10, 0.08, 0.07, 0.07, 0.08, 0.15, 0.28, 0.22, 0.13,
			0.10, 0.09, 0.09, 0.10, 0.12, 0.20, 0.45, 0.70, 0.95, 0.90,
			0.75, 0.55, 0.35, 0.20,
		},
		// 16h daylight with a strong midday peak
		model.SolarBTM: {
			0.00, 0.00, 0.00, 0.00, 0.00, 0.05, 0.20, 0.40, 0.60, 0.75,
			0.85, 0.92, 0.95, 0.92, 0.85, 0.75, 0.60, 0.40, 0.20, 0.08,
			0.02, 0.00, 0.00, 0.00,
		},
	},
}

// ShapeAt returns the fraction of peak for a component at hourOfDay in season.
// Unknown seasons or components contribute nothing.
func ShapeAt(season model.Season, c model.ComponentName, hourOfDay int) float64 {
	if hourOfDay < 0 || hourOfDay >= 24 {
		return 0
	}
	return Profiles[season][c][hourOfDay]
}
