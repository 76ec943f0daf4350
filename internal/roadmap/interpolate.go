package roadmap

import (
	"fmt"
	"math"

	"grid-balance/internal/model"
)

// Interpolate builds scenario parameters for year from the built-in roadmap.
func Interpolate(year float64, weather model.WeatherScenario) (model.ScenarioParameters, error) {
	return Default().Interpolate(year, weather)
}

// Interpolate maps a fractional year to capacities, load factors, storage sizes and
// demand peaks. Every numeric field is interpolated on its own between the two
// milestones bracketing year:
//
//	value(y) = v0 + (v1 - v0) * (y - y0) / (y1 - y0)
//
// The year is clamped to [2025, 2035] and to the table's span; only NaN is an error.
// Storage units start full.
func (t *Table) Interpolate(year float64, weather model.WeatherScenario) (model.ScenarioParameters, error) {
	if math.IsNaN(year) {
		return model.ScenarioParameters{}, fmt.Errorf("year: %w", model.ErrNotANumber)
	}
	profile, err := model.LookupWeather(weather)
	if err != nil {
		return model.ScenarioParameters{}, err
	}
	if err := t.Validate(); err != nil {
		return model.ScenarioParameters{}, err
	}

	y := t.clampYear(model.ClampYear(year))
	lo, hi, frac := t.bracket(y)

	p := model.ScenarioParameters{
		Year:    y,
		Weather: weather,
		Sources: make([]model.GenerationSource, 0, len(model.MeritOrder)),
		Storage: make([]model.StorageUnit, 0, len(t.StorageSplit)),
		Demand:  make([]model.DemandComponent, 0, len(model.Components)),
	}

	lfs := LoadFactors(t.LoadFactors, profile)
	for i, name := range model.MeritOrder {
		p.Sources = append(p.Sources, model.GenerationSource{
			Name:       name,
			MeritRank:  i + 1,
			CapacityGW: lerp(lo.CapacityGW[name], hi.CapacityGW[name], frac),
			LoadFactor: lfs[name],
			Renewable:  model.IsRenewable(name),
		})
	}

	powerGW := lerp(lo.StoragePowerGW, hi.StoragePowerGW, frac)
	energyGWh := lerp(lo.StorageEnergyGWh, hi.StorageEnergyGWh, frac)
	for _, s := range t.StorageSplit {
		energy := energyGWh * s.EnergyShare
		p.Storage = append(p.Storage, model.StorageUnit{
			Name:              s.Name,
			PowerCapacityGW:   powerGW * s.PowerShare,
			EnergyCapacityGWh: energy,
			Efficiency:        s.Efficiency,
			ChargeRatio:       s.ChargeRatio,
			SoCGWh:            energy,
		})
	}

	for _, c := range model.Components {
		p.Demand = append(p.Demand, model.DemandComponent{
			Name:   c,
			PeakGW: lerp(lo.DemandPeakGW[c], hi.DemandPeakGW[c], frac),
		})
	}
	return p, nil
}

// LoadFactors returns the defaults with the weather profile's overrides applied.
func LoadFactors(defaults map[model.SourceName]float64, profile model.WeatherProfile) map[model.SourceName]float64 {
	out := make(map[model.SourceName]float64, len(model.MeritOrder))
	for _, name := range model.MeritOrder {
		lf, ok := defaults[name]
		if !ok {
			lf = 1
		}
		if w, ok := profile.LoadFactors[name]; ok {
			lf = w
		}
		out[name] = model.ClampLoadFactor(lf)
	}
	return out
}

func (t *Table) clampYear(y float64) float64 {
	first := t.Milestones[0].Year
	last := t.Milestones[len(t.Milestones)-1].Year
	if y < first {
		return first
	}
	if y > last {
		return last
	}
	return y
}

// bracket returns the milestones around y and the fraction of the way from lo to hi.
// A year equal to a milestone returns that milestone on both sides, so milestone
// values come back exactly.
func (t *Table) bracket(y float64) (lo, hi Milestone, frac float64) {
	ms := t.Milestones
	for i, m := range ms {
		if y == m.Year {
			return m, m, 0
		}
		if i+1 < len(ms) && y > m.Year && y < ms[i+1].Year {
			return m, ms[i+1], (y - m.Year) / (ms[i+1].Year - m.Year)
		}
	}
	last := ms[len(ms)-1]
	return last, last, 0
}

func lerp(v0, v1, frac float64) float64 {
	if frac == 0 {
		return v0
	}
	return v0 + (v1-v0)*frac
}
