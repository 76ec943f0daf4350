package demand

import (
	"math"

	"grid-balance/internal/model"
)

// Hour is the synthesized demand for one simulated hour.
type Hour struct {
	Index     int
	HourOfDay int
	Day       int // 1-based

	// ComponentsGW holds each component's unsigned contribution.
	ComponentsGW map[model.ComponentName]float64

	// NetGW = baseload + heat pumps + EV charging - behind-meter solar, floored at 0.
	// Excess rooftop solar is self-consumed and discarded, never exported.
	NetGW float64
}

// Clock maps a run hour to hour-of-day and 1-based day.
func Clock(h int) (hourOfDay, day int) {
	return h % 24, h/24 + 1
}

// At synthesizes demand for run hour h in the given season.
func At(components []model.DemandComponent, season model.Season, h int) Hour {
	hod, day := Clock(h)
	out := Hour{
		Index:        h,
		HourOfDay:    hod,
		Day:          day,
		ComponentsGW: make(map[model.ComponentName]float64, len(components)),
	}
	net := 0.0
	for _, c := range components {
		v := c.PeakGW * ShapeAt(season, c.Name, hod)
		out.ComponentsGW[c.Name] += v
		net += c.Sign() * v
	}
	out.NetGW = math.Max(net, 0)
	return out
}

// Synthesize expands the demand components into the full run horizon.
// The season comes from the weather lookup table. The result is a pure function of
// its inputs.
func Synthesize(components []model.DemandComponent, weather model.WeatherScenario) ([]Hour, error) {
	profile, err := model.LookupWeather(weather)
	if err != nil {
		return nil, err
	}
	out := make([]Hour, model.HorizonHours)
	for h := range out {
		out[h] = At(components, profile.Season, h)
	}
	return out, nil
}

// NetSeries extracts the net demand values.
func NetSeries(hours []Hour) []float64 {
	out := make([]float64, len(hours))
	for i, h := range hours {
		out[i] = h.NetGW
	}
	return out
}
