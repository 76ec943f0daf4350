package model

import (
	"fmt"
	"math"
	"sort"
)

// SourceName identifies a generation source. The values double as CSV/JSON column keys.
type SourceName string

const (
	Nuclear         SourceName = "Nuclear"
	Solar           SourceName = "Solar"
	HydroRunOfRiver SourceName = "Hydro_RunOfRiver"
	WindOffshore    SourceName = "Wind_Offshore"
	WindOnshore     SourceName = "Wind_Onshore"
	Biomass         SourceName = "Biomass"
	Interconnectors SourceName = "Interconnectors"
	GasCCGT         SourceName = "Gas_CCGT"
	GasOCGT         SourceName = "Gas_OCGT"
	GasOil          SourceName = "Gas_Oil"
)

// MeritOrder lists the sources in default dispatch priority (rank 1 first).
var MeritOrder = []SourceName{
	Nuclear,
	Solar,
	HydroRunOfRiver,
	WindOffshore,
	WindOnshore,
	Biomass,
	Interconnectors,
	GasCCGT,
	GasOCGT,
	GasOil,
}

var renewableSources = map[SourceName]bool{
	Solar:           true,
	HydroRunOfRiver: true,
	WindOffshore:    true,
	WindOnshore:     true,
}

// IsRenewable reports whether unused output of the source counts as curtailment.
func IsRenewable(name SourceName) bool {
	return renewableSources[name]
}

// ParseSourceName returns the SourceName matching s exactly.
func ParseSourceName(s string) (SourceName, error) {
	for _, n := range MeritOrder {
		if string(n) == s {
			return n, nil
		}
	}
	return "", fmt.Errorf("unknown generation source %q", s)
}

// GenerationSource is one dispatchable block of capacity.
// Units:
// - CapacityGW: installed GW
// - LoadFactor: 0..1 (clamped, see ClampLoadFactor)
type GenerationSource struct {
	Name       SourceName `json:"name" yaml:"name"`
	MeritRank  int        `json:"merit_rank" yaml:"merit_rank"`
	CapacityGW float64    `json:"capacity_gw" yaml:"capacity_gw"`
	LoadFactor float64    `json:"load_factor" yaml:"load_factor"`
	Renewable  bool       `json:"renewable" yaml:"renewable"`
}

// AvailableGW is capacity x load factor, before any hourly shaping.
func (s GenerationSource) AvailableGW() float64 {
	return s.CapacityGW * ClampLoadFactor(s.LoadFactor)
}

// ClampLoadFactor forces lf into [0, 1]. Out-of-range load factors are never an error;
// NaN is passed through and rejected by Validate.
func ClampLoadFactor(lf float64) float64 {
	if lf < 0 {
		return 0
	}
	if lf > 1 {
		return 1
	}
	return lf
}

// SortByMerit returns a copy of sources ordered by ascending MeritRank.
func SortByMerit(sources []GenerationSource) []GenerationSource {
	out := make([]GenerationSource, len(sources))
	copy(out, sources)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MeritRank < out[j].MeritRank
	})
	return out
}

func validateSources(sources []GenerationSource) error {
	seen := make(map[int]SourceName, len(sources))
	for _, s := range sources {
		if s.MeritRank < 1 {
			return fmt.Errorf("%s: %w", s.Name, ErrInvalidMeritOrder)
		}
		if other, ok := seen[s.MeritRank]; ok {
			return fmt.Errorf("%s and %s share rank %d: %w", other, s.Name, s.MeritRank, ErrInvalidMeritOrder)
		}
		seen[s.MeritRank] = s.Name
		if math.IsNaN(s.CapacityGW) || math.IsNaN(s.LoadFactor) {
			return fmt.Errorf("%s capacity_gw=%g load_factor=%g: %w", s.Name, s.CapacityGW, s.LoadFactor, ErrNotANumber)
		}
		if s.CapacityGW < 0 {
			return fmt.Errorf("%s capacity_gw=%g: %w", s.Name, s.CapacityGW, ErrNegativeCapacity)
		}
	}
	return nil
}
