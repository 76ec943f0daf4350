package analysis

import (
	"sort"

	"grid-balance/internal/model"
	"grid-balance/internal/simulation"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Adequacy is a run-level summary you can use for ranking scenarios.
// Energy values are GWh over the whole horizon.
type Adequacy struct {
	Year    float64               `json:"year"`
	Weather model.WeatherScenario `json:"weather"`

	Hours          int `json:"hours"`
	HoursWithUnmet int `json:"hours_with_unmet"`

	PeakDemandGW float64 `json:"peak_demand_gw"`
	MeanDemandGW float64 `json:"mean_demand_gw"`
	PeakUnmetGW  float64 `json:"peak_unmet_gw"`

	TotalDemandGWh    float64 `json:"total_demand_gwh"`
	TotalUnmetGWh     float64 `json:"total_unmet_gwh"`
	TotalCurtailedGWh float64 `json:"total_curtailed_gwh"`
	TotalHeadroomGWh  float64 `json:"total_headroom_gwh"`

	// Residual percentiles: positive is spare generation after storage, negative is shortfall.
	ResidualP05GW float64 `json:"residual_p05_gw"`
	ResidualP50GW float64 `json:"residual_p50_gw"`
	ResidualP95GW float64 `json:"residual_p95_gw"`

	// RenewableShare is renewable generation over all generation, 0..1.
	RenewableShare float64 `json:"renewable_share"`

	// StorageCycles is discharged energy over fleet energy capacity.
	StorageCycles float64 `json:"storage_cycles"`
}

// Summarize computes the adequacy summary of a completed run.
func Summarize(res *simulation.Result) Adequacy {
	a := Adequacy{}
	if res == nil {
		return a
	}
	a.Year = res.Scenario.Year
	a.Weather = res.Scenario.Weather
	a.Hours = len(res.Hours)
	a.PeakUnmetGW = res.PeakUnmetGW
	a.TotalDemandGWh = res.TotalDemandGWh
	a.TotalUnmetGWh = res.TotalUnmetGWh
	a.TotalCurtailedGWh = res.TotalCurtailedGWh
	a.TotalHeadroomGWh = res.TotalHeadroomGWh
	if len(res.Hours) == 0 {
		return a
	}

	demand := make([]float64, 0, len(res.Hours))
	residual := make([]float64, 0, len(res.Hours))
	renewable := 0.0
	for _, h := range res.Hours {
		demand = append(demand, h.DemandGW)
		residual = append(residual, h.ResidualGW)
		if h.UnmetGWh > 0 {
			a.HoursWithUnmet++
		}
		for _, s := range h.Sources {
			if s.Renewable {
				renewable += s.GeneratedGW
			}
		}
	}
	a.PeakDemandGW = floats.Max(demand)
	a.MeanDemandGW = stat.Mean(demand, nil)

	sort.Float64s(residual)
	a.ResidualP05GW = stat.Quantile(0.05, stat.LinInterp, residual, nil)
	a.ResidualP50GW = stat.Quantile(0.50, stat.LinInterp, residual, nil)
	a.ResidualP95GW = stat.Quantile(0.95, stat.LinInterp, residual, nil)

	if res.TotalGeneratedGWh > 0 {
		a.RenewableShare = renewable / res.TotalGeneratedGWh
	}
	if res.StorageEnergyCapacityGWh > 0 {
		a.StorageCycles = res.TotalDischargedGWh / res.StorageEnergyCapacityGWh
	}
	return a
}
