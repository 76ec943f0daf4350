package simulation

import (
	"grid-balance/internal/dispatch"
	"grid-balance/internal/model"
	"grid-balance/internal/storage"
)

// HourResult is one row of per-hour output.
// This is the primary artifact for "what happened" in a run. Power values are GW
// held for one hour, so they double as GWh.
type HourResult struct {
	Hour      int `json:"hour"`
	HourOfDay int `json:"hour_of_day"`
	Day       int `json:"day"`

	DemandGW     float64                         `json:"demand_gw"`
	ComponentsGW map[model.ComponentName]float64 `json:"components_gw"`

	Sources []dispatch.Allocation `json:"sources"`
	Storage []storage.UnitStep    `json:"storage"`

	StorageMode      model.Mode `json:"storage_mode"`
	ChargeGW         float64    `json:"charge_gw"`
	DischargeGW      float64    `json:"discharge_gw"`
	StorageNetFlowGW float64    `json:"storage_net_flow_gw"` // positive = discharge

	// ExcessGW is total available generation minus demand, before storage.
	ExcessGW float64 `json:"excess_gw"`
	// ResidualGW is what is left after storage: positive is thrown away, negative is unmet.
	ResidualGW float64 `json:"residual_gw"`

	CurtailedGWh float64 `json:"curtailed_gwh"`
	HeadroomGWh  float64 `json:"headroom_gwh"`
	UnmetGWh     float64 `json:"unmet_gwh"`

	CumCurtailedGWh float64 `json:"cum_curtailed_gwh"`
	CumUnmetGWh     float64 `json:"cum_unmet_gwh"`
}

// GeneratedGW sums what the sources actually produced this hour.
func (h HourResult) GeneratedGW() float64 {
	total := 0.0
	for _, s := range h.Sources {
		total += s.GeneratedGW
	}
	return total
}

// SoC returns a unit's end-of-hour state of charge.
func (h HourResult) SoC(name model.StorageName) float64 {
	for _, u := range h.Storage {
		if u.Name == name {
			return u.SoCGWh
		}
	}
	return 0
}

// Result is a complete run. It is only handed out once every hour has been simulated.
type Result struct {
	Scenario model.ScenarioParameters `json:"scenario"`
	Hours    []HourResult             `json:"hours"`

	TotalDemandGWh     float64 `json:"total_demand_gwh"`
	TotalGeneratedGWh  float64 `json:"total_generated_gwh"`
	TotalChargedGWh    float64 `json:"total_charged_gwh"`
	TotalDischargedGWh float64 `json:"total_discharged_gwh"`
	TotalCurtailedGWh  float64 `json:"total_curtailed_gwh"`
	TotalHeadroomGWh   float64 `json:"total_headroom_gwh"`
	TotalUnmetGWh      float64 `json:"total_unmet_gwh"`
	PeakUnmetGW        float64 `json:"peak_unmet_gw"`

	GeneratedBySourceGWh map[model.SourceName]float64 `json:"generated_by_source_gwh"`

	StorageEnergyCapacityGWh float64                       `json:"storage_energy_capacity_gwh"`
	FinalSoC                 map[model.StorageName]float64 `json:"final_soc_gwh"`
}

// Aggregator accumulates hour results and running totals. It has no failure modes.
type Aggregator struct {
	res Result
}

// NewAggregator starts an empty accumulation for a run of params.
func NewAggregator(params model.ScenarioParameters) *Aggregator {
	return &Aggregator{res: Result{
		Scenario:             params,
		Hours:                make([]HourResult, 0, model.HorizonHours),
		GeneratedBySourceGWh: make(map[model.SourceName]float64, len(params.Sources)),
	}}
}

// Add records h, filling in its cumulative fields, and returns the stored row.
func (a *Aggregator) Add(h HourResult) HourResult {
	r := &a.res
	r.TotalDemandGWh += h.DemandGW
	r.TotalChargedGWh += h.ChargeGW
	r.TotalDischargedGWh += h.DischargeGW
	r.TotalCurtailedGWh += h.CurtailedGWh
	r.TotalHeadroomGWh += h.HeadroomGWh
	r.TotalUnmetGWh += h.UnmetGWh
	if h.UnmetGWh > r.PeakUnmetGW {
		r.PeakUnmetGW = h.UnmetGWh
	}
	for _, s := range h.Sources {
		r.GeneratedBySourceGWh[s.Name] += s.GeneratedGW
		r.TotalGeneratedGWh += s.GeneratedGW
	}

	h.CumCurtailedGWh = r.TotalCurtailedGWh
	h.CumUnmetGWh = r.TotalUnmetGWh
	r.Hours = append(r.Hours, h)
	return h
}

// TotalCurtailedGWh is the running curtailment total.
func (a *Aggregator) TotalCurtailedGWh() float64 { return a.res.TotalCurtailedGWh }

// TotalUnmetGWh is the running unmet-demand total.
func (a *Aggregator) TotalUnmetGWh() float64 { return a.res.TotalUnmetGWh }

// Result hands off the accumulated run.
func (a *Aggregator) Result(arb *storage.Arbiter) *Result {
	out := a.res
	if arb != nil {
		out.FinalSoC = arb.SoC()
		out.StorageEnergyCapacityGWh = arb.EnergyCapacityGWh()
	}
	return &out
}
