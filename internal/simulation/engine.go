package simulation

import (
	"fmt"

	"grid-balance/internal/demand"
	"grid-balance/internal/dispatch"
	"grid-balance/internal/model"
	"grid-balance/internal/storage"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run simulates the full horizon for one scenario.
//
// Load factors and year are clamped; invalid configurations (negative capacity,
// efficiency outside (0,1]) fail before the first hour. Once started, every hour is
// simulated and shortfalls are recorded as curtailment or unmet demand.
//
// Run keeps no state between calls, so independent scenarios may run concurrently.
func (e *Engine) Run(params model.ScenarioParameters) (*Result, error) {
	p := params.Normalize()
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	profile, err := model.LookupWeather(p.Weather)
	if err != nil {
		return nil, err
	}
	hours, err := demand.Synthesize(p.Demand, p.Weather)
	if err != nil {
		return nil, err
	}
	arb, err := storage.NewArbiter(p.Storage)
	if err != nil {
		return nil, err
	}

	agg := NewAggregator(p)
	for _, d := range hours {
		units := dispatch.Availability(p.Sources, profile, d.HourOfDay)
		agg.Add(Step(d, units, arb))
	}
	return agg.Result(arb), nil
}

// Step simulates one hour: merit-order dispatch, then storage as last resort,
// then curtailment and unmet-demand accounting.
func Step(d demand.Hour, units []dispatch.Unit, arb *storage.Arbiter) HourResult {
	out := dispatch.Dispatch(d.NetGW, units)
	st := arb.Step(out.SurplusGW, out.DeficitGW)
	out.AttributeCharge(st.ChargedGW)

	return HourResult{
		Hour:         d.Index,
		HourOfDay:    d.HourOfDay,
		Day:          d.Day,
		DemandGW:     d.NetGW,
		ComponentsGW: d.ComponentsGW,

		Sources: out.Allocations,
		Storage: st.Units,

		StorageMode:      st.Mode,
		ChargeGW:         st.ChargedGW,
		DischargeGW:      st.DischargedGW,
		StorageNetFlowGW: st.NetFlowGW(),

		ExcessGW:   out.TotalAvailableGW - d.NetGW,
		ResidualGW: out.TotalAvailableGW - d.NetGW + st.NetFlowGW(),

		CurtailedGWh: out.CurtailedGW(),
		HeadroomGWh:  out.HeadroomGW(),
		UnmetGWh:     st.UnservedGW,
	}
}
