package dispatch

import (
	"math"
	"sort"

	"grid-balance/internal/model"
)

// Unit is one source's available output for the hour being dispatched.
type Unit struct {
	Source      model.GenerationSource
	AvailableGW float64
}

// Allocation is what one source did in an hour.
type Allocation struct {
	Name        model.SourceName `json:"name"`
	MeritRank   int              `json:"merit_rank"`
	Renewable   bool             `json:"renewable"`
	AvailableGW float64          `json:"available_gw"`
	DeliveredGW float64          `json:"delivered_gw"` // served to demand
	GeneratedGW float64          `json:"generated_gw"` // delivered + sent to storage
}

// SpareGW is available output that was not generated.
func (a Allocation) SpareGW() float64 {
	return math.Max(0, a.AvailableGW-a.GeneratedGW)
}

// Outcome is the result of dispatching one hour.
type Outcome struct {
	DemandGW         float64
	Allocations      []Allocation // ascending merit rank
	TotalAvailableGW float64

	// DeficitGW is demand left after every source is exhausted.
	DeficitGW float64

	// SurplusGW is total available output beyond demand; the storage charging candidate.
	SurplusGW float64
}

// Availability computes each source's output ceiling for hourOfDay:
// capacity x clamped load factor x the weather profile's hourly factor.
func Availability(sources []model.GenerationSource, profile model.WeatherProfile, hourOfDay int) []Unit {
	units := make([]Unit, 0, len(sources))
	for _, s := range sources {
		units = append(units, Unit{
			Source:      s,
			AvailableGW: math.Max(0, s.AvailableGW()*profile.HourlyFactor(s.Name, hourOfDay)),
		})
	}
	return units
}

// Flat is Availability without hourly shaping.
func Flat(sources []model.GenerationSource) []Unit {
	units := make([]Unit, 0, len(sources))
	for _, s := range sources {
		units = append(units, Unit{Source: s, AvailableGW: math.Max(0, s.AvailableGW())})
	}
	return units
}

// Dispatch allocates demand across units in ascending merit rank, each visited once.
// A unit delivers min(available, remaining demand). Dispatch never exceeds demand;
// capacity beyond demand is reported as SurplusGW instead.
func Dispatch(demandGW float64, units []Unit) Outcome {
	ordered := make([]Unit, len(units))
	copy(ordered, units)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Source.MeritRank < ordered[j].Source.MeritRank
	})

	out := Outcome{
		DemandGW:    demandGW,
		Allocations: make([]Allocation, 0, len(ordered)),
	}
	remaining := math.Max(0, demandGW)
	for _, u := range ordered {
		allocate := math.Min(u.AvailableGW, remaining)
		remaining -= allocate
		out.TotalAvailableGW += u.AvailableGW
		out.Allocations = append(out.Allocations, Allocation{
			Name:        u.Source.Name,
			MeritRank:   u.Source.MeritRank,
			Renewable:   u.Source.Renewable || model.IsRenewable(u.Source.Name),
			AvailableGW: u.AvailableGW,
			DeliveredGW: allocate,
			GeneratedGW: allocate,
		})
	}

	if out.TotalAvailableGW >= demandGW {
		out.SurplusGW = out.TotalAvailableGW - math.Max(0, demandGW)
	} else {
		out.DeficitGW = remaining
	}
	return out
}

// AttributeCharge assigns chargeGW absorbed by storage to spare capacity, continuing
// down the merit order. It returns any part that found no spare capacity.
func (o *Outcome) AttributeCharge(chargeGW float64) float64 {
	rem := math.Max(0, chargeGW)
	for i := range o.Allocations {
		if rem <= 0 {
			break
		}
		a := &o.Allocations[i]
		add := math.Min(rem, a.SpareGW())
		a.GeneratedGW += add
		rem -= add
	}
	return rem
}

// DeliveredGW is the total served to demand.
func (o Outcome) DeliveredGW() float64 {
	total := 0.0
	for _, a := range o.Allocations {
		total += a.DeliveredGW
	}
	return total
}

// GeneratedGW is the total actually produced.
func (o Outcome) GeneratedGW() float64 {
	total := 0.0
	for _, a := range o.Allocations {
		total += a.GeneratedGW
	}
	return total
}

// CurtailedGW is renewable output that was available but not produced.
func (o Outcome) CurtailedGW() float64 {
	total := 0.0
	for _, a := range o.Allocations {
		if a.Renewable {
			total += a.SpareGW()
		}
	}
	return total
}

// HeadroomGW is non-renewable capacity left unused. It is tracked but never curtailment.
func (o Outcome) HeadroomGW() float64 {
	total := 0.0
	for _, a := range o.Allocations {
		if !a.Renewable {
			total += a.SpareGW()
		}
	}
	return total
}
