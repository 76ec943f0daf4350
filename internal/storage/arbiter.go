// Package storage arbitrates the grid's storage fleet as a last resort after
// generation dispatch: surplus charges every unit, deficit discharges every unit.
package storage

import (
	"fmt"
	"math"

	"grid-balance/internal/model"
)

// Arbiter owns the state of charge of a fixed set of storage units across a run.
// It is not safe for concurrent use; each run gets its own Arbiter.
type Arbiter struct {
	units []model.StorageUnit
}

// NewArbiter validates and copies units. State of charge is taken from the units.
func NewArbiter(units []model.StorageUnit) (*Arbiter, error) {
	a := &Arbiter{units: make([]model.StorageUnit, len(units))}
	copy(a.units, units)
	for _, u := range a.units {
		if err := u.Validate(); err != nil {
			return nil, fmt.Errorf("storage arbiter: %w", err)
		}
	}
	return a, nil
}

// UnitStep is what one unit did during an hour.
type UnitStep struct {
	Name        model.StorageName `json:"name"`
	Mode        model.Mode        `json:"mode"`
	ChargeGW    float64           `json:"charge_gw"`
	DischargeGW float64           `json:"discharge_gw"`
	SoCStartGWh float64           `json:"soc_start_gwh"`
	SoCGWh      float64           `json:"soc_gwh"`
}

// Step is the fleet-level result of one hour.
type Step struct {
	Mode         model.Mode
	Units        []UnitStep
	ChargedGW    float64
	DischargedGW float64

	// UnabsorbedGW is surplus the fleet could not take.
	UnabsorbedGW float64

	// UnservedGW is deficit the fleet could not cover; it becomes unmet demand.
	UnservedGW float64
}

// NetFlowGW is discharge minus charge (positive = to grid).
func (s Step) NetFlowGW() float64 {
	return s.DischargedGW - s.ChargedGW
}

// Step advances every unit by one hour. The mode depends only on this hour's
// surplus and deficit, never on the previous mode.
func (a *Arbiter) Step(surplusGW, deficitGW float64) Step {
	switch {
	case surplusGW > 0:
		return a.charge(surplusGW)
	case deficitGW > 0:
		return a.discharge(deficitGW)
	default:
		return a.idle()
	}
}

// charge splits surplus by each unit's share of total charge capacity.
func (a *Arbiter) charge(surplusGW float64) Step {
	total := 0.0
	for _, u := range a.units {
		total += u.ChargeCapacityGW()
	}
	st := Step{Mode: model.ModeCharging, Units: make([]UnitStep, 0, len(a.units))}
	for i := range a.units {
		u := &a.units[i]
		share := 0.0
		if total > 0 {
			share = u.ChargeCapacityGW() / total
		}
		start := u.SoCGWh
		p := u.Charge(surplusGW * share)
		st.ChargedGW += p
		st.Units = append(st.Units, UnitStep{
			Name:        u.Name,
			Mode:        model.ModeCharging,
			ChargeGW:    p,
			SoCStartGWh: start,
			SoCGWh:      u.SoCGWh,
		})
	}
	st.UnabsorbedGW = math.Max(0, surplusGW-st.ChargedGW)
	return st
}

// discharge splits deficit by each unit's share of total power capacity.
// A unit short on energy does not hand its share to the other.
func (a *Arbiter) discharge(deficitGW float64) Step {
	total := 0.0
	for _, u := range a.units {
		total += u.PowerCapacityGW
	}
	st := Step{Mode: model.ModeDischarging, Units: make([]UnitStep, 0, len(a.units))}
	for i := range a.units {
		u := &a.units[i]
		share := 0.0
		if total > 0 {
			share = u.PowerCapacityGW / total
		}
		start := u.SoCGWh
		p := u.Discharge(deficitGW * share)
		st.DischargedGW += p
		st.Units = append(st.Units, UnitStep{
			Name:        u.Name,
			Mode:        model.ModeDischarging,
			DischargeGW: p,
			SoCStartGWh: start,
			SoCGWh:      u.SoCGWh,
		})
	}
	st.UnservedGW = math.Max(0, deficitGW-st.DischargedGW)
	return st
}

func (a *Arbiter) idle() Step {
	st := Step{Mode: model.ModeIdle, Units: make([]UnitStep, 0, len(a.units))}
	for _, u := range a.units {
		st.Units = append(st.Units, UnitStep{
			Name:        u.Name,
			Mode:        model.ModeIdle,
			SoCStartGWh: u.SoCGWh,
			SoCGWh:      u.SoCGWh,
		})
	}
	return st
}

// SoC returns the current state of charge per unit.
func (a *Arbiter) SoC() map[model.StorageName]float64 {
	out := make(map[model.StorageName]float64, len(a.units))
	for _, u := range a.units {
		out[u.Name] = u.SoCGWh
	}
	return out
}

// EnergyCapacityGWh is the fleet's combined energy capacity.
func (a *Arbiter) EnergyCapacityGWh() float64 {
	total := 0.0
	for _, u := range a.units {
		total += u.EnergyCapacityGWh
	}
	return total
}
