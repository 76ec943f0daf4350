package model

import (
	"fmt"
	"math"
)

// StorageName identifies one of the two storage technologies.
type StorageName string

const (
	PumpedHydro StorageName = "Pumped_Hydro"
	Batteries   StorageName = "Batteries"
)

// StorageNames lists the storage units in arbitration order.
var StorageNames = []StorageName{PumpedHydro, Batteries}

// ParseStorageName returns the StorageName matching s exactly.
func ParseStorageName(s string) (StorageName, error) {
	for _, n := range StorageNames {
		if string(n) == s {
			return n, nil
		}
	}
	return "", fmt.Errorf("unknown storage unit %q", s)
}

// StorageUnit defines the physical parameters and state of one storage technology.
// Units:
// - PowerCapacityGW: GW (discharge limit)
// - EnergyCapacityGWh: GWh
// - Efficiency: round-trip, (0, 1], applied in full on the charge leg
// - ChargeRatio: (0, 1], charge limit as a fraction of PowerCapacityGW
// - SoCGWh: stored energy, [0, EnergyCapacityGWh]
type StorageUnit struct {
	Name              StorageName `json:"name" yaml:"name"`
	PowerCapacityGW   float64     `json:"power_capacity_gw" yaml:"power_capacity_gw"`
	EnergyCapacityGWh float64     `json:"energy_capacity_gwh" yaml:"energy_capacity_gwh"`
	Efficiency        float64     `json:"efficiency" yaml:"efficiency"`
	ChargeRatio       float64     `json:"charge_ratio" yaml:"charge_ratio"`
	SoCGWh            float64     `json:"soc_gwh" yaml:"soc_gwh"`
}

func (u StorageUnit) Validate() error {
	for _, v := range []float64{u.PowerCapacityGW, u.EnergyCapacityGWh, u.ChargeRatio, u.SoCGWh} {
		if math.IsNaN(v) {
			return fmt.Errorf("%s: %w", u.Name, ErrNotANumber)
		}
	}
	if u.PowerCapacityGW < 0 {
		return fmt.Errorf("%s power_capacity_gw=%g: %w", u.Name, u.PowerCapacityGW, ErrNegativeCapacity)
	}
	if u.EnergyCapacityGWh < 0 {
		return fmt.Errorf("%s energy_capacity_gwh=%g: %w", u.Name, u.EnergyCapacityGWh, ErrNegativeCapacity)
	}
	if u.Efficiency <= 0 || u.Efficiency > 1 || math.IsNaN(u.Efficiency) {
		return fmt.Errorf("%s efficiency=%g: %w", u.Name, u.Efficiency, ErrInvalidEfficiency)
	}
	if u.ChargeRatio <= 0 || u.ChargeRatio > 1 {
		return fmt.Errorf("%s charge_ratio=%g outside (0, 1]: %w", u.Name, u.ChargeRatio, ErrInvalidStorage)
	}
	if u.SoCGWh < 0 || u.SoCGWh > u.EnergyCapacityGWh {
		return fmt.Errorf("%s soc_gwh=%g outside [0, %g]: %w", u.Name, u.SoCGWh, u.EnergyCapacityGWh, ErrInvalidStorage)
	}
	return nil
}

// ChargeCapacityGW is the maximum charging power.
func (u StorageUnit) ChargeCapacityGW() float64 {
	return u.PowerCapacityGW * u.ChargeRatio
}

// MaxChargeGW is the grid-side power the unit can absorb this hour.
// Headroom is divided by efficiency so that SoC lands exactly on capacity.
func (u StorageUnit) MaxChargeGW() float64 {
	storable := u.EnergyCapacityGWh - u.SoCGWh
	if storable <= 0 {
		return 0
	}
	return math.Max(0, math.Min(u.ChargeCapacityGW(), storable/u.Efficiency))
}

// MaxDischargeGW is the grid-side power the unit can deliver this hour.
func (u StorageUnit) MaxDischargeGW() float64 {
	return math.Max(0, math.Min(u.PowerCapacityGW, u.SoCGWh))
}

// Charge absorbs up to requestedGW for one hour and returns the realized power.
// SoC increases by realized x efficiency.
func (u *StorageUnit) Charge(requestedGW float64) float64 {
	p := math.Min(math.Max(0, requestedGW), u.MaxChargeGW())
	u.SoCGWh = clampRange(u.SoCGWh+p*u.Efficiency, 0, u.EnergyCapacityGWh)
	return p
}

// Discharge delivers up to requestedGW for one hour and returns the realized power.
// Stored energy is released 1:1; losses were taken when charging.
func (u *StorageUnit) Discharge(requestedGW float64) float64 {
	p := math.Min(math.Max(0, requestedGW), u.MaxDischargeGW())
	u.SoCGWh = clampRange(u.SoCGWh-p, 0, u.EnergyCapacityGWh)
	return p
}

func clampRange(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
