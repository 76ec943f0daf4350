package model

import "fmt"

// ComponentName identifies one demand component.
type ComponentName string

const (
	Baseload   ComponentName = "baseload"
	HeatPump   ComponentName = "heat_pump"
	EVCharging ComponentName = "ev_charging"
	SolarBTM   ComponentName = "solar_btm"
)

// Components lists the demand components in aggregation order.
var Components = []ComponentName{Baseload, HeatPump, EVCharging, SolarBTM}

// ParseComponentName returns the ComponentName matching s exactly.
func ParseComponentName(s string) (ComponentName, error) {
	for _, c := range Components {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown demand component %q", s)
}

// DemandComponent is a peak-scaled slice of net demand.
// Behind-the-meter solar reduces net demand; every other component adds to it.
type DemandComponent struct {
	Name   ComponentName `json:"name" yaml:"name"`
	PeakGW float64       `json:"peak_gw" yaml:"peak_gw"`
}

// Sign is +1 for consuming components and -1 for behind-the-meter generation.
func (c DemandComponent) Sign() float64 {
	if c.Name == SolarBTM {
		return -1
	}
	return 1
}
