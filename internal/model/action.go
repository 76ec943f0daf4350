package model

// Mode is the operating mode of a storage unit for one simulated hour.
// Keep these values stable; they are intended for CSV output.
type Mode string

const (
	ModeCharging    Mode = "CHARGING"
	ModeIdle        Mode = "IDLE"
	ModeDischarging Mode = "DISCHARGING"
)

// ModeFromNetFlowGW maps a net storage flow to a mode.
// Convention: positive GW = discharge to grid, negative GW = charge from grid.
func ModeFromNetFlowGW(netGW float64) Mode {
	switch {
	case netGW < 0:
		return ModeCharging
	case netGW > 0:
		return ModeDischarging
	default:
		return ModeIdle
	}
}
