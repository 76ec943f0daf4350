package storage

import (
	"testing"

	"grid-balance/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func battery(powerGW, energyGWh, eff, socGWh float64) model.StorageUnit {
	return model.StorageUnit{
		Name:              model.Batteries,
		PowerCapacityGW:   powerGW,
		EnergyCapacityGWh: energyGWh,
		Efficiency:        eff,
		ChargeRatio:       1,
		SoCGWh:            socGWh,
	}
}

func TestArbiterChargesFromSurplus(t *testing.T) {
	arb, err := NewArbiter([]model.StorageUnit{battery(10, 10, 0.8, 0)})
	require.NoError(t, err)

	st := arb.Step(15, 0)
	assert.Equal(t, model.ModeCharging, st.Mode)
	assert.InDelta(t, 10.0, st.ChargedGW, 1e-9)
	assert.InDelta(t, 5.0, st.UnabsorbedGW, 1e-9)
	assert.InDelta(t, -10.0, st.NetFlowGW(), 1e-9)
	assert.InDelta(t, 8.0, arb.SoC()[model.Batteries], 1e-9)

	require.Len(t, st.Units, 1)
	assert.Equal(t, 0.0, st.Units[0].SoCStartGWh)
	assert.InDelta(t, 8.0, st.Units[0].SoCGWh, 1e-9)
}

func TestArbiterDischargeLimitedBySoC(t *testing.T) {
	arb, err := NewArbiter([]model.StorageUnit{battery(10, 10, 0.8, 2)})
	require.NoError(t, err)

	st := arb.Step(0, 8)
	assert.Equal(t, model.ModeDischarging, st.Mode)
	assert.InDelta(t, 2.0, st.DischargedGW, 1e-9)
	assert.InDelta(t, 6.0, st.UnservedGW, 1e-9)
	assert.Equal(t, 0.0, arb.SoC()[model.Batteries])
}

func TestArbiterIdle(t *testing.T) {
	arb, err := NewArbiter([]model.StorageUnit{battery(10, 10, 0.8, 4)})
	require.NoError(t, err)

	st := arb.Step(0, 0)
	assert.Equal(t, model.ModeIdle, st.Mode)
	assert.Equal(t, 0.0, st.NetFlowGW())
	assert.Equal(t, 4.0, arb.SoC()[model.Batteries])
}

func TestArbiterModeDependsOnlyOnCurrentHour(t *testing.T) {
	arb, err := NewArbiter([]model.StorageUnit{battery(10, 100, 0.9, 50)})
	require.NoError(t, err)

	assert.Equal(t, model.ModeCharging, arb.Step(3, 0).Mode)
	assert.Equal(t, model.ModeDischarging, arb.Step(0, 3).Mode)
	assert.Equal(t, model.ModeCharging, arb.Step(1, 0).Mode)
}

func TestArbiterSplitsByCapacity(t *testing.T) {
	units := []model.StorageUnit{
		{Name: model.PumpedHydro, PowerCapacityGW: 3, EnergyCapacityGWh: 70, Efficiency: 0.75, ChargeRatio: 0.83, SoCGWh: 35},
		{Name: model.Batteries, PowerCapacityGW: 7, EnergyCapacityGWh: 30, Efficiency: 0.85, ChargeRatio: 1, SoCGWh: 15},
	}
	arb, err := NewArbiter(units)
	require.NoError(t, err)

	dis := arb.Step(0, 5)
	require.Len(t, dis.Units, 2)
	assert.InDelta(t, 1.5, dis.Units[0].DischargeGW, 1e-9)
	assert.InDelta(t, 3.5, dis.Units[1].DischargeGW, 1e-9)

	ch := arb.Step(2*(3*0.83+7), 0)
	assert.InDelta(t, 3*0.83, ch.Units[0].ChargeGW, 1e-9, "capped at charge capacity")
	assert.InDelta(t, 7.0, ch.Units[1].ChargeGW, 1e-9)

	small := arb.Step(3*0.83+7, 0)
	assert.InDelta(t, 3*0.83, small.Units[0].ChargeGW, 1e-9)
	assert.InDelta(t, 7.0, small.Units[1].ChargeGW, 1e-9)
}

func TestArbiterShortUnitDoesNotShiftShare(t *testing.T) {
	units := []model.StorageUnit{
		{Name: model.PumpedHydro, PowerCapacityGW: 5, EnergyCapacityGWh: 50, Efficiency: 0.75, ChargeRatio: 1, SoCGWh: 1},
		{Name: model.Batteries, PowerCapacityGW: 5, EnergyCapacityGWh: 50, Efficiency: 0.85, ChargeRatio: 1, SoCGWh: 50},
	}
	arb, err := NewArbiter(units)
	require.NoError(t, err)

	st := arb.Step(0, 8)
	assert.InDelta(t, 1.0, st.Units[0].DischargeGW, 1e-9)
	assert.InDelta(t, 4.0, st.Units[1].DischargeGW, 1e-9)
	assert.InDelta(t, 3.0, st.UnservedGW, 1e-9)
}

func TestArbiterSoCStaysInBounds(t *testing.T) {
	arb, err := NewArbiter([]model.StorageUnit{battery(4, 10, 0.85, 5)})
	require.NoError(t, err)

	flows := []struct{ surplus, deficit float64 }{
		{20, 0}, {20, 0}, {20, 0}, {0, 20}, {0, 20}, {0, 20}, {0, 20}, {3, 0}, {0, 1},
	}
	for _, f := range flows {
		st := arb.Step(f.surplus, f.deficit)
		for _, u := range st.Units {
			assert.GreaterOrEqual(t, u.SoCGWh, 0.0)
			assert.LessOrEqual(t, u.SoCGWh, 10.0+1e-9)
			assert.LessOrEqual(t, u.ChargeGW, 4.0+1e-9)
			assert.LessOrEqual(t, u.DischargeGW, 4.0+1e-9)
		}
	}
}

func TestArbiterWithoutUnits(t *testing.T) {
	arb, err := NewArbiter(nil)
	require.NoError(t, err)

	st := arb.Step(0, 7)
	assert.Equal(t, 7.0, st.UnservedGW)
	assert.Equal(t, 0.0, arb.EnergyCapacityGWh())

	st = arb.Step(4, 0)
	assert.Equal(t, 4.0, st.UnabsorbedGW)
}

func TestNewArbiterRejectsInvalidUnit(t *testing.T) {
	_, err := NewArbiter([]model.StorageUnit{battery(10, 10, 1.2, 0)})
	assert.ErrorIs(t, err, model.ErrInvalidEfficiency)

	_, err = NewArbiter([]model.StorageUnit{battery(-1, 10, 0.9, 0)})
	assert.ErrorIs(t, err, model.ErrNegativeCapacity)
}
