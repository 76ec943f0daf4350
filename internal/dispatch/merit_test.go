package dispatch

import (
	"testing"

	"grid-balance/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unit(name model.SourceName, rank int, availableGW float64) Unit {
	return Unit{
		Source: model.GenerationSource{
			Name:       name,
			MeritRank:  rank,
			CapacityGW: availableGW,
			LoadFactor: 1,
			Renewable:  model.IsRenewable(name),
		},
		AvailableGW: availableGW,
	}
}

func TestDispatchShortfall(t *testing.T) {
	out := Dispatch(50, []Unit{unit(model.Nuclear, 1, 10)})

	require.Len(t, out.Allocations, 1)
	assert.Equal(t, 10.0, out.Allocations[0].DeliveredGW)
	assert.Equal(t, 40.0, out.DeficitGW)
	assert.Equal(t, 0.0, out.SurplusGW)
	assert.Equal(t, 0.0, out.CurtailedGW())
}

func TestDispatchMeritOrder(t *testing.T) {
	units := []Unit{
		unit(model.GasCCGT, 8, 30),
		unit(model.WindOffshore, 4, 20),
		unit(model.Nuclear, 1, 6),
	}
	out := Dispatch(30, units)

	require.Len(t, out.Allocations, 3)
	assert.Equal(t, model.Nuclear, out.Allocations[0].Name)
	assert.Equal(t, 6.0, out.Allocations[0].DeliveredGW)
	assert.Equal(t, model.WindOffshore, out.Allocations[1].Name)
	assert.Equal(t, 20.0, out.Allocations[1].DeliveredGW)
	assert.Equal(t, model.GasCCGT, out.Allocations[2].Name)
	assert.Equal(t, 4.0, out.Allocations[2].DeliveredGW)

	assert.Equal(t, 0.0, out.DeficitGW)
	assert.Equal(t, 26.0, out.SurplusGW)
	assert.Equal(t, 30.0, out.DeliveredGW())
	assert.Equal(t, 0.0, out.CurtailedGW())
	assert.Equal(t, 26.0, out.HeadroomGW(), "unused gas is headroom, not curtailment")
}

func TestDispatchNeverExceedsDemand(t *testing.T) {
	out := Dispatch(5, []Unit{unit(model.Solar, 2, 20), unit(model.Nuclear, 1, 3)})
	assert.Equal(t, 5.0, out.DeliveredGW())
	assert.Equal(t, 18.0, out.SurplusGW)
	assert.Equal(t, 18.0, out.CurtailedGW())
}

func TestDispatchZeroDemand(t *testing.T) {
	out := Dispatch(0, []Unit{unit(model.Solar, 2, 4)})
	assert.Equal(t, 0.0, out.DeliveredGW())
	assert.Equal(t, 4.0, out.SurplusGW)
}

func TestAttributeChargeFollowsMerit(t *testing.T) {
	out := Dispatch(5, []Unit{
		unit(model.Nuclear, 1, 5),
		unit(model.Solar, 2, 8),
		unit(model.GasCCGT, 8, 10),
	})
	left := out.AttributeCharge(12)
	assert.Equal(t, 0.0, left)

	assert.Equal(t, 5.0, out.Allocations[0].GeneratedGW)
	assert.Equal(t, 8.0, out.Allocations[1].GeneratedGW)
	assert.Equal(t, 4.0, out.Allocations[2].GeneratedGW)
	assert.Equal(t, 0.0, out.Allocations[2].DeliveredGW)

	assert.Equal(t, 0.0, out.CurtailedGW())
	assert.Equal(t, 6.0, out.HeadroomGW())
	assert.Equal(t, 17.0, out.GeneratedGW())
}

func TestAttributeChargeOverflow(t *testing.T) {
	out := Dispatch(0, []Unit{unit(model.Solar, 2, 3)})
	assert.Equal(t, 2.0, out.AttributeCharge(5))
	assert.Equal(t, 3.0, out.GeneratedGW())
}

func TestAvailabilityShapesSolar(t *testing.T) {
	profile, err := model.LookupWeather(model.Dunkelflaute)
	require.NoError(t, err)
	sources := []model.GenerationSource{
		{Name: model.Nuclear, MeritRank: 1, CapacityGW: 10, LoadFactor: 0.9},
		{Name: model.Solar, MeritRank: 2, CapacityGW: 40, LoadFactor: 0.1, Renewable: true},
	}

	night := Availability(sources, profile, 2)
	assert.InDelta(t, 9.0, night[0].AvailableGW, 1e-9)
	assert.Equal(t, 0.0, night[1].AvailableGW)

	noon := Availability(sources, profile, 12)
	assert.InDelta(t, 4.0, noon[1].AvailableGW, 1e-9)

	flat := Flat(sources)
	assert.InDelta(t, 4.0, flat[1].AvailableGW, 1e-9)
}

func TestAvailabilityClampsLoadFactor(t *testing.T) {
	sources := []model.GenerationSource{{Name: model.Biomass, MeritRank: 6, CapacityGW: 4, LoadFactor: 1.5}}
	assert.Equal(t, 4.0, Flat(sources)[0].AvailableGW)

	sources[0].LoadFactor = -0.2
	assert.Equal(t, 0.0, Flat(sources)[0].AvailableGW)
}
