package demand

import (
	"testing"

	"grid-balance/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func components(baseload, heatPump, ev, solar float64) []model.DemandComponent {
	return []model.DemandComponent{
		{Name: model.Baseload, PeakGW: baseload},
		{Name: model.HeatPump, PeakGW: heatPump},
		{Name: model.EVCharging, PeakGW: ev},
		{Name: model.SolarBTM, PeakGW: solar},
	}
}

func TestClock(t *testing.T) {
	hod, day := Clock(0)
	assert.Equal(t, 0, hod)
	assert.Equal(t, 1, day)

	hod, day = Clock(49)
	assert.Equal(t, 1, hod)
	assert.Equal(t, 3, day)

	hod, day = Clock(95)
	assert.Equal(t, 23, hod)
	assert.Equal(t, 4, day)
}

func TestSynthesizeHorizon(t *testing.T) {
	hours, err := Synthesize(components(42, 8, 10, 10), model.Dunkelflaute)
	require.NoError(t, err)
	require.Len(t, hours, model.HorizonHours)

	for i, h := range hours {
		assert.Equal(t, i, h.Index)
		assert.GreaterOrEqual(t, h.NetGW, 0.0)
	}
	// Every day repeats the same shape.
	assert.Equal(t, hours[7].NetGW, hours[31].NetGW)
	assert.Equal(t, hours[18].NetGW, hours[90].NetGW)
}

func TestSynthesizeComponentsAdd(t *testing.T) {
	h := At(components(40, 2, 3, 5), model.Winter, 18)

	want := 40*0.98 + 2*1.00 + 3*1.00 - 5*0.00
	assert.InDelta(t, want, h.NetGW, 1e-9)
	assert.InDelta(t, 40*0.98, h.ComponentsGW[model.Baseload], 1e-9)
	assert.Equal(t, 18, h.HourOfDay)
}

func TestSynthesizeSubtractsRooftopSolar(t *testing.T) {
	h := At(components(40, 0, 0, 10), model.Summer, 12)
	assert.InDelta(t, 40*0.90-10*0.95, h.NetGW, 1e-9)
	assert.InDelta(t, 9.5, h.ComponentsGW[model.SolarBTM], 1e-9, "components are unsigned")
}

func TestSynthesizeFloorsAtZero(t *testing.T) {
	h := At(components(1, 0, 0, 100), model.Summer, 12)
	assert.Equal(t, 0.0, h.NetGW)
}

func TestSynthesizeSeasonFromWeather(t *testing.T) {
	winter, err := Synthesize(components(0, 10, 0, 0), model.Dunkelflaute)
	require.NoError(t, err)
	summer, err := Synthesize(components(0, 10, 0, 0), model.SummerWindy)
	require.NoError(t, err)

	assert.InDelta(t, 10.0, winter[17].NetGW, 1e-9)
	assert.InDelta(t, 3.0, summer[17].NetGW, 1e-9)
}

func TestSynthesizeDeterministic(t *testing.T) {
	c := components(44, 18, 20, 15)
	a, err := Synthesize(c, model.SummerWindy)
	require.NoError(t, err)
	b, err := Synthesize(c, model.SummerWindy)
	require.NoError(t, err)
	assert.Equal(t, NetSeries(a), NetSeries(b))
}

func TestSynthesizeUnknownWeather(t *testing.T) {
	_, err := Synthesize(components(1, 1, 1, 1), "Fog")
	assert.ErrorIs(t, err, model.ErrUnknownWeather)
}

func TestShapeAtOutOfRange(t *testing.T) {
	assert.Equal(t, 0.0, ShapeAt(model.Winter, model.Baseload, 24))
	assert.Equal(t, 0.0, ShapeAt(model.Winter, "kettles", 3))
}
