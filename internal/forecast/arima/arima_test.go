package arima

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linear(n int, start, slope float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = start + slope*float64(i)
	}
	return values
}

func TestFit_Validation(t *testing.T) {
	tests := []struct {
		name    string
		order   Order
		values  []float64
		wantErr error
	}{
		{
			name:    "negative order",
			order:   Order{P: -1, D: 1, Q: 0},
			values:  linear(30, 0, 1),
			wantErr: ErrInvalidOrder,
		},
		{
			name:    "negative moving average order",
			order:   Order{P: 1, D: 0, Q: -2},
			values:  linear(30, 0, 1),
			wantErr: ErrInvalidOrder,
		},
		{
			name:    "series shorter than p+d+q+2",
			order:   Order{P: 2, D: 1, Q: 0},
			values:  linear(4, 0, 1),
			wantErr: ErrInsufficientData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() {
				err = New(tt.order).Fit(tt.values)
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFit_SingleYearOfMonthlyData(t *testing.T) {
	values := []float64{1200, 1350, 1280, 1420, 1500, 1460, 1580, 1620, 1590, 1700, 1760, 1810}

	model := New(Order{P: 2, D: 1, Q: 0})
	require.NoError(t, model.Fit(values))

	forecast, err := model.Forecast(12)
	require.NoError(t, err)
	require.Len(t, forecast, 12)
	for _, v := range forecast {
		assert.False(t, math.IsNaN(v))
	}
	assert.True(t, stationary(model.ARCoeffs), "ar=%v", model.ARCoeffs)
}

// gaussian is a seeded normal generator so fitted values are reproducible.
type gaussian struct {
	state uint64
}

func (g *gaussian) uniform() float64 {
	g.state = g.state*6364136223846793005 + 1442695040888963407
	return (float64(g.state>>11) + 0.5) / (1 << 53)
}

func (g *gaussian) next() float64 {
	u1, u2 := g.uniform(), g.uniform()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// ar2 simulates x[t] = 0.5*x[t-1] - 0.25*x[t-2] + e[t] with unit innovations.
func ar2(n int) []float64 {
	g := &gaussian{state: 42}
	x := []float64{0, 0}
	for i := 0; i < n; i++ {
		x = append(x, 0.5*x[len(x)-1]-0.25*x[len(x)-2]+g.next())
	}
	return x[2:]
}

func TestFit_AR2CoefficientsDoNotDependOnScale(t *testing.T) {
	base := ar2(240)

	var reference []float64
	for _, scale := range []float64{0.001, 1, 1000} {
		values := make([]float64, len(base))
		for i, v := range base {
			values[i] = scale * (50 + v)
		}

		model := New(Order{P: 2, D: 0, Q: 0})
		require.NoError(t, model.Fit(values))

		require.Len(t, model.ARCoeffs, 2)
		assert.InDelta(t, 0.5, model.ARCoeffs[0], 0.1, "scale %v", scale)
		assert.InDelta(t, -0.25, model.ARCoeffs[1], 0.1, "scale %v", scale)
		assert.InDelta(t, 50*scale, model.Intercept, 0.5*scale, "scale %v", scale)

		if reference == nil {
			reference = model.ARCoeffs
			continue
		}
		assert.InDeltaSlice(t, reference, model.ARCoeffs, 1e-6, "scale %v", scale)
	}
}

func TestFit_IntegratedRevenueSeries(t *testing.T) {
	shocks := ar2(240)
	values := make([]float64, 0, len(shocks)+1)
	values = append(values, 1000)
	for _, v := range shocks {
		values = append(values, values[len(values)-1]+1000*(2+v))
	}

	model := New(Order{P: 2, D: 1, Q: 0})
	require.NoError(t, model.Fit(values))

	assert.InDelta(t, 0.5, model.ARCoeffs[0], 0.1)
	assert.InDelta(t, -0.25, model.ARCoeffs[1], 0.1)
	assert.InDelta(t, 2000, model.Intercept, 200)

	forecast, err := model.Forecast(12)
	require.NoError(t, err)
	last := values[len(values)-1]
	for h, v := range forecast {
		want := last + model.Intercept*float64(h+1)
		assert.InDelta(t, want, v, 5000, "step %d", h+1)
	}
}

func TestFit_MovingAverageStaysInvertibleAtRevenueScale(t *testing.T) {
	g := &gaussian{state: 7}
	values := make([]float64, 200)
	prev := 0.0
	for i := range values {
		shock := 1000 * g.next()
		values[i] = 80000 + shock + 0.4*prev
		prev = shock
	}

	model := New(Order{P: 1, D: 0, Q: 1})
	require.NoError(t, model.Fit(values))

	assert.True(t, stationary(model.ARCoeffs), "ar=%v", model.ARCoeffs)
	assert.True(t, invertible(model.MACoeffs), "ma=%v", model.MACoeffs)
	assert.Less(t, math.Abs(model.ARCoeffs[0]), 0.99)
	assert.Less(t, math.Abs(model.MACoeffs[0]), 0.99)

	forecast, err := model.Forecast(12)
	require.NoError(t, err)
	for _, v := range forecast {
		assert.InDelta(t, 80000, v, 3000)
	}
}

func TestStationary(t *testing.T) {
	assert.True(t, stationary(nil))
	assert.True(t, stationary([]float64{0.5, -0.25}))
	assert.True(t, stationary([]float64{-0.9, -0.4}))
	assert.False(t, stationary([]float64{0.99, 0.99}))
	assert.False(t, stationary([]float64{-0.99, 0.99}))
	assert.False(t, stationary([]float64{1.2}))
	assert.True(t, invertible([]float64{0.4}))
	assert.False(t, invertible([]float64{-1.5}))
}

func TestForecast_NotFitted(t *testing.T) {
	_, err := New(Order{P: 1}).Forecast(3)
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestForecast_RandomWalkWithDriftContinuesTrend(t *testing.T) {
	values := linear(24, 100, 5)
	model := New(Order{P: 0, D: 1, Q: 0})
	require.NoError(t, model.Fit(values))

	forecast, err := model.Forecast(4)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{220, 225, 230, 235}, forecast, 1e-9)
}

func TestForecast_SecondOrderDifferencingIntegratesTwice(t *testing.T) {
	n := 20
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(i * i)
	}

	model := New(Order{P: 0, D: 2, Q: 0})
	require.NoError(t, model.Fit(values))

	forecast, err := model.Forecast(3)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{400, 441, 484}, forecast, 1e-9)
}

func TestFit_AR1CoefficientIsBounded(t *testing.T) {
	n := 120
	values := make([]float64, n)
	values[0] = 100
	for i := 1; i < n; i++ {
		innovation := float64(i%7-3) / 3
		values[i] = 0.7*(values[i-1]-100) + 100 + innovation
	}

	model := New(Order{P: 1, D: 0, Q: 0})
	require.NoError(t, model.Fit(values))

	require.Len(t, model.ARCoeffs, 1)
	assert.Greater(t, model.ARCoeffs[0], -0.99)
	assert.Less(t, model.ARCoeffs[0], 0.99)
	assert.Len(t, model.Residuals(), n)

	forecast, err := model.Forecast(12)
	require.NoError(t, err)
	assert.Len(t, forecast, 12)
}

func TestFromState_ForecastsLikeTheFittedModel(t *testing.T) {
	values := make([]float64, 36)
	for i := range values {
		values[i] = 1000 + 25*float64(i) + float64((i*37)%11)*8
	}

	model := New(Order{P: 2, D: 1, Q: 1})
	require.NoError(t, model.Fit(values))

	want, err := model.Forecast(12)
	require.NoError(t, err)

	state, err := model.State()
	require.NoError(t, err)

	restored, err := FromState(state)
	require.NoError(t, err)
	got, err := restored.Forecast(12)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestFromState_RejectsInconsistentState(t *testing.T) {
	_, err := FromState(&State{Order: Order{P: 2}, ARCoeffs: []float64{0.5}})
	assert.Error(t, err)
}
