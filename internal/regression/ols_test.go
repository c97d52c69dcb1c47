package regression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var premiumSamples = []Sample{
	{Age: 22, Claims: 0, Risk: 0.10},
	{Age: 35, Claims: 1, Risk: 0.30},
	{Age: 47, Claims: 2, Risk: 0.60},
	{Age: 55, Claims: 3, Risk: 0.85},
	{Age: 65, Claims: 0, Risk: 0.50},
}

func TestFit_PremiumTrainingSet(t *testing.T) {
	m, err := Fit(premiumSamples)
	require.NoError(t, err)

	// Centred sums: Saa=1132.8 Scc=6.8 Sac=25.2 Say=14.87 Scy=1.23, det=7068
	assert.InDelta(t, 70.12/7068, m.AgeWeight, 1e-9)
	assert.InDelta(t, 1018.62/7068, m.ClaimsWeight, 1e-9)
	assert.InDelta(t, 0.47-4363.72/7068, m.Intercept, 1e-9)
}

func TestFit_ResidualsSumToZero(t *testing.T) {
	m, err := Fit(premiumSamples)
	require.NoError(t, err)

	var sum float64
	for _, s := range premiumSamples {
		sum += s.Risk - m.Predict(s.Age, s.Claims)
	}
	assert.InDelta(t, 0, sum, 1e-9)
}

func TestFit_RecoversExactPlane(t *testing.T) {
	plane := func(a, c int) float64 { return 0.02*float64(a) - 0.1*float64(c) + 0.3 }
	var samples []Sample
	for _, p := range [][2]int{{20, 0}, {30, 2}, {40, 1}, {50, 4}, {60, 3}} {
		samples = append(samples, Sample{Age: p[0], Claims: p[1], Risk: plane(p[0], p[1])})
	}

	m, err := Fit(samples)
	require.NoError(t, err)

	assert.InDelta(t, 0.02, m.AgeWeight, 1e-12)
	assert.InDelta(t, -0.1, m.ClaimsWeight, 1e-12)
	assert.InDelta(t, 0.3, m.Intercept, 1e-12)
	assert.InDelta(t, 1.0, m.RSquared(samples), 1e-12)
}

func TestFit_Errors(t *testing.T) {
	_, err := Fit(premiumSamples[:2])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 3 samples")

	collinear := []Sample{
		{Age: 20, Claims: 1, Risk: 0.1},
		{Age: 30, Claims: 2, Risk: 0.2},
		{Age: 40, Claims: 3, Risk: 0.3},
	}
	_, err = Fit(collinear)
	assert.ErrorIs(t, err, ErrSingular)
}

func TestPredict_IsUnbounded(t *testing.T) {
	m, err := Fit(premiumSamples)
	require.NoError(t, err)

	assert.Less(t, m.Predict(0, 0), 0.0)
	assert.Greater(t, m.Predict(90, 8), 1.0)
}

func TestRSquared(t *testing.T) {
	m, err := Fit(premiumSamples)
	require.NoError(t, err)

	r2 := m.RSquared(premiumSamples)
	assert.Greater(t, r2, 0.8)
	assert.LessOrEqual(t, r2, 1.0)

	assert.Zero(t, m.RSquared(nil))

	flat := []Sample{{Age: 1, Risk: 0.5}, {Age: 2, Risk: 0.5}}
	assert.Equal(t, 1.0, Model{Intercept: 0.5}.RSquared(flat))
	assert.Equal(t, 0.0, Model{Intercept: 0.4}.RSquared(flat))
}
