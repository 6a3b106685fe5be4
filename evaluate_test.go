package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultLimits = Thresholds{MaxGainErrorDB: 1.0, MaxTHDPercent: 1.0}

func TestEvaluatePass(t *testing.T) {
	res, err := evaluate(1000, 1000, 0.2, defaultLimits)
	require.NoError(t, err)
	assert.True(t, res.Passed)
	assert.Empty(t, res.Failures)
	assert.InDelta(t, 0.0, res.GainDB, 1e-12)
}

func TestEvaluateDegenerateInput(t *testing.T) {
	for _, out := range []float64{0, 1e-12, 1000} {
		_, err := evaluate(0, out, 50, defaultLimits)
		assert.ErrorIs(t, err, ErrDegenerateInput)

		_, err = evaluate(9e-11, out, 0, defaultLimits)
		assert.ErrorIs(t, err, ErrDegenerateInput)
	}
}

func TestEvaluateGainFailure(t *testing.T) {
	res, err := evaluate(1000, 500, 0.1, defaultLimits)
	require.NoError(t, err)
	assert.False(t, res.Passed)
	assert.Equal(t, []string{"Gain error -6.02 dB exceeds ±1.0 dB"}, res.Failures)
}

func TestEvaluateGainBoundaryPasses(t *testing.T) {
	// |gain| equal to the limit is not a violation.
	res, err := evaluate(1, 1, 1.0, Thresholds{MaxGainErrorDB: 0, MaxTHDPercent: 1.0})
	require.NoError(t, err)
	assert.True(t, res.Passed)
}

func TestEvaluateTHDFailure(t *testing.T) {
	res, err := evaluate(1000, 1000, 2.5, Thresholds{MaxGainErrorDB: 1.0, MaxTHDPercent: 0.5})
	require.NoError(t, err)
	assert.False(t, res.Passed)
	assert.Equal(t, []string{"THD 2.5000% exceeds 0.5%"}, res.Failures)
}

func TestEvaluateBothFailures(t *testing.T) {
	res, err := evaluate(1000, 2000, 3, defaultLimits)
	require.NoError(t, err)
	require.Len(t, res.Failures, 2)
	assert.Equal(t, "Gain error +6.02 dB exceeds ±1.0 dB", res.Failures[0])
	assert.Equal(t, "THD 3.0000% exceeds 1.0%", res.Failures[1])
}

func TestEvaluateSilentOutput(t *testing.T) {
	res, err := evaluate(1000, 0, 0, defaultLimits)
	require.NoError(t, err)
	assert.Equal(t, -120.0, res.GainDB)
	assert.Equal(t, []string{"Gain error -120.00 dB exceeds ±1.0 dB"}, res.Failures)
}

func TestFormatLimit(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1.0"},
		{0.5, "0.5"},
		{2.25, "2.25"},
		{100, "100.0"},
		{0, "0.0"},
		{1e21, "1e+21"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "nan"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatLimit(tt.in))
	}
}

func TestEvaluateInfiniteGainLimit(t *testing.T) {
	res, err := evaluate(1000, 1000, 3, Thresholds{MaxGainErrorDB: math.Inf(1), MaxTHDPercent: 1.0})
	require.NoError(t, err)
	assert.Equal(t, []string{"THD 3.0000% exceeds 1.0%"}, res.Failures)

	res, err = evaluate(1000, 1000, 0, Thresholds{MaxGainErrorDB: math.Inf(-1), MaxTHDPercent: 1.0})
	require.NoError(t, err)
	assert.Equal(t, []string{"Gain error +0.00 dB exceeds ±-inf dB"}, res.Failures)
}
