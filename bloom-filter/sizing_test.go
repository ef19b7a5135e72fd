package bloomfilter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundBits(t *testing.T) {
	require.Equal(t, uint64(32), roundBits(1))
	require.Equal(t, uint64(32), roundBits(32))
	require.Equal(t, uint64(128), roundBits(100))
	require.Equal(t, MaxBits, roundBits(MaxBits-31))
}

func TestProbeWidth(t *testing.T) {
	cases := []struct {
		m    uint64
		want int
	}{
		{32, 1}, {224, 1}, {256, 1},
		{288, 2}, {65504, 2}, {65536, 2},
		{65568, 4}, {1 << 24, 4}, {MaxBits, 4},
	}
	for _, c := range cases {
		require.Equal(t, c.want, probeWidth(c.m), "m=%d", c.m)
	}

	f, err := New(100, 2)
	require.NoError(t, err)
	require.Equal(t, 1, f.ProbeWidth())
}

func TestEstimateParameters(t *testing.T) {
	m, k, err := EstimateParameters(1000, 0.01)
	require.NoError(t, err)
	// ~9.6 bits per key and ~7 probes for 1%.
	require.InDelta(t, 9586, m, 32)
	require.Equal(t, 7, k)

	_, _, err = EstimateParameters(0, 0.01)
	require.ErrorIs(t, err, ErrBadKeyCount)
	_, _, err = EstimateParameters(-5, 0.01)
	require.ErrorIs(t, err, ErrBadKeyCount)
	_, _, err = EstimateParameters(10, 0)
	require.ErrorIs(t, err, ErrBadFPRate)
	_, _, err = EstimateParameters(10, 1)
	require.ErrorIs(t, err, ErrBadFPRate)
	_, _, err = EstimateParameters(10, math.NaN())
	require.ErrorIs(t, err, ErrBadFPRate)
}

func TestNewWithEstimates(t *testing.T) {
	f, err := NewWithEstimates(1000, 0.01)
	require.NoError(t, err)
	require.Zero(t, f.NumBits()%WordBits)
	require.GreaterOrEqual(t, f.NumBits(), 9586)
	require.Equal(t, 7, f.NumHashes())
	require.Less(t, FalsePositiveRate(f.NumBits(), f.NumHashes(), 1000), 0.0105)

	_, err = NewWithEstimates(1000, 2)
	require.ErrorIs(t, err, ErrBadFPRate)
	_, err = NewWithEstimates(0, 0.01)
	require.ErrorIs(t, err, ErrBadKeyCount)
}

func TestFalsePositiveRateFormula(t *testing.T) {
	require.InDelta(t, 0.0026906, FalsePositiveRate(10000, 3, 500), 1e-6)
	require.Zero(t, FalsePositiveRate(64, 3, 0))
	require.Equal(t, 1.0, FalsePositiveRate(0, 3, 10))
}
