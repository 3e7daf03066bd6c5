package simulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumCounts(bins []HistogramBin) int {
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	return total
}

func TestBuildHistogram_CountInvariant(t *testing.T) {
	src := NewSource(21)
	for _, n := range []int{1, 2, 10, 333, 5000} {
		samples := make([]float64, n)
		for i := range samples {
			samples[i] = 800 + src.Float64()*1200
		}
		for binCount := 1; binCount <= 25; binCount++ {
			bins, err := BuildHistogram(samples, binCount)
			require.NoError(t, err)
			require.Len(t, bins, binCount)
			if got := sumCounts(bins); got != n {
				t.Fatalf("n=%d bins=%d: counts sum to %d", n, binCount, got)
			}
		}
	}
}

func TestBuildHistogram_MaximumLandsInLastBin(t *testing.T) {
	bins, err := BuildHistogram([]float64{0, 10}, 2)
	require.NoError(t, err)

	assert.Equal(t, []HistogramBin{
		{Low: "0", High: "5", Count: 1},
		{Low: "5", High: "10", Count: 1},
	}, bins)
}

func TestBuildHistogram_RoundedLabelsExactBinning(t *testing.T) {
	// width is 5 and the boundary sits at 5.4, so 5.2 belongs to bin 0 although its label reads 0-5.
	bins, err := BuildHistogram([]float64{0.4, 5.2, 5.9, 10.4}, 2)
	require.NoError(t, err)

	assert.Equal(t, "0", bins[0].Low)
	assert.Equal(t, "5", bins[0].High)
	assert.Equal(t, "5", bins[1].Low)
	assert.Equal(t, "10", bins[1].High)
	assert.Equal(t, 2, bins[0].Count)
	assert.Equal(t, 2, bins[1].Count)
}

func TestBuildHistogram_ZeroRange(t *testing.T) {
	bins, err := BuildHistogram([]float64{7, 7, 7}, 4)
	require.NoError(t, err)
	require.Len(t, bins, 4)

	assert.Equal(t, 3, bins[0].Count)
	for _, b := range bins {
		assert.Equal(t, "7", b.Low)
		assert.Equal(t, "7", b.High)
	}
	assert.Equal(t, 3, sumCounts(bins))
}

func TestBuildHistogram_Empty(t *testing.T) {
	bins, err := BuildHistogram(nil, 3)
	require.NoError(t, err)
	require.Len(t, bins, 3)
	assert.Equal(t, 0, sumCounts(bins))
}

func TestBuildHistogram_InvalidInput(t *testing.T) {
	_, err := BuildHistogram([]float64{1, 2}, 0)
	assert.ErrorIs(t, err, ErrInvalidBinCount)

	_, err = BuildHistogram([]float64{1, math.NaN()}, 3)
	assert.ErrorIs(t, err, ErrNonFiniteSample)

	_, err = BuildHistogram([]float64{math.Inf(-1), 2}, 3)
	assert.ErrorIs(t, err, ErrNonFiniteSample)
}

func TestBinIndex_Clamps(t *testing.T) {
	assert.Equal(t, 0, binIndex(-1e-12, 0, 1, 5))
	assert.Equal(t, 4, binIndex(5, 0, 1, 5))
	assert.Equal(t, 4, binIndex(5+1e-9, 0, 1, 5))
	assert.Equal(t, 2, binIndex(2.5, 0, 1, 5))
}
