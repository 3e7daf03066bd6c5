package simulation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweep_OrderedAndDeterministic(t *testing.T) {
	base := Input{BaseCost: 1000, BaseTimeDays: 30, Iterations: 2000}
	risks := []float64{0, 25, 50, 100}

	first, err := Sweep(context.Background(), base, risks, 99)
	require.NoError(t, err)
	second, err := Sweep(context.Background(), base, risks, 99)
	require.NoError(t, err)

	require.Len(t, first, len(risks))
	assert.Equal(t, first, second)
	for i, p := range first {
		assert.Equal(t, risks[i], p.RiskFactor)
	}

	// A zero-risk project can never overrun.
	assert.Equal(t, 1.0, first[0].ProbabilityOfSuccess)
	assert.Greater(t, first[0].ProbabilityOfSuccess, first[3].ProbabilityOfSuccess)
}

func TestSweep_MatchesSingleRun(t *testing.T) {
	base := Input{BaseCost: 400, BaseTimeDays: 12, Iterations: 500}

	points, err := Sweep(context.Background(), base, []float64{10, 60}, 5)
	require.NoError(t, err)

	in := base
	in.RiskFactor = 60
	res, err := NewEngine(NewSource(6)).Run(in)
	require.NoError(t, err)

	assert.Equal(t, res.ProbabilityOfSuccess, points[1].ProbabilityOfSuccess)
	assert.Equal(t, res.ExpectedCost, points[1].ExpectedCost)
}

func TestSweep_RejectsInvalidRiskBeforeRunning(t *testing.T) {
	_, err := Sweep(context.Background(), Input{BaseCost: 1, BaseTimeDays: 1, Iterations: 10}, []float64{10, -1}, 1)
	assert.ErrorIs(t, err, ErrInvalidRiskFactor)
}

func TestSweep_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Sweep(ctx, Input{BaseCost: 1, BaseTimeDays: 1, Iterations: 10}, []float64{10}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
