package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"riskcast/internal/config"
	"riskcast/internal/metrics"
	"riskcast/internal/roadmap"
	"riskcast/internal/simulation"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		EnableMermaidCharts: true,
		Simulation: config.SimulationConfig{
			DefaultIterations: 2000,
			MaxIterations:     50000,
			BinCount:          8,
			HorizonDays:       90,
		},
	}
}

func intPtr(v int) *int          { return &v }
func seedPtr(v uint64) *uint64    { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestHandleRunSimulation(t *testing.T) {
	s := NewServer(testConfig(), nil)

	_, resp, err := s.handleRunSimulation(context.Background(), nil, RunSimulationInput{
		BaseCost:     1000,
		BaseTimeDays: 30,
		RiskFactor:   50,
		Seed:         seedPtr(42),
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(42), resp.SeedUsed)
	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, 2000, resp.Input.Iterations)
	assert.Len(t, resp.Result.CostDistribution, 8)
	assert.Contains(t, resp.Charts["cost_distribution"], "xychart-beta")
	require.NotEmpty(t, resp.Insights)

	// Same seed, same numbers.
	expected, err := simulation.NewEngine(simulation.NewSource(42)).Run(resp.Input)
	require.NoError(t, err)
	assert.Equal(t, expected.ProbabilityOfSuccess, resp.Result.ProbabilityOfSuccess)
	assert.Equal(t, expected.ExpectedCost, resp.Result.ExpectedCost)
}

func TestHandleRunSimulation_InvalidInputs(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	s := NewServer(testConfig(), m)

	tests := []struct {
		name string
		in   RunSimulationInput
		want error
	}{
		{"zero iterations", RunSimulationInput{BaseCost: 1000, BaseTimeDays: 30, RiskFactor: 50, Iterations: intPtr(0)}, simulation.ErrInvalidIterations},
		{"negative cost", RunSimulationInput{BaseCost: -10, BaseTimeDays: 30, RiskFactor: 50}, simulation.ErrInvalidBaseline},
		{"negative risk", RunSimulationInput{BaseCost: 1000, BaseTimeDays: 30, RiskFactor: -5}, simulation.ErrInvalidRiskFactor},
		{"zero bins", RunSimulationInput{BaseCost: 1000, BaseTimeDays: 30, RiskFactor: 5, Bins: intPtr(0)}, simulation.ErrInvalidBinCount},
		{"over limit", RunSimulationInput{BaseCost: 1000, BaseTimeDays: 30, RiskFactor: 5, Iterations: intPtr(50001)}, ErrTooManyIterations},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.handleRunSimulation(context.Background(), nil, tt.in)
			assert.True(t, errors.Is(err, tt.want), "expected %v, got %v", tt.want, err)
		})
	}

	assert.Equal(t, 4.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues(toolRunSimulation, "rejected")))
}

func TestHandleSimulateRoadmap(t *testing.T) {
	cfg := testConfig()
	cfg.EnableMermaidCharts = false
	s := NewServer(cfg, nil)

	_, resp, err := s.handleSimulateRoadmap(context.Background(), nil, SimulateRoadmapInput{
		Goal: "Self-serve onboarding",
		Items: []roadmap.Item{
			{Title: "Signup flow", EstimatedCost: 1500},
			{Title: "Email verification", EstimatedCost: 500},
		},
		RiskScore:  30,
		Iterations: intPtr(1000),
		Seed:       seedPtr(7),
	})
	require.NoError(t, err)

	assert.Equal(t, 2000.0, resp.Input.BaseCost)
	assert.Equal(t, 90.0, resp.Input.BaseTimeDays)
	assert.Equal(t, 30.0, resp.Input.RiskFactor)
	assert.Nil(t, resp.Charts)
	assert.True(t, strings.HasPrefix(resp.Insights[len(resp.Insights)-1], "Roadmap Basis: 2 items"))

	_, resp, err = s.handleSimulateRoadmap(context.Background(), nil, SimulateRoadmapInput{
		Items:       []roadmap.Item{{Title: "Spike", EstimatedCost: 100}},
		HorizonDays: floatPtr(14),
		Seed:        seedPtr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, 14.0, resp.Input.BaseTimeDays)
	assert.Equal(t, 1.0, resp.Result.ProbabilityOfSuccess)

	_, _, err = s.handleSimulateRoadmap(context.Background(), nil, SimulateRoadmapInput{RiskScore: 10})
	assert.ErrorIs(t, err, roadmap.ErrEmptyRoadmap)
}

func TestHandleCompareRiskLevels(t *testing.T) {
	s := NewServer(testConfig(), nil)

	_, resp, err := s.handleCompareRiskLevels(context.Background(), nil, CompareRiskLevelsInput{
		BaseCost:     1000,
		BaseTimeDays: 30,
		RiskFactors:  []float64{0, 50, 150},
		Iterations:   intPtr(3000),
		Seed:         seedPtr(3),
	})
	require.NoError(t, err)

	require.Len(t, resp.Points, 3)
	assert.Equal(t, 1.0, resp.Points[0].ProbabilityOfSuccess)
	assert.Less(t, resp.Points[2].ProbabilityOfSuccess, resp.Points[1].ProbabilityOfSuccess)
	assert.Contains(t, resp.Chart, "Probability of Success by Risk Level")
	assert.NotEmpty(t, resp.Insights)

	_, _, err = s.handleCompareRiskLevels(context.Background(), nil, CompareRiskLevelsInput{BaseCost: 1, BaseTimeDays: 1})
	assert.Error(t, err)

	_, _, err = s.handleCompareRiskLevels(context.Background(), nil, CompareRiskLevelsInput{BaseCost: 1, BaseTimeDays: 1, RiskFactors: []float64{-1}})
	assert.ErrorIs(t, err, simulation.ErrInvalidRiskFactor)
}

func TestSimulationInsights(t *testing.T) {
	in := simulation.Input{BaseCost: 100, BaseTimeDays: 10, RiskFactor: 150, Iterations: 200}
	insights := simulationInsights(in, simulation.Result{ProbabilityOfSuccess: 0.3})

	joined := strings.Join(insights, "\n")
	assert.Contains(t, joined, "Low Confidence")
	assert.Contains(t, joined, "above the conventional 0-100 scale")
	assert.Contains(t, joined, "Low Sample: 200 iterations")
}

func TestSweepInsights(t *testing.T) {
	insights := sweepInsights([]simulation.SweepPoint{
		{RiskFactor: 0, ProbabilityOfSuccess: 1},
		{RiskFactor: 80, ProbabilityOfSuccess: 0.45},
		{RiskFactor: 120, ProbabilityOfSuccess: 0.3},
	})

	require.Len(t, insights, 2)
	assert.Contains(t, insights[0], "risk factor 80")
	assert.Contains(t, insights[1], "100.0% (risk 0) down to 30.0% (risk 120)")
	assert.Empty(t, sweepInsights(nil))
}
