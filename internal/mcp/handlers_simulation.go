package mcp

import (
	"context"
	"fmt"
	"time"

	"riskcast/internal/roadmap"
	"riskcast/internal/simulation"
	"riskcast/internal/visuals"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// RunSimulationInput is the input of run_risk_simulation.
type RunSimulationInput struct {
	BaseCost     float64 `json:"base_cost" jsonschema:"baseline cost estimate in currency units"`
	BaseTimeDays float64 `json:"base_time_days" jsonschema:"baseline duration in days"`
	RiskFactor   float64 `json:"risk_factor" jsonschema:"risk score, conventionally 0-100; widens the pessimistic bound"`
	Iterations   *int    `json:"iterations,omitempty" jsonschema:"number of Monte-Carlo draws (default 5000)"`
	Bins         *int    `json:"bins,omitempty" jsonschema:"histogram bins per distribution (default 10)"`
	Seed         *uint64 `json:"seed,omitempty" jsonschema:"optional seed for a reproducible run"`
}

// SimulateRoadmapInput is the input of simulate_roadmap.
type SimulateRoadmapInput struct {
	Goal        string         `json:"goal,omitempty" jsonschema:"optional goal the roadmap serves"`
	Items       []roadmap.Item `json:"items" jsonschema:"roadmap items with their estimated costs"`
	RiskScore   float64        `json:"risk_score" jsonschema:"risk score, conventionally 0-100"`
	HorizonDays *float64       `json:"horizon_days,omitempty" jsonschema:"time baseline in days (default 90)"`
	Iterations  *int           `json:"iterations,omitempty" jsonschema:"number of Monte-Carlo draws (default 5000)"`
	Seed        *uint64        `json:"seed,omitempty" jsonschema:"optional seed for a reproducible run"`
}

// CompareRiskLevelsInput is the input of compare_risk_levels.
type CompareRiskLevelsInput struct {
	BaseCost     float64   `json:"base_cost" jsonschema:"baseline cost estimate in currency units"`
	BaseTimeDays float64   `json:"base_time_days" jsonschema:"baseline duration in days"`
	RiskFactors  []float64 `json:"risk_factors" jsonschema:"risk scores to compare"`
	Iterations   *int      `json:"iterations,omitempty" jsonschema:"draws per risk level (default 5000)"`
	Seed         *uint64   `json:"seed,omitempty" jsonschema:"optional base seed; level i uses seed+i"`
}

// SimulationResponse is returned by run_risk_simulation and simulate_roadmap.
type SimulationResponse struct {
	RunID    string            `json:"run_id"`
	SeedUsed uint64            `json:"seed_used"`
	Input    simulation.Input  `json:"input"`
	Result   simulation.Result `json:"result"`
	Insights []string          `json:"insights"`
	Charts   map[string]string `json:"charts,omitempty"`
}

// CompareRiskLevelsResponse is returned by compare_risk_levels.
type CompareRiskLevelsResponse struct {
	RunID    string                  `json:"run_id"`
	SeedUsed uint64                  `json:"seed_used"`
	Points   []simulation.SweepPoint `json:"points"`
	Insights []string                `json:"insights"`
	Chart    string                  `json:"chart,omitempty"`
}

func (s *Server) handleRunSimulation(ctx context.Context, _ *mcp.CallToolRequest, in RunSimulationInput) (*mcp.CallToolResult, SimulationResponse, error) {
	iterations, err := s.resolveIterations(in.Iterations)
	if err != nil {
		return nil, SimulationResponse{}, err
	}

	bins := s.cfg.Simulation.BinCount
	if in.Bins != nil {
		bins = *in.Bins
	}

	simIn := simulation.Input{
		BaseCost:     in.BaseCost,
		BaseTimeDays: in.BaseTimeDays,
		RiskFactor:   in.RiskFactor,
		Iterations:   iterations,
	}

	resp, err := s.simulate(toolRunSimulation, simIn, bins, in.Seed)
	return nil, resp, err
}

func (s *Server) handleSimulateRoadmap(ctx context.Context, _ *mcp.CallToolRequest, in SimulateRoadmapInput) (*mcp.CallToolResult, SimulationResponse, error) {
	iterations, err := s.resolveIterations(in.Iterations)
	if err != nil {
		return nil, SimulationResponse{}, err
	}

	r := roadmap.Roadmap{
		Goal:        in.Goal,
		Items:       in.Items,
		RiskScore:   in.RiskScore,
		HorizonDays: s.cfg.Simulation.HorizonDays,
	}
	if in.HorizonDays != nil {
		r.HorizonDays = *in.HorizonDays
	}

	simIn, err := r.Input(iterations)
	if err != nil {
		s.metrics.ObserveRun(toolSimulateRoadmap, iterations, 0, 0, err)
		return nil, SimulationResponse{}, err
	}

	resp, err := s.simulate(toolSimulateRoadmap, simIn, s.cfg.Simulation.BinCount, in.Seed)
	if err != nil {
		return nil, SimulationResponse{}, err
	}
	resp.Insights = append(resp.Insights, fmt.Sprintf("Roadmap Basis: %d items totalling %.2f over a %.0f-day horizon.", len(r.Items), simIn.BaseCost, simIn.BaseTimeDays))
	return nil, resp, nil
}

func (s *Server) handleCompareRiskLevels(ctx context.Context, _ *mcp.CallToolRequest, in CompareRiskLevelsInput) (*mcp.CallToolResult, CompareRiskLevelsResponse, error) {
	iterations, err := s.resolveIterations(in.Iterations)
	if err != nil {
		return nil, CompareRiskLevelsResponse{}, err
	}
	if len(in.RiskFactors) == 0 {
		return nil, CompareRiskLevelsResponse{}, fmt.Errorf("risk_factors must contain at least one value")
	}
	if len(in.RiskFactors) > maxRiskLevels {
		return nil, CompareRiskLevelsResponse{}, fmt.Errorf("risk_factors accepts at most %d values, got %d", maxRiskLevels, len(in.RiskFactors))
	}

	base := simulation.Input{
		BaseCost:     in.BaseCost,
		BaseTimeDays: in.BaseTimeDays,
		Iterations:   iterations,
	}
	seed := s.resolveSeed(in.Seed)
	runID := uuid.NewString()

	start := s.now()
	points, err := simulation.Sweep(ctx, base, in.RiskFactors, seed)
	elapsed := s.now().Sub(start)

	if err != nil {
		s.metrics.ObserveRun(toolCompareRiskLevels, iterations, 0, elapsed, err)
		log.Warn().Err(err).Str("run_id", runID).Msg("Risk comparison rejected")
		return nil, CompareRiskLevelsResponse{}, err
	}
	for _, p := range points {
		s.metrics.ObserveRun(toolCompareRiskLevels, iterations, p.ProbabilityOfSuccess, elapsed/time.Duration(len(points)), nil)
	}

	log.Info().
		Str("run_id", runID).
		Int("levels", len(points)).
		Int("iterations", iterations).
		Uint64("seed", seed).
		Dur("elapsed", elapsed).
		Msg("Risk comparison finished")

	resp := CompareRiskLevelsResponse{
		RunID:    runID,
		SeedUsed: seed,
		Points:   points,
		Insights: sweepInsights(points),
	}
	if s.cfg.EnableMermaidCharts {
		resp.Chart = visuals.GenerateSweepChart(points)
	}
	return nil, resp, nil
}

// simulate runs one engine pass and wraps the result with insights and charts.
func (s *Server) simulate(tool string, in simulation.Input, bins int, seedOverride *uint64) (SimulationResponse, error) {
	seed := s.resolveSeed(seedOverride)
	runID := uuid.NewString()

	engine := simulation.NewEngine(simulation.NewSource(seed))
	if err := engine.SetBinCount(bins); err != nil {
		s.metrics.ObserveRun(tool, in.Iterations, 0, 0, err)
		return SimulationResponse{}, err
	}

	start := s.now()
	res, err := engine.Run(in)
	elapsed := s.now().Sub(start)
	s.metrics.ObserveRun(tool, in.Iterations, res.ProbabilityOfSuccess, elapsed, err)

	if err != nil {
		log.Warn().Err(err).Str("tool", tool).Str("run_id", runID).Msg("Simulation rejected")
		return SimulationResponse{}, err
	}

	log.Info().
		Str("tool", tool).
		Str("run_id", runID).
		Int("iterations", in.Iterations).
		Uint64("seed", seed).
		Float64("probability_of_success", res.ProbabilityOfSuccess).
		Dur("elapsed", elapsed).
		Msg("Simulation finished")

	resp := SimulationResponse{
		RunID:    runID,
		SeedUsed: seed,
		Input:    in,
		Result:   res,
		Insights: simulationInsights(in, res),
	}
	if s.cfg.EnableMermaidCharts {
		resp.Charts = map[string]string{
			"cost_distribution": visuals.GenerateDistributionChart("Simulated Cost", "Cost", res.CostDistribution),
			"time_distribution": visuals.GenerateDistributionChart("Simulated Duration", "Days", res.TimeDistribution),
		}
	}
	return resp, nil
}
