package simulation

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultIterations is the number of draws used when the caller has no preference.
	DefaultIterations = 5000
	// DefaultBinCount is the number of histogram bins per distribution.
	DefaultBinCount = 10

	// MinMultiplier places the optimistic bound 20% under the baseline.
	MinMultiplier = 0.8
	// SuccessThreshold is the share of the baseline a draw may reach and still count as a success.
	SuccessThreshold = 1.2

	riskScale = 50.0
)

// Input describes one simulation request.
type Input struct {
	BaseCost     float64 `json:"base_cost"`
	BaseTimeDays float64 `json:"base_time_days"`
	RiskFactor   float64 `json:"risk_factor"`
	Iterations   int     `json:"iterations"`
}

// Validate reports the first invalid field of the input.
func (in Input) Validate() error {
	if in.Iterations < 1 {
		return fmt.Errorf("%w: iterations must be >= 1, got %d", ErrInvalidIterations, in.Iterations)
	}
	if !finite(in.BaseCost) || in.BaseCost <= 0 {
		return fmt.Errorf("%w: base cost must be > 0, got %v", ErrInvalidBaseline, in.BaseCost)
	}
	if !finite(in.BaseTimeDays) || in.BaseTimeDays <= 0 {
		return fmt.Errorf("%w: base time must be > 0 days, got %v", ErrInvalidBaseline, in.BaseTimeDays)
	}
	if !finite(in.RiskFactor) || in.RiskFactor < 0 {
		return fmt.Errorf("%w: risk factor must be >= 0, got %v", ErrInvalidRiskFactor, in.RiskFactor)
	}
	return nil
}

// MaxMultiplier is the pessimistic bound relative to the baseline.
func (in Input) MaxMultiplier() float64 {
	return 1 + in.RiskFactor/riskScale
}

// Bounds returns the triangular parameters used for a baseline value.
func (in Input) Bounds(base float64) (min, mode, max float64) {
	return base * MinMultiplier, base, base * in.MaxMultiplier()
}

// Aggregate holds the raw output of the iteration loop.
type Aggregate struct {
	Iterations  int
	Successes   int
	CostSamples []float64
	TimeSamples []float64
	MeanCost    float64
	MeanTime    float64
}

// ProbabilityOfSuccess is the share of iterations that met both thresholds.
func (a Aggregate) ProbabilityOfSuccess() float64 {
	if a.Iterations == 0 {
		return 0
	}
	return float64(a.Successes) / float64(a.Iterations)
}

// Engine performs the Monte-Carlo simulation.
// An Engine owns its random source and must not be shared between goroutines.
type Engine struct {
	rng  Source
	bins int
}

// NewEngine creates an engine drawing from src. A nil src is seeded from the clock.
func NewEngine(src Source) *Engine {
	if src == nil {
		src = NewSource(uint64(time.Now().UnixNano()))
	}
	return &Engine{
		rng:  src,
		bins: DefaultBinCount,
	}
}

// SetSeed replaces the random source with a deterministic one.
func (e *Engine) SetSeed(seed uint64) {
	e.rng = NewSource(seed)
}

// SetBinCount changes the number of histogram bins produced by Run.
func (e *Engine) SetBinCount(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: bin count must be >= 1, got %d", ErrInvalidBinCount, n)
	}
	e.bins = n
	return nil
}

// Aggregate draws in.Iterations independent (cost, time) pairs and counts successes.
func (e *Engine) Aggregate(in Input) (Aggregate, error) {
	if err := in.Validate(); err != nil {
		return Aggregate{}, err
	}

	costMin, costMode, costMax := in.Bounds(in.BaseCost)
	timeMin, timeMode, timeMax := in.Bounds(in.BaseTimeDays)
	costLimit := in.BaseCost * SuccessThreshold
	timeLimit := in.BaseTimeDays * SuccessThreshold

	agg := Aggregate{
		Iterations:  in.Iterations,
		CostSamples: make([]float64, 0, in.Iterations),
		TimeSamples: make([]float64, 0, in.Iterations),
	}

	var costSum, timeSum float64
	for i := 0; i < in.Iterations; i++ {
		// Cost and time are sampled independently, cost first.
		uCost := e.rng.Float64()
		uTime := e.rng.Float64()

		cost, err := Triangular(costMin, costMode, costMax, uCost)
		if err != nil {
			return Aggregate{}, err
		}
		duration, err := Triangular(timeMin, timeMode, timeMax, uTime)
		if err != nil {
			return Aggregate{}, err
		}

		agg.CostSamples = append(agg.CostSamples, cost)
		agg.TimeSamples = append(agg.TimeSamples, duration)
		costSum += cost
		timeSum += duration

		if cost <= costLimit && duration <= timeLimit {
			agg.Successes++
		}
	}

	agg.MeanCost = costSum / float64(in.Iterations)
	agg.MeanTime = timeSum / float64(in.Iterations)

	log.Debug().
		Int("iterations", in.Iterations).
		Int("successes", agg.Successes).
		Float64("mean_cost", agg.MeanCost).
		Float64("mean_time", agg.MeanTime).
		Msg("Simulation loop finished")

	return agg, nil
}

// Run performs the simulation and assembles the summarized result.
func (e *Engine) Run(in Input) (Result, error) {
	agg, err := e.Aggregate(in)
	if err != nil {
		return Result{}, err
	}
	return assemble(agg, e.bins)
}
