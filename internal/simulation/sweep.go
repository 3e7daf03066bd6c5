package simulation

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SweepPoint is the headline outcome of one risk level in a sweep.
type SweepPoint struct {
	RiskFactor           float64 `json:"risk_factor"`
	ProbabilityOfSuccess float64 `json:"probability_of_success"`
	ExpectedCost         float64 `json:"expected_cost"`
	ExpectedTime         float64 `json:"expected_time"`
}

// Sweep runs base once per risk factor. Runs execute concurrently, each on
// its own engine seeded with seed+index, so the output depends only on the
// arguments. Points are returned in the order of riskFactors.
//
// Every input is validated before any run starts. ctx is only consulted
// between runs; a started run always completes.
func Sweep(ctx context.Context, base Input, riskFactors []float64, seed uint64) ([]SweepPoint, error) {
	inputs := make([]Input, len(riskFactors))
	for i, rf := range riskFactors {
		in := base
		in.RiskFactor = rf
		if err := in.Validate(); err != nil {
			return nil, err
		}
		inputs[i] = in
	}

	points := make([]SweepPoint, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			agg, err := NewEngine(NewSource(seed + uint64(i))).Aggregate(in)
			if err != nil {
				return err
			}
			points[i] = SweepPoint{
				RiskFactor:           in.RiskFactor,
				ProbabilityOfSuccess: agg.ProbabilityOfSuccess(),
				ExpectedCost:         agg.MeanCost,
				ExpectedTime:         agg.MeanTime,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}
