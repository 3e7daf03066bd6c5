package mcp

import (
	"errors"
	"fmt"

	"riskcast/internal/simulation"
)

// ErrTooManyIterations is returned when a caller asks for more draws than MAX_ITERATIONS allows.
var ErrTooManyIterations = errors.New("too many iterations")

func (s *Server) resolveIterations(requested *int) (int, error) {
	if requested == nil {
		return s.cfg.Simulation.DefaultIterations, nil
	}
	if *requested > s.cfg.Simulation.MaxIterations {
		return 0, fmt.Errorf("%w: %d requested, limit is %d", ErrTooManyIterations, *requested, s.cfg.Simulation.MaxIterations)
	}
	// Values below 1 are passed through so the engine reports them.
	return *requested, nil
}

func (s *Server) resolveSeed(requested *uint64) uint64 {
	if requested != nil {
		return *requested
	}
	return uint64(s.now().UnixNano())
}

func simulationInsights(in simulation.Input, res simulation.Result) []string {
	insights := make([]string, 0, 4)

	p := res.ProbabilityOfSuccess * 100
	switch {
	case res.ProbabilityOfSuccess >= 0.8:
		insights = append(insights, fmt.Sprintf("High Confidence: %.1f%% of simulated outcomes stay within 120%% of both baselines.", p))
	case res.ProbabilityOfSuccess >= 0.5:
		insights = append(insights, fmt.Sprintf("Moderate Confidence: %.1f%% of simulated outcomes stay within 120%% of both baselines. Consider contingency for cost or schedule.", p))
	default:
		insights = append(insights, fmt.Sprintf("Low Confidence: only %.1f%% of simulated outcomes stay within 120%% of both baselines. The plan is unlikely to hold without reducing scope or risk.", p))
	}

	insights = append(insights, fmt.Sprintf("Range: cost P85 %.2f (baseline %.2f), duration P85 %.1f days (baseline %.1f).",
		res.CostPercentiles.P85, in.BaseCost, res.TimePercentiles.P85, in.BaseTimeDays))

	if in.RiskFactor > 100 {
		insights = append(insights, fmt.Sprintf("Risk factor %.0f is above the conventional 0-100 scale; the pessimistic bound is %.1fx the baseline.", in.RiskFactor, in.MaxMultiplier()))
	}
	if in.RiskFactor == 0 {
		insights = append(insights, "Zero Risk: outcomes can only land at or below the baselines, so success is certain by construction.")
	}
	if in.Iterations < 1000 {
		insights = append(insights, fmt.Sprintf("Low Sample: %d iterations; percentages may shift noticeably between runs.", in.Iterations))
	}
	return insights
}

func sweepInsights(points []simulation.SweepPoint) []string {
	insights := make([]string, 0, 2)
	if len(points) == 0 {
		return insights
	}

	// First risk level at which success drops below 50%.
	for _, p := range points {
		if p.ProbabilityOfSuccess < 0.5 {
			insights = append(insights, fmt.Sprintf("Tipping Point: at risk factor %g the probability of success falls to %.1f%%.", p.RiskFactor, p.ProbabilityOfSuccess*100))
			break
		}
	}

	best, worst := points[0], points[0]
	for _, p := range points[1:] {
		if p.ProbabilityOfSuccess > best.ProbabilityOfSuccess {
			best = p
		}
		if p.ProbabilityOfSuccess < worst.ProbabilityOfSuccess {
			worst = p
		}
	}
	insights = append(insights, fmt.Sprintf("Spread: %.1f%% (risk %g) down to %.1f%% (risk %g).",
		best.ProbabilityOfSuccess*100, best.RiskFactor, worst.ProbabilityOfSuccess*100, worst.RiskFactor))
	return insights
}
