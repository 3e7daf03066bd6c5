package simulation

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Percentiles summarizes a sample series at the usual forecasting confidence levels.
type Percentiles struct {
	P50 float64 `json:"p50"`
	P85 float64 `json:"p85"`
	P95 float64 `json:"p95"`
}

// HeatmapCell is reserved for a two-factor (cost multiplier, time multiplier)
// sweep. Run never populates it.
type HeatmapCell struct {
	CostMultiplier float64 `json:"cost_multiplier"`
	TimeMultiplier float64 `json:"time_multiplier"`
	SuccessDensity float64 `json:"success_density"`
}

// Result is the summarized outcome of one simulation run.
type Result struct {
	Iterations           int            `json:"iterations"`
	ProbabilityOfSuccess float64        `json:"probability_of_success"`
	ExpectedCost         float64        `json:"expected_cost"`
	ExpectedTime         float64        `json:"expected_time"`
	CostPercentiles      Percentiles    `json:"cost_percentiles"`
	TimePercentiles      Percentiles    `json:"time_percentiles"`
	CostDistribution     []HistogramBin `json:"cost_distribution"`
	TimeDistribution     []HistogramBin `json:"time_distribution"`
	RiskHeatmap          []HeatmapCell  `json:"risk_heatmap"`
}

func assemble(agg Aggregate, bins int) (Result, error) {
	costHist, err := BuildHistogram(agg.CostSamples, bins)
	if err != nil {
		return Result{}, err
	}
	timeHist, err := BuildHistogram(agg.TimeSamples, bins)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Iterations:           agg.Iterations,
		ProbabilityOfSuccess: agg.ProbabilityOfSuccess(),
		ExpectedCost:         agg.MeanCost,
		ExpectedTime:         agg.MeanTime,
		CostPercentiles:      percentiles(agg.CostSamples),
		TimePercentiles:      percentiles(agg.TimeSamples),
		CostDistribution:     costHist,
		TimeDistribution:     timeHist,
		RiskHeatmap:          []HeatmapCell{},
	}, nil
}

func percentiles(samples []float64) Percentiles {
	if len(samples) == 0 {
		return Percentiles{}
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	return Percentiles{
		P50: stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P85: stat.Quantile(0.85, stat.Empirical, sorted, nil),
		P95: stat.Quantile(0.95, stat.Empirical, sorted, nil),
	}
}
