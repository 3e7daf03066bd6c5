package simulation

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// HistogramBin is one equal-width range of a sample series.
// Labels are rounded for display; binning itself uses the exact boundaries.
type HistogramBin struct {
	Low   string `json:"low"`
	High  string `json:"high"`
	Count int    `json:"count"`
}

// BuildHistogram partitions samples into binCount equal-width bins between
// their minimum and maximum. The bin counts always sum to len(samples).
func BuildHistogram(samples []float64, binCount int) ([]HistogramBin, error) {
	if binCount < 1 {
		return nil, fmt.Errorf("%w: bin count must be >= 1, got %d", ErrInvalidBinCount, binCount)
	}
	for i, v := range samples {
		if !finite(v) {
			return nil, fmt.Errorf("%w: sample %d is %v", ErrNonFiniteSample, i, v)
		}
	}

	bins := make([]HistogramBin, binCount)
	if len(samples) == 0 {
		for i := range bins {
			bins[i] = HistogramBin{Low: "0", High: "0"}
		}
		return bins, nil
	}

	lo := floats.Min(samples)
	hi := floats.Max(samples)
	width := (hi - lo) / float64(binCount)

	for i := range bins {
		bins[i].Low = formatLabel(lo + float64(i)*width)
		bins[i].High = formatLabel(lo + float64(i+1)*width)
	}

	// All samples identical: the division below is undefined.
	if width == 0 {
		bins[0].Count = len(samples)
		return bins, nil
	}

	for _, v := range samples {
		bins[binIndex(v, lo, width, binCount)].Count++
	}

	return bins, nil
}

// binIndex clamps into [0, binCount-1] so the maximum lands in the last bin
// and rounding noise never escapes the range.
func binIndex(v, lo, width float64, binCount int) int {
	pos := math.Floor((v - lo) / width)
	if math.IsNaN(pos) || pos < 0 {
		return 0
	}
	if pos >= float64(binCount-1) {
		return binCount - 1
	}
	return int(pos)
}

func formatLabel(v float64) string {
	return strconv.FormatFloat(roundLabel(v), 'f', 0, 64)
}

func roundLabel(v float64) float64 {
	r := math.Round(v)
	if r == 0 {
		return 0 // normalizes -0
	}
	return r
}
