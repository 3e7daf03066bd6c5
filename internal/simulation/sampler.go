package simulation

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Source yields successive uniform draws in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a PCG-backed source. Two sources built from the same seed
// produce identical streams.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Triangular maps a uniform draw u onto the triangular distribution
// (min, mode, max) by inverse-transform sampling.
func Triangular(min, mode, max, u float64) (float64, error) {
	if !finite(min) || !finite(mode) || !finite(max) {
		return 0, fmt.Errorf("%w: non-finite bounds (min=%v, mode=%v, max=%v)", ErrInvalidDistributionParameters, min, mode, max)
	}
	if min > mode || mode > max {
		return 0, fmt.Errorf("%w: require min <= mode <= max, got min=%v mode=%v max=%v", ErrInvalidDistributionParameters, min, mode, max)
	}
	if math.IsNaN(u) || u < 0 || u > 1 {
		return 0, fmt.Errorf("%w: uniform variate %v outside [0,1)", ErrInvalidDistributionParameters, u)
	}

	// Zero-width distribution: the formula would divide by max-min.
	if max == min {
		return min, nil
	}

	// With mode == min the cutoff is 0 and Quantile takes the upper branch for
	// every u; with mode == max the cutoff is 1 and it takes the lower branch.
	v := distuv.NewTriangle(min, max, mode, nil).Quantile(u)

	return math.Min(math.Max(v, min), max), nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
