package simulation

import "errors"

// Validation errors. They are always returned before any sampling begins and
// are wrapped with the offending value, so callers should match with errors.Is.
var (
	ErrInvalidIterations             = errors.New("invalid iterations")
	ErrInvalidBaseline               = errors.New("invalid baseline")
	ErrInvalidRiskFactor             = errors.New("invalid risk factor")
	ErrInvalidDistributionParameters = errors.New("invalid distribution parameters")
	ErrInvalidBinCount               = errors.New("invalid bin count")
	ErrNonFiniteSample               = errors.New("non-finite sample")
)
