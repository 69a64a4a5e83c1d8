package costfn

import "errors"

var (
	// ErrNonFiniteLogLikelihood is returned when an observation's class and
	// conditional probabilities combine to a non-positive or NaN observed
	// path probability at the candidate theta.
	ErrNonFiniteLogLikelihood = errors.New("costfn: observation produced a non-finite log-likelihood")

	// ErrMissingEstimatedParameter fails Validate before optimization ever
	// starts.
	ErrMissingEstimatedParameter = errors.New("costfn: parameter(s) listed as estimate never appear in the data")
)
