package bfgs

import "errors"

var (
	// ErrNonFiniteDirection is the NumericalFailure error kind: the search
	// direction Hᵀ·∇f is not finite.
	ErrNonFiniteDirection = errors.New("bfgs: search direction is non-finite")

	// ErrMaxIterationsReached means the outer loop ran to its iteration cap
	// without satisfying the convergence test.
	ErrMaxIterationsReached = errors.New("bfgs: max outer iterations reached without convergence")

	// ErrLineSearchFailure is the LineSearchFailure error kind. It wraps
	// one of the two more specific errors below, except when re-evaluating
	// the accepted step fails, where it carries that evaluation error's text.
	ErrLineSearchFailure = errors.New("bfgs: line search failed")

	// ErrFiniteStepNotFound means halving the starting step 20 times never
	// produced a finite function value.
	ErrFiniteStepNotFound = errors.New("bfgs: no finite step found within the halving budget")

	// ErrLineSearchIterationsExceeded means the bracketing-sectioning loop
	// ran 200 iterations without satisfying the acceptance test.
	ErrLineSearchIterationsExceeded = errors.New("bfgs: line search exceeded its iteration budget")
)
