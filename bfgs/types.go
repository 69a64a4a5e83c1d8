package bfgs

// Objective evaluates the function to maximize at x, returning its value
// and gradient. costfn.CostFunction.Evaluate is the production Objective;
// tests use closed-form quadratics.
type Objective func(x []float64) (value float64, gradient []float64, err error)

// Status classifies how Optimize's outer loop ended.
type Status int

const (
	// WithinConvergenceTolerance means both the value and gradient
	// convergence tests were satisfied.
	WithinConvergenceTolerance Status = iota
	// MaxIterationsReached means the outer loop exhausted
	// Options.MaxOuterIterations without converging.
	MaxIterationsReached
	// LineSearchFailed means the line search could not produce an
	// acceptable step; standard errors are still reported using the last
	// finite point.
	LineSearchFailed
	// NumericalFailure means the search direction was non-finite.
	NumericalFailure
)

// Options configures Optimize. Zero values fall back to sensible defaults
// via withDefaults.
type Options struct {
	// MaxOuterIterations caps the outer loop; default 10,000.
	MaxOuterIterations int
	// MaxVarChange bounds the worst-case coordinate move in the starting
	// step formula. DESIGN.md records the reasoning behind
	// DefaultMaxVarChange's value.
	MaxVarChange float64
}

const (
	// DefaultMaxOuterIterations is the outer-loop iteration cap.
	DefaultMaxOuterIterations = 10000
	// DefaultMaxVarChange bounds the starting step's worst-case coordinate
	// move.
	DefaultMaxVarChange = 10.0
	// maxStep is the bracket-widening cap for the line search's starting
	// step.
	maxStep = 1e10

	convergenceValueTolerance    = 1e-10
	convergenceGradientTolerance = 1e-6
)

func (o Options) withDefaults() Options {
	if o.MaxOuterIterations <= 0 {
		o.MaxOuterIterations = DefaultMaxOuterIterations
	}
	if o.MaxVarChange <= 0 {
		o.MaxVarChange = DefaultMaxVarChange
	}
	return o
}

// Result is one Optimize run's outcome.
type Result struct {
	X              []float64
	Value          float64
	Gradient       []float64
	InverseHessian [][]float64
	// StandardErrors is sqrt(diag(H . B . H)), or nil
	// if the score matrix was unavailable or the wrong shape.
	StandardErrors []float64
	Iterations     int
	Status         Status
}
