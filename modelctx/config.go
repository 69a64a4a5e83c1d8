package modelctx

import "github.com/scaper-abm/scaper/statespace"

// Config aggregates every model-wide knob a run needs: the state-space
// Config that statespace/valuefn/simulate/choiceset consume directly
// (DayStart, DayEnd, DecisionStep, MaxTrackedDuration, NoCarModes,
// Discretionary -- the `noCarModes` parameterization lives on the field
// statespace.Config already carries), plus the
// process-level knobs unique to running many agents through a worker pool.
type Config struct {
	statespace.Config

	// Workers bounds the fixed-size worker pool (-x N); <= 0 means
	// runtime.GOMAXPROCS(0).
	Workers int

	Estimation EstimationConfig
}

// EstimationConfig configures the `est` subcommand's multi-restart search.
type EstimationConfig struct {
	// Restarts is the number of BFGS restarts beyond the first (-n N).
	Restarts int

	// RestartJitter scales the uniform(0,1) draw that sets each
	// coordinate of a restart's starting point; defaults to 2.0.
	RestartJitter float64

	// NumericalHessian selects costfn.NumericalHessian over the
	// BFGS-estimated inverse Hessian for standard errors (-H flag).
	NumericalHessian bool
}

func (c Config) withDefaults() Config {
	if c.Estimation.RestartJitter <= 0 {
		c.Estimation.RestartJitter = 2.0
	}
	return c
}
