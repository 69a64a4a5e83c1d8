package choiceset

import "errors"

// ErrInfeasibleObservation indicates an agent's observed trips do not map
// to a valid Good->...->End DayPath under the current model:
// recoverable, the caller logs and skips the agent rather than aborting.
var ErrInfeasibleObservation = errors.New("choiceset: observed trips do not map to a feasible DayPath")

// ErrNoAlternatives indicates every conditional path probability collapsed
// to zero while computing an alternative's correction, meaning the
// class-average probability itself was zero -- a modeling bug (mismatched
// spec/parameters), not a data problem.
var ErrNoAlternatives = errors.New("choiceset: class-averaged path probability is zero")
