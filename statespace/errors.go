package statespace

import "errors"

// ErrImpossibleState indicates a state the traversal or simulator proves
// unreachable by construction was nonetheless encountered -- a bug, not a
// recoverable condition: a Good state whose option sum is
// zero, or a Bad state reached during simulation.
var ErrImpossibleState = errors.New("statespace: impossible state reached")
