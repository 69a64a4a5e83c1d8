package matrix

import "errors"

// ErrShapeMismatch indicates an attempt to combine incompatible Mat shapes
// (e.g. folding a ColVec part into a RowVec accumulator, or Mats with
// differing NumZones). It is a programmer-error sentinel: this class of
// error always panics rather than propagating as a value; nothing in this
// module recovers that panic.
var ErrShapeMismatch = errors.New("matrix: shape mismatch")

// ErrInvalidDimensions indicates a non-positive NumZones was supplied to a
// constructor that requires one.
var ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")
