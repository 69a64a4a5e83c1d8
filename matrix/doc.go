// Package matrix implements the broadcast-shaped array-with-scale ("Mat")
// primitive used throughout the value-function engine to represent utility
// and expected-value tensors compactly.
//
// A Mat is the triple (scale, shape, data); its logical value is
// scale * data. Four shapes are supported: Scalar, RowVec (keyed by
// destination), ColVec (keyed by origin), and ODMat (origin x destination).
// Broadcasting a lower-rank Mat into a higher-rank accumulator follows the
// rules in AddInto; combining a RowVec accumulator with a ColVec part (or
// vice versa) is a programmer error and panics via ErrShapeMismatch.
//
// Every operation here is a single loop over the flat Data slice in a
// deterministic order; there is no separate generic fallback path.
package matrix
