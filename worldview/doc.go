// Package worldview implements the per-agent World snapshot: level-of-
// service (LOS) queries, land-use attributes, peak-period blending, and
// zone importance sampling with its correction terms. FullWorld answers
// queries against the whole network; SampledWorld answers them against an
// agent-specific subset of zones with an unbiasedness correction folded
// in.
//
// A RowVec or ODMat LOS Mat a World method returns aliases directly into
// the World's own backing arrays (FullWorld, or the gathered arrays a
// SampledWorld built for its sample); Scalar and ColVec results are fresh
// copies. Callers must treat every returned Mat as a read-only input to
// matrix.AddInto and must never call matrix.ScaleInplace, LogInplace, or
// ExpInplace on them -- those mutate Data in place and are reserved for
// Mats a caller rented itself from a pool.MatPool.
package worldview
