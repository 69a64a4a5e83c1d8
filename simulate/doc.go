// Package simulate draws one forward-simulated DayPath per agent: a
// latent class, then a single deterministic-per-draw walk from
// start_state to an End-classified state, choosing one decision at a time
// by inverse-CDF sampling over that state's exploded option Phis.
//
// The walk is an iterative frontier walk rather than the recursive walker
// valuefn uses: simulation never backtracks and only ever holds one state
// at a time, advancing level by level like a frontier of size one.
package simulate
