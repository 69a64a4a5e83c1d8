// Package bfgs implements the maximization-mode BFGS optimizer with a
// bracketing-sectioning line search used to fit the latent-class MNL cost
// function in package costfn.
//
// Optimize is the top-level dispatcher: validate inputs once, loop over
// outer iterations, delegate the numerically heavy steps (direction, line
// search, inverse-Hessian update) to focused helpers, and return a typed
// Result carrying a Status alongside a sentinel error.
//
// The starting inverse Hessian and the sandwich standard-error computation
// are dense linear algebra over a small (numParams x numParams) matrix;
// both are done with github.com/katalvlaran/lvlath/matrix, whose LU-based
// Inverse and generic Mul are exactly the tool for a one-off dense
// inversion and a three-matrix product.
package bfgs
