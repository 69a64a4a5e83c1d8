package bfgs

import (
	"errors"
	"fmt"
)

// Optimize maximizes objective starting from x0, using score as the
// sum-of-score matrix that seeds H0 and, on return,
// feeds the sandwich standard-error computation (step 8). score may be nil
// or the wrong shape; Optimize then starts from the identity.
//
// Stage 1 validates once; stage 2 is the outer loop, delegating direction
// computation, the line search, and the inverse-Hessian update to focused
// helpers -- the shape of tsp.SolveWithMatrix's "validate once, route to a
// per-phase helper" dispatcher.
func Optimize(objective Objective, x0 []float64, score [][]float64, opts Options) (Result, error) {
	// Stage 1 - validate.
	if objective == nil {
		return Result{}, fmt.Errorf("bfgs.Optimize: objective must not be nil")
	}
	if len(x0) == 0 {
		return Result{}, fmt.Errorf("bfgs.Optimize: starting point must not be empty")
	}
	opts = opts.withDefaults()
	n := len(x0)

	h := initialInverseHessian(score, n)

	x := append([]float64(nil), x0...)
	value, grad, err := objective(x)
	if err != nil {
		return Result{}, fmt.Errorf("bfgs.Optimize: evaluating starting point: %w", err)
	}

	// Stage 2 - outer loop.
	alphaPrev := 1.0
	for iter := 0; iter < opts.MaxOuterIterations; iter++ {
		direction := matVec(h, grad)
		dirSum := absSum(direction)
		if !isFiniteValue(dirSum) {
			return Result{
				X: x, Value: value, Gradient: grad, InverseHessian: h,
				StandardErrors: standardErrors(h, score),
				Iterations:     iter,
				Status:         NumericalFailure,
			}, ErrNonFiniteDirection
		}

		deriv0 := dotSlice(grad, direction)
		alpha0 := minFloat(minFloat(alphaPrev*10, opts.MaxVarChange/dirSum), 1.0)

		ls, err := lineSearch(objective, x, deriv0, direction, alpha0)
		if err != nil {
			return Result{
				X: x, Value: value, Gradient: grad, InverseHessian: h,
				StandardErrors: standardErrors(h, score),
				Iterations:     iter,
				Status:         LineSearchFailed,
			}, err
		}

		newX := addScaled(x, direction, ls.alpha)
		newValue, newGrad := ls.value, ls.grad

		deltaX := sub(newX, x)
		deltaG := sub(newGrad, grad)
		h = updateInverseHessian(h, deltaX, deltaG)

		converged := absDiff(newValue, value) <= convergenceValueTolerance && absSum(newGrad) < convergenceGradientTolerance

		x, value, grad = newX, newValue, newGrad
		alphaPrev = ls.alpha

		if converged {
			return Result{
				X: x, Value: value, Gradient: grad, InverseHessian: h,
				StandardErrors: standardErrors(h, score),
				Iterations:     iter + 1,
				Status:         WithinConvergenceTolerance,
			}, nil
		}
	}

	return Result{
		X: x, Value: value, Gradient: grad, InverseHessian: h,
		StandardErrors: standardErrors(h, score),
		Iterations:     opts.MaxOuterIterations,
		Status:         MaxIterationsReached,
	}, ErrMaxIterationsReached
}

// updateInverseHessian applies the standard BFGS rank-2
// inverse-Hessian update, resetting to identity when the curvature
// condition fails. The rank-2 formula is the textbook minimizing-BFGS
// update, so it runs on the negated gradient step -deltaG: Optimize
// maximizes with direction = H.grad (no sign flip on the direction
// itself), which makes deltaG = A.deltaX for a concave quadratic's true
// Hessian A, i.e. deltaX . deltaG < 0 on every iteration -- so the guard
// tests the curvature of the *negated* deltaG and resets when that is
// <= 0 (raw deltaX . deltaG >= 0); testing the raw deltaG instead would
// mean the rank-2 branch never executes and H never learns curvature.
func updateInverseHessian(h [][]float64, deltaX, rawDeltaG []float64) [][]float64 {
	n := len(h)
	deltaG := negate(rawDeltaG)
	curvature := dotSlice(deltaX, deltaG)
	if curvature <= 0 {
		return identity(n)
	}
	rho := 1.0 / curvature

	hDeltaG := matVec(h, deltaG)
	deltaGHDeltaG := dotSlice(deltaG, hDeltaG)

	next := make([][]float64, n)
	for i := 0; i < n; i++ {
		next[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			term := h[i][j]
			term -= rho * (deltaX[i]*hDeltaG[j] + hDeltaG[i]*deltaX[j])
			term += rho * rho * deltaGHDeltaG * deltaX[i] * deltaX[j]
			term += rho * deltaX[i] * deltaX[j]
			next[i][j] = term
		}
	}
	return next
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

// IsNumericalFailure reports whether err is the NumericalFailure error kind.
func IsNumericalFailure(err error) bool { return errors.Is(err, ErrNonFiniteDirection) }

// IsLineSearchFailure reports whether err is the LineSearchFailure error
// kind.
func IsLineSearchFailure(err error) bool { return errors.Is(err, ErrLineSearchFailure) }
