package bfgs

import (
	"math"

	lvmatrix "github.com/katalvlaran/lvlath/matrix"
)

// initialInverseHessian computes H0 as the inverse of
// the sum-of-score matrix at x0, falling back to identity if score is the
// wrong shape or the inversion fails (e.g. a singular score matrix from too
// few observations).
func initialInverseHessian(score [][]float64, n int) [][]float64 {
	if len(score) != n {
		return identity(n)
	}
	dense, err := toDense(score)
	if err != nil {
		return identity(n)
	}
	inv, err := lvmatrix.Inverse(dense)
	if err != nil {
		return identity(n)
	}
	return fromMatrix(inv)
}

// standardErrors computes sqrt(diag(H . B . H)),
// via lvlath/matrix's generic dense Mul rather than a hand-rolled
// triple loop, since this is a one-off O(n^3) computation done once per
// Optimize call (not per iteration).
func standardErrors(h [][]float64, score [][]float64) []float64 {
	n := len(h)
	if len(score) != n {
		return nil
	}
	hDense, err := toDense(h)
	if err != nil {
		return nil
	}
	bDense, err := toDense(score)
	if err != nil {
		return nil
	}
	hb, err := lvmatrix.Mul(hDense, bDense)
	if err != nil {
		return nil
	}
	hbh, err := lvmatrix.Mul(hb, hDense)
	if err != nil {
		return nil
	}
	se := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := hbh.At(i, i)
		if err != nil || v < 0 {
			v = 0
		}
		se[i] = math.Sqrt(v)
	}
	return se
}

func toDense(m [][]float64) (*lvmatrix.Dense, error) {
	n := len(m)
	d, err := lvmatrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j, v := range m[i] {
			if err := d.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}

func fromMatrix(m lvmatrix.Matrix) [][]float64 {
	n := m.Rows()
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, m.Cols())
		for j := 0; j < m.Cols(); j++ {
			v, _ := m.At(i, j)
			out[i][j] = v
		}
	}
	return out
}
