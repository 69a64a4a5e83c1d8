package costfn

import "fmt"

// hessianEpsilon is the central-difference step used to build the
// numerical Hessian.
const hessianEpsilon = 1e-8

// NumericalHessian computes the Hessian of the log-likelihood at theta by
// central differences of the gradient, symmetrized by
// averaging the two off-diagonal finite-difference estimates.
func (cf *CostFunction) NumericalHessian(theta []float64) ([][]float64, error) {
	n := cf.NumParams
	h := zeroMatrix(n)
	for k := 0; k < n; k++ {
		plus := append([]float64(nil), theta...)
		minus := append([]float64(nil), theta...)
		plus[k] += hessianEpsilon
		minus[k] -= hessianEpsilon

		rPlus, err := cf.Evaluate(plus)
		if err != nil {
			return nil, fmt.Errorf("costfn.NumericalHessian: perturbing parameter %d up: %w", k, err)
		}
		rMinus, err := cf.Evaluate(minus)
		if err != nil {
			return nil, fmt.Errorf("costfn.NumericalHessian: perturbing parameter %d down: %w", k, err)
		}
		for j := 0; j < n; j++ {
			h[k][j] = (rPlus.Gradient[j] - rMinus.Gradient[j]) / (2 * hessianEpsilon)
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			avg := (h[i][j] + h[j][i]) / 2
			h[i][j] = avg
			h[j][i] = avg
		}
	}
	return h, nil
}
