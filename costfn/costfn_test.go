package costfn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaper-abm/scaper/costfn"
)

func twoClassObservation() costfn.Observation {
	return costfn.Observation{
		AgentID: "a1",
		Weight:  2,
		ClassEstimatedRow: [][]float64{
			{1, 0},
			{0, 1},
		},
		ClassFixedU: []float64{0, 0},
		ChoiceVarMatrix: [][][]float64{
			{{1, 0}, {0, 0}},
			{{0, 1}, {0, 0}},
		},
		ChoiceFixedU: [][]float64{
			{0, 0},
			{0, 0},
		},
	}
}

func TestEvaluateGradientMatchesFiniteDifferences(t *testing.T) {
	cf := &costfn.CostFunction{
		Observations: []costfn.Observation{twoClassObservation()},
		NumParams:    2,
		Workers:      1,
	}
	theta := []float64{0.3, -0.2}

	result, err := cf.Evaluate(theta)
	require.NoError(t, err)
	require.Len(t, result.Gradient, 2)

	const h = 1e-6
	for j := 0; j < 2; j++ {
		plus := append([]float64(nil), theta...)
		minus := append([]float64(nil), theta...)
		plus[j] += h
		minus[j] -= h

		rPlus, err := cf.Evaluate(plus)
		require.NoError(t, err)
		rMinus, err := cf.Evaluate(minus)
		require.NoError(t, err)

		finiteDiff := (rPlus.Value - rMinus.Value) / (2 * h)
		assert.InDelta(t, finiteDiff, result.Gradient[j], 1e-4, "gradient component %d", j)
	}
}

func TestEvaluateRejectsWrongLengthTheta(t *testing.T) {
	cf := &costfn.CostFunction{
		Observations: []costfn.Observation{twoClassObservation()},
		NumParams:    2,
	}
	_, err := cf.Evaluate([]float64{1})
	assert.Error(t, err)
}

func TestScoreMatrixIsSymmetricWithNonnegativeDiagonal(t *testing.T) {
	cf := &costfn.CostFunction{
		Observations: []costfn.Observation{twoClassObservation(), twoClassObservation()},
		NumParams:    2,
		Workers:      2,
	}
	result, err := cf.Evaluate([]float64{0.1, 0.4})
	require.NoError(t, err)
	require.Len(t, result.Score, 2)

	for i := range result.Score {
		assert.GreaterOrEqual(t, result.Score[i][i], 0.0)
		for j := range result.Score[i] {
			assert.InDelta(t, result.Score[i][j], result.Score[j][i], 1e-12)
		}
	}
}

func TestValidateNamesAnUnusedEstimatedParameter(t *testing.T) {
	obs := twoClassObservation()
	// Widen every row by one column that is never nonzero anywhere.
	for i, row := range obs.ClassEstimatedRow {
		obs.ClassEstimatedRow[i] = append(row, 0)
	}
	for c, cls := range obs.ChoiceVarMatrix {
		for a, row := range cls {
			obs.ChoiceVarMatrix[c][a] = append(row, 0)
		}
	}

	cf := &costfn.CostFunction{
		Observations: []costfn.Observation{obs},
		NumParams:    3,
	}
	err := cf.Validate([]string{"beta_time", "beta_cost", "beta_unused"})
	require.Error(t, err)
	assert.ErrorIs(t, err, costfn.ErrMissingEstimatedParameter)
	assert.Contains(t, err.Error(), "beta_unused")
}

func TestNumericalHessianIsSymmetric(t *testing.T) {
	cf := &costfn.CostFunction{
		Observations: []costfn.Observation{twoClassObservation()},
		NumParams:    2,
	}
	h, err := cf.NumericalHessian([]float64{0.2, -0.1})
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.InDelta(t, h[0][1], h[1][0], 1e-6)
}
