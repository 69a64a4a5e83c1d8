package costfn

import (
	"fmt"

	"github.com/scaper-abm/scaper/choiceset"
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/statespace"
	"github.com/scaper-abm/scaper/worldview"
)

// BuildObservation converts one model.Choiceset into the Observation rows
// CostFunction.Evaluate consumes: every class's membership utility and
// every alternative's realized-path utility, decomposed into the shared
// estimated-parameter space statespace.EstimableModel exposes.
//
// Each alternative's Trips are converted back to a DayPath via
// choiceset.DayPathFromTrips so its per-step utility can be accumulated
// the same way valuefn/simulate do, just as named-parameter terms instead
// of a folded matrix.Mat value.
func BuildObservation(world worldview.World, cs model.Choiceset, spec statespace.EstimableModel, cfg statespace.Config) (Observation, error) {
	numClasses := spec.NumClasses()
	numParams := len(spec.ParameterNames())

	classEstimatedRow := make([][]float64, numClasses)
	classFixedU := make([]float64, numClasses)
	for c := 0; c < numClasses; c++ {
		row, fixed := spec.ClassTerms(cs.Agent, c)
		classEstimatedRow[c] = padRow(row, numParams)
		classFixedU[c] = fixed
	}

	choiceVarMatrix := make([][][]float64, numClasses)
	choiceFixedU := make([][]float64, numClasses)
	for c := 0; c < numClasses; c++ {
		choiceVarMatrix[c] = make([][]float64, len(cs.Alternatives))
		choiceFixedU[c] = make([]float64, len(cs.Alternatives))
		for a, alt := range cs.Alternatives {
			row, fixed, err := alternativeTerms(world, cs.Agent, c, spec, cfg, alt, numParams)
			if err != nil {
				return Observation{}, fmt.Errorf("costfn.BuildObservation: agent %s: class %d: alternative %d: %w", cs.Agent.ID, c, a, err)
			}
			choiceVarMatrix[c][a] = row
			choiceFixedU[c][a] = fixed
		}
	}

	return Observation{
		AgentID:           cs.Agent.ID,
		Weight:            cs.Agent.Weight,
		ClassEstimatedRow: classEstimatedRow,
		ClassFixedU:       classFixedU,
		ChoiceVarMatrix:   choiceVarMatrix,
		ChoiceFixedU:      choiceFixedU,
	}, nil
}

// alternativeTerms sums ChoiceTerms over every step of alt's DayPath,
// starting the fixed remainder from the alternative's own precomputed
// sampling correction.
func alternativeTerms(world worldview.World, agent model.Agent, class int, spec statespace.EstimableModel, cfg statespace.Config, alt model.Alternative, numParams int) ([]float64, float64, error) {
	path, ok := choiceset.DayPathFromTrips(world, agent, alt.Trips, cfg)
	if !ok {
		return nil, 0, fmt.Errorf("alternative trips do not map to a Good->End DayPath: %w", choiceset.ErrInfeasibleObservation)
	}

	row := make([]float64, numParams)
	fixed := alt.Correction
	for _, step := range path.Steps {
		r, f, err := spec.ChoiceTerms(world, agent, class, step.State, step.Decision)
		if err != nil {
			return nil, 0, err
		}
		for j, v := range r {
			if j < numParams {
				row[j] += v
			}
		}
		fixed += f
	}
	return row, fixed, nil
}

func padRow(row []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, row)
	return out
}
