package statespace

import (
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/worldview"
)

// EstimableModel is a UtilitySpec/ClassSpec pair that can also decompose
// its own utility into a linear combination of named estimated parameters
// plus a fixed remainder. Any EstimableModel is usable
// as a plain UtilitySpec/ClassSpec at simulation time (valuefn, simulate,
// choiceset); costfn.BuildObservation additionally uses the decomposition
// at estimation time. Both decompositions share one parameter space, named
// once by ParameterNames.
type EstimableModel interface {
	UtilitySpec
	ClassSpec

	// ParameterNames names every estimated parameter; the returned rows
	// from ClassTerms and ChoiceTerms are indexed the same way.
	ParameterNames() []string

	// ClassTerms decomposes ClassUtility(agent, class) into an estimated
	// row plus a fixed remainder.
	ClassTerms(agent model.Agent, class int) (row []float64, fixed float64)

	// ChoiceTerms decomposes one (state, decision) contribution the same
	// way Accumulate does, but as named-parameter terms rather than a
	// folded matrix.Mat value.
	ChoiceTerms(world worldview.World, agent model.Agent, latentClass int, state model.State, decision model.Decision) (row []float64, fixed float64, err error)
}
