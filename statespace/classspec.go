package statespace

import (
	"math"

	"github.com/scaper-abm/scaper/model"
)

// ClassSpec is the collaborator simulate and choiceset use to draw and
// weight latent-class membership: ClassUtility
// returns latent class c's class-membership utility for agent, the softmax
// input; NumClasses returns how many classes to soft max over. Callers
// typically close over a modelctx.ParameterSet the way statespace.UtilitySpec
// implementations do.
type ClassSpec interface {
	NumClasses() int
	ClassUtility(agent model.Agent, class int) float64
}

// ClassProbabilities computes the normalized softmax over every class's
// ClassUtility, using the standard max-subtraction for numerical stability
// (same shape as worldview.ZoneProbabilities, one level up: classes instead
// of zones).
func ClassProbabilities(agent model.Agent, spec ClassSpec) []float64 {
	n := spec.NumClasses()
	u := make([]float64, n)
	maxU := u[0]
	if n > 0 {
		maxU = spec.ClassUtility(agent, 0)
	}
	for c := 0; c < n; c++ {
		u[c] = spec.ClassUtility(agent, c)
		if u[c] > maxU {
			maxU = u[c]
		}
	}
	var sum float64
	for c := range u {
		u[c] = math.Exp(u[c] - maxU)
		sum += u[c]
	}
	for c := range u {
		u[c] /= sum
	}
	return u
}
