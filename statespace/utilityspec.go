package statespace

import (
	"github.com/scaper-abm/scaper/matrix"
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/worldview"
)

// UtilitySpec is the collaborator valuefn and simulate use to accumulate
// u(state, decision) into a rented matrix.Mat. into is
// already shaped matrix.DecisionShape(state.Location.IsWildcard(),
// decision.TravelDest.IsWildcard()) and zeroed; Accumulate must only add
// into into.Data, never replace it or change its Shape/Scale.
type UtilitySpec interface {
	Accumulate(world worldview.World, agent model.Agent, latentClass int, state model.State, decision model.Decision, into *matrix.Mat) error
}
