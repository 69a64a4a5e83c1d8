package statespace

import (
	"math"

	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/worldview"
)

// NextSingleState picks the concrete deterministic time delta a decision
// consumes during simulation: End is instantaneous; Travel
// consumes the sum of scalar travel+wait+access at the current time of day;
// everything else consumes one decision step, clipped so it never runs past
// DayEnd. Travel's origin and destination must both be concrete zones (the
// simulator only ever calls this on exploded decisions).
func NextSingleState(world worldview.World, state model.State, decision model.Decision, cfg Config) (float64, error) {
	switch decision.Kind {
	case model.DecEnd:
		return 0, nil
	case model.DecTravel:
		return scalarTravelTotal(world, decision.TravelMode, state.Location, decision.TravelDest, state.TimeOfDay)
	default:
		step := cfg.DecisionStep
		if remaining := cfg.DayEnd - state.TimeOfDay; remaining < step {
			step = remaining
		}
		return step, nil
	}
}

// scalarTravelTotal sums travel+wait+access minutes for a concrete
// origin/destination pair, folding the peak/off-peak Mat sequence each
// World query returns.
func scalarTravelTotal(world worldview.World, mode model.Mode, origin, dest model.Location, t float64) (float64, error) {
	var total float64

	timeMats, err := world.TravelTime(mode, origin, dest, t)
	if err != nil {
		return 0, err
	}
	waitMats, err := world.TravelWait(mode, origin, dest, t)
	if err != nil {
		return 0, err
	}
	accessMats, err := world.TravelAccess(mode, origin, dest, t)
	if err != nil {
		return 0, err
	}
	for _, m := range timeMats {
		total += m.At(0)
	}
	for _, m := range waitMats {
		total += m.At(0)
	}
	for _, m := range accessMats {
		total += m.At(0)
	}
	return total, nil
}

// NextIntegralTimeStates returns the set of integer-timestep States
// reachable from (state, decision): for Travel, one State per
// element of World.TravelTimesteps; otherwise the two States anchoring
// floor and ceil of the continuous-time result, used for linear
// interpolation by valuefn.
func NextIntegralTimeStates(world worldview.World, agent model.Agent, state model.State, decision model.Decision, cfg Config) ([]model.State, error) {
	if decision.Kind == model.DecTravel {
		steps, err := world.TravelTimesteps(decision.TravelMode, state.Location, decision.TravelDest)
		if err != nil {
			return nil, err
		}
		out := make([]model.State, 0, len(steps))
		for _, dt := range steps {
			ns, err := NextState(agent, state, decision, state.TimeOfDay+float64(dt), cfg)
			if err != nil {
				return nil, err
			}
			out = append(out, ns)
		}
		return out, nil
	}

	var step float64
	if decision.Kind != model.DecEnd {
		step = cfg.DecisionStep
		if remaining := cfg.DayEnd - state.TimeOfDay; remaining < step {
			step = remaining
		}
	}
	raw := state.TimeOfDay + step
	lo, hi := math.Floor(raw), math.Ceil(raw)

	loState, err := NextState(agent, state, decision, lo, cfg)
	if err != nil {
		return nil, err
	}
	out := []model.State{loState}
	if hi != lo {
		hiState, err := NextState(agent, state, decision, hi, cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, hiState)
	}
	return out, nil
}
