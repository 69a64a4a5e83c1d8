package statespace

import "github.com/scaper-abm/scaper/model"

// NextState is the transition function: timeOfDay is
// the already-computed new time (from NextSingleState or an integral-time
// anchor), not derived here.
func NextState(agent model.Agent, state model.State, decision model.Decision, timeOfDay float64, cfg Config) (model.State, error) {
	switch decision.Kind {
	case model.DecStart:
		dur := 1
		if md := cfg.MaxDuration(decision.StartActivity); md < dur {
			dur = md
		}
		return model.State{
			Activity:  decision.StartActivity,
			Location:  state.Location,
			TimeOfDay: timeOfDay,
			Duration:  dur,
			Vehicle:   state.Vehicle,
			HasWorked: nextHasWorkedOnStart(agent, state.HasWorked, decision.StartActivity, dur),
		}, nil

	case model.DecEnd:
		return model.State{
			Activity:  model.Depart,
			Location:  state.Location,
			TimeOfDay: timeOfDay,
			Duration:  0,
			Vehicle:   state.Vehicle,
			HasWorked: state.HasWorked,
		}, nil

	case model.DecContinue:
		newDur := state.Duration + 1
		if md := cfg.MaxDuration(state.Activity); newDur > md {
			newDur = md
		}
		return model.State{
			Activity:  state.Activity,
			Location:  state.Location,
			TimeOfDay: timeOfDay,
			Duration:  newDur,
			Vehicle:   state.Vehicle,
			HasWorked: nextHasWorkedOnContinue(agent, state, newDur),
		}, nil

	case model.DecTravel:
		vehicle := state.Vehicle
		switch {
		case decision.TravelDest.Kind == model.LocResidence:
			vehicle = model.VehicleNone
		case state.Location.Kind == model.LocResidence:
			vehicle = model.VehicleOf(decision.TravelMode)
		}
		return model.State{
			Activity:  model.Arrive,
			Location:  decision.TravelDest,
			TimeOfDay: timeOfDay,
			Duration:  0,
			Vehicle:   vehicle,
			HasWorked: state.HasWorked,
		}, nil

	default:
		return model.State{}, ErrImpossibleState
	}
}

// nextHasWorkedOnStart implements the mandated-work-duration rule of spec
// §4.3 for a Start(a) decision: under a mandate, has_worked only ever
// reflects Work completions of exactly the mandated length; starting Work
// with a one-timestep mandate satisfies it immediately. Without a mandate,
// has_worked is sticky once Work has ever been started.
func nextHasWorkedOnStart(agent model.Agent, prevHasWorked bool, startActivity model.Activity, newDuration int) bool {
	if agent.MandatedWorkDuration > 0 {
		if startActivity == model.Work {
			return newDuration == agent.MandatedWorkDuration
		}
		return prevHasWorked
	}
	return prevHasWorked || startActivity == model.Work
}

// nextHasWorkedOnContinue implements the same rule for a Continue decision:
// has_worked flips true the instant the mandated duration is completed and
// flips back false if the agent continues past it.
func nextHasWorkedOnContinue(agent model.Agent, state model.State, newDuration int) bool {
	if agent.MandatedWorkDuration > 0 {
		if state.Activity != model.Work {
			return state.HasWorked
		}
		switch {
		case newDuration == agent.MandatedWorkDuration:
			return true
		case state.Duration == agent.MandatedWorkDuration:
			return false
		default:
			return state.HasWorked
		}
	}
	return state.HasWorked || state.Activity == model.Work
}
