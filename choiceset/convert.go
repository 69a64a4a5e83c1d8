package choiceset

import (
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/statespace"
	"github.com/scaper-abm/scaper/worldview"
)

// maxFillSteps bounds DayPathFromTrips's Continue-filling loops, mirroring
// simulate.MaxSteps's role: a real day plan never needs anywhere near this
// many decisions, so hitting it means cfg is misconfigured rather than
// that a legitimate path is very long.
const maxFillSteps = 4096

// TripsFromDayPath is the forward conversion: scan
// (State, Decision) pairs and emit a Trip whenever a Travel is immediately
// followed by a Start, which is always the case for a path the state
// machine itself produced (Arrive only ever offers Start options).
// latentClass is stamped onto every emitted Trip since a DayPath itself
// carries no class information.
func TripsFromDayPath(agent model.Agent, latentClass int, path model.DayPath) []model.Trip {
	var trips []model.Trip
	for i := 0; i+1 < len(path.Steps); i++ {
		cur, next := path.Steps[i], path.Steps[i+1]
		if cur.Decision.Kind != model.DecTravel || next.Decision.Kind != model.DecStart {
			continue
		}
		trips = append(trips, model.Trip{
			AgentID:     agent.ID,
			LatentClass: latentClass,
			Activity:    next.Decision.StartActivity,
			Mode:        cur.Decision.TravelMode,
			OriginZone:  cur.State.Location.Zone,
			DestZone:    cur.Decision.TravelDest.Zone,
			Departure:   cur.State.TimeOfDay,
			TravelTime:  next.State.TimeOfDay - cur.State.TimeOfDay,
			Arrival:     next.State.TimeOfDay,
		})
	}
	return trips
}

// DayPathFromTrips is the reverse conversion: walk time
// forward from start_state, emitting Continue until each trip's departure
// half-step threshold is reached, then End -> Travel -> Start, filling any
// remaining time after the last trip with Continue. Returns ok == false if
// any produced state is Bad or the terminal state is not End.
func DayPathFromTrips(world worldview.World, agent model.Agent, trips []model.Trip, cfg statespace.Config) (model.DayPath, bool) {
	state, err := agent.StartState(cfg.DayStart)
	if err != nil {
		return model.DayPath{}, false
	}

	var steps []model.Step
	for _, trip := range trips {
		var ok bool
		state, steps, ok = continueUntil(world, agent, cfg, state, steps, trip.Departure)
		if !ok {
			return model.DayPath{}, false
		}

		dest, err := activityLocation(trip.Activity, trip.DestZone)
		if err != nil {
			return model.DayPath{}, false
		}

		for _, dec := range []model.Decision{
			model.EndDecision(),
			model.TravelDecision(trip.Mode, dest),
			model.StartDecision(trip.Activity),
		} {
			if statespace.Classify(agent, state, cfg) == statespace.Bad {
				return model.DayPath{}, false
			}
			next, err := applyDecision(world, agent, cfg, state, dec)
			if err != nil {
				return model.DayPath{}, false
			}
			steps = append(steps, model.Step{State: state, Decision: dec})
			state = next
		}
	}

	for i := 0; i < maxFillSteps; i++ {
		switch statespace.Classify(agent, state, cfg) {
		case statespace.End:
			return model.DayPath{Steps: steps}, true
		case statespace.Bad:
			return model.DayPath{}, false
		}
		dec := model.ContinueDecision()
		next, err := applyDecision(world, agent, cfg, state, dec)
		if err != nil {
			return model.DayPath{}, false
		}
		steps = append(steps, model.Step{State: state, Decision: dec})
		state = next
	}
	return model.DayPath{}, false
}

// continueUntil emits Continue transitions until advancing one more
// DecisionStep would overshoot departure by more than half a step.
func continueUntil(world worldview.World, agent model.Agent, cfg statespace.Config, state model.State, steps []model.Step, departure float64) (model.State, []model.Step, bool) {
	for i := 0; i < maxFillSteps; i++ {
		if state.TimeOfDay+cfg.DecisionStep/2 >= departure {
			return state, steps, true
		}
		if statespace.Classify(agent, state, cfg) == statespace.Bad {
			return model.State{}, nil, false
		}
		dec := model.ContinueDecision()
		next, err := applyDecision(world, agent, cfg, state, dec)
		if err != nil {
			return model.State{}, nil, false
		}
		steps = append(steps, model.Step{State: state, Decision: dec})
		state = next
	}
	return model.State{}, nil, false
}

// applyDecision computes decision's deterministic time cost and the
// resulting State, the same two-call sequence simulate.walker.advance
// uses during a forward walk.
func applyDecision(world worldview.World, agent model.Agent, cfg statespace.Config, state model.State, decision model.Decision) (model.State, error) {
	dt, err := statespace.NextSingleState(world, state, decision, cfg)
	if err != nil {
		return model.State{}, err
	}
	return statespace.NextState(agent, state, decision, state.TimeOfDay+dt, cfg)
}

// activityLocation maps an activity to the Location kind a Travel decision
// arriving to start it must target: Home->Residence(dest),
// Work->Workplace(dest), everything else->NonFixed(dest).
func activityLocation(activity model.Activity, zone int) (model.Location, error) {
	switch activity {
	case model.Home:
		return model.Residence(zone)
	case model.Work:
		return model.Workplace(zone)
	default:
		return model.NonFixedZone(zone)
	}
}
