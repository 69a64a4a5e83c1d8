package statespace

import "github.com/scaper-abm/scaper/model"

// Options generates the feasible Decisions out of state,
// dispatching on state.Activity. It is intentionally liberal: it never
// checks downstream time-space feasibility, since infeasible resulting
// states are filtered later by producing -Inf value functions, not by
// pruning here. explode controls whether a NonFixed destination is
// compressed into one Travel(mode, NonFixed(All)) option or exploded into
// one Travel(mode, NonFixed(z)) option per zone in zones.
func Options(explode bool, agent model.Agent, zones []int, state model.State, cfg Config) []model.Decision {
	switch state.Activity {
	case model.Depart:
		return departOptions(explode, agent, zones, state, cfg)
	case model.Arrive:
		return arriveOptions(state, cfg)
	default:
		return []model.Decision{model.ContinueDecision(), model.EndDecision()}
	}
}

func departOptions(explode bool, agent model.Agent, zones []int, state model.State, cfg Config) []model.Decision {
	modes := cfg.ModesFor(agent)
	out := make([]model.Decision, 0, len(modes)*3)

	if state.Location.Kind != model.LocResidence {
		home, _ := model.Residence(agent.HomeZone)
		for _, m := range modes {
			out = append(out, model.TravelDecision(m, home))
		}
	}
	if agent.HasWork && state.Location.Kind != model.LocWorkplace {
		work, _ := model.Workplace(agent.WorkZone)
		for _, m := range modes {
			out = append(out, model.TravelDecision(m, work))
		}
	}
	if explode {
		for _, m := range modes {
			for _, z := range zones {
				dest, err := model.NonFixedZone(z)
				if err != nil {
					continue
				}
				out = append(out, model.TravelDecision(m, dest))
			}
		}
	} else {
		for _, m := range modes {
			out = append(out, model.TravelDecision(m, model.NonFixedAll()))
		}
	}
	return out
}

func arriveOptions(state model.State, cfg Config) []model.Decision {
	switch state.Location.Kind {
	case model.LocResidence:
		return []model.Decision{model.StartDecision(model.Home)}
	case model.LocWorkplace:
		return []model.Decision{model.StartDecision(model.Work)}
	default:
		acts := cfg.DiscretionaryActivities()
		out := make([]model.Decision, len(acts))
		for i, a := range acts {
			out[i] = model.StartDecision(a)
		}
		return out
	}
}
