package statespace

import "github.com/scaper-abm/scaper/model"

// Classification labels a State for value-function and simulation purposes.
type Classification int

const (
	Bad Classification = iota
	Good
	End
)

func (c Classification) String() string {
	switch c {
	case Bad:
		return "Bad"
	case Good:
		return "Good"
	case End:
		return "End"
	default:
		return "Classification(?)"
	}
}

// Classify labels a State Good, Bad, or End.
func Classify(agent model.Agent, state model.State, cfg Config) Classification {
	if state.TimeOfDay < cfg.DayStart || state.TimeOfDay > cfg.DayEnd {
		return Bad
	}
	if state.TimeOfDay == cfg.DayEnd {
		atHome := state.Location.Kind == model.LocResidence
		if state.Activity == model.Home && atHome && state.HasWorked == agent.HasWork {
			return End
		}
		return Bad
	}
	switch state.Activity {
	case model.Home:
		if state.Location.Kind != model.LocResidence {
			return Bad
		}
	case model.Work:
		if !agent.HasWork || state.Location.Kind != model.LocWorkplace {
			return Bad
		}
	}
	return Good
}
