package statespace

import "github.com/scaper-abm/scaper/model"

// Config carries the model-wide parameters Options, Classify, and the
// transition functions need but that Agent/State themselves do not own
//.
type Config struct {
	DayStart, DayEnd, DecisionStep float64

	// MaxTrackedDuration overrides the default per-activity duration cap;
	// an activity absent from the map falls back to DefaultMaxTrackedDuration.
	MaxTrackedDuration        map[model.Activity]int
	DefaultMaxTrackedDuration int

	// NoCarModes is the mode set offered to an agent without a car; empty
	// means "the full mode set".
	NoCarModes []model.Mode

	// Discretionary overrides model.DiscretionaryActivities when non-empty.
	Discretionary []model.Activity
}

// MaxDuration returns the tracked-duration cap for activity a.
func (c Config) MaxDuration(a model.Activity) int {
	if v, ok := c.MaxTrackedDuration[a]; ok {
		return v
	}
	return c.DefaultMaxTrackedDuration
}

// DiscretionaryActivities returns the configured discretionary set, or the
// model package default when none was configured.
func (c Config) DiscretionaryActivities() []model.Activity {
	if len(c.Discretionary) > 0 {
		return c.Discretionary
	}
	return model.DiscretionaryActivities()
}

// ModesFor returns the mode set Options should offer agent for a Depart
// decision: every mode if the agent owns a car, else the configured
// no-car subset (or every mode, if that subset was left unconfigured).
func (c Config) ModesFor(agent model.Agent) []model.Mode {
	if agent.OwnsCar {
		return model.AllModes()
	}
	if len(c.NoCarModes) > 0 {
		return c.NoCarModes
	}
	return model.AllModes()
}
