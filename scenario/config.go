package scenario

import (
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/statespace"
	"github.com/scaper-abm/scaper/worldview"
)

// config aggregates every knob an Option may set, resolved once per Build
// call (builder.builderConfig's shape: one struct, deterministic
// zero-value defaults, later options override earlier ones).
type config struct {
	numZones int
	pop, emp, parking []float64

	modes map[model.Mode]*worldview.ModeLOS
	peak  worldview.PeakSchedule

	agents []model.Agent

	stateCfg statespace.Config
}

func newConfig() *config {
	return &config{
		modes: make(map[model.Mode]*worldview.ModeLOS),
		stateCfg: statespace.Config{
			DayStart:                  0,
			DayEnd:                    3,
			DecisionStep:              1,
			DefaultMaxTrackedDuration: 10,
		},
	}
}
