package scenario

import "github.com/scaper-abm/scaper/statespace"

// WithDayConfig overrides the scenario's statespace.Config wholesale
// (DayStart/DayEnd/DecisionStep/tracked durations/no-car modes).
func WithDayConfig(cfg statespace.Config) Option {
	return func(c *config) error {
		c.stateCfg = cfg
		return nil
	}
}
