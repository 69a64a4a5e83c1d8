package scenario

import (
	"fmt"

	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/worldview"
)

// WithUniformNetworkMode sets mode's LOS to the same time/wait/access/cost
// value for every OD pair, peak and off-peak alike. Must run after a
// zones option (WithZones/WithUniformZones) has set numZones.
func WithUniformNetworkMode(mode model.Mode, time, wait, access, cost float64) Option {
	return func(c *config) error {
		if c.numZones == 0 {
			return fmt.Errorf("scenario.WithUniformNetworkMode: numZones is 0, apply a zones option first")
		}
		n2 := c.numZones * c.numZones
		c.modes[mode] = &worldview.ModeLOS{
			Time: repeat(n2, time), PeakTime: repeat(n2, time),
			Wait: repeat(n2, wait), PeakWait: repeat(n2, wait),
			Access: repeat(n2, access), PeakAccess: repeat(n2, access),
			Cost: repeat(n2, cost), PeakCost: repeat(n2, cost),
		}
		return nil
	}
}

// WithPeakNetworkMode sets mode's LOS with distinct peak and off-peak
// travel times (S4's peak-blending scenario needs a genuine gap between
// the two to observe blending).
func WithPeakNetworkMode(mode model.Mode, offPeakTime, peakTime, wait, access, cost float64) Option {
	return func(c *config) error {
		if c.numZones == 0 {
			return fmt.Errorf("scenario.WithPeakNetworkMode: numZones is 0, apply a zones option first")
		}
		n2 := c.numZones * c.numZones
		c.modes[mode] = &worldview.ModeLOS{
			Time: repeat(n2, offPeakTime), PeakTime: repeat(n2, peakTime),
			Wait: repeat(n2, wait), PeakWait: repeat(n2, wait),
			Access: repeat(n2, access), PeakAccess: repeat(n2, access),
			Cost: repeat(n2, cost), PeakCost: repeat(n2, cost),
		}
		return nil
	}
}

// WithPeakSchedule sets the AM/PM peak windows referenced by
// worldview.PeakSchedule.ProportionPeak.
func WithPeakSchedule(schedule worldview.PeakSchedule) Option {
	return func(c *config) error {
		c.peak = schedule
		return nil
	}
}
