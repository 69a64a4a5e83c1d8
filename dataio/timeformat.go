package dataio

import (
	"fmt"

	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/statespace"
)

// timestepToClock converts a timestep count (spec's internal "timesteps
// since DayStart" unit) to a wall-clock hour-of-day, the inverse of
// clockToTimestep.
func timestepToClock(ts float64, cfg statespace.Config) float64 {
	return cfg.DayStart + ts*cfg.DecisionStep
}

// clockToTimestep converts a wall-clock hour-of-day back to a timestep
// count, matching the Trips file format's "departure time as HH:MM"
// requirement.
func clockToTimestep(hour float64, cfg statespace.Config) float64 {
	if cfg.DecisionStep == 0 {
		return 0
	}
	return (hour - cfg.DayStart) / cfg.DecisionStep
}

// formatClock renders an hour-of-day as HH:MM, truncated to the minute:
// output files always show whole minutes even though the internal
// representation stays a full-precision real.
func formatClock(hour float64) string {
	totalMinutes := int(hour * 60)
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	h := (totalMinutes / 60) % 24
	m := totalMinutes % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}

// parseClock parses an HH:MM wall-clock string into an hour-of-day float.
func parseClock(s string) (float64, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("dataio: malformed HH:MM time %q: %w", s, ErrInputFormat)
	}
	return float64(h) + float64(m)/60, nil
}

func modeByName(name string) (model.Mode, error) {
	for _, m := range model.AllModes() {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("dataio: unknown mode %q: %w", name, ErrInputFormat)
}

func activityByName(name string) (model.Activity, error) {
	for _, a := range []model.Activity{model.Depart, model.Arrive, model.Home, model.Work, model.Shop, model.Other} {
		if a.String() == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("dataio: unknown activity %q: %w", name, ErrInputFormat)
}
