package model

// State is an immutable value carrying activity, location, continuous
// time, tracked duration, current vehicle, and the has-worked history
// flag. State is a plain value type; the
// invariants that require model configuration to check (day bounds, max
// tracked duration per activity, workzone presence) are enforced by
// statespace.Classify, not by a State constructor here.
type State struct {
	Activity   Activity
	Location   Location
	TimeOfDay  float64 // timesteps since DayStart; may be fractional
	Duration   int     // timesteps within current activity
	Vehicle    Vehicle
	HasWorked  bool
}

// CacheKeyState is the EV cache key: everything about a State except its
// continuous time and, when Location is Residence or Workplace, its
// concrete zone (the zone is fixed per agent for those cases, so it need
// not appear in a per-agent cache key). NonFixed states are cached as a
// full row over all zones, so LocationKind alone -- not the zone or the
// AllZones flag -- distinguishes NonFixed from Residence/Workplace.
type CacheKeyState struct {
	Activity  Activity
	LocKind   LocationKind
	Duration  int
	Vehicle   Vehicle
	HasWorked bool
}

// CacheKey projects a State down to its CacheKeyState.
func (s State) CacheKey() CacheKeyState {
	return CacheKeyState{
		Activity:  s.Activity,
		LocKind:   s.Location.Kind,
		Duration:  s.Duration,
		Vehicle:   s.Vehicle,
		HasWorked: s.HasWorked,
	}
}

// IsNonFixedAll reports whether this State's Location is the compressed
// all-zones wildcard, meaning its EV cache row spans every zone.
func (s State) IsNonFixedAll() bool {
	return s.Location.IsWildcard()
}
