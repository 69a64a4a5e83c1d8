package model

// Step is one (State, Decision) pair on a DayPath: the Decision taken from
// State.
type Step struct {
	State    State
	Decision Decision
}

// DayPath is the ordered sequence of (State, Decision) pairs for one agent
// for one day, ending in a state that classifies as End.
type DayPath struct {
	Steps []Step
}

// Terminal returns the last state on the path, or the zero State and false
// if the path is empty.
func (p DayPath) Terminal() (State, bool) {
	if len(p.Steps) == 0 {
		return State{}, false
	}
	return p.Steps[len(p.Steps)-1].State, true
}

// Alternative is one element of a Choiceset: a Trip list plus its real
// sampling-correction term.
type Alternative struct {
	Trips      []Trip
	Correction float64
}

// Equal reports whether two Alternatives carry element-wise equal trip
// lists, ignoring Correction.
func (a Alternative) Equal(o Alternative) bool {
	return TripsEqual(a.Trips, o.Trips)
}

// Choiceset is (agent, sampled zone index array, ordered Alternatives with
// the observed alternative at index 0).
type Choiceset struct {
	Agent        Agent
	SampledZones []int
	Alternatives []Alternative
}
