package model

// Agent is one population input record. Agents are mutated only by an
// InputLoader; every other consumer treats Agent as read-only.
type Agent struct {
	ID       string // raw input identifier
	SampleID string // stable identifier, uuid.New() when the loader left ID empty or ambiguous

	// Demographics.
	Age     int
	Sex     string
	Income  float64
	HasKids bool

	// Fixed geography.
	HomeZone int
	HasWork  bool
	WorkZone int // meaningful iff HasWork

	// Vehicle / travel-card ownership.
	OwnsCar        bool
	HasTransitCard bool

	Weight float64 // sample expansion weight

	// MandatedWorkDuration is the number of timesteps a mandated workday
	// lasts, or 0 if the agent has no mandate (has_worked is then sticky).
	MandatedWorkDuration int
}

// StartState is the agent's DayPath origin: Depart activity, at Residence,
// time DayStart, zero duration, no vehicle, has_worked false. dayStart is
// supplied by the caller (modelctx.Config.DayStart) since Agent carries no
// model configuration.
func (a Agent) StartState(dayStart float64) (State, error) {
	loc, err := Residence(a.HomeZone)
	if err != nil {
		return State{}, err
	}
	return State{
		Activity:  Depart,
		Location:  loc,
		TimeOfDay: dayStart,
		Duration:  0,
		Vehicle:   VehicleNone,
		HasWorked: false,
	}, nil
}
