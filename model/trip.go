package model

// Trip is one serialized origin->destination movement, either observed
// (loaded from input) or produced by the simulator/choice-set generator.
type Trip struct {
	AgentID     string
	LatentClass int
	Activity    Activity // the activity started upon arrival
	Mode        Mode
	OriginZone  int
	DestZone    int
	Departure   float64 // timesteps since DayStart; may be fractional
	TravelTime  float64 // minutes; derived from LOS, not re-derived on read
	Arrival     float64 // timesteps since DayStart
	Observed    bool    // true if loaded from input rather than simulated
}

// tripKey is the comparable projection of Trip used for Alternative
// deduplication: two trips are "the same" for dedup purposes independent of
// which latent class or observed flag produced them.
type tripKey struct {
	Activity   Activity
	Mode       Mode
	OriginZone int
	DestZone   int
	Departure  float64
}

func (t Trip) key() tripKey {
	return tripKey{
		Activity:   t.Activity,
		Mode:       t.Mode,
		OriginZone: t.OriginZone,
		DestZone:   t.DestZone,
		Departure:  t.Departure,
	}
}

// TripsEqual reports whether two ordered Trip lists are element-wise
// equal: two alternatives are the same choice iff their trip lists match
// exactly.
func TripsEqual(a, b []Trip) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].key() != b[i].key() {
			return false
		}
	}
	return true
}
