package scenario

// WithUniformZones sizes the scenario to numZones zones, every zone
// carrying the same population/employment/parking-rate values -- the
// common case for a toy world where zone attributes are not the object
// under test (S3, S4, S5).
func WithUniformZones(numZones int, population, employment, parkingRate float64) Option {
	return func(c *config) error {
		c.numZones = numZones
		c.pop = repeat(numZones, population)
		c.emp = repeat(numZones, employment)
		c.parking = repeat(numZones, parkingRate)
		return nil
	}
}

// WithZones sets each zone's attributes explicitly; the three slices must
// share numZones' length (worldview.NewZoneData validates this at Build).
func WithZones(numZones int, population, employment, parkingRate []float64) Option {
	return func(c *config) error {
		c.numZones = numZones
		c.pop = population
		c.emp = employment
		c.parking = parkingRate
		return nil
	}
}

func repeat(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
