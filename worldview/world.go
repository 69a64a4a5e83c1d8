package worldview

import (
	"github.com/scaper-abm/scaper/matrix"
	"github.com/scaper-abm/scaper/model"
)

// World is the read-only-for-the-agent snapshot of network and land-use
// state. Every method that returns a slice of *matrix.Mat returns a
// peak/off-peak decomposition for modes with model.Mode.HasPeakDistinction,
// or a single element for modes without one; utility accumulation is
// responsible for scaling and summing the returned Mats, never for
// mutating them in place.
type World interface {
	TravelTime(mode model.Mode, origin, dest model.Location, timeOfDay float64) ([]*matrix.Mat, error)
	TravelWait(mode model.Mode, origin, dest model.Location, timeOfDay float64) ([]*matrix.Mat, error)
	TravelAccess(mode model.Mode, origin, dest model.Location, timeOfDay float64) ([]*matrix.Mat, error)
	TravelCost(mode model.Mode, origin, dest model.Location, timeOfDay float64) ([]*matrix.Mat, error)

	ParkingRate(loc model.Location) (*matrix.Mat, error)
	LogPop(loc model.Location) (*matrix.Mat, error)
	LogEmp(loc model.Location) (*matrix.Mat, error)

	// Corrections returns the zone-sampling correction Mat for (origin,
	// dest); zero-valued on a world that is not sampled.
	Corrections(origin, dest model.Location) (*matrix.Mat, error)

	// TravelTimesteps returns the sorted, deduplicated set of integral
	// timesteps floor(min)..ceil(max) the travel may consume across peak
	// and off-peak LOS.
	TravelTimesteps(mode model.Mode, origin, dest model.Location) ([]int, error)

	IsSampled() bool
	Zones() []int
	NumZones() int
	ZIndex(zone int) int
}
