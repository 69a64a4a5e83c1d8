package worldview

import (
	"errors"
	"fmt"

	"github.com/scaper-abm/scaper/model"
)

// ErrDimensionMismatch indicates a Network or ZoneData array was not sized
// NumZones*NumZones (or NumZones) as required.
var ErrDimensionMismatch = errors.New("worldview: dimension mismatch")

// ModeLOS holds the four dense OD level-of-service tensors for one mode,
// row-major (origin-major), each of length NumZones*NumZones. When a mode
// has no peak/off-peak distinction (model.Mode.HasPeakDistinction ==
// false), Peak and OffPeak hold identical data.
type ModeLOS struct {
	Time, PeakTime     []float64
	Wait, PeakWait     []float64
	Access, PeakAccess []float64
	Cost, PeakCost     []float64 // cost is not peak-blended but kept per-mode
}

// Network is the immutable, whole-model set of LOS tensors, one ModeLOS per
// model.Mode, loaded once by an InputLoader and shared read-only across all
// agents and worker goroutines.
type Network struct {
	NumZones int
	Modes    map[model.Mode]*ModeLOS
}

// NewNetwork validates that every supplied ModeLOS is sized NumZones^2.
func NewNetwork(numZones int, modes map[model.Mode]*ModeLOS) (*Network, error) {
	n2 := numZones * numZones
	for m, los := range modes {
		for _, arr := range [][]float64{los.Time, los.PeakTime, los.Wait, los.PeakWait, los.Access, los.PeakAccess, los.Cost, los.PeakCost} {
			if arr != nil && len(arr) != n2 {
				return nil, fmt.Errorf("worldview.NewNetwork: mode %s: %w", m, ErrDimensionMismatch)
			}
		}
	}
	return &Network{NumZones: numZones, Modes: modes}, nil
}

// ZoneData is the immutable, whole-model set of per-zone land-use and
// parking attributes, indexed by zone.
type ZoneData struct {
	NumZones           int
	Population         []float64
	Employment         []float64
	ParkingRatePerHour []float64
}

// NewZoneData validates that every array is sized NumZones.
func NewZoneData(numZones int, pop, emp, parking []float64) (*ZoneData, error) {
	for _, arr := range [][]float64{pop, emp, parking} {
		if len(arr) != numZones {
			return nil, fmt.Errorf("worldview.NewZoneData: %w", ErrDimensionMismatch)
		}
	}
	return &ZoneData{NumZones: numZones, Population: pop, Employment: emp, ParkingRatePerHour: parking}, nil
}
