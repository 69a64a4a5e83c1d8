package model

import "fmt"

// Mode is a travel mode. The set is extensible: add a constant and extend
// String/AllModes together, exactly like adding an Activity below.
type Mode int

const (
	Car Mode = iota
	Transit
	Walk
	Bike
	numModes
)

// String implements fmt.Stringer for Mode.
func (m Mode) String() string {
	switch m {
	case Car:
		return "Car"
	case Transit:
		return "Transit"
	case Walk:
		return "Walk"
	case Bike:
		return "Bike"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// AllModes returns every defined Mode in stable, index order.
func AllModes() []Mode {
	return []Mode{Car, Transit, Walk, Bike}
}

// HasPeakDistinction reports whether LOS for this mode is split into a peak
// and an off-peak Mat by worldview.World, or returned as a single Mat.
func (m Mode) HasPeakDistinction() bool {
	return m == Car || m == Transit
}

// Vehicle is the vehicle an agent is currently carrying, derived from Mode
// when leaving Residence and cleared on arrival at Residence.
type Vehicle int

const (
	VehicleNone Vehicle = iota
	VehicleCar
	VehicleBike
)

func (v Vehicle) String() string {
	switch v {
	case VehicleNone:
		return "None"
	case VehicleCar:
		return "Car"
	case VehicleBike:
		return "Bike"
	default:
		return fmt.Sprintf("Vehicle(%d)", int(v))
	}
}

// VehicleOf derives the Vehicle an agent picks up by traveling with mode m.
// Modes with no associated vehicle (Transit, Walk) yield VehicleNone.
func VehicleOf(m Mode) Vehicle {
	switch m {
	case Car:
		return VehicleCar
	case Bike:
		return VehicleBike
	default:
		return VehicleNone
	}
}

// Activity is a phase of an agent's day. Depart and Arrive are internal
// phase markers splitting the theoretical single "end travel, start new
// activity" joint choice into three successive transitions (End -> Travel
// -> Start); they never appear as a Start target chosen by the agent's own
// utility, only as intermediate activities on the DayPath.
type Activity int

const (
	Depart Activity = iota
	Arrive
	Home
	Work
	Shop
	Other
	numActivities
)

func (a Activity) String() string {
	switch a {
	case Depart:
		return "Depart"
	case Arrive:
		return "Arrive"
	case Home:
		return "Home"
	case Work:
		return "Work"
	case Shop:
		return "Shop"
	case Other:
		return "Other"
	default:
		return fmt.Sprintf("Activity(%d)", int(a))
	}
}

// IsPhaseMarker reports whether a is Depart or Arrive, the two internal
// phases that are never a legitimate Start(a) target.
func (a Activity) IsPhaseMarker() bool {
	return a == Depart || a == Arrive
}

// DiscretionaryActivities is the default configured set of activities an
// agent may Start upon Arrive at a NonFixed location. modelctx.Config may
// override this set; see modelctx.Config.DiscretionaryActivities.
func DiscretionaryActivities() []Activity {
	return []Activity{Shop, Other}
}
