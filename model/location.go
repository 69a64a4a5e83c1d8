package model

import (
	"errors"
	"fmt"
)

// ErrNegativeZone indicates a Location constructor received a negative zone
// index, which is never valid.
var ErrNegativeZone = errors.New("model: zone index must be >= 0")

// LocationKind discriminates the three location cases. Residence and
// Workplace always carry one concrete zone; NonFixed is the only case that
// may carry the "all zones" wildcard used by the compressed EV computation.
type LocationKind int

const (
	LocResidence LocationKind = iota
	LocWorkplace
	LocNonFixed
)

func (k LocationKind) String() string {
	switch k {
	case LocResidence:
		return "Residence"
	case LocWorkplace:
		return "Workplace"
	case LocNonFixed:
		return "NonFixed"
	default:
		return fmt.Sprintf("LocationKind(%d)", int(k))
	}
}

// Location is a tagged union: Residence and Workplace always point at one
// concrete zone; NonFixed carries either a concrete zone or the AllZones
// wildcard used only during EV computation.
type Location struct {
	Kind     LocationKind
	Zone     int  // meaningful iff !AllZones
	AllZones bool // valid only when Kind == LocNonFixed
}

// Residence builds a concrete Residence(zone) Location.
func Residence(zone int) (Location, error) {
	if zone < 0 {
		return Location{}, fmt.Errorf("model.Residence: %w", ErrNegativeZone)
	}
	return Location{Kind: LocResidence, Zone: zone}, nil
}

// Workplace builds a concrete Workplace(zone) Location.
func Workplace(zone int) (Location, error) {
	if zone < 0 {
		return Location{}, fmt.Errorf("model.Workplace: %w", ErrNegativeZone)
	}
	return Location{Kind: LocWorkplace, Zone: zone}, nil
}

// NonFixedZone builds the "exploded" single-destination NonFixed form used
// during simulation.
func NonFixedZone(zone int) (Location, error) {
	if zone < 0 {
		return Location{}, fmt.Errorf("model.NonFixedZone: %w", ErrNegativeZone)
	}
	return Location{Kind: LocNonFixed, Zone: zone}, nil
}

// NonFixedAll builds the compressed all-destinations NonFixed form used
// only during EV computation.
func NonFixedAll() Location {
	return Location{Kind: LocNonFixed, AllZones: true}
}

// IsWildcard reports whether this Location is the compressed NonFixed(All)
// form.
func (l Location) IsWildcard() bool {
	return l.Kind == LocNonFixed && l.AllZones
}

// Equal reports value equality between two Locations.
func (l Location) Equal(o Location) bool {
	return l.Kind == o.Kind && l.AllZones == o.AllZones && (l.AllZones || l.Zone == o.Zone)
}

func (l Location) String() string {
	if l.Kind == LocNonFixed && l.AllZones {
		return "NonFixed(All)"
	}
	return fmt.Sprintf("%s(%d)", l.Kind, l.Zone)
}
