// Broadcast arithmetic for Mat: AddInto, ScaleInplace, LogInplace,
// ExpInplace, DivideRowsIgnoreZero. Each is a Dense/flat fast path with a
// deterministic i->j loop order, extended from plain 2-D row/column
// broadcasting to the four Mat shapes.
package matrix

import "math"

// AddInto folds parts into acc in place: acc's Shape is the target shape,
// and each part is broadcast to it (Scalar into everything, RowVec/ColVec
// into an ODMat's rows/columns, or a same-shape add). Each part contributes
// part.Scale*part.Data[i] (or the broadcast source cell) to acc.Data.
//
// Precondition: acc.Scale == 1. Every accumulator in this engine is rented
// from pool.MatPool, which resets Scale to 1 on Rent; AddInto never needs
// to fold an accumulator scale because it never receives one.
//
// AddInto panics with ErrShapeMismatch when a part cannot be broadcast into
// acc's shape, or when acc.Scale != 1: both indicate a caller bug, not a
// recoverable condition.
func AddInto(acc *Mat, parts ...*Mat) {
	if acc.Scale != 1 {
		panic(ErrShapeMismatch)
	}
	for _, p := range parts {
		addOne(acc, p)
	}
}

func addOne(acc, p *Mat) {
	switch {
	case p.Shp == Scalar:
		addScalarInto(acc, p.Scale*p.Data[0])
	case acc.Shp == p.Shp && acc.NumZones == p.NumZones:
		addSameShapeInto(acc, p)
	case acc.Shp == ODMat && p.Shp == RowVec:
		addRowVecIntoOD(acc, p)
	case acc.Shp == ODMat && p.Shp == ColVec:
		addColVecIntoOD(acc, p)
	default:
		panic(ErrShapeMismatch)
	}
}

// addScalarInto broadcasts a single logical value into every cell of acc.
func addScalarInto(acc *Mat, v float64) {
	for i := range acc.Data {
		acc.Data[i] += v
	}
}

// addSameShapeInto adds p's logical values into acc's, cell for cell.
func addSameShapeInto(acc, p *Mat) {
	if len(acc.Data) != len(p.Data) {
		panic(ErrShapeMismatch)
	}
	for i := range acc.Data {
		acc.Data[i] += p.Scale * p.Data[i]
	}
}

// addRowVecIntoOD adds p (keyed by destination) into every row of acc.
func addRowVecIntoOD(acc, p *Mat) {
	if acc.NumZones != p.NumZones {
		panic(ErrShapeMismatch)
	}
	n := acc.NumZones
	for origin := 0; origin < n; origin++ {
		base := origin * n
		for dest := 0; dest < n; dest++ {
			acc.Data[base+dest] += p.Scale * p.Data[dest]
		}
	}
}

// addColVecIntoOD adds p (keyed by origin) into every column of acc.
func addColVecIntoOD(acc, p *Mat) {
	if acc.NumZones != p.NumZones {
		panic(ErrShapeMismatch)
	}
	n := acc.NumZones
	for origin := 0; origin < n; origin++ {
		base := origin * n
		v := p.Scale * p.Data[origin]
		for dest := 0; dest < n; dest++ {
			acc.Data[base+dest] += v
		}
	}
}

// ScaleInplace multiplies every cell of m.Data by s, folding s into the raw
// data rather than m.Scale so that a subsequent AddInto sees the scaled
// value without needing to track two multiplicative factors.
func ScaleInplace(m *Mat, s float64) {
	for i := range m.Data {
		m.Data[i] *= s
	}
}

// LogInplace takes the natural log of every logical cell value in place,
// folding m.Scale into the result and resetting it to 1.
func LogInplace(m *Mat) {
	for i := range m.Data {
		m.Data[i] = math.Log(m.Scale * m.Data[i])
	}
	m.Scale = 1
}

// ExpInplace exponentiates every logical cell value in place, folding
// m.Scale into the result and resetting it to 1.
func ExpInplace(m *Mat) {
	for i := range m.Data {
		m.Data[i] = math.Exp(m.Scale * m.Data[i])
	}
	m.Scale = 1
}

// DivideRowsIgnoreZero divides each row of an ODMat numerator by the
// corresponding cell of a ColVec denominator, leaving a row unchanged when
// its denominator entry is <= 0. numerator is modified in
// place.
func DivideRowsIgnoreZero(numerator, denom *Mat) {
	if numerator.Shp != ODMat || denom.Shp != ColVec || numerator.NumZones != denom.NumZones {
		panic(ErrShapeMismatch)
	}
	n := numerator.NumZones
	for origin := 0; origin < n; origin++ {
		d := denom.Scale * denom.Data[origin]
		if d <= 0 {
			continue
		}
		base := origin * n
		for dest := 0; dest < n; dest++ {
			numerator.Data[base+dest] = (numerator.Scale * numerator.Data[base+dest]) / d
		}
	}
	numerator.Scale = 1
}
