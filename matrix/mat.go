package matrix

import "fmt"

// Shape discriminates the four broadcast shapes a Mat may take.
type Shape int

const (
	// Scalar carries exactly one logical value, broadcast to any shape.
	Scalar Shape = iota
	// RowVec carries one value per destination zone (length NumZones);
	// broadcasts to each row of an ODMat.
	RowVec
	// ColVec carries one value per origin zone (length NumZones);
	// broadcasts to each column of an ODMat.
	ColVec
	// ODMat carries NumZones*NumZones values, one per (origin, dest) pair,
	// stored row-major (origin-major).
	ODMat
)

func (s Shape) String() string {
	switch s {
	case Scalar:
		return "Scalar"
	case RowVec:
		return "RowVec"
	case ColVec:
		return "ColVec"
	case ODMat:
		return "ODMat"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Len returns the number of float64 cells a Mat of this Shape holds for the
// given NumZones.
func (s Shape) Len(numZones int) int {
	switch s {
	case Scalar:
		return 1
	case RowVec, ColVec:
		return numZones
	case ODMat:
		return numZones * numZones
	default:
		return 0
	}
}

// Mat is a broadcast-shaped array with an overall scale: its logical value
// is Scale*Data[i] at each cell. NumZones is the dimension backing
// RowVec/ColVec/ODMat; it is 0 (unused) for Scalar.
type Mat struct {
	Scale    float64
	Shp      Shape
	NumZones int
	Data     []float64
}

// New builds a Mat of the given shape, backed by data (not copied). len(data)
// must equal shp.Len(numZones); this is not re-validated here for
// performance -- callers that source data from a Pool already guarantee it.
func New(shp Shape, numZones int, data []float64) *Mat {
	return &Mat{Scale: 1, Shp: shp, NumZones: numZones, Data: data}
}

// NewScalar builds a Scalar Mat with logical value v.
func NewScalar(v float64) *Mat {
	return &Mat{Scale: 1, Shp: Scalar, Data: []float64{v}}
}

// NewZeroed allocates a fresh zeroed Mat of the given shape (bypassing any
// Pool; use pool.MatPool.Rent in hot paths instead).
func NewZeroed(shp Shape, numZones int) (*Mat, error) {
	if shp != Scalar && numZones <= 0 {
		return nil, fmt.Errorf("matrix.NewZeroed: %w", ErrInvalidDimensions)
	}
	return New(shp, numZones, make([]float64, shp.Len(numZones))), nil
}

// Len returns the number of cells in m.Data.
func (m *Mat) Len() int { return len(m.Data) }

// At returns the logical value (Scale*Data[i]) at flat index i.
func (m *Mat) At(i int) float64 { return m.Scale * m.Data[i] }

// RowMajorIndex computes the flat index of an ODMat cell (origin, dest).
func (m *Mat) RowMajorIndex(origin, dest int) int { return origin*m.NumZones + dest }

// AtOD returns the logical value at ODMat cell (origin, dest). Panics via
// index-out-of-range if m is not an ODMat of sufficient size; callers own
// shape-checking before calling this on a hot path.
func (m *Mat) AtOD(origin, dest int) float64 { return m.At(m.RowMajorIndex(origin, dest)) }

// Sum returns the sum of logical values across all cells.
func (m *Mat) Sum() float64 {
	var total float64
	for _, v := range m.Data {
		total += v
	}
	return total * m.Scale
}

// Clone returns a deep copy of m.
func (m *Mat) Clone() *Mat {
	data := make([]float64, len(m.Data))
	copy(data, m.Data)
	return &Mat{Scale: m.Scale, Shp: m.Shp, NumZones: m.NumZones, Data: data}
}
