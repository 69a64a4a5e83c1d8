package pool

import "github.com/scaper-abm/scaper/matrix"

// MatPool is a per-worker, per-shape free-list of *matrix.Mat. It is not
// safe for concurrent use; each worker goroutine must own exactly one.
type MatPool struct {
	numZones int
	free     [4][]*matrix.Mat // indexed by matrix.Shape
}

// NewMatPool builds a MatPool for a world of the given zone count. A
// numZones of 0 is valid for a Scalar-only pool (e.g. tests).
func NewMatPool(numZones int) *MatPool {
	return &MatPool{numZones: numZones}
}

// NumZones returns the zone count this pool was built for.
func (p *MatPool) NumZones() int {
	return p.numZones
}

// Rent returns a zeroed Mat of the given shape, either reused from the
// free-list or freshly allocated.
func (p *MatPool) Rent(shp matrix.Shape) *matrix.Mat {
	stack := p.free[shp]
	if n := len(stack); n > 0 {
		m := stack[n-1]
		p.free[shp] = stack[:n-1]
		for i := range m.Data {
			m.Data[i] = 0
		}
		m.Scale = 1
		return m
	}
	data := make([]float64, shp.Len(p.numZones))
	return matrix.New(shp, p.numZones, data)
}

// Release returns m to the free-list for its shape. Releasing a Mat rented
// from a different pool (a different numZones) is a caller bug; it is not
// detected here for performance.
func (p *MatPool) Release(m *matrix.Mat) {
	p.free[m.Shp] = append(p.free[m.Shp], m)
}
