package pool_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scaper-abm/scaper/matrix"
	"github.com/scaper-abm/scaper/pool"
)

var negInf = math.Inf(-1)

func TestMatPoolRentReleaseReuses(t *testing.T) {
	p := pool.NewMatPool(3)
	m1 := p.Rent(matrix.ODMat)
	m1.Data[0] = 42
	p.Release(m1)

	m2 := p.Rent(matrix.ODMat)
	assert.Equal(t, 0.0, m2.Data[0], "rented Mat must come back zeroed")
	assert.Equal(t, 1.0, m2.Scale)
	assert.Same(t, m1, m2, "same-shape rent after release should reuse the freed Mat")
}

func TestRowPoolFixedAndZoneMajorLengths(t *testing.T) {
	rp := pool.NewRowPool(10, 5)
	assert.Equal(t, 12, rp.FixedRowLen())
	assert.Equal(t, 60, rp.ZoneMajorRowLen())

	row := rp.RentFixed(negInf)
	assert.Len(t, row, 12)
	for _, v := range row {
		assert.Equal(t, negInf, v)
	}
	rp.ReleaseFixed(row)

	zrow := rp.RentZoneMajor(0)
	assert.Len(t, zrow, 60)
	rp.ReleaseZoneMajor(zrow)
}

func TestScratchPoolKeyedByLength(t *testing.T) {
	sp := pool.NewScratchPool()
	buf := sp.Rent(4)
	buf[0] = 9
	sp.Release(buf)

	buf2 := sp.Rent(4)
	assert.Equal(t, 0.0, buf2[0])

	buf3 := sp.Rent(7)
	assert.Len(t, buf3, 7)
}
