package evcache_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaper-abm/scaper/evcache"
	"github.com/scaper-abm/scaper/matrix"
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/pool"
)

func TestNeedsCachingDefaultsTodoTrue(t *testing.T) {
	rp := pool.NewRowPool(10, 3)
	c := evcache.New(10, 3, rp, math.Inf(-1))
	home, _ := model.Residence(0)
	state := model.State{Activity: model.Home, Location: home, TimeOfDay: 4}
	assert.True(t, c.NeedsCaching(state))
}

func TestNeedsCachingFalseOutsideDayLength(t *testing.T) {
	rp := pool.NewRowPool(10, 3)
	c := evcache.New(10, 3, rp, math.Inf(-1))
	home, _ := model.Residence(0)
	assert.False(t, c.NeedsCaching(model.State{Location: home, TimeOfDay: -1}))
	assert.False(t, c.NeedsCaching(model.State{Location: home, TimeOfDay: 10}))
}

func TestCacheScalarWritesAndClearsTodo(t *testing.T) {
	rp := pool.NewRowPool(10, 3)
	c := evcache.New(10, 3, rp, math.Inf(-1))
	home, _ := model.Residence(0)
	state := model.State{Activity: model.Home, Location: home, TimeOfDay: 4}

	require.NoError(t, c.Cache(state, matrix.NewScalar(2.5)))
	assert.False(t, c.NeedsCaching(state))
	row := c.GetAllTimesteps(state)
	assert.Equal(t, 2.5, row[4])
}

func TestCacheNonFixedAllWritesZoneMajorStride(t *testing.T) {
	rp := pool.NewRowPool(10, 3)
	c := evcache.New(10, 3, rp, math.Inf(-1))
	state := model.State{Activity: model.Depart, Location: model.NonFixedAll(), TimeOfDay: 2}

	m := matrix.New(matrix.ColVec, 3, []float64{1, 2, 3})
	require.NoError(t, c.Cache(state, m))

	row := c.GetAllTimesteps(state)
	stride := 12 // DayLength + 2
	assert.Equal(t, 1.0, row[0*stride+2])
	assert.Equal(t, 2.0, row[1*stride+2])
	assert.Equal(t, 3.0, row[2*stride+2])
}

func TestCacheZeroClearsTodoAndWritesZero(t *testing.T) {
	rp := pool.NewRowPool(10, 3)
	c := evcache.New(10, 3, rp, math.Inf(-1))
	home, _ := model.Residence(0)
	state := model.State{Location: home, TimeOfDay: 9}

	require.NoError(t, c.CacheZero(state))
	assert.False(t, c.NeedsCaching(state))
	assert.Equal(t, 0.0, c.GetAllTimesteps(state)[9])
}

func TestCacheRejectsOutOfRangeTimestep(t *testing.T) {
	rp := pool.NewRowPool(10, 3)
	c := evcache.New(10, 3, rp, math.Inf(-1))
	home, _ := model.Residence(0)
	err := c.Cache(model.State{Location: home, TimeOfDay: 99}, matrix.NewScalar(1))
	require.ErrorIs(t, err, evcache.ErrTimeOutOfRange)
}

func TestDisposeReturnsRowsToPool(t *testing.T) {
	rp := pool.NewRowPool(10, 3)
	c := evcache.New(10, 3, rp, math.Inf(-1))
	home, _ := model.Residence(0)
	c.GetAllTimesteps(model.State{Location: home, TimeOfDay: 0})
	c.Dispose()

	row := rp.RentFixed(0)
	assert.Len(t, row, 12)
}
