package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaper-abm/scaper/model"
)

func TestLocationConstructorsRejectNegativeZone(t *testing.T) {
	_, err := model.Residence(-1)
	assert.ErrorIs(t, err, model.ErrNegativeZone)

	_, err = model.Workplace(-3)
	assert.ErrorIs(t, err, model.ErrNegativeZone)

	_, err = model.NonFixedZone(-1)
	assert.ErrorIs(t, err, model.ErrNegativeZone)
}

func TestLocationEqual(t *testing.T) {
	a, err := model.Residence(5)
	require.NoError(t, err)
	b, err := model.Residence(5)
	require.NoError(t, err)
	c, err := model.Residence(6)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	all1 := model.NonFixedAll()
	all2 := model.NonFixedAll()
	assert.True(t, all1.Equal(all2))
	assert.True(t, all1.IsWildcard())

	single, err := model.NonFixedZone(2)
	require.NoError(t, err)
	assert.False(t, single.Equal(all1))
}

func TestDecisionEqual(t *testing.T) {
	d1 := model.StartDecision(model.Work)
	d2 := model.StartDecision(model.Work)
	d3 := model.StartDecision(model.Shop)
	assert.True(t, d1.Equal(d2))
	assert.False(t, d1.Equal(d3))

	loc, err := model.Residence(1)
	require.NoError(t, err)
	t1 := model.TravelDecision(model.Car, loc)
	t2 := model.TravelDecision(model.Car, loc)
	t3 := model.TravelDecision(model.Walk, loc)
	assert.True(t, t1.Equal(t2))
	assert.False(t, t1.Equal(t3))

	assert.True(t, model.EndDecision().Equal(model.EndDecision()))
	assert.True(t, model.ContinueDecision().Equal(model.ContinueDecision()))
}

func TestCacheKeyExcludesTimeAndZone(t *testing.T) {
	locA, err := model.Residence(1)
	require.NoError(t, err)
	locB, err := model.Residence(99)
	require.NoError(t, err)

	s1 := model.State{Activity: model.Home, Location: locA, TimeOfDay: 12, Duration: 3, Vehicle: model.VehicleNone}
	s2 := model.State{Activity: model.Home, Location: locB, TimeOfDay: 50, Duration: 3, Vehicle: model.VehicleNone}

	assert.Equal(t, s1.CacheKey(), s2.CacheKey())
}

func TestTripsEqualElementWise(t *testing.T) {
	a := []model.Trip{
		{Activity: model.Work, Mode: model.Car, OriginZone: 1, DestZone: 2, Departure: 30},
	}
	b := []model.Trip{
		{Activity: model.Work, Mode: model.Car, OriginZone: 1, DestZone: 2, Departure: 30, LatentClass: 2},
	}
	c := []model.Trip{
		{Activity: model.Work, Mode: model.Transit, OriginZone: 1, DestZone: 2, Departure: 30},
	}

	assert.True(t, model.TripsEqual(a, b), "LatentClass must not affect equality")
	assert.False(t, model.TripsEqual(a, c))

	alt1 := model.Alternative{Trips: a}
	alt2 := model.Alternative{Trips: b, Correction: 1.5}
	assert.True(t, alt1.Equal(alt2))
}

func TestAgentStartState(t *testing.T) {
	agent := model.Agent{HomeZone: 4}
	s, err := agent.StartState(300)
	require.NoError(t, err)
	assert.Equal(t, model.Depart, s.Activity)
	assert.Equal(t, model.LocResidence, s.Location.Kind)
	assert.Equal(t, 4, s.Location.Zone)
	assert.Equal(t, 300.0, s.TimeOfDay)
	assert.Equal(t, model.VehicleNone, s.Vehicle)
}
