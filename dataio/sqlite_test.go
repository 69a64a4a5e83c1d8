package dataio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaper-abm/scaper/dataio"
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/statespace"
)

func TestSQLiteSinkAndLoaderRoundtripParametersAndTrips(t *testing.T) {
	dsn := "file:" + t.TempDir() + "/run.db?cache=shared"

	sink, err := dataio.OpenSQLiteSink(dsn, "run-1")
	require.NoError(t, err)
	defer sink.Close()

	params := []dataio.ParameterRow{{Name: "beta_time", Value: -0.05, Estimate: true}}
	require.NoError(t, sink.WriteParameters(params))

	trips := []model.Trip{{
		AgentID: "a1", LatentClass: 0, Activity: model.Work, Mode: model.Car,
		OriginZone: 0, DestZone: 1, Departure: 1, TravelTime: 10, Arrival: 2,
	}}
	require.NoError(t, sink.WriteSimulation(trips, statespace.Config{}))

	loader, err := dataio.OpenSQLiteLoader(dsn, "run-1")
	require.NoError(t, err)
	defer loader.Close()

	gotParams, err := loader.LoadParameters()
	require.NoError(t, err)
	require.Len(t, gotParams, 1)
	assert.Equal(t, "beta_time", gotParams[0].Name)
	assert.True(t, gotParams[0].Estimate)

	gotTrips, err := loader.LoadTrips(statespace.Config{})
	require.NoError(t, err)
	require.Len(t, gotTrips, 1)
	assert.Equal(t, "a1", gotTrips[0].AgentID)
	assert.Equal(t, "Work", gotTrips[0].Activity)
}

func TestSQLiteSinkScopesRowsByRunID(t *testing.T) {
	dsn := "file:" + t.TempDir() + "/run.db?cache=shared"

	sinkA, err := dataio.OpenSQLiteSink(dsn, "run-a")
	require.NoError(t, err)
	defer sinkA.Close()
	require.NoError(t, sinkA.WriteParameters([]dataio.ParameterRow{{Name: "x", Value: 1}}))

	loaderB, err := dataio.OpenSQLiteLoader(dsn, "run-b")
	require.NoError(t, err)
	defer loaderB.Close()

	gotB, err := loaderB.LoadParameters()
	require.NoError(t, err)
	assert.Empty(t, gotB)
}
