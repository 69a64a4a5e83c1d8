package dataio_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaper-abm/scaper/dataio"
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/statespace"
)

func TestCSVLoaderLoadZoneData(t *testing.T) {
	zones := strings.NewReader("100,50,2.5\n200,80,1.0\n")
	loader := dataio.CSVLoader{Zones: zones}

	zdata, err := loader.LoadZoneData(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 200}, zdata.Population)
	assert.Equal(t, []float64{50, 80}, zdata.Employment)
	assert.Equal(t, []float64{2.5, 1.0}, zdata.ParkingRatePerHour)
}

func TestCSVLoaderLoadZoneDataRejectsShortRow(t *testing.T) {
	loader := dataio.CSVLoader{Zones: strings.NewReader("100,50\n")}
	_, err := loader.LoadZoneData(1)
	require.Error(t, err)
}

func TestCSVLoaderLoadAgentsAssignsSampleIDWhenIDIsEmpty(t *testing.T) {
	row := ",30,M,50000,false,0,true,1,true,false,1.0,48\n"
	loader := dataio.CSVLoader{Agents: strings.NewReader(row)}

	agents, err := loader.LoadAgents()
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.NotEmpty(t, agents[0].SampleID)
	assert.Equal(t, 30, agents[0].Age)
	assert.True(t, agents[0].HasWork)
	assert.Equal(t, 1, agents[0].WorkZone)
}

func TestCSVLoaderLoadTripsConvertsClockToTimestep(t *testing.T) {
	cfg := statespace.Config{DayStart: 5, DecisionStep: 1.0 / 6}
	row := "a1,Work,Car,0,1,05:10,10\n"
	loader := dataio.CSVLoader{Trips: strings.NewReader(row)}

	trips, err := loader.LoadTrips(cfg)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.InDelta(t, 1.0, trips[0].Departure, 1e-9)
	assert.Equal(t, 10.0, trips[0].TravelTime)
}

func TestCSVLoaderLoadTripsRejectsUnknownMode(t *testing.T) {
	loader := dataio.CSVLoader{Trips: strings.NewReader("a1,Work,Rocket,0,1,05:10,10\n")}
	_, err := loader.LoadTrips(statespace.Config{})
	require.Error(t, err)
}

func TestCSVLoaderLoadNetworkRejectsOutOfOrderRows(t *testing.T) {
	rows := "1,0,Car,1,1,0,0,0,0,1,1\n0,0,Car,1,1,0,0,0,0,1,1\n"
	loader := dataio.CSVLoader{Network: strings.NewReader(rows)}
	_, err := loader.LoadNetwork(2)
	require.Error(t, err)
}

func TestCSVLoaderLoadNetworkBuildsPerModeTensors(t *testing.T) {
	rows := "0,0,Car,1,2,0,0,0,0,1,1\n0,1,Car,3,4,0,0,0,0,1,1\n"
	loader := dataio.CSVLoader{Network: strings.NewReader(rows)}
	net, err := loader.LoadNetwork(2)
	require.NoError(t, err)
	require.Contains(t, net.Modes, model.Car)
	los := net.Modes[model.Car]
	assert.Equal(t, 1.0, los.Time[0])
	assert.Equal(t, 3.0, los.Time[1])
	assert.Equal(t, 4.0, los.PeakTime[1])
}
