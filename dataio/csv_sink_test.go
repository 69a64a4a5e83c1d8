package dataio_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaper-abm/scaper/dataio"
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/statespace"
)

func TestCSVSinkWriteSimulationFormatsClockColumns(t *testing.T) {
	var buf bytes.Buffer
	sink := dataio.CSVSink{Simulation: &buf}
	cfg := statespace.Config{DayStart: 5, DecisionStep: 1.0 / 6}

	trips := []model.Trip{{
		AgentID: "a1", Activity: model.Work, Mode: model.Car,
		OriginZone: 0, DestZone: 1, Departure: 1, TravelTime: 10, Arrival: 2,
	}}
	require.NoError(t, sink.WriteSimulation(trips, cfg))

	out := buf.String()
	assert.True(t, strings.Contains(out, "05:10"))
	assert.True(t, strings.Contains(out, "a1"))
}

func TestCSVSinkWriteChoicesetsEmitsOneRowPerAlternative(t *testing.T) {
	var buf bytes.Buffer
	sink := dataio.CSVSink{Choicesets: &buf}

	sets := []model.Choiceset{{
		Agent:        model.Agent{ID: "a1"},
		SampledZones: []int{0, 1},
		Alternatives: []model.Alternative{
			{Trips: nil, Correction: 0.1},
			{Trips: nil, Correction: 0.2},
		},
	}}
	require.NoError(t, sink.WriteChoicesets(sets))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3) // header + 2 alternatives
}

func TestCSVSinkWriteParametersRoundtripsThroughCSVLoaderShapedInput(t *testing.T) {
	var buf bytes.Buffer
	sink := dataio.CSVSink{Parameters: &buf}

	params := []dataio.ParameterRow{
		{Name: "nClasses", Value: 2, Estimate: false},
		{Name: "beta_time", Value: -0.05, Estimate: true},
	}
	require.NoError(t, sink.WriteParameters(params))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[1], "nClasses")
}
