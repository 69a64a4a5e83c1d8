package dataio

import (
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/statespace"
	"github.com/scaper-abm/scaper/worldview"
)

// InputLoader reads the four input record kinds a run needs: zones,
// network, agents, and observed trips. CSVLoader is the plain-CSV
// implementation; SQLiteLoader reads back what SQLiteSink previously wrote.
type InputLoader interface {
	LoadZoneData(numZones int) (*worldview.ZoneData, error)
	LoadNetwork(numZones int) (*worldview.Network, error)
	LoadAgents() ([]model.Agent, error)
	LoadTrips(cfg statespace.Config) ([]model.Trip, error)
}

// Sink writes the three output record kinds a run produces: simulated
// trips, choicesets, and estimated parameters. CSVSink and SQLiteSink are
// the two implementations; obsToCsv and sim both write through whichever
// Sink cmd/scaper constructed for the run.
type Sink interface {
	WriteSimulation(trips []model.Trip, cfg statespace.Config) error
	WriteChoicesets(sets []model.Choiceset) error
	WriteParameters(params []ParameterRow) error
}

// ParameterRow is one row of the Parameters file format: "parameter,
// value, estimate", with nClasses conventionally first.
type ParameterRow struct {
	Name     string
	Value    float64
	Estimate bool
}
