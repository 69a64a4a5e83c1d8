package dataio

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/statespace"
)

// sqliteSchema mirrors kibbyd-adaptive-state's state.Store convention: one
// schema constant applied with CREATE TABLE IF NOT EXISTS against a shared
// *sql.DB, rather than a separate migration framework.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS trips (
	run_id      TEXT NOT NULL,
	agent_id    TEXT NOT NULL,
	latent_class INTEGER NOT NULL,
	activity    TEXT NOT NULL,
	mode        TEXT NOT NULL,
	origin_zone INTEGER NOT NULL,
	dest_zone   INTEGER NOT NULL,
	departure   REAL NOT NULL,
	travel_time REAL NOT NULL,
	arrival     REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS choicesets (
	run_id             TEXT NOT NULL,
	agent_id           TEXT NOT NULL,
	sampled_zones      TEXT NOT NULL,
	alternative_index  INTEGER NOT NULL,
	correction         REAL NOT NULL,
	trips_json         TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS parameters (
	run_id    TEXT NOT NULL,
	name      TEXT NOT NULL,
	value     REAL NOT NULL,
	estimate  INTEGER NOT NULL
);
`

// SQLiteSink is a structured Sink for choicesets, trips, and estimated
// parameters, alongside the plain CSV implementation. RunID stamps every
// row so successive runs against the same database never collide and rows
// across tables for one run can be joined.
type SQLiteSink struct {
	db    *sql.DB
	RunID string
}

// OpenSQLiteSink opens (creating if absent) a SQLite database at path and
// applies sqliteSchema.
func OpenSQLiteSink(path, runID string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("dataio.OpenSQLiteSink: open: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("dataio.OpenSQLiteSink: migrate: %w", err)
	}
	return &SQLiteSink{db: db, RunID: runID}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

func (s *SQLiteSink) WriteSimulation(trips []model.Trip, cfg statespace.Config) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("dataio.SQLiteSink.WriteSimulation: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt := `INSERT INTO trips (run_id, agent_id, latent_class, activity, mode, origin_zone, dest_zone, departure, travel_time, arrival)
	         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, t := range trips {
		if _, err := tx.Exec(stmt, s.RunID, t.AgentID, t.LatentClass, t.Activity.String(), t.Mode.String(), t.OriginZone, t.DestZone, t.Departure, t.TravelTime, t.Arrival); err != nil {
			return fmt.Errorf("dataio.SQLiteSink.WriteSimulation: insert agent %s: %w", t.AgentID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("dataio.SQLiteSink.WriteSimulation: commit: %w", err)
	}
	return nil
}

func (s *SQLiteSink) WriteChoicesets(sets []model.Choiceset) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("dataio.SQLiteSink.WriteChoicesets: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt := `INSERT INTO choicesets (run_id, agent_id, sampled_zones, alternative_index, correction, trips_json)
	         VALUES (?, ?, ?, ?, ?, ?)`
	for _, cs := range sets {
		zones := joinInts(cs.SampledZones)
		for altIdx, alt := range cs.Alternatives {
			if _, err := tx.Exec(stmt, s.RunID, cs.Agent.ID, zones, altIdx, alt.Correction, encodeTrips(alt.Trips)); err != nil {
				return fmt.Errorf("dataio.SQLiteSink.WriteChoicesets: agent %s: %w", cs.Agent.ID, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("dataio.SQLiteSink.WriteChoicesets: commit: %w", err)
	}
	return nil
}

func (s *SQLiteSink) WriteParameters(params []ParameterRow) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("dataio.SQLiteSink.WriteParameters: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt := `INSERT INTO parameters (run_id, name, value, estimate) VALUES (?, ?, ?, ?)`
	for _, p := range params {
		estimate := 0
		if p.Estimate {
			estimate = 1
		}
		if _, err := tx.Exec(stmt, s.RunID, p.Name, p.Value, estimate); err != nil {
			return fmt.Errorf("dataio.SQLiteSink.WriteParameters: parameter %q: %w", p.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("dataio.SQLiteSink.WriteParameters: commit: %w", err)
	}
	return nil
}

var _ Sink = (*SQLiteSink)(nil)
