package dataio

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/scaper-abm/scaper/statespace"
)

// SQLiteLoader reads back rows a SQLiteSink previously wrote for one
// RunID. cmd/scaper does not open one; its subcommands read their inputs
// through CSVLoader.
type SQLiteLoader struct {
	db    *sql.DB
	RunID string
}

// OpenSQLiteLoader opens an existing SQLite database at path for reading.
func OpenSQLiteLoader(path, runID string) (*SQLiteLoader, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("dataio.OpenSQLiteLoader: open: %w", err)
	}
	return &SQLiteLoader{db: db, RunID: runID}, nil
}

// Close closes the underlying database connection.
func (l *SQLiteLoader) Close() error {
	return l.db.Close()
}

// LoadTrips reads back every trip row stored under l.RunID. Departure,
// travel time and arrival are returned as stored; cfg is not used.
func (l *SQLiteLoader) LoadTrips(cfg statespace.Config) ([]TripRow, error) {
	rows, err := l.db.Query(`SELECT agent_id, latent_class, activity, mode, origin_zone, dest_zone, departure, travel_time, arrival FROM trips WHERE run_id = ?`, l.RunID)
	if err != nil {
		return nil, fmt.Errorf("dataio.SQLiteLoader.LoadTrips: query: %w", err)
	}
	defer rows.Close()

	var out []TripRow
	for rows.Next() {
		var r TripRow
		if err := rows.Scan(&r.AgentID, &r.LatentClass, &r.Activity, &r.Mode, &r.OriginZone, &r.DestZone, &r.Departure, &r.TravelTime, &r.Arrival); err != nil {
			return nil, fmt.Errorf("dataio.SQLiteLoader.LoadTrips: scan: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dataio.SQLiteLoader.LoadTrips: rows: %w", err)
	}
	return out, nil
}

// LoadParameters reads back every parameter row stored under l.RunID.
func (l *SQLiteLoader) LoadParameters() ([]ParameterRow, error) {
	rows, err := l.db.Query(`SELECT name, value, estimate FROM parameters WHERE run_id = ?`, l.RunID)
	if err != nil {
		return nil, fmt.Errorf("dataio.SQLiteLoader.LoadParameters: query: %w", err)
	}
	defer rows.Close()

	var out []ParameterRow
	for rows.Next() {
		var p ParameterRow
		var estimate int
		if err := rows.Scan(&p.Name, &p.Value, &estimate); err != nil {
			return nil, fmt.Errorf("dataio.SQLiteLoader.LoadParameters: scan: %w", err)
		}
		p.Estimate = estimate != 0
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dataio.SQLiteLoader.LoadParameters: rows: %w", err)
	}
	return out, nil
}

// TripRow is the flattened, string-typed projection of model.Trip that
// round-trips through SQLite's trips table; callers needing model.Trip
// convert Activity/Mode back with the same modeByName/activityByName
// helpers CSVLoader.LoadTrips uses.
type TripRow struct {
	AgentID     string
	LatentClass int
	Activity    string
	Mode        string
	OriginZone  int
	DestZone    int
	Departure   float64
	TravelTime  float64
	Arrival     float64
}
