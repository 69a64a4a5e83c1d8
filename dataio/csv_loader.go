package dataio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"

	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/statespace"
	"github.com/scaper-abm/scaper/worldview"
)

// CSVLoader is the plain-CSV InputLoader: every file is stdlib
// encoding/csv, one open *os.File-or-any io.Reader per record kind, held
// for the loader's lifetime.
type CSVLoader struct {
	Zones, Network, Agents, Trips io.Reader
}

// LoadZoneData reads the zones file: one row per zone in file order,
// columns population, employment, parking_rate_per_hour.
func (l CSVLoader) LoadZoneData(numZones int) (*worldview.ZoneData, error) {
	rows, err := readCSV(l.Zones)
	if err != nil {
		return nil, fmt.Errorf("dataio.CSVLoader.LoadZoneData: %w", err)
	}
	pop := make([]float64, 0, len(rows))
	emp := make([]float64, 0, len(rows))
	parking := make([]float64, 0, len(rows))
	for i, row := range rows {
		if len(row) < 3 {
			return nil, fmt.Errorf("dataio.CSVLoader.LoadZoneData: row %d: %w", i, ErrInputFormat)
		}
		p, err1 := strconv.ParseFloat(row[0], 64)
		e, err2 := strconv.ParseFloat(row[1], 64)
		r, err3 := strconv.ParseFloat(row[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("dataio.CSVLoader.LoadZoneData: row %d: %w", i, ErrInputFormat)
		}
		pop = append(pop, p)
		emp = append(emp, e)
		parking = append(parking, r)
	}
	zdata, err := worldview.NewZoneData(numZones, pop, emp, parking)
	if err != nil {
		return nil, fmt.Errorf("dataio.CSVLoader.LoadZoneData: %w", err)
	}
	return zdata, nil
}

// LoadNetwork reads the network file: columnar, sorted by origin then
// destination, columns origin, dest, mode, time, peak_time, wait,
// peak_wait, access, peak_access, cost, peak_cost.
func (l CSVLoader) LoadNetwork(numZones int) (*worldview.Network, error) {
	rows, err := readCSV(l.Network)
	if err != nil {
		return nil, fmt.Errorf("dataio.CSVLoader.LoadNetwork: %w", err)
	}

	n2 := numZones * numZones
	modes := make(map[model.Mode]*worldview.ModeLOS)

	lastOrigin, lastDest := -1, -1
	for i, row := range rows {
		if len(row) < 11 {
			return nil, fmt.Errorf("dataio.CSVLoader.LoadNetwork: row %d: %w", i, ErrInputFormat)
		}
		origin, err1 := strconv.Atoi(row[0])
		dest, err2 := strconv.Atoi(row[1])
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("dataio.CSVLoader.LoadNetwork: row %d: %w", i, ErrInputFormat)
		}
		if origin < lastOrigin || (origin == lastOrigin && dest < lastDest) {
			return nil, fmt.Errorf("dataio.CSVLoader.LoadNetwork: row %d not sorted by origin then destination: %w", i, ErrInputFormat)
		}
		lastOrigin, lastDest = origin, dest

		mode, err := modeByName(row[2])
		if err != nil {
			return nil, fmt.Errorf("dataio.CSVLoader.LoadNetwork: row %d: %w", i, err)
		}
		vals, err := parseFloats(row[3:11])
		if err != nil {
			return nil, fmt.Errorf("dataio.CSVLoader.LoadNetwork: row %d: %w", i, ErrInputFormat)
		}

		los := modes[mode]
		if los == nil {
			los = &worldview.ModeLOS{
				Time: make([]float64, n2), PeakTime: make([]float64, n2),
				Wait: make([]float64, n2), PeakWait: make([]float64, n2),
				Access: make([]float64, n2), PeakAccess: make([]float64, n2),
				Cost: make([]float64, n2), PeakCost: make([]float64, n2),
			}
			modes[mode] = los
		}
		idx := origin*numZones + dest
		los.Time[idx], los.PeakTime[idx] = vals[0], vals[1]
		los.Wait[idx], los.PeakWait[idx] = vals[2], vals[3]
		los.Access[idx], los.PeakAccess[idx] = vals[4], vals[5]
		los.Cost[idx], los.PeakCost[idx] = vals[6], vals[7]
	}

	net, err := worldview.NewNetwork(numZones, modes)
	if err != nil {
		return nil, fmt.Errorf("dataio.CSVLoader.LoadNetwork: %w", err)
	}
	return net, nil
}

// LoadAgents reads the agents file: one row per agent, columns id, age,
// sex, income, has_kids, home_zone, has_work, work_zone, owns_car,
// has_transit_card, weight, mandated_work_duration. An empty or duplicate
// id is replaced with a fresh uuid.New() SampleID (model.Agent.SampleID's
// documented fallback).
func (l CSVLoader) LoadAgents() ([]model.Agent, error) {
	rows, err := readCSV(l.Agents)
	if err != nil {
		return nil, fmt.Errorf("dataio.CSVLoader.LoadAgents: %w", err)
	}

	seen := make(map[string]bool, len(rows))
	agents := make([]model.Agent, 0, len(rows))
	for i, row := range rows {
		if len(row) < 12 {
			return nil, fmt.Errorf("dataio.CSVLoader.LoadAgents: row %d: %w", i, ErrInputFormat)
		}
		age, err1 := strconv.Atoi(row[1])
		income, err2 := strconv.ParseFloat(row[3], 64)
		hasKids, err3 := strconv.ParseBool(row[4])
		homeZone, err4 := strconv.Atoi(row[5])
		hasWork, err5 := strconv.ParseBool(row[6])
		workZone, err6 := strconv.Atoi(row[7])
		ownsCar, err7 := strconv.ParseBool(row[8])
		hasCard, err8 := strconv.ParseBool(row[9])
		weight, err9 := strconv.ParseFloat(row[10], 64)
		mandated, err10 := strconv.Atoi(row[11])
		for _, e := range []error{err1, err2, err3, err4, err5, err6, err7, err8, err9, err10} {
			if e != nil {
				return nil, fmt.Errorf("dataio.CSVLoader.LoadAgents: row %d: %w", i, ErrInputFormat)
			}
		}

		id := row[0]
		sampleID := id
		if id == "" || seen[id] {
			sampleID = uuid.New().String()
		}
		seen[id] = true

		agents = append(agents, model.Agent{
			ID:                   id,
			SampleID:             sampleID,
			Age:                  age,
			Sex:                  row[2],
			Income:               income,
			HasKids:              hasKids,
			HomeZone:             homeZone,
			HasWork:              hasWork,
			WorkZone:             workZone,
			OwnsCar:              ownsCar,
			HasTransitCard:       hasCard,
			Weight:               weight,
			MandatedWorkDuration: mandated,
		})
	}
	return agents, nil
}

// LoadTrips reads the trips file: one row per trip, columns agent_id,
// activity, mode, origin_zone, dest_zone, departure (HH:MM),
// travel_time_minutes. cfg converts the wall-clock HH:MM departure column
// back into the internal timestep unit.
func (l CSVLoader) LoadTrips(cfg statespace.Config) ([]model.Trip, error) {
	rows, err := readCSV(l.Trips)
	if err != nil {
		return nil, fmt.Errorf("dataio.CSVLoader.LoadTrips: %w", err)
	}

	trips := make([]model.Trip, 0, len(rows))
	for i, row := range rows {
		if len(row) < 7 {
			return nil, fmt.Errorf("dataio.CSVLoader.LoadTrips: row %d: %w", i, ErrInputFormat)
		}
		activity, err := activityByName(row[1])
		if err != nil {
			return nil, fmt.Errorf("dataio.CSVLoader.LoadTrips: row %d: %w", i, err)
		}
		mode, err := modeByName(row[2])
		if err != nil {
			return nil, fmt.Errorf("dataio.CSVLoader.LoadTrips: row %d: %w", i, err)
		}
		origin, err1 := strconv.Atoi(row[3])
		dest, err2 := strconv.Atoi(row[4])
		travelTime, err3 := strconv.ParseFloat(row[6], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("dataio.CSVLoader.LoadTrips: row %d: %w", i, ErrInputFormat)
		}
		clock, err := parseClock(row[5])
		if err != nil {
			return nil, fmt.Errorf("dataio.CSVLoader.LoadTrips: row %d: %w", i, err)
		}
		departure := clockToTimestep(clock, cfg)

		trips = append(trips, model.Trip{
			AgentID:    row[0],
			Activity:   activity,
			Mode:       mode,
			OriginZone: origin,
			DestZone:   dest,
			Departure:  departure,
			TravelTime: travelTime,
			Arrival:    departure + travelTime,
			Observed:   true,
		})
	}
	return trips, nil
}

var _ InputLoader = CSVLoader{}

func readCSV(r io.Reader) ([][]string, error) {
	if r == nil {
		return nil, fmt.Errorf("dataio: nil reader: %w", ErrInputFormat)
	}
	return csv.NewReader(r).ReadAll()
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
