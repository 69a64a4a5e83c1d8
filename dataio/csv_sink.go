package dataio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/statespace"
)

// CSVSink is the plain-CSV Sink: each output kind is written through its
// own io.Writer with stdlib encoding/csv, one header row followed by one
// row per record.
type CSVSink struct {
	Simulation, Choicesets, Parameters io.Writer
}

// WriteSimulation writes {IndID, LatentClass, Activity, Mode, Origin,
// Destination, DepartureTime, TravelTime, ArrivalTime}, DepartureTime and
// ArrivalTime truncated to the minute.
func (s CSVSink) WriteSimulation(trips []model.Trip, cfg statespace.Config) error {
	w := csv.NewWriter(s.Simulation)
	header := []string{"IndID", "LatentClass", "Activity", "Mode", "Origin", "Destination", "DepartureTime", "TravelTime", "ArrivalTime"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("dataio.CSVSink.WriteSimulation: header: %w", err)
	}
	for _, t := range trips {
		row := []string{
			t.AgentID,
			strconv.Itoa(t.LatentClass),
			t.Activity.String(),
			t.Mode.String(),
			strconv.Itoa(t.OriginZone),
			strconv.Itoa(t.DestZone),
			formatClock(timestepToClock(t.Departure, cfg)),
			strconv.FormatFloat(t.TravelTime, 'f', 2, 64),
			formatClock(timestepToClock(t.Arrival, cfg)),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("dataio.CSVSink.WriteSimulation: agent %s: %w", t.AgentID, err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteChoicesets writes columnar (agent, zone-sample, alternatives), one
// row per (choiceset, alternative) pair since a plain CSV row cannot carry
// a nested trip list directly: the alternative's trips are flattened into
// one field, trips separated by '|' and each trip's fields (activity,
// mode, origin, destination, departure, travel time) by ':'. SampledZones
// is one ';'-joined field.
func (s CSVSink) WriteChoicesets(sets []model.Choiceset) error {
	w := csv.NewWriter(s.Choicesets)
	header := []string{"AgentID", "SampledZones", "AlternativeIndex", "Correction", "Trips"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("dataio.CSVSink.WriteChoicesets: header: %w", err)
	}
	for _, cs := range sets {
		zones := joinInts(cs.SampledZones)
		for altIdx, alt := range cs.Alternatives {
			row := []string{
				cs.Agent.ID,
				zones,
				strconv.Itoa(altIdx),
				strconv.FormatFloat(alt.Correction, 'f', 6, 64),
				encodeTrips(alt.Trips),
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("dataio.CSVSink.WriteChoicesets: agent %s: %w", cs.Agent.ID, err)
			}
		}
	}
	w.Flush()
	return w.Error()
}

// WriteParameters writes "parameter, value, estimate", nClasses
// conventionally first if present in params.
func (s CSVSink) WriteParameters(params []ParameterRow) error {
	w := csv.NewWriter(s.Parameters)
	header := []string{"parameter", "value", "estimate"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("dataio.CSVSink.WriteParameters: header: %w", err)
	}
	for _, p := range params {
		row := []string{p.Name, strconv.FormatFloat(p.Value, 'f', -1, 64), strconv.FormatBool(p.Estimate)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("dataio.CSVSink.WriteParameters: parameter %q: %w", p.Name, err)
		}
	}
	w.Flush()
	return w.Error()
}

var _ Sink = CSVSink{}

func joinInts(vs []int) string {
	out := ""
	for i, v := range vs {
		if i > 0 {
			out += ";"
		}
		out += strconv.Itoa(v)
	}
	return out
}

func encodeTrips(trips []model.Trip) string {
	out := ""
	for i, t := range trips {
		if i > 0 {
			out += "|"
		}
		out += fmt.Sprintf("%s:%s:%d:%d:%s:%s",
			t.Activity, t.Mode, t.OriginZone, t.DestZone,
			strconv.FormatFloat(t.Departure, 'f', 4, 64),
			strconv.FormatFloat(t.TravelTime, 'f', 4, 64))
	}
	return out
}
