package main

import (
	"flag"
	"time"

	"github.com/scaper-abm/scaper/dataio"
	"github.com/scaper-abm/scaper/model"
)

// runObsToCSV implements the `obsToCsv` subcommand: read the
// observed-trips input and re-emit it through whichever Sink cmd/scaper
// would otherwise write simulated output through, unchanged.
func runObsToCSV(args []string) error {
	fs := flag.NewFlagSet("obsToCsv", flag.ExitOnError)
	cf := &commonFlags{}
	registerCommonFlags(fs, cf)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := cf.stateConfig()
	trips, err := cf.loadTrips(cfg)
	if err != nil {
		return err
	}
	if cf.maxAgents > 0 {
		trips = capTripsByAgent(trips, cf.maxAgents)
	}

	layout := dataio.RunLayout{ModelFolder: cf.modelDir, DateDir: time.Now().Format("06-01-02"), Timestamp: fixedTimestamp()}
	sink, closeSink, err := cf.openOutputSink(layout, layout.Timestamp)
	if err != nil {
		return err
	}
	defer closeSink()

	return sink.WriteSimulation(trips, cfg)
}

// capTripsByAgent keeps only the trips belonging to the first maxAgents
// distinct agent IDs encountered, preserving input order. Backs the `-t N`
// flag, applied here to observed trips rather than a loaded agent list.
func capTripsByAgent(trips []model.Trip, maxAgents int) []model.Trip {
	seen := make(map[string]bool, maxAgents)
	out := make([]model.Trip, 0, len(trips))
	for _, t := range trips {
		if !seen[t.AgentID] && len(seen) >= maxAgents {
			continue
		}
		seen[t.AgentID] = true
		out = append(out, t)
	}
	return out
}

func fixedTimestamp() string {
	return time.Now().Format("150405.000000000")
}
