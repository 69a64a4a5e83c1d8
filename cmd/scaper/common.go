// Command scaper is the CLI entry point: five
// subcommands (sim, cs, est, deriv, obsToCsv) driving one modelctx.ModelContext
// per invocation, reading/writing through dataio's CSV or SQLite
// implementations under the models/<MODELFOLDER>/{input,sim,cs,est,logs}/
// YY-MM-DD/<timestamped>.* layout dataio.RunLayout builds.
//
// This binary hardwires examples.DemoModel as its UtilitySpec/ClassSpec:
// it is the one demo implementation this repository carries, so it is
// what a runnable CLI has to drive.
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/scaper-abm/scaper/dataio"
	"github.com/scaper-abm/scaper/examples"
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/progresslog"
	"github.com/scaper-abm/scaper/statespace"
	"github.com/scaper-abm/scaper/worldview"
)

// commonFlags is the flag set every subcommand shares: global
// --console/-c and --logFile/-l flags plus the input/output/model-shape
// flags a runnable CLI needs.
type commonFlags struct {
	console  bool
	logFile  string
	modelDir string

	zonesFile   string
	networkFile string
	agentsFile  string
	tripsFile   string
	numZones    int

	sqlite string // non-empty selects dataio.SQLiteSink over CSV output; inputs are always CSV

	dayStart, dayEnd, decisionStep float64
	maxTrackedDuration             int

	workers    int
	maxAgents  int // -t N
	zoneSample int // -z N, 0 means "full"

	ascContinue, betaTravel float64 // the demo model's own parameter values
}

func registerCommonFlags(fs *flag.FlagSet, cf *commonFlags) {
	fs.BoolVar(&cf.console, "console", false, "echo progress to stderr")
	fs.BoolVar(&cf.console, "c", false, "shorthand for -console")
	fs.StringVar(&cf.logFile, "logFile", "", "path to a log file (defaults to stderr-only if empty and -console is set)")
	fs.StringVar(&cf.logFile, "l", "", "shorthand for -logFile")
	fs.StringVar(&cf.modelDir, "modelFolder", "demo", "MODELFOLDER under models/ for the persisted run layout")

	fs.StringVar(&cf.zonesFile, "zones", "", "path to the zones CSV input")
	fs.StringVar(&cf.networkFile, "network", "", "path to the network CSV input")
	fs.StringVar(&cf.agentsFile, "agents", "", "path to the agents CSV input")
	fs.StringVar(&cf.tripsFile, "trips", "", "path to the observed-trips CSV input")
	fs.IntVar(&cf.numZones, "numZones", 0, "number of zones in the input world (required)")

	fs.StringVar(&cf.sqlite, "sqlite", "", "path to a SQLite database to write output into, instead of CSV")

	fs.Float64Var(&cf.dayStart, "dayStart", 0, "day start, in timesteps")
	fs.Float64Var(&cf.dayEnd, "dayEnd", 6, "day end, in timesteps")
	fs.Float64Var(&cf.decisionStep, "decisionStep", 1, "hours per decision timestep")
	fs.IntVar(&cf.maxTrackedDuration, "maxTrackedDuration", 10, "default per-activity duration cap, in timesteps")

	fs.IntVar(&cf.workers, "x", 0, "worker pool size (0 means GOMAXPROCS)")
	fs.IntVar(&cf.maxAgents, "t", 0, "maximum number of agents to process (0 means all)")
	fs.IntVar(&cf.zoneSample, "z", 0, "zone sample size per agent (0 means the full zone set)")

	fs.Float64Var(&cf.ascContinue, "ascContinue", 1.0, "DemoModel's asc_continue parameter")
	fs.Float64Var(&cf.betaTravel, "betaTravel", -0.5, "DemoModel's beta_travel parameter")
}

func (cf *commonFlags) stateConfig() statespace.Config {
	return statespace.Config{
		DayStart:                  cf.dayStart,
		DayEnd:                    cf.dayEnd,
		DecisionStep:              cf.decisionStep,
		DefaultMaxTrackedDuration: cf.maxTrackedDuration,
		NoCarModes:                []model.Mode{model.Walk},
	}
}

func (cf *commonFlags) demoModel() examples.DemoModel {
	return examples.DemoModel{AscContinue: cf.ascContinue, BetaTravel: cf.betaTravel}
}

// openLogger builds the progresslog.Logger every subcommand shares. A
// non-empty logFile is opened for append; console additionally echoes to
// stderr (progresslog.New's own contract).
func (cf *commonFlags) openLogger() (*progresslog.Logger, func(), error) {
	var w io.Writer = io.Discard
	closer := func() {}
	if cf.logFile != "" {
		f, err := os.OpenFile(cf.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("scaper: opening log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}
	return progresslog.New(w, cf.console), closer, nil
}

// loadWorld reads zones/network input through a CSVLoader and assembles a
// worldview.FullWorld.
func (cf *commonFlags) loadWorld() (worldview.World, error) {
	if cf.numZones <= 0 {
		return nil, fmt.Errorf("scaper: -numZones is required")
	}
	zonesF, err := os.Open(cf.zonesFile)
	if err != nil {
		return nil, fmt.Errorf("scaper: opening zones file: %w", err)
	}
	defer zonesF.Close()
	networkF, err := os.Open(cf.networkFile)
	if err != nil {
		return nil, fmt.Errorf("scaper: opening network file: %w", err)
	}
	defer networkF.Close()

	loader := dataio.CSVLoader{Zones: zonesF, Network: networkF}
	zdata, err := loader.LoadZoneData(cf.numZones)
	if err != nil {
		return nil, err
	}
	net, err := loader.LoadNetwork(cf.numZones)
	if err != nil {
		return nil, err
	}
	return worldview.NewFullWorld(net, zdata, worldview.PeakSchedule{})
}

// loadAgents reads the agents input, capped at maxAgents when set (-t N).
func (cf *commonFlags) loadAgents() ([]model.Agent, error) {
	agentsF, err := os.Open(cf.agentsFile)
	if err != nil {
		return nil, fmt.Errorf("scaper: opening agents file: %w", err)
	}
	defer agentsF.Close()

	loader := dataio.CSVLoader{Agents: agentsF}
	agents, err := loader.LoadAgents()
	if err != nil {
		return nil, err
	}
	if cf.maxAgents > 0 && cf.maxAgents < len(agents) {
		agents = agents[:cf.maxAgents]
	}
	return agents, nil
}

// loadTrips reads the observed-trips input.
func (cf *commonFlags) loadTrips(cfg statespace.Config) ([]model.Trip, error) {
	tripsF, err := os.Open(cf.tripsFile)
	if err != nil {
		return nil, fmt.Errorf("scaper: opening trips file: %w", err)
	}
	defer tripsF.Close()

	loader := dataio.CSVLoader{Trips: tripsF}
	return loader.LoadTrips(cfg)
}

// tripsByAgent indexes observed trips by agent ID for O(1) lookup during
// per-agent choiceset generation.
func tripsByAgent(trips []model.Trip) map[string][]model.Trip {
	out := make(map[string][]model.Trip)
	for _, t := range trips {
		out[t.AgentID] = append(out[t.AgentID], t)
	}
	return out
}

// openOutputSink builds either a CSVSink writing into the persisted
// run-layout directory, or a SQLiteSink at the given path.
func (cf *commonFlags) openOutputSink(layout dataio.RunLayout, runID string) (dataio.Sink, func() error, error) {
	if cf.sqlite != "" {
		sink, err := dataio.OpenSQLiteSink(cf.sqlite, runID)
		if err != nil {
			return nil, nil, err
		}
		return sink, func() error { return sink.Close() }, nil
	}

	simF, err := createInLayout(layout, dataio.StageSim, "simulation")
	if err != nil {
		return nil, nil, err
	}
	csF, err := createInLayout(layout, dataio.StageCS, "choicesets")
	if err != nil {
		return nil, nil, err
	}
	paramF, err := createInLayout(layout, dataio.StageEst, "parameters")
	if err != nil {
		return nil, nil, err
	}
	sink := dataio.CSVSink{Simulation: simF, Choicesets: csF, Parameters: paramF}
	closer := func() error {
		simF.Close()
		csF.Close()
		paramF.Close()
		return nil
	}
	return sink, closer, nil
}

func createInLayout(layout dataio.RunLayout, stage dataio.Stage, name string) (*os.File, error) {
	if err := os.MkdirAll(layout.Dir(stage), 0o755); err != nil {
		return nil, fmt.Errorf("scaper: creating %s directory: %w", stage, err)
	}
	return os.Create(layout.Path(stage, name, "csv"))
}

// freshRand returns a new independent generator seeded off the shared
// top-level math/rand source, which is itself safe for concurrent use;
// each per-agent AgentTask gets its own so goroutines never race a shared
// *rand.Rand.
func freshRand() *rand.Rand {
	return rand.New(rand.NewSource(rand.Int63()))
}
