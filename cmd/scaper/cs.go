package main

import (
	"flag"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/scaper-abm/scaper/choiceset"
	"github.com/scaper-abm/scaper/dataio"
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/modelctx"
	"github.com/scaper-abm/scaper/pool"
	"github.com/scaper-abm/scaper/worldview"
)

// runCS implements the `cs` subcommand: build one
// model.Choiceset per agent with observed trips, and write them out.
func runCS(args []string) error {
	fs := flag.NewFlagSet("cs", flag.ExitOnError)
	cf := &commonFlags{}
	registerCommonFlags(fs, cf)
	numAlternatives := fs.Int("n", 10, "number of simulated alternatives per agent, before dedup")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fullWorld, err := cf.loadWorld()
	if err != nil {
		return err
	}
	agents, err := cf.loadAgents()
	if err != nil {
		return err
	}
	cfg := cf.stateConfig()
	trips, err := cf.loadTrips(cfg)
	if err != nil {
		return err
	}
	byAgent := tripsByAgent(trips)

	logger, closeLog, err := cf.openLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	mc := modelctx.New(modelctx.Config{Config: cfg, Workers: cf.workers}, fullWorld, logger)
	spec := cf.demoModel()

	var mu sync.Mutex
	var choicesets []model.Choiceset

	mc.RunAgents(agents, func(worker *pool.Worker, agent model.Agent) error {
		observed := byAgent[agent.ID]
		if len(observed) == 0 {
			logger.Infeasible(agent.ID, "no observed trips for agent")
			return nil
		}

		world, err := agentWorld(fullWorld, agent, observed, cf.zoneSample)
		if err != nil {
			return err
		}

		rng := freshRand()
		cs, ok, err := choiceset.Generate(world, agent, observed, spec, spec, cfg, *numAlternatives, worker.Rows, worker.Mats, rng, logger)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		mu.Lock()
		choicesets = append(choicesets, cs)
		mu.Unlock()
		return nil
	})

	layout := dataio.RunLayout{ModelFolder: cf.modelDir, DateDir: time.Now().Format("06-01-02"), Timestamp: mc.RunID}
	sink, closeSink, err := cf.openOutputSink(layout, mc.RunID)
	if err != nil {
		return err
	}
	defer closeSink()

	if err := sink.WriteChoicesets(choicesets); err != nil {
		return err
	}
	processed, failed, infeasible := logger.Counts()
	fmt.Printf("cs: %d processed, %d failed, %d infeasible\n", processed, failed, infeasible)
	return nil
}

// agentWorld returns fullWorld unsampled when zoneSample is 0, or a
// worldview.SampledWorld drawn uniformly over the agent's reachable zones,
// with every zone the agent's alternatives must actually offer -- the
// agent's home zone, work zone (if any), and every trip's
// origin/destination -- forced into the
// sample via choiceset.RequiredZones, computed per-agent since each
// agent's required zones differ.
//
// Non-required candidates are drawn only from choiceset.ReachableZones,
// under Car if the agent owns one and Walk otherwise: a zone with no
// finite-travel-time path from home can never appear on a feasible
// simulated alternative, so spending sampled slots on it only shrinks the
// odds of drawing a zone that could.
func agentWorld(fullWorld worldview.World, agent model.Agent, trips []model.Trip, zoneSample int) (worldview.World, error) {
	if zoneSample <= 0 {
		return fullWorld, nil
	}
	full, ok := fullWorld.(*worldview.FullWorld)
	if !ok {
		return fullWorld, nil
	}
	required := choiceset.RequiredZones(agent, trips)
	mode := model.Walk
	if agent.OwnsCar {
		mode = model.Car
	}
	reachable, err := choiceset.ReachableZones(full, mode, agent.HomeZone)
	if err != nil {
		return nil, err
	}
	numZones := full.NumZones()
	p := worldview.ZoneProbabilities(numZones, func(z int) float64 {
		if reachable[z] {
			return 0
		}
		return math.Inf(-1)
	})
	rng := freshRand()
	zones, err := worldview.SampleZones(rng, zoneSample, required, p)
	if err != nil {
		return nil, err
	}
	corrections, err := worldview.BuildCorrectionMatrix(numZones, p, zones)
	if err != nil {
		return nil, err
	}
	return worldview.NewSampledWorld(full, zones, corrections)
}
