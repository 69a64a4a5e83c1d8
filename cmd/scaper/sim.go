package main

import (
	"flag"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/scaper-abm/scaper/choiceset"
	"github.com/scaper-abm/scaper/dataio"
	"github.com/scaper-abm/scaper/evcache"
	"github.com/scaper-abm/scaper/examples"
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/modelctx"
	"github.com/scaper-abm/scaper/pool"
	"github.com/scaper-abm/scaper/simulate"
	"github.com/scaper-abm/scaper/valuefn"
	"github.com/scaper-abm/scaper/worldview"
)

// runSim implements the `sim` subcommand: simulate one DayPath
// per agent and write the resulting trips out.
func runSim(args []string) error {
	fs := flag.NewFlagSet("sim", flag.ExitOnError)
	cf := &commonFlags{}
	registerCommonFlags(fs, cf)
	if err := fs.Parse(args); err != nil {
		return err
	}

	world, err := cf.loadWorld()
	if err != nil {
		return err
	}
	if cf.zoneSample > 0 {
		world, err = sampleWorld(world, cf.zoneSample)
		if err != nil {
			return err
		}
	}
	agents, err := cf.loadAgents()
	if err != nil {
		return err
	}

	logger, closeLog, err := cf.openLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	mc := modelctx.New(modelctx.Config{Config: cf.stateConfig(), Workers: cf.workers}, world, logger)
	spec := cf.demoModel()

	var mu sync.Mutex
	var allTrips []model.Trip

	mc.RunAgents(agents, func(worker *pool.Worker, agent model.Agent) error {
		class, path, err := simulateOneDay(mc, worker, agent, spec)
		if err != nil {
			return err
		}
		trips := choiceset.TripsFromDayPath(agent, class, path)

		mu.Lock()
		allTrips = append(allTrips, trips...)
		mu.Unlock()
		return nil
	})

	layout := dataio.RunLayout{ModelFolder: cf.modelDir, DateDir: time.Now().Format("06-01-02"), Timestamp: mc.RunID}
	sink, closeSink, err := cf.openOutputSink(layout, mc.RunID)
	if err != nil {
		return err
	}
	defer closeSink()

	if err := sink.WriteSimulation(allTrips, mc.Config.Config); err != nil {
		return err
	}
	processed, failed, infeasible := logger.Counts()
	fmt.Printf("sim: %d processed, %d failed, %d infeasible\n", processed, failed, infeasible)
	return nil
}

// simulateOneDay precomputes the EV cache for every latent class, then
// walks it forward once, matching choiceset.Generate's own cache-priming
// order.
func simulateOneDay(mc *modelctx.ModelContext, worker *pool.Worker, agent model.Agent, spec examples.DemoModel) (int, model.DayPath, error) {
	cfg := mc.Config.Config
	dayLength := int(cfg.DayEnd) + 1
	numClasses := spec.NumClasses()
	caches := make([]*evcache.Cache, numClasses)
	defer func() {
		for _, c := range caches {
			if c != nil {
				c.Dispose()
			}
		}
	}()

	start, err := agent.StartState(cfg.DayStart)
	if err != nil {
		return 0, model.DayPath{}, err
	}
	for c := 0; c < numClasses; c++ {
		cache := evcache.New(dayLength, mc.World.NumZones(), worker.Rows, math.Inf(-1))
		caches[c] = cache
		v, err := valuefn.Compute(mc.World, agent, c, cfg, spec, cache, worker.Mats, start)
		if err != nil {
			return 0, model.DayPath{}, err
		}
		worker.Mats.Release(v)
	}

	rng := freshRand()
	return simulate.Run(mc.World, agent, spec, cfg, spec, caches, worker.Mats, rng)
}

// sampleWorld builds a worldview.SampledWorld over a fixed random sample of
// n zones out of world's full set, uniform over zones, with no estimated
// ZoneUtilityFunc since sim has no parameter table to draw one from. cs and
// est use agentWorld instead, which is also unweighted: uniform over the
// zones reachable from the agent's home, with the agent's required zones
// always included.
func sampleWorld(world worldview.World, n int) (worldview.World, error) {
	full, ok := world.(*worldview.FullWorld)
	if !ok {
		return world, nil
	}
	numZones := full.NumZones()
	p := worldview.ZoneProbabilities(numZones, func(int) float64 { return 0 })
	rng := freshRand()
	zones, err := worldview.SampleZones(rng, n, nil, p)
	if err != nil {
		return nil, err
	}
	corrections, err := worldview.BuildCorrectionMatrix(numZones, p, zones)
	if err != nil {
		return nil, err
	}
	return worldview.NewSampledWorld(full, zones, corrections)
}
