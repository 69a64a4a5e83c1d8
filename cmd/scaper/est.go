package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/scaper-abm/scaper/bfgs"
	"github.com/scaper-abm/scaper/choiceset"
	"github.com/scaper-abm/scaper/costfn"
	"github.com/scaper-abm/scaper/dataio"
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/modelctx"
	"github.com/scaper-abm/scaper/pool"

	lvmatrix "github.com/katalvlaran/lvlath/matrix"
)

// runEst implements the `est` subcommand: build one
// costfn.Observation per agent from a freshly generated choiceset, fit the
// shared parameter vector by multi-restart BFGS, and write the result.
// `est zonesampling` dispatches to the nested zone-importance fit instead.
func runEst(args []string) error {
	if len(args) > 0 && args[0] == "zonesampling" {
		return runEstZoneSampling(args[1:])
	}

	fs := flag.NewFlagSet("est", flag.ExitOnError)
	cf := &commonFlags{}
	registerCommonFlags(fs, cf)
	numAlternatives := fs.Int("n", 10, "number of simulated alternatives per agent, before dedup")
	restarts := fs.Int("restarts", 0, "number of BFGS restarts beyond the first")
	numericalHessian := fs.Bool("H", false, "use the numerical Hessian for standard errors instead of BFGS's tracked inverse Hessian")
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

	estCfg := modelctx.EstimationConfig{Restarts: *restarts, NumericalHessian: *numericalHessian}
	mc := modelctx.New(modelctx.Config{Config: cfg, Workers: cf.workers, Estimation: estCfg}, fullWorld, logger)
	spec := cf.demoModel()
	paramNames := spec.ParameterNames()

	var mu sync.Mutex
	var observations []costfn.Observation

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

		obs, err := costfn.BuildObservation(world, cs, spec, cfg)
		if err != nil {
			return err
		}

		mu.Lock()
		observations = append(observations, obs)
		mu.Unlock()
		return nil
	})

	cf1 := &costfn.CostFunction{Observations: observations, NumParams: len(paramNames), Workers: cf.workers}
	if err := cf1.Validate(paramNames); err != nil {
		return err
	}

	objective := func(x []float64) (float64, []float64, error) {
		r, err := cf1.Evaluate(x)
		if err != nil {
			return 0, nil, err
		}
		return r.Value, r.Gradient, nil
	}

	x0 := make([]float64, len(paramNames))
	best, err := bfgs.Optimize(objective, x0, seedScore(cf1, x0), bfgs.Options{})
	if err != nil && best.X == nil {
		return err
	}

	rng := rand.New(rand.NewSource(rand.Int63()))
	jitter := mc.Config.Estimation.RestartJitter
	for i := 0; i < mc.Config.Estimation.Restarts; i++ {
		xr := make([]float64, len(x0))
		for j := range xr {
			xr[j] = jitter * rng.Float64()
		}
		result, _ := bfgs.Optimize(objective, xr, seedScore(cf1, xr), bfgs.Options{})
		if result.X == nil {
			continue
		}
		if result.Value > best.Value {
			best = result
		}
	}

	if *numericalHessian {
		if h, herr := cf1.NumericalHessian(best.X); herr == nil {
			if se, seerr := sandwichStandardErrors(h, seedScore(cf1, best.X)); seerr == nil {
				best.StandardErrors = se
			}
		}
	}

	rows := []dataio.ParameterRow{{Name: "nClasses", Value: 1, Estimate: false}}
	for i, name := range paramNames {
		rows = append(rows, dataio.ParameterRow{Name: name, Value: best.X[i], Estimate: true})
	}

	layout := dataio.RunLayout{ModelFolder: cf.modelDir, DateDir: time.Now().Format("06-01-02"), Timestamp: mc.RunID}
	sink, closeSink, err := cf.openOutputSink(layout, mc.RunID)
	if err != nil {
		return err
	}
	defer closeSink()

	if err := sink.WriteParameters(rows); err != nil {
		return err
	}
	fmt.Printf("est: converged=%v value=%.6f x=%v se=%v\n", best.Status == bfgs.WithinConvergenceTolerance, best.Value, best.X, best.StandardErrors)
	return nil
}

// seedScore evaluates cf at x purely to obtain its score matrix, priming a
// cache the way choiceset/valuefn callers do before the real
// work -- one extra Evaluate call is cheap next to the outer BFGS loop.
func seedScore(cf *costfn.CostFunction, x []float64) [][]float64 {
	r, err := cf.Evaluate(x)
	if err != nil {
		return nil
	}
	return r.Score
}

// sandwichStandardErrors inverts h (the numerical Hessian) and applies the
// same H . B . H sandwich bfgs.Optimize uses internally, via
// lvlath/matrix's dense Inverse/Mul rather than a hand-rolled
// triple loop.
func sandwichStandardErrors(h [][]float64, score [][]float64) ([]float64, error) {
	n := len(h)
	if len(score) != n {
		return nil, fmt.Errorf("scaper: score matrix shape mismatch")
	}
	hDense, err := toLVDense(h)
	if err != nil {
		return nil, err
	}
	inv, err := lvmatrix.Inverse(hDense)
	if err != nil {
		return nil, err
	}
	bDense, err := toLVDense(score)
	if err != nil {
		return nil, err
	}
	ib, err := lvmatrix.Mul(inv, bDense)
	if err != nil {
		return nil, err
	}
	ibi, err := lvmatrix.Mul(ib, inv)
	if err != nil {
		return nil, err
	}
	se := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := ibi.At(i, i)
		if err != nil || v < 0 {
			v = 0
		}
		se[i] = math.Sqrt(v)
	}
	return se, nil
}

func toLVDense(m [][]float64) (*lvmatrix.Dense, error) {
	n := len(m)
	d, err := lvmatrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j, v := range m[i] {
			if err := d.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}
