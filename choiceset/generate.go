package choiceset

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/scaper-abm/scaper/evcache"
	"github.com/scaper-abm/scaper/matrix"
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/pool"
	"github.com/scaper-abm/scaper/progresslog"
	"github.com/scaper-abm/scaper/simulate"
	"github.com/scaper-abm/scaper/statespace"
	"github.com/scaper-abm/scaper/valuefn"
	"github.com/scaper-abm/scaper/worldview"
)

// Generate builds one model.Choiceset for agent.
// world is assumed already sampled to the required zone list --
// RequiredZones feeds worldview.SampleZones upstream, in cmd/scaper's
// agentWorld. A false ok with a nil error means the observation was
// infeasible and has already been recorded on logger; the caller must
// skip the agent, not treat it as a fatal error.
func Generate(
	world worldview.World,
	agent model.Agent,
	observedTrips []model.Trip,
	classSpec statespace.ClassSpec,
	spec statespace.UtilitySpec,
	cfg statespace.Config,
	numAlternatives int,
	rowPool *pool.RowPool,
	mp *pool.MatPool,
	rng *rand.Rand,
	logger *progresslog.Logger,
) (model.Choiceset, bool, error) {
	// 2. Observed trips -> DayPath; infeasible observations are logged and
	// skipped, not propagated as an error.
	observedPath, ok := DayPathFromTrips(world, agent, observedTrips, cfg)
	if !ok {
		if logger != nil {
			logger.Infeasible(agent.ID, "observed trips do not map to a Good->End DayPath")
		}
		return model.Choiceset{}, false, nil
	}

	// 3. EV(start_state) per latent class under the sampled world.
	numClasses := classSpec.NumClasses()
	caches := make([]*evcache.Cache, numClasses)
	evStart := make([]float64, numClasses)
	dayLength := int(cfg.DayEnd) + 1
	start, err := agent.StartState(cfg.DayStart)
	if err != nil {
		return model.Choiceset{}, false, err
	}
	for c := 0; c < numClasses; c++ {
		cache := evcache.New(dayLength, world.NumZones(), rowPool, math.Inf(-1))
		v, err := valuefn.Compute(world, agent, c, cfg, spec, cache, mp, start)
		if err != nil {
			cache.Dispose()
			return model.Choiceset{}, false, fmt.Errorf("choiceset.Generate: agent %s: class %d: %w", agent.ID, c, err)
		}
		evStart[c] = v.At(0)
		mp.Release(v)
		caches[c] = cache
	}
	defer func() {
		for _, c := range caches {
			c.Dispose()
		}
	}()

	// Observed alternative: correction only, trips kept exactly as given.
	observedCorrection, err := pathCorrection(world, agent, classSpec, spec, cfg, evStart, mp, observedPath)
	if err != nil {
		return model.Choiceset{}, false, err
	}
	alternatives := []model.Alternative{{Trips: observedTrips, Correction: observedCorrection}}

	// 5. N simulated alternatives.
	for i := 0; i < numAlternatives; i++ {
		class, path, err := simulate.Run(world, agent, classSpec, cfg, spec, caches, mp, rng)
		if err != nil {
			return model.Choiceset{}, false, fmt.Errorf("choiceset.Generate: agent %s: simulated alternative %d: %w", agent.ID, i, err)
		}
		corr, err := pathCorrection(world, agent, classSpec, spec, cfg, evStart, mp, path)
		if err != nil {
			return model.Choiceset{}, false, err
		}
		trips := TripsFromDayPath(agent, class, path)
		alternatives = append(alternatives, model.Alternative{Trips: trips, Correction: corr})
	}

	// 6. Dedup by equal trip list, observed-first, ln(k) correction bump.
	alternatives = dedupAlternatives(alternatives)

	return model.Choiceset{
		Agent:        agent,
		SampledZones: world.Zones(),
		Alternatives: alternatives,
	}, true, nil
}

// pathCorrection computes the class-averaged
// conditional path probability, negated and logged.
func pathCorrection(
	world worldview.World,
	agent model.Agent,
	classSpec statespace.ClassSpec,
	spec statespace.UtilitySpec,
	cfg statespace.Config,
	evStart []float64,
	mp *pool.MatPool,
	path model.DayPath,
) (float64, error) {
	classProbs := statespace.ClassProbabilities(agent, classSpec)
	var avg float64
	for c, p := range classProbs {
		u, err := pathUtility(world, agent, c, spec, mp, path)
		if err != nil {
			return 0, err
		}
		avg += p * math.Exp(u-evStart[c])
	}
	if avg <= 0 {
		return 0, fmt.Errorf("choiceset.pathCorrection: agent %s: %w", agent.ID, ErrNoAlternatives)
	}
	return -math.Log(avg), nil
}

// pathUtility sums u(state, decision) over every step of path under class
// c -- the realized-path counterpart of optionPhi's per-decision
// accumulation, without the expected-future-utility term: that term only
// ever applies to the choice among options, not to scoring one
// already-fixed sequence of choices.
func pathUtility(world worldview.World, agent model.Agent, class int, spec statespace.UtilitySpec, mp *pool.MatPool, path model.DayPath) (float64, error) {
	var total float64
	for _, step := range path.Steps {
		shape := matrix.DecisionShape(step.State.Location.IsWildcard(), step.Decision.Kind == model.DecTravel && step.Decision.TravelDest.IsWildcard())
		u := mp.Rent(shape)
		err := spec.Accumulate(world, agent, class, step.State, step.Decision, u)
		if err != nil {
			mp.Release(u)
			return 0, err
		}
		total += u.At(0)
		mp.Release(u)
	}
	return total, nil
}

// dedupAlternatives merges Alternatives with element-wise-equal trip
// lists: the first occurrence of each cluster is kept
// (so index 0, the observed alternative, always survives as the cluster
// representative if it has any duplicates), and each cluster's correction
// gets + ln(k) for a cluster of size k.
func dedupAlternatives(alts []model.Alternative) []model.Alternative {
	type cluster struct {
		alt   model.Alternative
		count int
	}
	clusters := make([]cluster, 0, len(alts))
	for _, alt := range alts {
		merged := false
		for i := range clusters {
			if clusters[i].alt.Equal(alt) {
				clusters[i].count++
				merged = true
				break
			}
		}
		if !merged {
			clusters = append(clusters, cluster{alt: alt, count: 1})
		}
	}
	out := make([]model.Alternative, len(clusters))
	for i, c := range clusters {
		corr := c.alt.Correction
		if c.count > 1 {
			corr += math.Log(float64(c.count))
		}
		out[i] = model.Alternative{Trips: c.alt.Trips, Correction: corr}
	}
	return out
}
