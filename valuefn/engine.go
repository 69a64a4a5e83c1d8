package valuefn

import (
	"fmt"

	"github.com/scaper-abm/scaper/evcache"
	"github.com/scaper-abm/scaper/matrix"
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/pool"
	"github.com/scaper-abm/scaper/statespace"
	"github.com/scaper-abm/scaper/worldview"
)

// MaxRecursionDepth bounds evWalker.compute's call stack. Reaching it means
// a Config allows a chain of decisions longer than any real day plan could
// need -- a real day plan is bounded by roughly DayLength/DecisionStep
// decisions, so this generous multiple only ever fires on a misconfigured
// Config.
const MaxRecursionDepth = 4096

// evWalker encapsulates the collaborators the recursive value-function
// computation shares across every call: one struct built once per agent,
// one recursive method carrying only the state actually varying per call
// (state, depth).
type evWalker struct {
	world  worldview.World
	agent  model.Agent
	class  int
	cfg    statespace.Config
	spec   statespace.UtilitySpec
	cache  *evcache.Cache
	mp     *pool.MatPool
	zones  []int
}

// Compute returns the finite-horizon logsum value function V-bar(state) for
// one agent, latent class, and World, memoizing every Good state it visits
// into cache along the way. cache is not disposed here; the caller owns
// its lifetime since it is typically reused across an agent's several
// latent classes over the same World.
func Compute(
	world worldview.World,
	agent model.Agent,
	latentClass int,
	cfg statespace.Config,
	spec statespace.UtilitySpec,
	cache *evcache.Cache,
	mp *pool.MatPool,
	state model.State,
) (*matrix.Mat, error) {
	w := &evWalker{
		world: world,
		agent: agent,
		class: latentClass,
		cfg:   cfg,
		spec:  spec,
		cache: cache,
		mp:    mp,
		zones: world.Zones(),
	}
	return w.compute(state, 0)
}

// compute is the core recursion: classify state, short-circuit Bad/End,
// otherwise fold every feasible option's Phi into a state-shaped
// accumulator, log it to V-bar, cache it, and return it.
func (w *evWalker) compute(state model.State, depth int) (*matrix.Mat, error) {
	// 1. Depth guard.
	if depth > MaxRecursionDepth {
		return nil, ErrMaxDepthExceeded
	}

	// 2. Memo hit: this exact (key, timestep) has already been resolved.
	if !w.cache.NeedsCaching(state) {
		shape := matrix.Scalar
		if state.IsNonFixedAll() {
			shape = matrix.ColVec
		}
		return w.readCached(state, shape), nil
	}

	// 3. Classify and handle the two non-recursive cases first.
	switch statespace.Classify(w.agent, state, w.cfg) {
	case statespace.End:
		if err := w.cache.CacheZero(state); err != nil {
			return nil, fmt.Errorf("valuefn: caching End state: %w", err)
		}
		return w.readCached(state, matrix.Scalar), nil

	case statespace.Bad:
		badShape := matrix.Scalar
		if state.IsNonFixedAll() {
			badShape = matrix.ColVec
		}
		m := w.mp.Rent(badShape)
		for i := range m.Data {
			m.Data[i] = negInf
		}
		if err := w.cache.Cache(state, m); err != nil {
			w.mp.Release(m)
			return nil, fmt.Errorf("valuefn: caching Bad state: %w", err)
		}
		return m, nil
	}

	// 4. Good: sum every option's Phi and take the log.
	decisions := statespace.Options(false, w.agent, w.zones, state, w.cfg)
	shape := matrix.DecisionShape(state.Location.IsWildcard(), false)
	total := w.mp.Rent(shape)

	for _, d := range decisions {
		// 5. Recurse first: optionPhi's interpolation reads the next
		// state's EV row directly out of the cache, so every timestep that
		// row needs must already be resolved before optionPhi runs.
		nexts, err := statespace.NextIntegralTimeStates(w.world, w.agent, state, d, w.cfg)
		if err != nil {
			w.mp.Release(total)
			return nil, err
		}
		for _, ns := range nexts {
			if !w.cache.NeedsCaching(ns) {
				continue
			}
			sub, err := w.compute(ns, depth+1)
			if err != nil {
				w.mp.Release(total)
				return nil, err
			}
			w.mp.Release(sub)
		}

		optShape := matrix.DecisionShape(state.Location.IsWildcard(), d.Kind == model.DecTravel && d.TravelDest.IsWildcard())

		phi, err := optionPhi(w.world, w.agent, w.class, w.cfg, w.spec, w.cache, w.mp, state, d)
		if err != nil {
			w.mp.Release(total)
			return nil, err
		}

		if optShape == matrix.RowVec || optShape == matrix.ODMat {
			collapsed := matrix.CollapseDestination(phi)
			w.mp.Release(phi)
			matrix.AddInto(total, collapsed)
		} else {
			matrix.AddInto(total, phi)
			w.mp.Release(phi)
		}
	}

	matrix.LogInplace(total)
	if err := w.cache.Cache(state, total); err != nil {
		w.mp.Release(total)
		return nil, fmt.Errorf("valuefn: caching Good state: %w", err)
	}
	return total, nil
}

const negInf = -1e308 // avoid math.Inf so a stray arithmetic op cannot silently produce NaN

// readCached rents a shape-matching Mat and fills it from the cache row at
// state's timestep, for both the fixed-zone scalar case and the
// NonFixed-All zone-major case.
func (w *evWalker) readCached(state model.State, shape matrix.Shape) *matrix.Mat {
	idx := int(state.TimeOfDay)
	row := w.cache.GetAllTimesteps(state)
	m := w.mp.Rent(shape)
	if shape == matrix.Scalar {
		m.Data[0] = row[idx]
		return m
	}
	stride := w.cache.DayLength() + 2
	for z := 0; z < w.mp.NumZones(); z++ {
		m.Data[z] = row[z*stride+idx]
	}
	return m
}
