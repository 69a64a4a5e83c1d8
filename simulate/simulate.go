package simulate

import (
	"fmt"
	"math/rand"

	"github.com/scaper-abm/scaper/evcache"
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/pool"
	"github.com/scaper-abm/scaper/statespace"
	"github.com/scaper-abm/scaper/valuefn"
	"github.com/scaper-abm/scaper/worldview"
)

// MaxSteps bounds one Run's forward walk. A day plan can take at most
// (DayEnd-DayStart)/DecisionStep decision steps plus one per trip leg; this
// generous multiple only ever fires on a misconfigured Config, mirroring
// valuefn.MaxRecursionDepth's role in the recursive walk.
const MaxSteps = 4096

// ErrStepLimitExceeded indicates Run's forward walk never reached an
// End-classified state within MaxSteps decisions.
var ErrStepLimitExceeded = fmt.Errorf("simulate: exceeded %d steps without reaching an End state", MaxSteps)

// Run draws one latent class and simulates one DayPath
// for agent from state.StartState onward, returning the drawn class
// alongside the path. caches holds one already-computed evcache.Cache per
// latent class, indexed by class number, and must not need any further
// evwalker recursion: Run only ever reads it, matching the recursion order
// constraint valuefn.evWalker.compute already enforces while building it.
func Run(
	world worldview.World,
	agent model.Agent,
	classSpec statespace.ClassSpec,
	cfg statespace.Config,
	spec statespace.UtilitySpec,
	caches []*evcache.Cache,
	mp *pool.MatPool,
	rng *rand.Rand,
) (int, model.DayPath, error) {
	class, err := drawClass(rng, agent, classSpec)
	if err != nil {
		return 0, model.DayPath{}, err
	}
	if class < 0 || class >= len(caches) {
		return 0, model.DayPath{}, fmt.Errorf("simulate.Run: drawn class %d has no cache: %w", class, statespace.ErrImpossibleState)
	}

	start, err := agent.StartState(cfg.DayStart)
	if err != nil {
		return 0, model.DayPath{}, err
	}

	w := &walker{
		world: world,
		agent: agent,
		class: class,
		cfg:   cfg,
		spec:  spec,
		cache: caches[class],
		mp:    mp,
		zones: world.Zones(),
		rng:   rng,
	}
	path, err := w.loop(start)
	if err != nil {
		return 0, model.DayPath{}, err
	}
	return class, path, nil
}

// drawClass performs the softmax-weighted inverse-CDF latent-class draw.
func drawClass(rng *rand.Rand, agent model.Agent, classSpec statespace.ClassSpec) (int, error) {
	p := statespace.ClassProbabilities(agent, classSpec)
	return sampleIndex(rng, p)
}

// walker carries the collaborators one Run's forward walk shares across
// every step: one struct built once per traversal, one loop advancing a
// single-item frontier (state) instead of a queue, since simulation never
// branches or backtracks.
type walker struct {
	world worldview.World
	agent model.Agent
	class int
	cfg   statespace.Config
	spec  statespace.UtilitySpec
	cache *evcache.Cache
	mp    *pool.MatPool
	zones []int
	rng   *rand.Rand
}

// loop advances state one decision at a time until it classifies as End,
// appending each (state, decision) pair to the resulting DayPath.
func (w *walker) loop(state model.State) (model.DayPath, error) {
	var steps []model.Step
	for i := 0; i < MaxSteps; i++ {
		switch statespace.Classify(w.agent, state, w.cfg) {
		case statespace.End:
			return model.DayPath{Steps: steps}, nil
		case statespace.Bad:
			return model.DayPath{}, fmt.Errorf("simulate: reached a Bad state mid-walk: %w", statespace.ErrImpossibleState)
		}

		decision, err := w.chooseDecision(state)
		if err != nil {
			return model.DayPath{}, err
		}
		steps = append(steps, model.Step{State: state, Decision: decision})

		next, err := w.advance(state, decision)
		if err != nil {
			return model.DayPath{}, err
		}
		state = next
	}
	return model.DayPath{}, ErrStepLimitExceeded
}

// chooseDecision computes every exploded option's Phi
// and draws one by inverse-CDF sampling proportional to Phi.
func (w *walker) chooseDecision(state model.State) (model.Decision, error) {
	decisions := statespace.Options(true, w.agent, w.zones, state, w.cfg)
	phis := make([]float64, len(decisions))
	for i, d := range decisions {
		phi, err := valuefn.OptionPhi(w.world, w.agent, w.class, w.cfg, w.spec, w.cache, w.mp, state, d)
		if err != nil {
			return model.Decision{}, err
		}
		phis[i] = phi.At(0)
		w.mp.Release(phi)
	}

	idx, err := sampleIndex(w.rng, phis)
	if err != nil {
		return model.Decision{}, err
	}
	return decisions[idx], nil
}

// advance computes the deterministic time delta decision consumes and
// returns the resulting concrete State.
func (w *walker) advance(state model.State, decision model.Decision) (model.State, error) {
	dt, err := statespace.NextSingleState(w.world, state, decision, w.cfg)
	if err != nil {
		return model.State{}, err
	}
	return statespace.NextState(w.agent, state, decision, state.TimeOfDay+dt, w.cfg)
}

// sampleIndex draws an index from vals by inverse-CDF sampling, treating
// vals as unnormalized weights (all non-negative, as every Phi and class
// probability this package draws over is). A sum-zero vals means every
// option was infeasible -- Options never prunes ahead of time, so a Good
// state whose every option nonetheless collapsed to zero probability
// contradicts the classifier and is reported as an impossible state, not
// silently resolved to index 0.
func sampleIndex(rng *rand.Rand, vals []float64) (int, error) {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	if sum <= 0 {
		return 0, fmt.Errorf("simulate.sampleIndex: %d options sum to %v: %w", len(vals), sum, statespace.ErrImpossibleState)
	}
	r := rng.Float64() * sum
	var cum float64
	for i, v := range vals {
		cum += v
		if r <= cum {
			return i, nil
		}
	}
	return len(vals) - 1, nil
}
