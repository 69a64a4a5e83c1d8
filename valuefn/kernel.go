package valuefn

import (
	"math"

	"github.com/scaper-abm/scaper/evcache"
	"github.com/scaper-abm/scaper/matrix"
	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/pool"
	"github.com/scaper-abm/scaper/statespace"
	"github.com/scaper-abm/scaper/worldview"
)

// addEvUtility is the program's hot path: for every cell i of u
// it looks up the arrival timestep in evRow at offsetFn(i)+floor(time[i]),
// linearly interpolates against the next slot, and adds the result into
// u.Data[i]. u must have been rented with Scale == 1 (true of every
// pool.MatPool.Rent result); the upper interpolation anchor is skipped
// entirely when its weight is exactly zero, so a sentinel -Inf slot one past
// DayLength is never read with a nonzero weight and never produces NaN.
func addEvUtility(u, timeMat *matrix.Mat, evRow []float64, dayLength int, offsetFn func(cell int) int) {
	dl := float64(dayLength)
	for i := 0; i < u.Len(); i++ {
		t := timeMat.At(i)
		if t < 0 {
			panic(ErrNegativeTime)
		}
		if t > dl {
			t = dl
		}
		flo := math.Floor(t)
		idx := offsetFn(i) + int(flo)
		a := t - flo
		v := (1 - a) * evRow[idx]
		if a != 0 {
			v += a * evRow[idx+1]
		}
		u.Data[i] += v
	}
}

// offsetForNextState picks the destination-offset rule -- AllDests,
// SingleDest, or ZerosDest -- given the shape of the value-function option
// being built and the location the decision arrives at.
//
//   - ZerosDest: nextLoc is Residence or Workplace -- its cache row has
//     length DayLength+2 regardless of zone, so every cell reads offset 0.
//   - AllDests: nextLoc is the NonFixed(All) wildcard -- the row is
//     zone-major, and the varying axis of u (destination if the decision
//     travels to NonFixed(All), origin otherwise, since a non-Travel
//     decision never changes zone) directly names the zone: offset(i) =
//     (i mod numZones) * stride.
//   - SingleDest: nextLoc is a concrete NonFixed(z) zone (the exploded
//     single-destination form simulate.go uses) -- every cell reads the one
//     zone z's slice: offset(i) = zIndex(z) * stride.
func offsetForNextState(world worldview.World, nextLoc model.Location, numZones, dayLength int) func(int) int {
	stride := dayLength + 2
	switch {
	case nextLoc.Kind == model.LocResidence || nextLoc.Kind == model.LocWorkplace:
		return func(int) int { return 0 }
	case nextLoc.IsWildcard():
		return func(cell int) int { return (cell % numZones) * stride }
	default:
		z := world.ZIndex(nextLoc.Zone)
		if z < 0 {
			z = nextLoc.Zone
		}
		off := z * stride
		return func(int) int { return off }
	}
}

// travelTotalMat sums travel time, wait, and access into one Mat of the
// given shape, folding each World query's peak/off-peak Mat sequence.
func travelTotalMat(mp *pool.MatPool, world worldview.World, mode model.Mode, origin, dest model.Location, t float64, shape matrix.Shape) (*matrix.Mat, error) {
	acc := mp.Rent(shape)
	queries := []func(model.Mode, model.Location, model.Location, float64) ([]*matrix.Mat, error){
		world.TravelTime, world.TravelWait, world.TravelAccess,
	}
	for _, q := range queries {
		mats, err := q(mode, origin, dest, t)
		if err != nil {
			mp.Release(acc)
			return nil, err
		}
		matrix.AddInto(acc, mats...)
	}
	return acc, nil
}

// optionPhi is the option utility kernel: it rents a Mat shaped for
// (state, decision), accumulates u(state, decision) via the configured
// UtilitySpec, adds interpolated expected future utility, and
// exponentiates it in place into Phi. The caller owns releasing the
// returned Mat.
func optionPhi(
	world worldview.World,
	agent model.Agent,
	latentClass int,
	cfg statespace.Config,
	spec statespace.UtilitySpec,
	cache *evcache.Cache,
	mp *pool.MatPool,
	state model.State,
	decision model.Decision,
) (*matrix.Mat, error) {
	originMany := state.Location.IsWildcard()
	destMany := decision.Kind == model.DecTravel && decision.TravelDest.IsWildcard()
	shape := matrix.DecisionShape(originMany, destMany)
	numZones := mp.NumZones()

	u := mp.Rent(shape)
	if err := spec.Accumulate(world, agent, latentClass, state, decision, u); err != nil {
		mp.Release(u)
		return nil, err
	}

	// The cache key does not depend on TimeOfDay or (for Residence/Workplace)
	// zone, so any placeholder timeOfDay yields the right row; the real
	// continuous arrival time is carried separately in timeMat below.
	next, err := statespace.NextState(agent, state, decision, 0, cfg)
	if err != nil {
		mp.Release(u)
		return nil, err
	}

	var timeMat *matrix.Mat
	if decision.Kind == model.DecTravel {
		timeMat, err = travelTotalMat(mp, world, decision.TravelMode, state.Location, decision.TravelDest, state.TimeOfDay, shape)
		if err != nil {
			mp.Release(u)
			return nil, err
		}
		addScalarInto(timeMat, state.TimeOfDay)
	} else {
		timeMat = mp.Rent(shape)
		step, err := statespace.NextSingleState(world, state, decision, cfg)
		if err != nil {
			mp.Release(u)
			mp.Release(timeMat)
			return nil, err
		}
		addScalarInto(timeMat, state.TimeOfDay+step)
	}

	offsetFn := offsetForNextState(world, next.Location, numZones, cache.DayLength())
	row := cache.GetAllTimesteps(next)
	addEvUtility(u, timeMat, row, cache.DayLength(), offsetFn)
	mp.Release(timeMat)

	matrix.ExpInplace(u)
	return u, nil
}

// OptionPhi exposes optionPhi to simulate, which evaluates single exploded
// decisions one at a time during a forward walk rather than folding a whole
// option set into a logsum. Behaviorally identical to the
// internal call optionPhi's own caller (evWalker.compute) makes.
func OptionPhi(
	world worldview.World,
	agent model.Agent,
	latentClass int,
	cfg statespace.Config,
	spec statespace.UtilitySpec,
	cache *evcache.Cache,
	mp *pool.MatPool,
	state model.State,
	decision model.Decision,
) (*matrix.Mat, error) {
	return optionPhi(world, agent, latentClass, cfg, spec, cache, mp, state, decision)
}

// addScalarInto adds a plain float64 into every cell of m -- a thin wrapper
// so optionPhi need not build a throwaway *matrix.Mat for a scalar addend.
func addScalarInto(m *matrix.Mat, v float64) {
	for i := range m.Data {
		m.Data[i] += v
	}
}
