package choiceset

import (
	"math"

	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/worldview"
)

// unreachableThreshold flags an OD travel time as "no path" without
// depending on netgraph's internal sentinel: any World-reported travel
// time this large is effectively infinite for reachability purposes.
const unreachableThreshold = 1e12

// reachWalker performs a BFS reachability scan over World's implied
// adjacency graph for one mode: an edge runs from zone a to zone b whenever
// that mode reports a finite travel time from a to b. The queue/visited split keeps
// the traversal iterative and needs no depth limit -- only the final
// visited set matters.
type reachWalker struct {
	world   worldview.World
	mode    model.Mode
	zones   []int
	queue   []int
	visited map[int]bool
}

// ReachableZones returns the set of zones reachable from home under mode,
// following edges with finite travel time from origin to destination only
// (the reverse direction is not consulted). Used to
// restrict zone-sampling candidates to zones an agent could
// ever actually travel to, rather than wasting sampled slots on zones no
// feasible Travel decision will ever reach.
func ReachableZones(world worldview.World, mode model.Mode, home int) (map[int]bool, error) {
	w := &reachWalker{
		world:   world,
		mode:    mode,
		zones:   world.Zones(),
		visited: map[int]bool{home: true},
		queue:   []int{home},
	}
	if err := w.loop(); err != nil {
		return nil, err
	}
	return w.visited, nil
}

func (w *reachWalker) loop() error {
	for len(w.queue) > 0 {
		z := w.dequeue()
		if err := w.enqueueNeighbors(z); err != nil {
			return err
		}
	}
	return nil
}

func (w *reachWalker) dequeue() int {
	z := w.queue[0]
	w.queue = w.queue[1:]
	return z
}

func (w *reachWalker) enqueueNeighbors(z int) error {
	for _, d := range w.zones {
		if w.visited[d] {
			continue
		}
		reachable, err := w.finiteTravelTime(z, d)
		if err != nil {
			return err
		}
		if reachable {
			w.visited[d] = true
			w.queue = append(w.queue, d)
		}
	}
	return nil
}

func (w *reachWalker) finiteTravelTime(origin, dest int) (bool, error) {
	oLoc, err := model.NonFixedZone(origin)
	if err != nil {
		return false, err
	}
	dLoc, err := model.NonFixedZone(dest)
	if err != nil {
		return false, err
	}
	mats, err := w.world.TravelTime(w.mode, oLoc, dLoc, 0)
	if err != nil {
		return false, err
	}
	for _, m := range mats {
		v := m.At(0)
		if math.IsInf(v, 0) || v >= unreachableThreshold {
			return false, nil
		}
	}
	return true, nil
}
