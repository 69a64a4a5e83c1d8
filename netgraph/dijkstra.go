package netgraph

import (
	"container/heap"
	"fmt"
	"math"
)

// ShortestPaths computes shortest travel times from source to every vertex
// reachable in g, using a lazy-decrease-key Dijkstra: shorter distances are
// pushed as new heap entries rather than updating existing ones, and stale
// entries are discarded on pop via the visited set.
//
// Unreachable vertices are absent from the returned map.
func ShortestPaths(g *Graph, source int) (map[int]float64, error) {
	// 1) Validate inputs.
	if g == nil {
		return nil, ErrNilGraph
	}
	if !g.HasVertex(source) {
		return nil, fmt.Errorf("netgraph.ShortestPaths: source %d: %w", source, ErrVertexNotFound)
	}

	// 2) Pre-scan for negative weights, fail fast.
	for _, v := range g.Vertices() {
		for _, e := range g.Neighbors(v) {
			if e.Weight < 0 {
				return nil, fmt.Errorf("netgraph.ShortestPaths: edge %d->%d weight=%v: %w", v, e.To, e.Weight, ErrNegativeWeight)
			}
		}
	}

	// 3) Initialize distances and the min-heap.
	dist := make(map[int]float64, len(g.adj))
	visited := make(map[int]bool, len(g.adj))
	dist[source] = 0

	pq := make(nodePQ, 0, len(g.adj))
	heap.Init(&pq)
	heap.Push(&pq, &nodeItem{id: source, dist: 0})

	// 4) Main loop: pop closest unvisited vertex, relax its edges.
	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*nodeItem)
		u, d := item.id, item.dist
		if visited[u] {
			continue
		}
		visited[u] = true

		for _, e := range g.Neighbors(u) {
			newDist := d + e.Weight
			if best, ok := dist[e.To]; ok && newDist >= best {
				continue
			}
			dist[e.To] = newDist
			heap.Push(&pq, &nodeItem{id: e.To, dist: newDist})
		}
	}

	return dist, nil
}

// nodeItem is a (vertex, distance) pair stored in the priority queue.
type nodeItem struct {
	id   int
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by ascending distance.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// unreachable is the sentinel travel time DeriveODMatrix writes for a
// (origin, dest) pair Dijkstra never reaches.
const unreachable = math.MaxFloat64
