package netgraph

import (
	"fmt"

	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/worldview"
)

// DeriveODMatrix runs single-source Dijkstra once per zone in zones and
// assembles a dense, row-major (origin-major) NumZones x NumZones travel
// time matrix. zones is the ordered list of graph vertex IDs that are zone
// centroids; g may contain additional non-centroid nodes used only as
// intermediate routing points.
//
// A pair with no path in g is written as unreachable (math.MaxFloat64);
// callers that feed this into worldview.NewNetwork should treat that value
// as "effectively infinite cost" rather than a real travel time.
func DeriveODMatrix(g *Graph, zones []int) ([]float64, error) {
	n := len(zones)
	out := make([]float64, n*n)
	for i := range out {
		out[i] = unreachable
	}

	for oi, origin := range zones {
		dist, err := ShortestPaths(g, origin)
		if err != nil {
			return nil, fmt.Errorf("netgraph.DeriveODMatrix: zone %d: %w", origin, err)
		}
		base := oi * n
		for di, dest := range zones {
			if d, ok := dist[dest]; ok {
				out[base+di] = d
			}
		}
	}
	return out, nil
}

// NetworkFromGraph derives a worldview.Network from a link graph for the
// given zones and modes, using the same derived travel-time matrix for
// every listed mode's Time and PeakTime (no separate peak-network graph is
// modeled) and leaving Wait, Access, and Cost at zero. Callers that need
// per-mode or peak-differentiated graphs should call DeriveODMatrix
// directly per graph and assemble a worldview.Network by hand instead.
func NetworkFromGraph(g *Graph, zones []int, modes []model.Mode) (*worldview.Network, error) {
	times, err := DeriveODMatrix(g, zones)
	if err != nil {
		return nil, err
	}
	n := len(zones)
	zero := make([]float64, n*n)

	losByMode := make(map[model.Mode]*worldview.ModeLOS, len(modes))
	for _, m := range modes {
		losByMode[m] = &worldview.ModeLOS{
			Time:       times,
			PeakTime:   times,
			Wait:       zero,
			PeakWait:   zero,
			Access:     zero,
			PeakAccess: zero,
			Cost:       zero,
			PeakCost:   zero,
		}
	}
	return worldview.NewNetwork(n, losByMode)
}
