package netgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaper-abm/scaper/model"
	"github.com/scaper-abm/scaper/netgraph"
)

func lineGraph() *netgraph.Graph {
	// 0 --1--> 1 --2--> 2 --4--> 3, undirected.
	g := netgraph.NewGraph()
	g.AddEdge(0, 1, 1, false)
	g.AddEdge(1, 2, 2, false)
	g.AddEdge(2, 3, 4, false)
	return g
}

func TestShortestPathsSumsAlongChain(t *testing.T) {
	dist, err := netgraph.ShortestPaths(lineGraph(), 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, dist[0])
	assert.Equal(t, 1.0, dist[1])
	assert.Equal(t, 3.0, dist[2])
	assert.Equal(t, 7.0, dist[3])
}

func TestShortestPathsPrefersShortcut(t *testing.T) {
	g := netgraph.NewGraph()
	g.AddEdge(0, 1, 10, false)
	g.AddEdge(1, 2, 10, false)
	g.AddEdge(0, 2, 5, false)
	dist, err := netgraph.ShortestPaths(g, 0)
	require.NoError(t, err)
	assert.Equal(t, 5.0, dist[2])
}

func TestShortestPathsUnknownSource(t *testing.T) {
	_, err := netgraph.ShortestPaths(lineGraph(), 99)
	require.ErrorIs(t, err, netgraph.ErrVertexNotFound)
}

func TestShortestPathsNilGraph(t *testing.T) {
	_, err := netgraph.ShortestPaths(nil, 0)
	require.ErrorIs(t, err, netgraph.ErrNilGraph)
}

func TestShortestPathsRejectsNegativeWeight(t *testing.T) {
	g := netgraph.NewGraph()
	g.AddEdge(0, 1, -1, false)
	_, err := netgraph.ShortestPaths(g, 0)
	require.ErrorIs(t, err, netgraph.ErrNegativeWeight)
}

func TestDeriveODMatrixIsDenseAndSymmetricOnUndirectedGraph(t *testing.T) {
	g := lineGraph()
	zones := []int{0, 1, 2, 3}
	m, err := netgraph.DeriveODMatrix(g, zones)
	require.NoError(t, err)
	require.Len(t, m, 16)

	// Row-major: m[origin*4+dest].
	assert.Equal(t, 0.0, m[0*4+0])
	assert.Equal(t, 7.0, m[0*4+3])
	assert.Equal(t, m[0*4+3], m[3*4+0], "undirected graph gives symmetric OD travel times")
}

func TestDeriveODMatrixMarksUnreachablePairs(t *testing.T) {
	g := netgraph.NewGraph()
	g.AddEdge(0, 1, 1, true) // directed, no return path
	m, err := netgraph.DeriveODMatrix(g, []int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, 1.0, m[0*2+1])
	assert.Greater(t, m[1*2+0], 1e300, "no path back from 1 to 0 stays at the unreachable sentinel")
}

func TestNetworkFromGraphBuildsUsableNetwork(t *testing.T) {
	net, err := netgraph.NetworkFromGraph(lineGraph(), []int{0, 1, 2, 3}, []model.Mode{model.Car})
	require.NoError(t, err)
	require.Contains(t, net.Modes, model.Car)
	assert.Equal(t, 7.0, net.Modes[model.Car].Time[0*4+3])
	assert.Equal(t, net.Modes[model.Car].Time, net.Modes[model.Car].PeakTime)
}
