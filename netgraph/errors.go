package netgraph

import "errors"

// ErrNilGraph indicates a nil *Graph was passed to ShortestPaths.
var ErrNilGraph = errors.New("netgraph: graph is nil")

// ErrVertexNotFound indicates a source or zone vertex is absent from the
// graph.
var ErrVertexNotFound = errors.New("netgraph: vertex not found")

// ErrNegativeWeight indicates an edge carried a negative travel time;
// Dijkstra's correctness depends on non-negative weights.
var ErrNegativeWeight = errors.New("netgraph: negative edge weight")
