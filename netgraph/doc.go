// Package netgraph derives dense origin-destination level-of-service
// matrices from a link-level network graph via repeated single-source
// Dijkstra, as an alternate input path into worldview.Network alongside a
// directly-supplied OD matrix.
//
// Graph construction uses a functional-options configuration and a
// lazy-decrease-key min-heap for the shortest-path search, over float64
// travel-time edge weights and int zone/node IDs.
package netgraph
