package solver

import (
	"log"
	"math"

	"patrolx/pkg/datastructure"
	"patrolx/pkg/routing"
)

// VerifyConnectivity reports whether every node can reach every other node
// respecting edge direction.
func (b *baseSolver) VerifyConnectivity() bool {
	return len(routing.StronglyConnectedComponents(b.g)) == 1
}

// MainComponent extracts the strongly connected component the solve should
// run on. The component containing the start node wins unless a strictly
// larger one exists; in that case the start is relocated to the node of
// the largest component closest to the original start. When the largest
// component cannot be reached from the start at all, the original graph
// and start are kept and the solve proceeds in degraded mode.
func (b *baseSolver) MainComponent() (*datastructure.StreetGraph, int32) {
	components := routing.StronglyConnectedComponents(b.g)

	largest := components[0]
	var startComponent []int32
	for _, component := range components {
		if len(component) > len(largest) {
			largest = component
		}
		for _, nodeID := range component {
			if nodeID == b.startNode {
				startComponent = component
			}
		}
	}

	if len(startComponent) >= len(largest) {
		return b.g.InducedSubgraph(startComponent), b.startNode
	}

	altStart, found := b.findAlternativeStart(largest)
	if !found {
		// nothing in the main component is reachable, keep going with
		// what we have
		return b.g, b.startNode
	}
	if altStart != b.startNode {
		b.stats.StartRelocated = true
		log.Printf("using alternative start node: %d", altStart)
	}
	return b.g.InducedSubgraph(largest), altStart
}

// findAlternativeStart returns the component node with the smallest
// shortest-path distance from the current start, ties broken by
// first-found.
func (b *baseSolver) findAlternativeStart(component []int32) (int32, bool) {
	dists := b.rt.OneToManyShortestPath(b.startNode, component)

	best := int32(-1)
	bestDist := math.MaxFloat64
	for _, nodeID := range component {
		dist, ok := dists[nodeID]
		if !ok {
			continue
		}
		if dist < bestDist {
			bestDist = dist
			best = nodeID
		}
	}
	if best == -1 {
		return b.startNode, false
	}
	return best, true
}
