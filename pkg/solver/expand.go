package solver

import (
	"patrolx/pkg/datastructure"
	"patrolx/pkg/routing"
	"patrolx/pkg/util"
)

// expandRoute turns an abstract stop sequence into a physically
// traversable route: every consecutive pair of the result is connected by
// a direct edge. Pairs without a direct edge are bridged by the directed
// shortest path, then by the direction-ignoring one. When neither exists
// the target node is appended as-is; such a non-adjacent jump is counted
// and left to the caller to flag, a route must never fail here.
//
// Expanding an already expanded route is a no-op, every pair already has
// its direct edge.
func (b *baseSolver) expandRoute(route []int32, g *datastructure.StreetGraph, rt *routing.RouteAlgorithm) []int32 {
	if len(route) < 2 {
		return route
	}

	expanded := make([]int32, 0, len(route))
	expanded = append(expanded, route[0])

	for i := 0; i < len(route)-1; i++ {
		nodeFrom := route[i]
		nodeTo := route[i+1]

		if g.HasEdge(nodeFrom, nodeTo) {
			expanded = append(expanded, nodeTo)
			continue
		}

		path, _, found := rt.ShortestPath(nodeFrom, nodeTo)
		if !found {
			path, _, found = rt.ShortestPathUndirected(nodeFrom, nodeTo)
		}

		if found && len(path) > 1 {
			expanded = append(expanded, path[1:]...)
			b.stats.SegmentsExpanded++
		} else {
			expanded = append(expanded, nodeTo)
			b.stats.NonAdjacentJumps++
		}
	}

	return expanded
}

// totalDistance sums the route segment lengths: the shortest direct edge
// when one exists, the shortest-path distance otherwise. A segment with no
// resolvable path contributes zero, a documented undercount.
func (b *baseSolver) totalDistance(route []int32, g *datastructure.StreetGraph, rt *routing.RouteAlgorithm) float64 {
	distance := 0.0
	for i := 0; i < len(route)-1; i++ {
		u, v := route[i], route[i+1]

		if length, ok := g.MinEdgeLength(u, v); ok {
			distance += length
			continue
		}
		if dist, found := rt.ShortestPathLength(u, v); found {
			distance += dist
		}
	}
	return util.RoundFloat(distance, 2)
}
