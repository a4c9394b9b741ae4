package solver

import (
	"patrolx/pkg/datastructure"
	"patrolx/pkg/routing"
	"patrolx/pkg/util"
)

func isBalanced(g *datastructure.StreetGraph) bool {
	return len(computeImbalances(g)) == 0
}

// isEulerian reports whether the graph admits an Eulerian circuit: every
// node balanced and the graph strongly connected.
func isEulerian(g *datastructure.StreetGraph) bool {
	if !isBalanced(g) {
		return false
	}
	return len(routing.StronglyConnectedComponents(g)) == 1
}

// eulerianCircuit runs Hierholzer's algorithm from start and returns the
// node sequence of a closed walk using every edge exactly once. The graph
// must be Eulerian. Iterative: the trail is extended edge by edge on a
// stack and dead ends are emitted in reverse, which splices sub-circuits
// without recursion.
func eulerianCircuit(g *datastructure.StreetGraph, start int32) []int32 {
	edgePos := make(map[int32]int, g.NumNodes())

	stack := []int32{start}
	circuit := make([]int32, 0, g.NumEdges()+1)

	for len(stack) > 0 {
		v := stack[len(stack)-1]

		outEdges := g.GetNodeOutEdges(v)
		if edgePos[v] < len(outEdges) {
			edge := g.GetEdge(outEdges[edgePos[v]])
			edgePos[v]++
			stack = append(stack, edge.ToNodeID)
		} else {
			circuit = append(circuit, v)
			stack = stack[:len(stack)-1]
		}
	}

	return util.ReverseG(circuit)
}

// approximateRoute is the fallback when eulerization left the graph
// unbalanced: a depth-first node traversal (each node once, not each
// edge), closed by a shortest path back to the start when one exists.
// Edge coverage is not guaranteed; the caller flags the route as an
// approximation.
func (s *CPPSolver) approximateRoute(g *datastructure.StreetGraph, rt *routing.RouteAlgorithm, start int32) []int32 {
	visited := make(map[int32]bool, g.NumNodes())
	route := make([]int32, 0, g.NumNodes())

	stack := []int32{start}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[v] {
			continue
		}
		visited[v] = true
		route = append(route, v)

		succ := g.Successors(v)
		for i := len(succ) - 1; i >= 0; i-- {
			if !visited[succ[i]] {
				stack = append(stack, succ[i])
			}
		}
	}

	if len(route) > 0 && route[len(route)-1] != start {
		pathBack, _, found := rt.ShortestPath(route[len(route)-1], start)
		if found {
			route = append(route, pathBack[1:]...)
		}
	}

	return route
}
