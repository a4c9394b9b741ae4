package solver

import (
	"log"

	"patrolx/pkg/routing"
)

// CPPSolver computes a Chinese Postman route: a closed walk from the start
// node covering every street segment of the graph at least once. When the
// eulerized graph is not perfectly balanced the solver degrades to the
// approximate depth-first traversal and says so in Stats.
type CPPSolver struct {
	baseSolver
}

func (s *CPPSolver) Solve() ([]int32, float64, error) {
	if !s.VerifyConnectivity() {
		log.Printf("graph not strongly connected, extracting main component")
		g, start := s.MainComponent()
		s.g = g
		s.startNode = start
		s.rt = routing.NewRouteAlgorithm(g)
	}

	eulerGraph := s.eulerize(s.g)

	var route []int32
	if isEulerian(eulerGraph) {
		route = eulerianCircuit(eulerGraph, s.startNode)
	} else {
		s.stats.CircuitFallback = true
		log.Printf("eulerization incomplete (%d residual nodes), using approximate traversal",
			s.stats.ResidualImbalance)
		rtEuler := routing.NewRouteAlgorithm(eulerGraph)
		route = s.approximateRoute(eulerGraph, rtEuler, s.startNode)
	}

	route = s.expandRoute(route, s.g, s.rt)
	distance := s.totalDistance(route, s.g, s.rt)

	return route, distance, nil
}
