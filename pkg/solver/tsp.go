package solver

import (
	"log"

	"patrolx/pkg/routing"
	"patrolx/pkg/server"
)

// TSPSolver computes a delivery tour: a closed route from the start node
// visiting every target stop exactly once, approximately minimizing
// distance. Primary construction is the Christofides-style pipeline over
// the shortest-path distance matrix; on any construction failure it falls
// back to greedy nearest-neighbor.
type TSPSolver struct {
	baseSolver
	targets []int32
}

func newTSPSolver(base baseSolver, targets []int32) *TSPSolver {
	if len(targets) == 0 {
		targets = base.g.Nodes()
	}
	targets = ensureContains(targets, base.startNode)
	return &TSPSolver{baseSolver: base, targets: targets}
}

func ensureContains(targets []int32, nodeID int32) []int32 {
	for _, t := range targets {
		if t == nodeID {
			return targets
		}
	}
	return append([]int32{nodeID}, targets...)
}

func (s *TSPSolver) Solve() ([]int32, float64, error) {
	if !s.VerifyConnectivity() {
		log.Printf("graph not strongly connected, extracting main component")
		g, start := s.MainComponent()
		s.g = g
		s.startNode = start
		s.rt = routing.NewRouteAlgorithm(g)

		kept := make([]int32, 0, len(s.targets))
		for _, t := range s.targets {
			if g.HasNode(t) {
				kept = append(kept, t)
			}
		}
		s.targets = ensureContains(kept, start)
	}

	if len(s.targets) == 1 {
		return []int32{s.startNode}, 0, nil
	}

	dist := buildDistanceMatrix(s.rt, s.targets)

	startIdx := 0
	for i, t := range s.targets {
		if t == s.startNode {
			startIdx = i
			break
		}
	}

	var tour []int32
	tourIdx, err := christofidesTour(dist, startIdx)
	if err != nil {
		s.stats.TourFallback = true
		log.Printf("tour approximation unavailable (%v), using greedy nearest-neighbor", err)
		tour, err = s.greedyTour()
		if err != nil {
			return nil, 0, err
		}
	} else {
		tour = make([]int32, 0, len(tourIdx))
		for _, idx := range tourIdx {
			tour = append(tour, s.targets[idx])
		}
	}

	tour = rotateToStart(tour, s.startNode)

	route := s.expandRoute(tour, s.g, s.rt)
	distance := s.totalDistance(route, s.g, s.rt)

	return route, distance, nil
}

// greedyTour walks from the start to the nearest unvisited target by
// shortest-path distance until every reachable target is visited, then
// closes the loop at the start. Unreachable targets are skipped; when not
// a single target can be reached the solve as a whole has failed.
func (s *TSPSolver) greedyTour() ([]int32, error) {
	unvisited := make(map[int32]struct{}, len(s.targets))
	for _, t := range s.targets {
		if t != s.startNode {
			unvisited[t] = struct{}{}
		}
	}

	route := []int32{s.startNode}
	current := s.startNode

	for len(unvisited) > 0 {
		candidates := make([]int32, 0, len(unvisited))
		for _, t := range s.targets {
			if _, ok := unvisited[t]; ok {
				candidates = append(candidates, t)
			}
		}

		dists := s.rt.OneToManyShortestPath(current, candidates)

		nearest := int32(-1)
		minDist := -1.0
		for _, t := range candidates {
			d, ok := dists[t]
			if !ok {
				continue
			}
			if nearest == -1 || d < minDist {
				minDist = d
				nearest = t
			}
		}
		if nearest == -1 {
			break
		}

		route = append(route, nearest)
		delete(unvisited, nearest)
		current = nearest
	}

	if len(route) == 1 && len(s.targets) > 1 {
		return nil, server.NewErrorf(server.ErrNotFound, "no target is reachable from start node %d", s.startNode)
	}

	route = append(route, s.startNode)
	return route, nil
}
