package solver

import (
	"math"

	"patrolx/pkg/routing"
)

// buildDistanceMatrix builds the complete weighted graph over the target
// nodes as a dense symmetric matrix, weight(i,j) = directed shortest-path
// distance from target i to target j in the source graph. Unreachable
// pairs carry +Inf so tour construction can degrade instead of failing
// here.
func buildDistanceMatrix(rt *routing.RouteAlgorithm, targets []int32) [][]float64 {
	n := len(targets)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			if i != j {
				dist[i][j] = math.Inf(1)
			}
		}
	}

	for i := 0; i < n; i++ {
		row := rt.OneToManyShortestPath(targets[i], targets[i+1:])
		for j := i + 1; j < n; j++ {
			if d, ok := row[targets[j]]; ok {
				dist[i][j] = d
				dist[j][i] = d
			}
		}
	}

	return dist
}
