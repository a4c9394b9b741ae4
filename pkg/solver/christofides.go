package solver

import (
	"errors"
	"math"
)

var (
	errMatrixTooSmall   = errors.New("distance matrix needs at least two targets")
	errUnreachablePair  = errors.New("distance matrix has unreachable target pairs")
	errTreeDisconnected = errors.New("spanning tree does not cover all targets")
	errBrokenTour       = errors.New("shortcut tour misses targets")
)

// christofidesTour builds a closed 1.5-style approximate tour over the
// complete distance matrix: minimum spanning tree, matching on the
// odd-degree vertices, Eulerian circuit, shortcut to a Hamiltonian cycle.
// The matching is the deterministic greedy nearest-partner pairing, so the
// formal 1.5 bound is not guaranteed, the tour is still valid. Shortest
// path distances satisfy the triangle inequality, which is what the
// shortcut step relies on.
//
// Any error here means the matrix was not a usable metric instance (too
// small, unreachable pairs); the caller falls back to the greedy
// nearest-neighbor tour.
func christofidesTour(dist [][]float64, start int) ([]int, error) {
	n := len(dist)
	if n < 2 {
		return nil, errMatrixTooSmall
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j && math.IsInf(dist[i][j], 1) {
				return nil, errUnreachablePair
			}
		}
	}

	adj, err := minimumSpanningTree(dist)
	if err != nil {
		return nil, err
	}

	odd := make([]int, 0, n/2+1)
	for v := 0; v < n; v++ {
		if len(adj[v])%2 == 1 {
			odd = append(odd, v)
		}
	}

	greedyMatch(odd, dist, adj)

	euler := undirectedEulerianCircuit(adj, start)

	tour := make([]int, 0, n+1)
	visited := make([]bool, n)
	for _, v := range euler {
		if !visited[v] {
			visited[v] = true
			tour = append(tour, v)
		}
	}
	if len(tour) != n {
		return nil, errBrokenTour
	}
	tour = append(tour, tour[0])

	return tour, nil
}

// minimumSpanningTree is Prim's algorithm on the dense matrix, O(n^2),
// returning the tree as adjacency lists.
func minimumSpanningTree(dist [][]float64) ([][]int, error) {
	n := len(dist)
	inMST := make([]bool, n)
	bestCost := make([]float64, n)
	parents := make([]int, n)
	adj := make([][]int, n)

	for v := range bestCost {
		bestCost[v] = math.Inf(1)
		parents[v] = -1
	}
	bestCost[0] = 0

	for it := 0; it < n; it++ {
		u, minW := -1, math.Inf(1)
		for v := 0; v < n; v++ {
			if !inMST[v] && bestCost[v] < minW {
				minW, u = bestCost[v], v
			}
		}
		if u < 0 {
			return nil, errTreeDisconnected
		}
		inMST[u] = true
		if parents[u] >= 0 {
			p := parents[u]
			adj[u] = append(adj[u], p)
			adj[p] = append(adj[p], u)
		}
		for v := 0; v < n; v++ {
			if !inMST[v] && dist[u][v] < bestCost[v] {
				bestCost[v] = dist[u][v]
				parents[v] = u
			}
		}
	}

	return adj, nil
}

// greedyMatch pairs each remaining odd-degree vertex with its nearest
// remaining partner and adds the matching edge to the multigraph
// adjacency, making every degree even.
func greedyMatch(odd []int, dist [][]float64, adj [][]int) {
	remaining := append([]int(nil), odd...)
	for len(remaining) > 1 {
		u := remaining[0]
		remaining = remaining[1:]

		bestIdx, bestD := -1, math.Inf(1)
		for i, v := range remaining {
			if d := dist[u][v]; d < bestD {
				bestD, bestIdx = d, i
			}
		}

		v := remaining[bestIdx]
		adj[u] = append(adj[u], v)
		adj[v] = append(adj[v], u)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
}

// undirectedEulerianCircuit is Hierholzer's algorithm on an undirected
// multigraph given as adjacency lists; each traversed edge is removed in
// both directions.
func undirectedEulerianCircuit(adj [][]int, start int) []int {
	local := make([][]int, len(adj))
	for u := range adj {
		local[u] = append([]int(nil), adj[u]...)
	}

	circuit := make([]int, 0)
	stack := []int{start}

	for len(stack) > 0 {
		u := stack[len(stack)-1]
		if len(local[u]) == 0 {
			circuit = append(circuit, u)
			stack = stack[:len(stack)-1]
		} else {
			v := local[u][len(local[u])-1]
			local[u] = local[u][:len(local[u])-1]
			for i, x := range local[v] {
				if x == u {
					local[v] = append(local[v][:i], local[v][i+1:]...)
					break
				}
			}
			stack = append(stack, v)
		}
	}

	return circuit
}
