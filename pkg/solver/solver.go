// Package solver implements the two street covering strategies of the
// engine: the Chinese Postman route (traverse every street at least once,
// used for patrol and sweeping) and the Traveling Salesman route (visit a
// set of stops exactly once, used for delivery runs).
package solver

import (
	"patrolx/pkg/datastructure"
	"patrolx/pkg/routing"
	"patrolx/pkg/server"
)

type Algorithm int

const (
	ChinesePostman Algorithm = iota
	TravelingSalesman
)

func (a Algorithm) String() string {
	switch a {
	case ChinesePostman:
		return "chinese_postman"
	case TravelingSalesman:
		return "traveling_salesman"
	}
	return "unknown"
}

// Solver produces a traversable route over a street graph. The returned
// route is always expanded: every consecutive node pair is connected by a
// direct edge, except for the documented non-adjacent jump fallback.
type Solver interface {
	Solve() ([]int32, float64, error)
	VerifyConnectivity() bool
	MainComponent() (*datastructure.StreetGraph, int32)
	Stats() Stats
}

// Stats carries the observable counters of one solve, replacing progress
// narration. Callers feed them into metrics.
type Stats struct {
	UnbalancedNodes   int
	PathsDuplicated   int
	ResidualImbalance int
	SegmentsExpanded  int
	NonAdjacentJumps  int
	StartRelocated    bool
	CircuitFallback   bool
	TourFallback      bool
}

// New builds a solver for the given algorithm. targets is only meaningful
// for TravelingSalesman; nil means visit every node of the graph. The
// graph must be non-empty and contain startNode, anything else is an
// invalid-input error.
func New(algo Algorithm, g *datastructure.StreetGraph, startNode int32, targets []int32) (Solver, error) {
	base, err := newBaseSolver(g, startNode)
	if err != nil {
		return nil, err
	}

	switch algo {
	case ChinesePostman:
		return &CPPSolver{baseSolver: base}, nil
	case TravelingSalesman:
		return newTSPSolver(base, targets), nil
	}
	return nil, server.NewErrorf(server.ErrInvalidInput, "unknown algorithm %d", algo)
}

type baseSolver struct {
	g         *datastructure.StreetGraph
	rt        *routing.RouteAlgorithm
	startNode int32
	stats     Stats
}

func newBaseSolver(g *datastructure.StreetGraph, startNode int32) (baseSolver, error) {
	if g == nil || g.NumNodes() == 0 {
		return baseSolver{}, server.NewErrorf(server.ErrInvalidInput, "graph is empty")
	}
	if !g.HasNode(startNode) {
		return baseSolver{}, server.NewErrorf(server.ErrInvalidInput, "start node %d not in graph", startNode)
	}
	return baseSolver{
		g:         g,
		rt:        routing.NewRouteAlgorithm(g),
		startNode: startNode,
	}, nil
}

func (b *baseSolver) Stats() Stats {
	return b.stats
}
