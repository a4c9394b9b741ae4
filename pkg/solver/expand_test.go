package solver

import (
	"testing"

	"patrolx/pkg/datastructure"
	"patrolx/pkg/routing"

	"github.com/stretchr/testify/assert"
)

func TestExpandRouteBridgesDirectedGap(t *testing.T) {
	// 0 -> 1 -> 2 one way, plus 2 -> 0 closing the loop
	g := datastructure.NewStreetGraph()
	for i := 0; i < 3; i++ {
		g.AddNode(0, float64(i))
	}
	g.AddEdge(0, 1, 1, "")
	g.AddEdge(1, 2, 1, "")
	g.AddEdge(2, 0, 1, "")

	s := newCPPForTest(t, g, 0)
	rt := routing.NewRouteAlgorithm(g)

	expanded := s.expandRoute([]int32{0, 2, 0}, g, rt)

	assert.Equal(t, []int32{0, 1, 2, 0}, expanded)
	assert.Equal(t, 1, s.stats.SegmentsExpanded)
	assert.Equal(t, 0, s.stats.NonAdjacentJumps)
	assert.InDelta(t, 3.0, s.totalDistance(expanded, g, rt), 1e-9)
}

func TestExpandRouteIsIdempotent(t *testing.T) {
	g := datastructure.NewStreetGraph()
	for i := 0; i < 4; i++ {
		g.AddNode(0, float64(i))
	}
	g.AddEdge(0, 1, 1, "")
	g.AddEdge(1, 2, 1, "")
	g.AddEdge(2, 3, 1, "")
	g.AddEdge(3, 0, 1, "")

	s := newCPPForTest(t, g, 0)
	rt := routing.NewRouteAlgorithm(g)

	once := s.expandRoute([]int32{0, 2, 0}, g, rt)
	twice := s.expandRoute(once, g, rt)

	assert.Equal(t, once, twice)
}

func TestExpandRouteFallsBackToUndirectedPath(t *testing.T) {
	// the only street between 1 and 2 points the wrong way for the
	// requested hop
	g := datastructure.NewStreetGraph()
	for i := 0; i < 3; i++ {
		g.AddNode(0, float64(i))
	}
	g.AddEdge(0, 1, 1, "")
	g.AddEdge(2, 1, 1, "")

	s := newCPPForTest(t, g, 0)
	rt := routing.NewRouteAlgorithm(g)

	expanded := s.expandRoute([]int32{0, 2}, g, rt)

	assert.Equal(t, []int32{0, 1, 2}, expanded)
	assert.Equal(t, 1, s.stats.SegmentsExpanded)
}

func TestExpandRouteCountsNonAdjacentJump(t *testing.T) {
	// node 2 is fully isolated from 0 and 1
	g := datastructure.NewStreetGraph()
	for i := 0; i < 3; i++ {
		g.AddNode(0, float64(i))
	}
	g.AddEdge(0, 1, 1, "")

	s := newCPPForTest(t, g, 0)
	rt := routing.NewRouteAlgorithm(g)

	expanded := s.expandRoute([]int32{0, 2}, g, rt)

	assert.Equal(t, []int32{0, 2}, expanded)
	assert.Equal(t, 1, s.stats.NonAdjacentJumps)
	// the unreachable segment contributes nothing
	assert.InDelta(t, 0.0, s.totalDistance(expanded, g, rt), 1e-9)
}

func TestTotalDistancePrefersCheapestParallelStreet(t *testing.T) {
	g := datastructure.NewStreetGraph()
	g.AddNode(0, 0)
	g.AddNode(0, 1)
	g.AddEdge(0, 1, 5, "long way")
	g.AddEdge(0, 1, 2, "shortcut")

	s := newCPPForTest(t, g, 0)
	rt := routing.NewRouteAlgorithm(g)

	assert.InDelta(t, 2.0, s.totalDistance([]int32{0, 1}, g, rt), 1e-9)
}
