package solver

import (
	"testing"

	"patrolx/pkg/datastructure"

	"github.com/stretchr/testify/assert"
)

func newCPPForTest(t *testing.T, g *datastructure.StreetGraph, start int32) *CPPSolver {
	s, err := New(ChinesePostman, g, start, nil)
	assert.NoError(t, err)
	return s.(*CPPSolver)
}

func edgePairCounts(g *datastructure.StreetGraph) map[[2]int32]int {
	counts := make(map[[2]int32]int)
	for e := int32(0); e < int32(g.NumEdges()); e++ {
		edge := g.GetEdge(e)
		counts[[2]int32{edge.FromNodeID, edge.ToNodeID}]++
	}
	return counts
}

func TestEulerizeIdempotentOnBalancedGraph(t *testing.T) {
	g := buildUnitCycle(4)
	s := newCPPForTest(t, g, 0)

	eulerGraph := s.eulerize(g)

	assert.Equal(t, edgePairCounts(g), edgePairCounts(eulerGraph))
	assert.Equal(t, 0, s.stats.UnbalancedNodes)
	assert.Equal(t, 0, s.stats.PathsDuplicated)
}

func TestEulerizeRestoresBalance(t *testing.T) {
	// node 0 has out-degree 2, the surplus drains into node 3 which has
	// a path back to 0
	g := datastructure.NewStreetGraph()
	for i := 0; i < 4; i++ {
		g.AddNode(float64(i), float64(i))
	}
	g.AddEdge(0, 1, 1, "")
	g.AddEdge(0, 2, 1, "")
	g.AddEdge(1, 3, 1, "")
	g.AddEdge(2, 3, 1, "")
	g.AddEdge(3, 0, 1, "")

	s := newCPPForTest(t, g, 0)
	eulerGraph := s.eulerize(g)

	assert.True(t, isBalanced(eulerGraph))
	assert.Equal(t, 2, s.stats.UnbalancedNodes)
	assert.Equal(t, 1, s.stats.PathsDuplicated)
	assert.Equal(t, 0, s.stats.ResidualImbalance)
	// the duplicated 3->0 edge kept its attributes
	assert.Equal(t, 2, len(eulerGraph.EdgesBetween(3, 0)))
}

func TestEulerizeDocumentsResidualImbalance(t *testing.T) {
	// the deficit node has no path back at all, nothing can be repaired
	g := datastructure.NewStreetGraph()
	for i := 0; i < 4; i++ {
		g.AddNode(float64(i), float64(i))
	}
	g.AddEdge(0, 1, 1, "")
	g.AddEdge(0, 2, 1, "")
	g.AddEdge(1, 3, 1, "")
	g.AddEdge(2, 3, 1, "")

	s := newCPPForTest(t, g, 0)
	eulerGraph := s.eulerize(g)

	assert.False(t, isBalanced(eulerGraph))
	assert.Equal(t, 0, s.stats.PathsDuplicated)
	assert.Equal(t, 2, s.stats.ResidualImbalance)
	assert.Equal(t, g.NumEdges(), eulerGraph.NumEdges())
}

func TestEulerizeDoesNotTouchCallerGraph(t *testing.T) {
	g := datastructure.NewStreetGraph()
	for i := 0; i < 3; i++ {
		g.AddNode(float64(i), float64(i))
	}
	g.AddEdge(0, 1, 1, "")
	g.AddEdge(1, 2, 1, "")
	g.AddEdge(2, 0, 1, "")
	g.AddEdge(0, 1, 2, "second")

	edgesBefore := g.NumEdges()
	s := newCPPForTest(t, g, 0)
	eulerGraph := s.eulerize(g)

	assert.Equal(t, edgesBefore, g.NumEdges())
	assert.True(t, eulerGraph.NumEdges() > edgesBefore)
}

func TestHierholzerTraversesEveryEdgeOnce(t *testing.T) {
	// figure eight through node 0
	g := datastructure.NewStreetGraph()
	for i := 0; i < 5; i++ {
		g.AddNode(float64(i), float64(i))
	}
	g.AddEdge(0, 1, 1, "")
	g.AddEdge(1, 2, 1, "")
	g.AddEdge(2, 0, 1, "")
	g.AddEdge(0, 3, 1, "")
	g.AddEdge(3, 4, 1, "")
	g.AddEdge(4, 0, 1, "")

	assert.True(t, isEulerian(g))
	circuit := eulerianCircuit(g, 0)

	assert.Equal(t, g.NumEdges()+1, len(circuit))
	assert.Equal(t, int32(0), circuit[0])
	assert.Equal(t, int32(0), circuit[len(circuit)-1])

	used := make(map[[2]int32]int)
	for i := 0; i < len(circuit)-1; i++ {
		used[[2]int32{circuit[i], circuit[i+1]}]++
	}
	assert.Equal(t, edgePairCounts(g), used)
}
