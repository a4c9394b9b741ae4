package solver

import (
	"testing"

	"patrolx/pkg/datastructure"

	"github.com/stretchr/testify/assert"
)

func buildUnitCycle(n int) *datastructure.StreetGraph {
	g := datastructure.NewStreetGraph()
	for i := 0; i < n; i++ {
		g.AddNode(float64(i), float64(i))
	}
	for i := 0; i < n; i++ {
		g.AddEdge(int32(i), int32((i+1)%n), 1, "loop")
	}
	return g
}

func TestCPPSolveDirectedCycle(t *testing.T) {
	g := buildUnitCycle(4)

	s, err := New(ChinesePostman, g, 0, nil)
	assert.NoError(t, err)

	route, distance, err := s.Solve()
	assert.NoError(t, err)
	assert.Equal(t, []int32{0, 1, 2, 3, 0}, route)
	assert.Equal(t, 4.0, distance)
	assert.False(t, s.Stats().CircuitFallback)
	assert.Equal(t, 0, s.Stats().ResidualImbalance)
}

func TestCPPSolveCoversEveryEdge(t *testing.T) {
	// two triangles sharing node 0, balanced and strongly connected
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

	s, err := New(ChinesePostman, g, 0, nil)
	assert.NoError(t, err)

	route, distance, err := s.Solve()
	assert.NoError(t, err)
	assert.False(t, s.Stats().CircuitFallback)
	assert.Equal(t, 6.0, distance)
	assert.Equal(t, int32(0), route[0])
	assert.Equal(t, int32(0), route[len(route)-1])

	// every edge of the graph shows up as a consecutive adjacent pair
	traversed := make(map[[2]int32]bool)
	for i := 0; i < len(route)-1; i++ {
		traversed[[2]int32{route[i], route[i+1]}] = true
	}
	for e := int32(0); e < int32(g.NumEdges()); e++ {
		edge := g.GetEdge(e)
		assert.True(t, traversed[[2]int32{edge.FromNodeID, edge.ToNodeID}],
			"edge %d->%d not traversed", edge.FromNodeID, edge.ToNodeID)
	}
}

func TestCPPSolveRelocatesStartToMainComponent(t *testing.T) {
	// small cycle {0,1} drains one-way into the larger cycle {2,3,4}
	g := datastructure.NewStreetGraph()
	for i := 0; i < 5; i++ {
		g.AddNode(float64(i), float64(i))
	}
	g.AddEdge(0, 1, 1, "")
	g.AddEdge(1, 0, 1, "")
	g.AddEdge(1, 2, 5, "bridge")
	g.AddEdge(2, 3, 1, "")
	g.AddEdge(3, 4, 1, "")
	g.AddEdge(4, 2, 1, "")

	s, err := New(ChinesePostman, g, 0, nil)
	assert.NoError(t, err)

	route, distance, err := s.Solve()
	assert.NoError(t, err)
	assert.True(t, s.Stats().StartRelocated)
	// node 2 is the closest node of the main component
	assert.Equal(t, []int32{2, 3, 4, 2}, route)
	assert.Equal(t, 3.0, distance)
}

func TestCPPSolveUnreachableMainComponentDegradesGracefully(t *testing.T) {
	// larger cycle {1,2,3} has no connection at all to the start node 0
	g := datastructure.NewStreetGraph()
	for i := 0; i < 4; i++ {
		g.AddNode(float64(i), float64(i))
	}
	g.AddEdge(1, 2, 1, "")
	g.AddEdge(2, 3, 1, "")
	g.AddEdge(3, 1, 1, "")

	s, err := New(ChinesePostman, g, 0, nil)
	assert.NoError(t, err)

	route, _, err := s.Solve()
	assert.NoError(t, err)
	assert.False(t, s.Stats().StartRelocated)
	assert.Equal(t, int32(0), route[0])
}

func TestCPPSolveUnbalancedFallback(t *testing.T) {
	// node 0 leaves twice more than it is entered; the single greedy
	// pass can only repair one unit, the rest stays unbalanced
	g := datastructure.NewStreetGraph()
	for i := 0; i < 4; i++ {
		g.AddNode(float64(i), float64(i))
	}
	g.AddEdge(0, 1, 1, "")
	g.AddEdge(1, 2, 1, "")
	g.AddEdge(2, 3, 1, "")
	g.AddEdge(3, 0, 1, "")
	g.AddEdge(0, 2, 1, "")
	g.AddEdge(0, 3, 1, "")

	s, err := New(ChinesePostman, g, 0, nil)
	assert.NoError(t, err)

	route, distance, err := s.Solve()
	assert.NoError(t, err)
	assert.True(t, s.Stats().CircuitFallback)
	assert.True(t, s.Stats().ResidualImbalance > 0)
	assert.True(t, len(route) >= 1)
	assert.True(t, distance >= 0)
}

func TestNewRejectsInvalidInput(t *testing.T) {
	_, err := New(ChinesePostman, datastructure.NewStreetGraph(), 0, nil)
	assert.Error(t, err)

	g := buildUnitCycle(3)
	_, err = New(ChinesePostman, g, 99, nil)
	assert.Error(t, err)

	_, err = New(ChinesePostman, nil, 0, nil)
	assert.Error(t, err)
}
