package snap

import (
	"testing"

	"patrolx/pkg/datastructure"

	"github.com/stretchr/testify/assert"
)

func TestSnapToNetwork(t *testing.T) {
	g := datastructure.NewStreetGraph()
	a := g.AddNode(-7.7829, 110.3670)
	b := g.AddNode(-7.7900, 110.3700)
	c := g.AddNode(-7.8000, 110.3800)
	g.AddEdge(a, b, 800, "")
	g.AddEdge(b, c, 1400, "")

	snapper := NewNodeSnapper(g)

	got, ok := snapper.SnapToNetwork(-7.7830, 110.3671)
	assert.True(t, ok)
	assert.Equal(t, a, got)

	got, ok = snapper.SnapToNetwork(-7.7995, 110.3795)
	assert.True(t, ok)
	assert.Equal(t, c, got)
}

func TestSnapPrefersNodeOnNearbyStreet(t *testing.T) {
	g := datastructure.NewStreetGraph()
	a := g.AddNode(-7.7900, 110.3600)
	b := g.AddNode(-7.7900, 110.3700)
	c := g.AddNode(-7.7902, 110.3630)
	g.AddEdge(a, b, 1100, "jalan besar")
	g.AddEdge(c, b, 800, "gang")

	snapper := NewNodeSnapper(g)

	// query sits on the a-b street a third of the way along; node c is
	// closer as the crow flies but off the street
	got, ok := snapper.SnapToNetwork(-7.7900, 110.3630)
	assert.True(t, ok)
	assert.Equal(t, a, got)

	// same street near the b end snaps to b
	got, ok = snapper.SnapToNetwork(-7.7900, 110.3690)
	assert.True(t, ok)
	assert.Equal(t, b, got)
}

func TestSnapToNetworkEmptyGraph(t *testing.T) {
	snapper := NewNodeSnapper(datastructure.NewStreetGraph())

	_, ok := snapper.SnapToNetwork(-7.78, 110.36)
	assert.False(t, ok)
}

func TestSnapSkipsInactiveNodes(t *testing.T) {
	g := datastructure.NewStreetGraph()
	a := g.AddNode(-7.7829, 110.3670)
	b := g.AddNode(-7.7900, 110.3700)
	g.AddEdge(a, b, 800, "")

	sub := g.InducedSubgraph([]int32{b})
	snapper := NewNodeSnapper(sub)

	got, ok := snapper.SnapToNetwork(-7.7829, 110.3670)
	assert.True(t, ok)
	assert.Equal(t, b, got)
}
