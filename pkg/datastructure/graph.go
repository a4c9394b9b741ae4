package datastructure

// StreetNode is one intersection of the road network. ID is the dense index
// of the node inside its StreetGraph.
type StreetNode struct {
	Lat float64
	Lon float64
	ID  int32
}

func NewStreetNode(id int32, lat, lon float64) StreetNode {
	return StreetNode{
		ID:  id,
		Lat: lat,
		Lon: lon,
	}
}

// StreetEdge is one directed road segment. Parallel edges between the same
// ordered node pair are allowed and stay distinct (different EdgeID).
type StreetEdge struct {
	Length     float64 // meters
	EdgeID     int32
	FromNodeID int32
	ToNodeID   int32
	StreetName string
}

// StreetGraph is a directed weighted multigraph over street intersections.
// Nodes and edges live in dense arenas indexed by their int32 id, adjacency
// is a list of edge ids per node. A graph built from an induced subgraph
// keeps the parent id space and marks missing nodes inactive, so node ids
// returned in routes always exist in the original graph.
type StreetGraph struct {
	nodes     []StreetNode
	edges     []StreetEdge
	outEdges  [][]int32
	inEdges   [][]int32
	active    []bool
	numActive int
}

func NewStreetGraph() *StreetGraph {
	return &StreetGraph{
		nodes:    make([]StreetNode, 0),
		edges:    make([]StreetEdge, 0),
		outEdges: make([][]int32, 0),
		inEdges:  make([][]int32, 0),
		active:   make([]bool, 0),
	}
}

func (g *StreetGraph) AddNode(lat, lon float64) int32 {
	id := int32(len(g.nodes))
	g.nodes = append(g.nodes, NewStreetNode(id, lat, lon))
	g.outEdges = append(g.outEdges, nil)
	g.inEdges = append(g.inEdges, nil)
	g.active = append(g.active, true)
	g.numActive++
	return id
}

func (g *StreetGraph) AddEdge(from, to int32, length float64, streetName string) int32 {
	edgeID := int32(len(g.edges))
	g.edges = append(g.edges, StreetEdge{
		EdgeID:     edgeID,
		FromNodeID: from,
		ToNodeID:   to,
		Length:     length,
		StreetName: streetName,
	})
	g.outEdges[from] = append(g.outEdges[from], edgeID)
	g.inEdges[to] = append(g.inEdges[to], edgeID)
	return edgeID
}

func (g *StreetGraph) GetNode(nodeID int32) StreetNode {
	return g.nodes[nodeID]
}

func (g *StreetGraph) HasNode(nodeID int32) bool {
	return nodeID >= 0 && nodeID < int32(len(g.nodes)) && g.active[nodeID]
}

// Nodes returns the ids of all active nodes in ascending order.
func (g *StreetGraph) Nodes() []int32 {
	nodeIDs := make([]int32, 0, g.numActive)
	for id := int32(0); id < int32(len(g.nodes)); id++ {
		if g.active[id] {
			nodeIDs = append(nodeIDs, id)
		}
	}
	return nodeIDs
}

func (g *StreetGraph) NumNodes() int {
	return g.numActive
}

func (g *StreetGraph) NumEdges() int {
	return len(g.edges)
}

func (g *StreetGraph) GetNodeOutEdges(nodeID int32) []int32 {
	return g.outEdges[nodeID]
}

func (g *StreetGraph) GetNodeInEdges(nodeID int32) []int32 {
	return g.inEdges[nodeID]
}

func (g *StreetGraph) GetEdge(edgeID int32) StreetEdge {
	return g.edges[edgeID]
}

func (g *StreetGraph) OutDegree(nodeID int32) int {
	return len(g.outEdges[nodeID])
}

func (g *StreetGraph) InDegree(nodeID int32) int {
	return len(g.inEdges[nodeID])
}

// Successors returns the distinct direct successors of nodeID in first-edge
// order.
func (g *StreetGraph) Successors(nodeID int32) []int32 {
	seen := make(map[int32]struct{}, len(g.outEdges[nodeID]))
	succ := make([]int32, 0, len(g.outEdges[nodeID]))
	for _, edgeID := range g.outEdges[nodeID] {
		toNodeID := g.edges[edgeID].ToNodeID
		if _, ok := seen[toNodeID]; ok {
			continue
		}
		seen[toNodeID] = struct{}{}
		succ = append(succ, toNodeID)
	}
	return succ
}

func (g *StreetGraph) HasEdge(from, to int32) bool {
	for _, edgeID := range g.outEdges[from] {
		if g.edges[edgeID].ToNodeID == to {
			return true
		}
	}
	return false
}

// EdgesBetween returns every parallel edge id from -> to.
func (g *StreetGraph) EdgesBetween(from, to int32) []int32 {
	edgeIDs := make([]int32, 0)
	for _, edgeID := range g.outEdges[from] {
		if g.edges[edgeID].ToNodeID == to {
			edgeIDs = append(edgeIDs, edgeID)
		}
	}
	return edgeIDs
}

// MinEdgeLength returns the length of the shortest direct edge from -> to.
func (g *StreetGraph) MinEdgeLength(from, to int32) (float64, bool) {
	best := -1.0
	for _, edgeID := range g.outEdges[from] {
		edge := g.edges[edgeID]
		if edge.ToNodeID != to {
			continue
		}
		if best < 0 || edge.Length < best {
			best = edge.Length
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// Clone deep-copies the graph. Callers that duplicate edges (eulerization)
// must work on a clone, never on the shared source graph.
func (g *StreetGraph) Clone() *StreetGraph {
	cloned := &StreetGraph{
		nodes:     make([]StreetNode, len(g.nodes)),
		edges:     make([]StreetEdge, len(g.edges)),
		outEdges:  make([][]int32, len(g.outEdges)),
		inEdges:   make([][]int32, len(g.inEdges)),
		active:    make([]bool, len(g.active)),
		numActive: g.numActive,
	}
	copy(cloned.nodes, g.nodes)
	copy(cloned.edges, g.edges)
	copy(cloned.active, g.active)
	for i := range g.outEdges {
		cloned.outEdges[i] = append([]int32(nil), g.outEdges[i]...)
		cloned.inEdges[i] = append([]int32(nil), g.inEdges[i]...)
	}
	return cloned
}

// FilterEdges returns a copy of the graph holding only the edges the
// predicate keeps. Nodes and the id space stay untouched.
func (g *StreetGraph) FilterEdges(keep func(StreetEdge) bool) *StreetGraph {
	filtered := &StreetGraph{
		nodes:     make([]StreetNode, len(g.nodes)),
		edges:     make([]StreetEdge, 0, len(g.edges)),
		outEdges:  make([][]int32, len(g.outEdges)),
		inEdges:   make([][]int32, len(g.inEdges)),
		active:    make([]bool, len(g.active)),
		numActive: g.numActive,
	}
	copy(filtered.nodes, g.nodes)
	copy(filtered.active, g.active)

	for _, edge := range g.edges {
		if !keep(edge) {
			continue
		}
		newEdgeID := int32(len(filtered.edges))
		edge.EdgeID = newEdgeID
		filtered.edges = append(filtered.edges, edge)
		filtered.outEdges[edge.FromNodeID] = append(filtered.outEdges[edge.FromNodeID], newEdgeID)
		filtered.inEdges[edge.ToNodeID] = append(filtered.inEdges[edge.ToNodeID], newEdgeID)
	}
	return filtered
}

// InducedSubgraph keeps only the given nodes and the edges whose both
// endpoints are kept. The node id space stays that of the parent graph.
func (g *StreetGraph) InducedSubgraph(nodeIDs []int32) *StreetGraph {
	keep := make([]bool, len(g.nodes))
	numActive := 0
	for _, nodeID := range nodeIDs {
		if !keep[nodeID] && g.active[nodeID] {
			keep[nodeID] = true
			numActive++
		}
	}

	sub := &StreetGraph{
		nodes:     make([]StreetNode, len(g.nodes)),
		edges:     make([]StreetEdge, 0, len(g.edges)),
		outEdges:  make([][]int32, len(g.outEdges)),
		inEdges:   make([][]int32, len(g.inEdges)),
		active:    keep,
		numActive: numActive,
	}
	copy(sub.nodes, g.nodes)

	for _, edge := range g.edges {
		if !keep[edge.FromNodeID] || !keep[edge.ToNodeID] {
			continue
		}
		newEdgeID := int32(len(sub.edges))
		edge.EdgeID = newEdgeID
		sub.edges = append(sub.edges, edge)
		sub.outEdges[edge.FromNodeID] = append(sub.outEdges[edge.FromNodeID], newEdgeID)
		sub.inEdges[edge.ToNodeID] = append(sub.inEdges[edge.ToNodeID], newEdgeID)
	}
	return sub
}
