package routing

import (
	"patrolx/pkg/datastructure"
	"patrolx/pkg/util"
)

// StronglyConnectedComponents runs Kosaraju's algorithm on the active nodes
// of g. DFS uses an explicit stack, street graphs are too deep for the goroutine
// stack.
func StronglyConnectedComponents(g *datastructure.StreetGraph) [][]int32 {
	nodeIDs := g.Nodes()
	visited := make(map[int32]bool, len(nodeIDs))

	order := make([]int32, 0, len(nodeIDs))
	for _, nodeID := range nodeIDs {
		if !visited[nodeID] {
			dfsPostorder(g, nodeID, visited, &order, false)
		}
	}

	order = util.ReverseG(order)

	visited = make(map[int32]bool, len(nodeIDs))
	components := make([][]int32, 0)

	for _, v := range order {
		if !visited[v] {
			component := make([]int32, 0)
			dfsPostorder(g, v, visited, &component, true)
			components = append(components, component)
		}
	}

	return components
}

// dfsPostorder appends every visited node to output in postorder. With
// reversed=true it walks the in-edges, i.e. the transposed graph.
func dfsPostorder(g *datastructure.StreetGraph, start int32, visited map[int32]bool,
	output *[]int32, reversed bool) {

	type frame struct {
		nodeID  int32
		edgePos int
	}

	stack := []frame{{nodeID: start}}
	visited[start] = true

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		edgeIDs := g.GetNodeOutEdges(top.nodeID)
		if reversed {
			edgeIDs = g.GetNodeInEdges(top.nodeID)
		}

		advanced := false
		for top.edgePos < len(edgeIDs) {
			edge := g.GetEdge(edgeIDs[top.edgePos])
			top.edgePos++

			next := edge.ToNodeID
			if reversed {
				next = edge.FromNodeID
			}
			if !visited[next] {
				visited[next] = true
				stack = append(stack, frame{nodeID: next})
				advanced = true
				break
			}
		}

		if !advanced && top.edgePos >= len(edgeIDs) {
			*output = append(*output, top.nodeID)
			stack = stack[:len(stack)-1]
		}
	}
}
