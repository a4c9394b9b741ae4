package solver

import (
	"patrolx/pkg/datastructure"
	"patrolx/pkg/routing"
)

// nodeImbalance is the signed degree imbalance of one node, out-degree
// minus in-degree. Positive nodes leave more often than they are entered
// and need extra incoming walks; negative nodes are the opposite.
type nodeImbalance struct {
	nodeID    int32
	imbalance int
}

func computeImbalances(g *datastructure.StreetGraph) []nodeImbalance {
	unbalanced := make([]nodeImbalance, 0)
	for _, nodeID := range g.Nodes() {
		diff := g.OutDegree(nodeID) - g.InDegree(nodeID)
		if diff != 0 {
			unbalanced = append(unbalanced, nodeImbalance{nodeID: nodeID, imbalance: diff})
		}
	}
	return unbalanced
}

// eulerize balances in/out degrees by duplicating shortest paths from
// deficit nodes (in > out) into excess nodes (out > in); every duplicated
// path raises the deficit node's out-degree and the excess node's
// in-degree by one and leaves intermediate nodes balanced. The pairing is
// a greedy single pass: each excess node takes the first deficit node that
// still has spare units and a path to it, then stops searching. When
// excess and deficit units do not line up, or no path exists, imbalance
// remains; that is reported through Stats, never as an error, and the
// circuit builder falls back to the approximate traversal.
//
// The caller's graph is never touched, all duplication happens on a
// private clone.
func (s *CPPSolver) eulerize(g *datastructure.StreetGraph) *datastructure.StreetGraph {
	eulerGraph := g.Clone()

	unbalanced := computeImbalances(eulerGraph)
	s.stats.UnbalancedNodes = len(unbalanced)
	if len(unbalanced) == 0 {
		return eulerGraph
	}

	excess := make([]nodeImbalance, 0)
	deficit := make([]nodeImbalance, 0)
	deficitUnits := make(map[int32]int)
	for _, ni := range unbalanced {
		if ni.imbalance > 0 {
			excess = append(excess, ni)
		} else {
			deficit = append(deficit, ni)
			deficitUnits[ni.nodeID] = -ni.imbalance
		}
	}

	rtEuler := routing.NewRouteAlgorithm(eulerGraph)

	for _, e := range excess {
		needed := e.imbalance
		for _, d := range deficit {
			if deficitUnits[d.nodeID] == 0 {
				continue
			}

			path, _, found := rtEuler.ShortestPath(d.nodeID, e.nodeID)
			if !found {
				continue
			}

			units := needed
			if deficitUnits[d.nodeID] < units {
				units = deficitUnits[d.nodeID]
			}
			for i := 0; i < units; i++ {
				duplicatePath(eulerGraph, path)
			}
			s.stats.PathsDuplicated += units
			deficitUnits[d.nodeID] -= units
			break
		}
	}

	s.stats.ResidualImbalance = len(computeImbalances(eulerGraph))
	return eulerGraph
}

// duplicatePath clones one existing edge for every consecutive pair of
// path, keeping its attributes.
func duplicatePath(g *datastructure.StreetGraph, path []int32) {
	for i := 0; i < len(path)-1; i++ {
		u, v := path[i], path[i+1]
		edgeIDs := g.EdgesBetween(u, v)
		if len(edgeIDs) == 0 {
			continue
		}
		edge := g.GetEdge(edgeIDs[0])
		g.AddEdge(u, v, edge.Length, edge.StreetName)
	}
}
