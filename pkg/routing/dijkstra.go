package routing

import (
	"patrolx/pkg/datastructure"
	"patrolx/pkg/util"
)

type RouteAlgorithm struct {
	g *datastructure.StreetGraph
}

func NewRouteAlgorithm(g *datastructure.StreetGraph) *RouteAlgorithm {
	return &RouteAlgorithm{g: g}
}

type cameFromPair struct {
	edge       datastructure.StreetEdge
	prevNodeID int32
}

// ShortestPath runs plain Dijkstra by edge length on the directed graph.
// found is false when to is unreachable from from; that is not an error,
// callers decide how to recover.
func (rt *RouteAlgorithm) ShortestPath(from, to int32) ([]int32, float64, bool) {
	return rt.shortestPath(from, to, false)
}

// ShortestPathUndirected ignores edge direction, used as the expansion
// fallback when no directed path exists.
func (rt *RouteAlgorithm) ShortestPathUndirected(from, to int32) ([]int32, float64, bool) {
	return rt.shortestPath(from, to, true)
}

func (rt *RouteAlgorithm) ShortestPathLength(from, to int32) (float64, bool) {
	_, dist, found := rt.shortestPath(from, to, false)
	return dist, found
}

func (rt *RouteAlgorithm) shortestPath(from, to int32, undirected bool) ([]int32, float64, bool) {
	if !rt.g.HasNode(from) || !rt.g.HasNode(to) {
		return nil, -1, false
	}
	if from == to {
		return []int32{from}, 0, true
	}

	df := make(map[int32]float64)
	df[from] = 0.0

	cameFrom := make(map[int32]cameFromPair)
	cameFrom[from] = cameFromPair{datastructure.StreetEdge{}, -1}

	pq := datastructure.NewMinHeap[int32]()
	pq.Insert(datastructure.PriorityQueueNode[int32]{Rank: 0, Item: from})

	for pq.Size() > 0 {
		node, _ := pq.ExtractMin()
		if node.Item == to {
			return rt.buildPath(cameFrom, from, to), util.RoundFloat(node.Rank, 2), true
		}
		if node.Rank > df[node.Item] {
			continue
		}

		rt.relaxOutEdges(node, df, cameFrom, pq, false)
		if undirected {
			rt.relaxOutEdges(node, df, cameFrom, pq, true)
		}
	}

	return nil, -1, false
}

func (rt *RouteAlgorithm) relaxOutEdges(node datastructure.PriorityQueueNode[int32],
	df map[int32]float64, cameFrom map[int32]cameFromPair, pq *datastructure.MinHeap[int32], reverse bool) {

	edgeIDs := rt.g.GetNodeOutEdges(node.Item)
	if reverse {
		edgeIDs = rt.g.GetNodeInEdges(node.Item)
	}

	for _, edgeID := range edgeIDs {
		edge := rt.g.GetEdge(edgeID)
		toNID := edge.ToNodeID
		if reverse {
			toNID = edge.FromNodeID
		}

		newCost := df[node.Item] + edge.Length
		oldCost, visited := df[toNID]
		if !visited || newCost < oldCost {
			df[toNID] = newCost
			cameFrom[toNID] = cameFromPair{edge, node.Item}

			neighborNode := datastructure.PriorityQueueNode[int32]{Rank: newCost, Item: toNID}
			if pq.Contains(toNID) {
				pq.DecreaseKey(neighborNode)
			} else {
				pq.Insert(neighborNode)
			}
		}
	}
}

func (rt *RouteAlgorithm) buildPath(cameFrom map[int32]cameFromPair, from, to int32) []int32 {
	path := make([]int32, 0)
	for at := to; at != -1; at = cameFrom[at].prevNodeID {
		path = append(path, at)
	}
	return util.ReverseG(path)
}

// OneToManyShortestPath computes shortest path lengths from one source to
// every target in a single Dijkstra sweep. Unreachable targets are absent
// from the result map.
func (rt *RouteAlgorithm) OneToManyShortestPath(from int32, targets []int32) map[int32]float64 {
	dists := make(map[int32]float64)
	if !rt.g.HasNode(from) {
		return dists
	}

	df := make(map[int32]float64)
	df[from] = 0.0
	settled := make(map[int32]struct{})

	pq := datastructure.NewMinHeap[int32]()
	pq.Insert(datastructure.PriorityQueueNode[int32]{Rank: 0, Item: from})

	for pq.Size() > 0 {
		node, _ := pq.ExtractMin()
		if node.Rank > df[node.Item] {
			continue
		}
		settled[node.Item] = struct{}{}

		for _, edgeID := range rt.g.GetNodeOutEdges(node.Item) {
			edge := rt.g.GetEdge(edgeID)
			toNID := edge.ToNodeID

			newCost := df[node.Item] + edge.Length
			oldCost, visited := df[toNID]
			if !visited || newCost < oldCost {
				df[toNID] = newCost
				neighborNode := datastructure.PriorityQueueNode[int32]{Rank: newCost, Item: toNID}
				if pq.Contains(toNID) {
					pq.DecreaseKey(neighborNode)
				} else {
					pq.Insert(neighborNode)
				}
			}
		}
	}

	for _, target := range targets {
		if dist, ok := df[target]; ok {
			if _, done := settled[target]; done {
				dists[target] = util.RoundFloat(dist, 2)
			}
		}
	}
	return dists
}
