package snap

import (
	"log"

	"patrolx/pkg/datastructure"
	"patrolx/pkg/geo"
	"patrolx/pkg/util"

	"github.com/dhconnelly/rtreego"
)

const (
	pointExtent = 1e-6
	candidates  = 8
)

type nodeLeaf struct {
	rect   *rtreego.Rect
	lat    float64
	lon    float64
	nodeID int32
}

func (n *nodeLeaf) Bounds() *rtreego.Rect {
	return n.rect
}

type snapCandidate struct {
	nodeID int32
	dist   float64
}

// NodeSnapper finds the street node nearest to an arbitrary coordinate.
// Used by the offline path where no key-value index exists.
type NodeSnapper struct {
	rtree *rtreego.Rtree
	graph *datastructure.StreetGraph
	size  int
}

func NewNodeSnapper(graph *datastructure.StreetGraph) *NodeSnapper {
	rt := rtreego.NewTree(2, 25, 50)

	count := 0
	for _, nodeID := range graph.Nodes() {
		node := graph.GetNode(nodeID)
		rect, err := rtreego.NewRect(rtreego.Point{node.Lat, node.Lon}, []float64{pointExtent, pointExtent})
		if err != nil {
			log.Printf("snap: skip node %d: %v", nodeID, err)
			continue
		}
		rt.Insert(&nodeLeaf{rect: rect, lat: node.Lat, lon: node.Lon, nodeID: node.ID})
		count++
	}

	return &NodeSnapper{rtree: rt, graph: graph, size: count}
}

// SnapToNetwork returns the street node nearest to the query point, ranking
// the r-tree candidates by their distance to the closest street segment
// leaving them, so a point dropped mid-street snaps to that street's nearer
// junction instead of a stray node across the block.
func (s *NodeSnapper) SnapToNetwork(lat, lon float64) (int32, bool) {
	if s.size == 0 {
		return 0, false
	}

	k := candidates
	if k > s.size {
		k = s.size
	}
	neighbors := s.rtree.NearestNeighbors(k, rtreego.Point{lat, lon})

	cands := make([]snapCandidate, 0, len(neighbors))
	for _, neighbor := range neighbors {
		leaf, ok := neighbor.(*nodeLeaf)
		if !ok {
			continue
		}
		cands = append(cands, s.scoreCandidate(lat, lon, leaf))
	}
	if len(cands) == 0 {
		return 0, false
	}

	cands = util.QuickSortG(cands, func(a, b snapCandidate) int {
		if a.dist < b.dist {
			return -1
		}
		if a.dist > b.dist {
			return 1
		}
		return 0
	})
	return cands[0].nodeID, true
}

// scoreCandidate projects the query onto every street segment leaving the
// candidate node and keeps the closest one, reporting whichever segment
// endpoint lies nearer to the query. Nodes with no outgoing streets score
// by plain node distance.
func (s *NodeSnapper) scoreCandidate(lat, lon float64, leaf *nodeLeaf) snapCandidate {
	nodeDist := geo.CalculateHaversineDistance(lat, lon, leaf.lat, leaf.lon)
	best := snapCandidate{nodeID: leaf.nodeID, dist: nodeDist}

	query := datastructure.NewCoordinate(lat, lon)
	from := datastructure.NewCoordinate(leaf.lat, leaf.lon)
	for _, succ := range s.graph.Successors(leaf.nodeID) {
		to := s.graph.GetNode(succ)
		projection := geo.ProjectPointToLineCoord(from, datastructure.NewCoordinate(to.Lat, to.Lon), query)
		dist := geo.CalculateHaversineDistance(lat, lon, projection.Lat, projection.Lon)
		if dist >= best.dist {
			continue
		}
		best.dist = dist
		best.nodeID = leaf.nodeID
		if geo.CalculateHaversineDistance(lat, lon, to.Lat, to.Lon) < nodeDist {
			best.nodeID = to.ID
		}
	}
	return best
}
