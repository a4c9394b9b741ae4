package osmparser

import (
	"context"
	"io"
	"log"
	"os"

	"patrolx/pkg/datastructure"
	"patrolx/pkg/geo"
	"patrolx/pkg/server"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
)

type nodeKind int

const (
	endNode nodeKind = iota
	betweenNode
	junctionNode
)

type nodeCoord struct {
	lat float64
	lon float64
}

type wayNode struct {
	id    int64
	coord nodeCoord
}

// OsmParser builds a StreetGraph out of an openstreetmap pbf extract. Way
// nodes shared by more than one way become graph nodes, runs of between
// nodes collapse into a single weighted edge.
type OsmParser struct {
	wayNodeMap      map[int64]nodeKind
	acceptedNodeMap map[int64]nodeCoord
	nodeIDMap       map[int64]int32
}

func NewOsmParser() *OsmParser {
	return &OsmParser{
		wayNodeMap:      make(map[int64]nodeKind),
		acceptedNodeMap: make(map[int64]nodeCoord),
		nodeIDMap:       make(map[int64]int32),
	}
}

// non-routable highway values
var skipHighway = map[string]struct{}{
	"footway":                {},
	"construction":           {},
	"cycleway":               {},
	"path":                   {},
	"pedestrian":             {},
	"busway":                 {},
	"steps":                  {},
	"bridleway":              {},
	"corridor":               {},
	"street_lamp":            {},
	"bus_stop":               {},
	"crossing":               {},
	"elevator":               {},
	"give_way":               {},
	"platform":               {},
	"speed_camera":           {},
	"track":                  {},
	"bus_guideway":           {},
	"stop":                   {},
	"toll_gantry":            {},
	"traffic_signals":        {},
	"trailhead":              {},
	"emergency_bay":          {},
	"emergency_access_point": {},
}

// Parse reads the pbf file twice: the first scan classifies way nodes
// (end / between / junction), the second collects node coordinates and
// emits graph edges for every way segment between junction nodes.
func (p *OsmParser) Parse(mapFile string) (*datastructure.StreetGraph, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, server.WrapErrorf(err, server.ErrInternalServerError, "osmparser.Parse: open %s", mapFile)
	}
	defer f.Close()

	scanner := osmpbf.New(context.Background(), f, 0)
	// must not be parallel
	countWays := 0
	for scanner.Scan() {
		o := scanner.Object()

		way, ok := o.(*osm.Way)
		if !ok {
			continue
		}
		if len(way.Nodes) < 2 || !acceptOsmWay(way) {
			continue
		}
		if (countWays+1)%50000 == 0 {
			log.Printf("reading openstreetmap ways: %d...", countWays+1)
		}
		countWays++

		for i, n := range way.Nodes {
			if _, ok := p.wayNodeMap[int64(n.ID)]; !ok {
				if i == 0 || i == len(way.Nodes)-1 {
					p.wayNodeMap[int64(n.ID)] = endNode
				} else {
					p.wayNodeMap[int64(n.ID)] = betweenNode
				}
			} else {
				p.wayNodeMap[int64(n.ID)] = junctionNode
			}
		}
	}
	scanner.Close()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, server.WrapErrorf(err, server.ErrInternalServerError, "osmparser.Parse: rewind %s", mapFile)
	}

	graph := datastructure.NewStreetGraph()
	scanner = osmpbf.New(context.Background(), f, 0)
	// must not be parallel
	defer scanner.Close()

	countWays = 0
	countNodes := 0
	for scanner.Scan() {
		o := scanner.Object()

		switch obj := o.(type) {
		case *osm.Node:
			if (countNodes+1)%50000 == 0 {
				log.Printf("processing openstreetmap nodes: %d...", countNodes+1)
			}
			countNodes++

			if _, ok := p.wayNodeMap[int64(obj.ID)]; ok {
				p.acceptedNodeMap[int64(obj.ID)] = nodeCoord{
					lat: obj.Lat,
					lon: obj.Lon,
				}
			}
		case *osm.Way:
			if len(obj.Nodes) < 2 || !acceptOsmWay(obj) {
				continue
			}
			if (countWays+1)%50000 == 0 {
				log.Printf("processing openstreetmap ways: %d...", countWays+1)
			}
			countWays++

			p.processWay(obj, graph)
		}
	}

	log.Printf("street graph: %d nodes, %d edges", graph.NumNodes(), graph.NumEdges())
	return graph, nil
}

// NodeIDMap maps openstreetmap node ids to graph node ids. Valid after
// Parse.
func (p *OsmParser) NodeIDMap() map[int64]int32 {
	return p.nodeIDMap
}

type wayExtraInfo struct {
	oneWay  bool
	forward bool
}

func (p *OsmParser) processWay(way *osm.Way, graph *datastructure.StreetGraph) {
	name := way.Tags.Find("name")

	info := wayExtraInfo{forward: true}
	vfr, mvfr, vbr, mvbr := getRestrictedDirections(way)
	if way.Tags.Find("oneway") != "" || vfr || mvfr || vbr || mvbr {
		info.oneWay = true
	}
	if way.Tags.Find("oneway") == "-1" || vfr || mvfr {
		info.forward = false
	}

	segment := make([]wayNode, 0, len(way.Nodes))
	for _, wn := range way.Nodes {
		coord, ok := p.acceptedNodeMap[int64(wn.ID)]
		if !ok {
			continue
		}
		nodeData := wayNode{id: int64(wn.ID), coord: coord}

		segment = append(segment, nodeData)
		if p.wayNodeMap[nodeData.id] == junctionNode && len(segment) > 1 {
			p.addEdge(segment, name, info, graph)
			segment = []wayNode{nodeData}
		}
	}
	if len(segment) > 1 {
		p.addEdge(segment, name, info, graph)
	}
}

func (p *OsmParser) graphNodeID(n wayNode, graph *datastructure.StreetGraph) int32 {
	if id, ok := p.nodeIDMap[n.id]; ok {
		return id
	}
	id := graph.AddNode(n.coord.lat, n.coord.lon)
	p.nodeIDMap[n.id] = id
	return id
}

func (p *OsmParser) addEdge(segment []wayNode, name string, info wayExtraInfo,
	graph *datastructure.StreetGraph) {
	from := segment[0]
	to := segment[len(segment)-1]
	if from.id == to.id {
		// degenerate loop segment
		return
	}

	distance := 0.0
	for i := 1; i < len(segment); i++ {
		distance += geo.CalculateHaversineDistance(segment[i-1].coord.lat, segment[i-1].coord.lon,
			segment[i].coord.lat, segment[i].coord.lon)
	}

	fromID := p.graphNodeID(from, graph)
	toID := p.graphNodeID(to, graph)

	if info.oneWay {
		if info.forward {
			graph.AddEdge(fromID, toID, distance, name)
		} else {
			graph.AddEdge(toID, fromID, distance, name)
		}
		return
	}
	graph.AddEdge(fromID, toID, distance, name)
	graph.AddEdge(toID, fromID, distance, name)
}

func isRestricted(value string) bool {
	switch value {
	case "no", "restricted", "military", "emergency", "private", "permit":
		return true
	}
	return false
}

func getRestrictedDirections(way *osm.Way) (bool, bool, bool, bool) {
	return isRestricted(way.Tags.Find("vehicle:forward")),
		isRestricted(way.Tags.Find("motor_vehicle:forward")),
		isRestricted(way.Tags.Find("vehicle:backward")),
		isRestricted(way.Tags.Find("motor_vehicle:backward"))
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	if highway != "" {
		_, skip := skipHighway[highway]
		return !skip
	}
	if way.Tags.Find("route") == "road" {
		return true
	}
	return way.Tags.Find("junction") != ""
}
