package zone

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"patrolx/pkg/datastructure"
	"patrolx/pkg/geo"
	"patrolx/pkg/server"

	"github.com/golang/geo/s2"
)

// Zone is one patrol area: a polygon boundary plus the schedule window the
// zone is enforced in and the streets a route must never use.
type Zone struct {
	Name              string                     `json:"name"`
	Color             string                     `json:"color"`
	Boundary          []datastructure.Coordinate `json:"boundary"`
	ScheduleStart     string                     `json:"schedule_start"` // "15:04"
	ScheduleEnd       string                     `json:"schedule_end"`
	Weekdays          []string                   `json:"weekdays"`
	ProhibitedStreets []string                   `json:"prohibited_streets"`

	loop *s2.Loop
}

type zoneConfig struct {
	Zones []*Zone `json:"zones"`
}

// LoadZones reads the zone config file and builds the containment loop of
// every zone.
func LoadZones(configFile string) ([]*Zone, error) {
	buf, err := os.ReadFile(configFile)
	if err != nil {
		return nil, server.WrapErrorf(err, server.ErrInvalidInput, "zone.LoadZones: read %s", configFile)
	}

	var config zoneConfig
	if err := json.Unmarshal(buf, &config); err != nil {
		return nil, server.WrapErrorf(err, server.ErrInvalidInput, "zone.LoadZones: parse %s", configFile)
	}

	for _, z := range config.Zones {
		if err := z.init(); err != nil {
			return nil, err
		}
	}
	return config.Zones, nil
}

func (z *Zone) init() error {
	if z.Name == "" {
		return server.NewErrorf(server.ErrInvalidInput, "zone.LoadZones: zone without a name")
	}
	if len(z.Boundary) < 3 {
		return server.NewErrorf(server.ErrInvalidInput, "zone.LoadZones: zone %s: boundary needs at least 3 vertices", z.Name)
	}
	for _, field := range []string{z.ScheduleStart, z.ScheduleEnd} {
		if field == "" {
			continue
		}
		if _, err := time.Parse("15:04", field); err != nil {
			return server.WrapErrorf(err, server.ErrInvalidInput, "zone.LoadZones: zone %s: bad schedule time %q", z.Name, field)
		}
	}
	z.loop = geo.NewPolygonLoop(z.Boundary)
	return nil
}

// Contains reports whether the point lies inside the zone boundary.
func (z *Zone) Contains(lat, lon float64) bool {
	return geo.LoopContainsPoint(z.loop, lat, lon)
}

// ActiveAt reports whether the zone is enforced at the given time. A zone
// without schedule fields is always active. An end before the start means
// the window wraps past midnight.
func (z *Zone) ActiveAt(t time.Time) bool {
	if len(z.Weekdays) > 0 {
		weekday := strings.ToLower(t.Weekday().String())
		found := false
		for _, d := range z.Weekdays {
			if strings.ToLower(d) == weekday {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if z.ScheduleStart == "" || z.ScheduleEnd == "" {
		return true
	}
	start, _ := time.Parse("15:04", z.ScheduleStart)
	end, _ := time.Parse("15:04", z.ScheduleEnd)
	clock := t.Hour()*60 + t.Minute()
	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()

	if startMin <= endMin {
		return clock >= startMin && clock <= endMin
	}
	return clock >= startMin || clock <= endMin
}

// FilterGraph cuts the street graph down to the zone: only nodes inside
// the boundary survive, and edges on a prohibited street are dropped. The
// node id space of the input graph is preserved.
func (z *Zone) FilterGraph(g *datastructure.StreetGraph) *datastructure.StreetGraph {
	inZone := make([]int32, 0, g.NumNodes())
	for _, nodeID := range g.Nodes() {
		node := g.GetNode(nodeID)
		if z.Contains(node.Lat, node.Lon) {
			inZone = append(inZone, nodeID)
		}
	}

	sub := g.InducedSubgraph(inZone)
	if len(z.ProhibitedStreets) == 0 {
		return sub
	}

	prohibited := make(map[string]struct{}, len(z.ProhibitedStreets))
	for _, name := range z.ProhibitedStreets {
		prohibited[strings.ToLower(name)] = struct{}{}
	}
	return sub.FilterEdges(func(edge datastructure.StreetEdge) bool {
		_, banned := prohibited[strings.ToLower(edge.StreetName)]
		return !banned
	})
}

// FindZoneByName returns the zone with the given name.
func FindZoneByName(zones []*Zone, name string) (*Zone, bool) {
	for _, z := range zones {
		if z.Name == name {
			return z, true
		}
	}
	return nil, false
}

// FindZone returns the first zone containing the point.
func FindZone(zones []*Zone, lat, lon float64) (*Zone, bool) {
	for _, z := range zones {
		if z.Contains(lat, lon) {
			return z, true
		}
	}
	return nil, false
}
