package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"patrolx/pkg/datastructure"
	"patrolx/pkg/geo"
	"patrolx/pkg/server"
	"patrolx/pkg/util"
)

// RouteSheet is everything an export format needs about one solved route.
type RouteSheet struct {
	Name     string
	Route    []int32
	Distance float64
}

// WriteCSV writes the route as a turn-by-turn sheet: one row per stop with
// the street and leg length leading into it.
func WriteCSV(w io.Writer, graph *datastructure.StreetGraph, sheet RouteSheet) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"step", "node_id", "lat", "lon", "street", "leg_meters"}); err != nil {
		return server.WrapErrorf(err, server.ErrInternalServerError, "export.WriteCSV")
	}

	for i, nodeID := range sheet.Route {
		node := graph.GetNode(nodeID)

		street := ""
		leg := 0.0
		if i > 0 {
			prev := sheet.Route[i-1]
			edgeIDs := graph.EdgesBetween(prev, nodeID)
			if len(edgeIDs) > 0 {
				best := graph.GetEdge(edgeIDs[0])
				for _, edgeID := range edgeIDs[1:] {
					if edge := graph.GetEdge(edgeID); edge.Length < best.Length {
						best = edge
					}
				}
				street = best.StreetName
				leg = best.Length
			}
		}

		record := []string{
			strconv.Itoa(i),
			strconv.Itoa(int(nodeID)),
			strconv.FormatFloat(node.Lat, 'f', 6, 64),
			strconv.FormatFloat(node.Lon, 'f', 6, 64),
			street,
			strconv.FormatFloat(util.RoundFloat(leg, 2), 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return server.WrapErrorf(err, server.ErrInternalServerError, "export.WriteCSV")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return server.WrapErrorf(err, server.ErrInternalServerError, "export.WriteCSV")
	}
	return nil
}

type geoJSONGeometry struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

type geoJSONFeature struct {
	Type       string          `json:"type"`
	Geometry   geoJSONGeometry `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

type geoJSONFeatureCollection struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

// WriteGeoJSON writes the route as a LineString feature. The geometry is
// simplified first so viewers are not flooded with collinear vertices.
func WriteGeoJSON(w io.Writer, graph *datastructure.StreetGraph, sheet RouteSheet) error {
	coords := datastructure.RouteCoordinates(graph, sheet.Route)
	simplified := coords
	if len(coords) > 2 {
		simplified = geo.RamerDouglasPeucker(coords)
	}

	lineCoords := make([][2]float64, 0, len(simplified))
	for _, c := range simplified {
		lineCoords = append(lineCoords, [2]float64{c.Lon, c.Lat})
	}

	collection := geoJSONFeatureCollection{
		Type: "FeatureCollection",
		Features: []geoJSONFeature{
			{
				Type: "Feature",
				Geometry: geoJSONGeometry{
					Type:        "LineString",
					Coordinates: lineCoords,
				},
				Properties: map[string]any{
					"name":            sheet.Name,
					"distance_meters": sheet.Distance,
					"stops":           len(sheet.Route),
				},
			},
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(collection); err != nil {
		return server.WrapErrorf(err, server.ErrInternalServerError, "export.WriteGeoJSON")
	}
	return nil
}
