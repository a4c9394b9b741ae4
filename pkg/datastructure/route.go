package datastructure

import (
	"github.com/twpayne/go-polyline"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

// CreatePolyline encodes a node path as a google polyline string for the
// map clients.
func CreatePolyline(path []Coordinate) string {
	coords := make([][]float64, 0, len(path))
	for _, p := range path {
		coords = append(coords, []float64{p.Lat, p.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}

// RouteCoordinates maps a route of node ids onto their coordinates.
func RouteCoordinates(g *StreetGraph, route []int32) []Coordinate {
	coords := make([]Coordinate, 0, len(route))
	for _, nodeID := range route {
		node := g.GetNode(nodeID)
		coords = append(coords, NewCoordinate(node.Lat, node.Lon))
	}
	return coords
}
