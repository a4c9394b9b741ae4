package geo

import (
	"math"

	"patrolx/pkg/datastructure"

	"github.com/golang/geo/s2"
)

// ProjectPointToLineCoord projects snap onto the segment between the two
// street points and returns the projection in degrees.
func ProjectPointToLineCoord(stPointA, stPointB, snap datastructure.Coordinate) datastructure.Coordinate {
	aS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(stPointA.Lat, stPointA.Lon))
	bS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(stPointB.Lat, stPointB.Lon))
	snapS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(snap.Lat, snap.Lon))
	projection := s2.Project(snapS2, aS2, bS2)
	projectLatLng := s2.LatLngFromPoint(projection)
	return datastructure.NewCoordinate(projectLatLng.Lat.Degrees(), projectLatLng.Lng.Degrees())
}

// PointLinePerpendicularDistance returns the distance in meters from point
// p to the segment (a, b).
func PointLinePerpendicularDistance(a, b, p datastructure.Coordinate) float64 {
	pS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon))
	aS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(a.Lat, a.Lon))
	bS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(b.Lat, b.Lon))
	projection := s2.Project(pS2, aS2, bS2)
	return s2.LatLngFromPoint(projection).Distance(s2.LatLngFromDegrees(p.Lat, p.Lon)).Radians() * earthRadiusM
}

// NewPolygonLoop builds an s2 loop from boundary vertices given in degrees.
// The boundary must be counter-clockwise; loops supplied clockwise are
// inverted so containment means "inside the drawn boundary".
func NewPolygonLoop(boundary []datastructure.Coordinate) *s2.Loop {
	points := make([]s2.Point, 0, len(boundary))
	for _, c := range boundary {
		points = append(points, s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon)))
	}
	loop := s2.LoopFromPoints(points)
	if loop.Area() > 2*math.Pi {
		loop.Invert()
	}
	return loop
}

// LoopContainsPoint reports whether the lat/lon point in degrees falls
// inside the loop.
func LoopContainsPoint(loop *s2.Loop, lat, lon float64) bool {
	return loop.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon)))
}
