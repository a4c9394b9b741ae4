package geo

import (
	"testing"

	"patrolx/pkg/datastructure"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	// Tugu Jogja -> Malioboro, about 1.1 km
	dist := CalculateHaversineDistance(-7.782900, 110.367032, -7.792461, 110.365828)
	assert.InDelta(t, 1070, dist, 50)

	assert.InDelta(t, 0, CalculateHaversineDistance(-7.7829, 110.367032, -7.7829, 110.367032), 1e-6)
}

func TestDouglasPeucker(t *testing.T) {
	lineCoords := []datastructure.Coordinate{
		{Lat: -7.565837, Lon: 110.831586},
		{Lat: -7.566063, Lon: 110.832379},
		{Lat: -7.566406, Lon: 110.833232},
	}

	simplified := RamerDouglasPeucker(lineCoords)
	assert.LessOrEqual(t, len(simplified), 2)
}

func TestLoopContainment(t *testing.T) {
	boundary := []datastructure.Coordinate{
		{Lat: -7.80, Lon: 110.36},
		{Lat: -7.80, Lon: 110.38},
		{Lat: -7.78, Lon: 110.38},
		{Lat: -7.78, Lon: 110.36},
	}
	loop := NewPolygonLoop(boundary)

	assert.True(t, LoopContainsPoint(loop, -7.79, 110.37))
	assert.False(t, LoopContainsPoint(loop, -7.75, 110.37))
}
