package geo

import (
	"container/list"

	"patrolx/pkg/datastructure"
)

const (
	douglasPeuckerThreshold = 7.0 // meter
)

// RamerDouglasPeucker simplifies a route geometry, dropping vertices that
// lie within the threshold of the surrounding segment.
func RamerDouglasPeucker(coords []datastructure.Coordinate) []datastructure.Coordinate {
	size := len(coords)
	if size < 2 {
		return coords
	}

	kepts := make([]bool, size)
	kepts[0] = true
	kepts[size-1] = true

	stack := list.New()
	stack.PushBack([2]int{0, size - 1})

	for stack.Len() > 0 {
		pair := stack.Remove(stack.Back()).([2]int)
		left, right := pair[0], pair[1]
		var maxDist float64
		farthestIndex := left

		for i := left + 1; i < right; i++ {
			dist := PointLinePerpendicularDistance(coords[left], coords[right], coords[i])
			if dist > maxDist && dist > douglasPeuckerThreshold {
				maxDist = dist
				farthestIndex = i
			}
		}

		if maxDist > douglasPeuckerThreshold {
			kepts[farthestIndex] = true
			if left < farthestIndex {
				stack.PushBack([2]int{left, farthestIndex})
			}
			if farthestIndex < right {
				stack.PushBack([2]int{farthestIndex, right})
			}
		}
	}

	simplified := make([]datastructure.Coordinate, 0, size)
	for i, necessary := range kepts {
		if necessary {
			simplified = append(simplified, coords[i])
		}
	}
	return simplified
}
