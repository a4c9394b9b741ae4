package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func nodeCounts(tour []int32) map[int32]int {
	counts := make(map[int32]int)
	for _, n := range tour {
		counts[n]++
	}
	return counts
}

func TestRotateToStartMovesStartToFront(t *testing.T) {
	tour := []int32{2, 3, 5, 2}

	rotated := rotateToStart(tour, 5)

	assert.Equal(t, []int32{5, 2, 3, 5}, rotated)
}

func TestRotateToStartPreservesNodeMultiset(t *testing.T) {
	tour := []int32{1, 4, 7, 9, 1}

	// compare the open tours, the closing stop changes with the rotation
	open := nodeCounts(tour[:len(tour)-1])

	for _, start := range []int32{1, 4, 7, 9} {
		rotated := rotateToStart(tour, start)

		assert.Equal(t, start, rotated[0])
		assert.Equal(t, start, rotated[len(rotated)-1])
		assert.Equal(t, len(tour), len(rotated))
		assert.Equal(t, open, nodeCounts(rotated[:len(rotated)-1]))
	}
}

func TestRotateToStartNoOpWhenAlreadyFirst(t *testing.T) {
	tour := []int32{3, 1, 2, 3}

	assert.Equal(t, tour, rotateToStart(tour, 3))
}

func TestRotateToStartLeavesTourWithoutStartUnchanged(t *testing.T) {
	tour := []int32{1, 2, 3, 1}

	assert.Equal(t, tour, rotateToStart(tour, 9))
}

func TestRotateToStartDoesNotMutateInput(t *testing.T) {
	tour := []int32{1, 2, 3, 1}

	_ = rotateToStart(tour, 2)

	assert.Equal(t, []int32{1, 2, 3, 1}, tour)
}
