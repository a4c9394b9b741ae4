package solver

// rotateToStart rotates a closed tour so it begins and ends at start. The
// duplicated closing element is dropped first and re-appended after the
// rotation. A tour without the start node is returned unchanged.
func rotateToStart(tour []int32, start int32) []int32 {
	if len(tour) < 2 {
		return tour
	}

	open := tour
	if tour[0] == tour[len(tour)-1] {
		open = tour[:len(tour)-1]
	}

	idx := -1
	for i, nodeID := range open {
		if nodeID == start {
			idx = i
			break
		}
	}
	if idx == -1 {
		return tour
	}

	rotated := make([]int32, 0, len(open)+1)
	rotated = append(rotated, open[idx:]...)
	rotated = append(rotated, open[:idx]...)
	rotated = append(rotated, rotated[0])
	return rotated
}
