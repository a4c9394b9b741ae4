package util

import (
	"testing"
)

func TestQuickSort(t *testing.T) {

	arr := []int{4, 3, 2, 1, 10, 5555, -1, 20, 100, -100}
	arr = QuickSortG(arr, func(a, b int) int {
		if a < b {
			return -1
		} else if a > b {
			return 1
		} else {
			return 0
		}
	})

	for i := 0; i < len(arr); i++ {
		if i == 0 {
			continue
		}
		if arr[i] < arr[i-1] {
			t.Errorf("Error in sorting")
		}
	}
}

func TestReverse(t *testing.T) {
	arr := []int32{1, 2, 3, 4, 5}
	rev := ReverseG(arr)
	for i := range rev {
		if rev[i] != arr[len(arr)-1-i] {
			t.Errorf("Error in reversing")
		}
	}
	if arr[0] != 1 {
		t.Errorf("ReverseG must not mutate its input")
	}
}

func TestRoundFloat(t *testing.T) {
	if RoundFloat(3.14159, 2) != 3.14 {
		t.Errorf("Error in rounding")
	}
}
