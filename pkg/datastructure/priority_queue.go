package datastructure

import "errors"

var (
	ErrHeapEmpty      = errors.New("priority queue is empty")
	ErrItemNotFound   = errors.New("item not found in priority queue")
	ErrRankNotSmaller = errors.New("new rank must be smaller than the old rank")
)

type PriorityQueueNode[T comparable] struct {
	Rank float64
	Item T
}

// MinHeap is a binary min-heap keyed by Rank with DecreaseKey support,
// used by the Dijkstra queries.
type MinHeap[T comparable] struct {
	heap  []PriorityQueueNode[T]
	index map[T]int
}

func NewMinHeap[T comparable]() *MinHeap[T] {
	return &MinHeap[T]{
		heap:  make([]PriorityQueueNode[T], 0),
		index: make(map[T]int),
	}
}

func (pq *MinHeap[T]) Size() int {
	return len(pq.heap)
}

func (pq *MinHeap[T]) Insert(node PriorityQueueNode[T]) {
	pq.heap = append(pq.heap, node)
	pq.index[node.Item] = len(pq.heap) - 1
	pq.up(len(pq.heap) - 1)
}

func (pq *MinHeap[T]) GetMin() (PriorityQueueNode[T], error) {
	if len(pq.heap) == 0 {
		return PriorityQueueNode[T]{}, ErrHeapEmpty
	}
	return pq.heap[0], nil
}

func (pq *MinHeap[T]) ExtractMin() (PriorityQueueNode[T], error) {
	if len(pq.heap) == 0 {
		return PriorityQueueNode[T]{}, ErrHeapEmpty
	}
	min := pq.heap[0]
	last := len(pq.heap) - 1
	pq.swap(0, last)
	pq.heap = pq.heap[:last]
	delete(pq.index, min.Item)
	if last > 0 {
		pq.down(0)
	}
	return min, nil
}

func (pq *MinHeap[T]) Contains(item T) bool {
	_, ok := pq.index[item]
	return ok
}

func (pq *MinHeap[T]) DecreaseKey(node PriorityQueueNode[T]) error {
	pos, ok := pq.index[node.Item]
	if !ok {
		return ErrItemNotFound
	}
	if node.Rank > pq.heap[pos].Rank {
		return ErrRankNotSmaller
	}
	pq.heap[pos].Rank = node.Rank
	pq.up(pos)
	return nil
}

func (pq *MinHeap[T]) up(pos int) {
	for pos > 0 {
		parent := (pos - 1) / 2
		if pq.heap[parent].Rank <= pq.heap[pos].Rank {
			break
		}
		pq.swap(parent, pos)
		pos = parent
	}
}

func (pq *MinHeap[T]) down(pos int) {
	n := len(pq.heap)
	for {
		left := 2*pos + 1
		right := 2*pos + 2
		smallest := pos
		if left < n && pq.heap[left].Rank < pq.heap[smallest].Rank {
			smallest = left
		}
		if right < n && pq.heap[right].Rank < pq.heap[smallest].Rank {
			smallest = right
		}
		if smallest == pos {
			break
		}
		pq.swap(pos, smallest)
		pos = smallest
	}
}

func (pq *MinHeap[T]) swap(i, j int) {
	pq.heap[i], pq.heap[j] = pq.heap[j], pq.heap[i]
	pq.index[pq.heap[i].Item] = i
	pq.index[pq.heap[j].Item] = j
}
