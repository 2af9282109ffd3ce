package bench

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/elcruzo/topkbench/internal/selection"
)

var ErrMismatch = errors.New("result does not match reference")

// Verify checks that alg selects the same multiset of values as an
// independent heap-based reference.
func Verify(alg Algorithm, data []float64, k int) error {
	got := append([]float64(nil), alg.TopValues(data, k)...)
	want := ReferenceTopValues(data, k)

	sortDescending(got)
	if len(got) != len(want) {
		return fmt.Errorf("%s: got %d values, want %d: %w", alg.Name, len(got), len(want), ErrMismatch)
	}
	for i := range got {
		if !sameValue(got[i], want[i]) {
			return fmt.Errorf("%s: value %d is %v, want %v: %w", alg.Name, i, got[i], want[i], ErrMismatch)
		}
	}
	return nil
}

// ReferenceTopValues returns the k largest values of data, largest first,
// using a bounded min-heap.
func ReferenceTopValues(data []float64, k int) []float64 {
	if k <= 0 {
		return []float64{}
	}
	if k > len(data) {
		k = len(data)
	}

	h := make(minHeap, 0, k)
	for _, v := range data {
		if len(h) < k {
			heap.Push(&h, v)
		} else if selection.Greater(v, h[0]) {
			h[0] = v
			heap.Fix(&h, 0)
		}
	}

	out := []float64(h)
	sortDescending(out)
	return out
}

func sortDescending(values []float64) {
	sort.SliceStable(values, func(i, j int) bool {
		return selection.Greater(values[i], values[j])
	})
}

func sameValue(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return a == b
}

type minHeap []float64

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return selection.Greater(h[j], h[i]) }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *minHeap) Push(x any) { *h = append(*h, x.(float64)) }

func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
