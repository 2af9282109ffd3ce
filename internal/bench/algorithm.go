package bench

import (
	"sort"

	"github.com/elcruzo/topkbench/internal/selection"
)

const (
	AlgorithmTopK              = "topK"
	AlgorithmTopKSelect        = "topKSelect"
	AlgorithmTopKSelectMedian3 = "topKSelectMedian3"
)

// Algorithm is a timed selection routine. Run returns the number of results
// so the call has an observable effect; TopValues resolves the same selection
// to values for verification.
type Algorithm struct {
	Name      string
	Run       func(data []float64, k int) int
	TopValues func(data []float64, k int) []float64
}

// DefaultAlgorithms returns the built-in algorithms keyed by name.
// topKSelect partitions with the given pivot strategy.
func DefaultAlgorithms(pivot selection.PivotStrategy) map[string]Algorithm {
	algs := []Algorithm{
		{
			Name: AlgorithmTopK,
			Run: func(data []float64, k int) int {
				return len(selection.TopK(data, k))
			},
			TopValues: func(data []float64, k int) []float64 {
				return selection.Values(data, selection.TopK(data, k))
			},
		},
		{
			Name: AlgorithmTopKSelect,
			Run: func(data []float64, k int) int {
				return len(selection.TopKSelectWith(data, k, pivot))
			},
			TopValues: func(data []float64, k int) []float64 {
				return selection.TopKSelectWith(data, k, pivot)
			},
		},
		{
			Name: AlgorithmTopKSelectMedian3,
			Run: func(data []float64, k int) int {
				return len(selection.TopKSelectWith(data, k, selection.PivotMedianOfThree))
			},
			TopValues: func(data []float64, k int) []float64 {
				return selection.TopKSelectWith(data, k, selection.PivotMedianOfThree)
			},
		},
	}

	out := make(map[string]Algorithm, len(algs))
	for _, a := range algs {
		out[a.Name] = a
	}
	return out
}

func AlgorithmNames(algs map[string]Algorithm) []string {
	names := make([]string, 0, len(algs))
	for name := range algs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
