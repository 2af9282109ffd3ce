package selection

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name        string
		data        []float64
		left, right int
		expectedIdx int
	}{
		{"pivot near the top", []float64{3, 1, 4, 1, 5, 9, 2, 6}, 0, 7, 1},
		{"pivot is the largest", []float64{1, 2, 3}, 0, 2, 0},
		{"pivot is the smallest", []float64{3, 2, 1}, 0, 2, 2},
		{"equal values stay after pivot", []float64{5, 5, 5}, 0, 2, 0},
		{"single element", []float64{7}, 0, 0, 0},
		{"sub range", []float64{9, 1, 8, 2, 0}, 1, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := append([]float64(nil), tt.data...)
			pivot := data[tt.right]

			idx := Partition(data, tt.left, tt.right)
			assert.Equal(t, tt.expectedIdx, idx)
			assert.Equal(t, pivot, data[idx])
			for i := tt.left; i < idx; i++ {
				assert.True(t, Greater(data[i], pivot), "index %d", i)
			}
			for i := idx + 1; i <= tt.right; i++ {
				assert.False(t, Greater(data[i], pivot), "index %d", i)
			}
			assert.ElementsMatch(t, tt.data, data)
			for i := 0; i < tt.left; i++ {
				assert.Equal(t, tt.data[i], data[i])
			}
			for i := tt.right + 1; i < len(data); i++ {
				assert.Equal(t, tt.data[i], data[i])
			}
		})
	}
}

func TestQuickSelect(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, strategy := range []PivotStrategy{PivotLast, PivotMedianOfThree} {
		for _, n := range []int{1, 2, 3, 10, 257} {
			t.Run(fmt.Sprintf("%s/n=%d", strategy, n), func(t *testing.T) {
				for trial := 0; trial < 20; trial++ {
					data := make([]float64, n)
					for i := range data {
						data[i] = float64(rng.Intn(n))
					}
					target := rng.Intn(n)

					QuickSelectWith(data, 0, n-1, target, strategy)
					assertSelected(t, data, target)
				}
			})
		}
	}
}

func TestQuickSelectSortedInput(t *testing.T) {
	const n = 5000
	for _, strategy := range []PivotStrategy{PivotLast, PivotMedianOfThree} {
		t.Run(strategy.String(), func(t *testing.T) {
			data := make([]float64, n)
			for i := range data {
				data[i] = float64(i)
			}

			QuickSelectWith(data, 0, n-1, 9, strategy)
			assertSelected(t, data, 9)
			assert.Equal(t, float64(n-10), data[9])
		})
	}
}

func TestParsePivotStrategy(t *testing.T) {
	tests := []struct {
		in       string
		expected PivotStrategy
		ok       bool
	}{
		{"", PivotLast, true},
		{"last", PivotLast, true},
		{"median3", PivotMedianOfThree, true},
		{"median_of_three", PivotMedianOfThree, true},
		{"random", PivotLast, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePivotStrategy(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMedianToRight(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		expected float64
	}{
		{"median first", []float64{2, 9, 1}, 2},
		{"median middle", []float64{1, 2, 9}, 2},
		{"median last", []float64{9, 1, 2}, 2},
		{"all equal", []float64{4, 4, 4}, 4},
		{"two elements untouched", []float64{1, 3}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := append([]float64(nil), tt.data...)
			medianToRight(data, 0, len(data)-1)
			assert.Equal(t, tt.expected, data[len(data)-1])
			assert.ElementsMatch(t, tt.data, data)
		})
	}
}

func assertSelected(t *testing.T, data []float64, target int) {
	t.Helper()
	require.True(t, target >= 0 && target < len(data))
	v := data[target]
	for i := 0; i < target; i++ {
		assert.False(t, Greater(v, data[i]), "data[%d]=%v ranks below data[target]=%v", i, data[i], v)
	}
	for i := target + 1; i < len(data); i++ {
		assert.False(t, Greater(data[i], v), "data[%d]=%v ranks above data[target]=%v", i, data[i], v)
	}
}
