package selection

type PivotStrategy int

const (
	// PivotLast always partitions around the last element of the range.
	// Sorted input degrades it to O(n²).
	PivotLast PivotStrategy = iota
	// PivotMedianOfThree moves the median of the first, middle and last
	// elements into the last slot before partitioning.
	PivotMedianOfThree
)

func (p PivotStrategy) String() string {
	switch p {
	case PivotLast:
		return "last"
	case PivotMedianOfThree:
		return "median3"
	default:
		return "unknown"
	}
}

func ParsePivotStrategy(s string) (PivotStrategy, bool) {
	switch s {
	case "", "last":
		return PivotLast, true
	case "median3", "median_of_three":
		return PivotMedianOfThree, true
	}
	return PivotLast, false
}

// Partition rearranges data[left..right] around the pivot data[right]:
// elements ranking above the pivot come first, then the pivot, then the rest.
// It returns the pivot's final index.
func Partition(data []float64, left, right int) int {
	pivot := data[right]
	i := left
	for j := left; j < right; j++ {
		if Greater(data[j], pivot) {
			data[i], data[j] = data[j], data[i]
			i++
		}
	}
	data[i], data[right] = data[right], data[i]
	return i
}

// QuickSelect reorders data[left..right] so that data[target] holds the value
// of that rank in descending order, with nothing ranked below it before it
// and nothing ranked above it after it.
func QuickSelect(data []float64, left, right, target int) {
	QuickSelectWith(data, left, right, target, PivotLast)
}

func QuickSelectWith(data []float64, left, right, target int, strategy PivotStrategy) {
	for left < right {
		if strategy == PivotMedianOfThree {
			medianToRight(data, left, right)
		}
		pivotIdx := Partition(data, left, right)
		if pivotIdx == target {
			return
		} else if pivotIdx < target {
			left = pivotIdx + 1
		} else {
			right = pivotIdx - 1
		}
	}
}

func medianToRight(data []float64, left, right int) {
	if right-left < 2 {
		return
	}
	mid := left + (right-left)/2
	a, b, c := data[left], data[mid], data[right]
	m := right
	switch {
	case Greater(a, b) != Greater(a, c):
		m = left
	case Greater(b, a) != Greater(b, c):
		m = mid
	}
	data[m], data[right] = data[right], data[m]
}
