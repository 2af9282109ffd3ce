package selection

// NoIndex marks a TopK position with no element behind it.
const NoIndex = -1

// Slot is one position of a TopKSlots result.
type Slot struct {
	Index  int
	Value  float64
	Filled bool
}

// TopKSelect returns the k largest values of data in no particular order.
// k is clamped to len(data); data itself is never modified.
func TopKSelect(data []float64, k int) []float64 {
	return TopKSelectWith(data, k, PivotLast)
}

func TopKSelectWith(data []float64, k int, strategy PivotStrategy) []float64 {
	if k <= 0 {
		return []float64{}
	}
	if k > len(data) {
		k = len(data)
	}
	if k == 0 {
		return []float64{}
	}

	clone := make([]float64, len(data))
	copy(clone, data)
	QuickSelectWith(clone, 0, len(clone)-1, k-1, strategy)

	return clone[:k:k]
}

// TopK returns the indices of the k largest values of data, largest first.
// Equal values keep their input order. When data has fewer than k elements
// the trailing positions are NoIndex.
func TopK(data []float64, k int) []int {
	slots := TopKSlots(data, k)
	indices := make([]int, len(slots))
	for i, s := range slots {
		if s.Filled {
			indices[i] = s.Index
		} else {
			indices[i] = NoIndex
		}
	}
	return indices
}

// TopKSlots is TopK with unfilled positions reported explicitly.
func TopKSlots(data []float64, k int) []Slot {
	if k <= 0 {
		return []Slot{}
	}

	slots := make([]Slot, k)
	filled := 0
	for i, value := range data {
		var j int
		if filled < k {
			j = filled
			filled++
		} else if Greater(value, slots[k-1].Value) {
			j = k - 1
		} else {
			continue
		}
		for j > 0 && Greater(value, slots[j-1].Value) {
			slots[j] = slots[j-1]
			j--
		}
		slots[j] = Slot{Index: i, Value: value, Filled: true}
	}
	return slots
}

// Values resolves a TopK result back to the referenced values.
func Values(data []float64, indices []int) []float64 {
	out := make([]float64, 0, len(indices))
	for _, idx := range indices {
		if idx == NoIndex {
			continue
		}
		out = append(out, data[idx])
	}
	return out
}
