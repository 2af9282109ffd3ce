package selection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGreater(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)

	tests := []struct {
		name     string
		a, b     float64
		expected bool
	}{
		{"larger number", 2, 1, true},
		{"smaller number", 1, 2, false},
		{"equal numbers", 3, 3, false},
		{"positive infinity", inf, math.MaxFloat64, true},
		{"negative infinity below number", -inf, -math.MaxFloat64, false},
		{"number above NaN", -inf, nan, true},
		{"NaN below number", nan, -inf, false},
		{"NaN equals NaN", nan, nan, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Greater(tt.a, tt.b))
		})
	}
}
