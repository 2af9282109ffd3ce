// Package selection picks the k largest values of an unordered float64
// sequence, either by quickselect partitioning or by a bounded insertion scan.
//
// Both algorithms rank values with Greater: numbers compare numerically,
// infinities included, and NaN ranks below every number.
package selection

import "math"

// Greater reports whether a ranks strictly above b.
func Greater(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a > b
}
