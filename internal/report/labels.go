package report

import (
	"math"
	"strconv"
)

// Annotation cadence of the panels. Both rules are fixed and do not adapt
// to the data density.
const (
	// LabelStride annotates every third sample, by row position (panels A and B).
	LabelStride = 3
	// LabelAngleStep annotates angles that are exact multiples of 5 degrees (panel C).
	LabelAngleStep = 5.0
)

// LabelEveryNth returns the indices 0, step, 2*step, ... below n.
func LabelEveryNth(n, step int) []int {
	if step <= 0 {
		return nil
	}
	idx := make([]int, 0, n/step+1)
	for i := 0; i < n; i += step {
		idx = append(idx, i)
	}
	return idx
}

// LabelMultiplesOf returns the indices whose angle is an exact multiple of step.
func LabelMultiplesOf(aoa []float64, step float64) []int {
	var idx []int
	for i, a := range aoa {
		if math.Mod(a, step) == 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

// angleLabel formats an angle annotation, e.g. "5°" or "2.5°".
func angleLabel(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64) + "°"
}
