package render

import "math"

// Map re-maps v from [inMin, inMax] onto [outMin, outMax] without clamping.
func Map(v, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	return outMin + (v-inMin)*(outMax-outMin)/(inMax-inMin)
}

// BarIndex picks the spectrum bin for bar i of bars. Bars spread linearly
// over the first fraction of a spectrum of length n, never past n-1.
// It returns -1 for an empty spectrum.
func BarIndex(i, bars, n int, fraction float64) int {
	if n <= 0 || bars <= 0 {
		return -1
	}
	upper := math.Min(fraction*float64(n), float64(n-1))
	idx := int(math.Floor(Map(float64(i), 0, float64(bars), 0, upper)))
	if idx < 0 {
		return 0
	}
	if idx > n-1 {
		return n - 1
	}
	return idx
}
