package metrics

import "math"

// Mean computes the arithmetic mean of a float64 slice.
// Returns 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Clamp bounds v to the percentage range [0,100].
func Clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// Lerp interpolates linearly between a and b at fraction t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// fraction is the interpolation position of index i on an axis of n points.
// The first point is always 0 and the last always 1.
func fraction(i, n int) float64 {
	if n < 2 {
		return 0
	}
	return float64(i) / float64(n-1)
}
