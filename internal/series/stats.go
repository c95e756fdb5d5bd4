package series

import "math"

// Mean returns the arithmetic mean of vals, or 0 for an empty slice.
func Mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// Std returns the sample standard deviation of vals (n-1 denominator).
// It is 0 for fewer than two values.
func Std(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	// Welford
	var n int
	var mean, m2 float64
	for _, x := range vals {
		n++
		delta := x - mean
		mean += delta / float64(n)
		m2 += delta * (x - mean)
	}
	return math.Sqrt(m2 / float64(n-1))
}

// MinMax returns the smallest and largest value in vals.
// Both are 0 for an empty slice.
func MinMax(vals []float64) (lo, hi float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
