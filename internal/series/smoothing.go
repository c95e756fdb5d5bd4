package series

import "fmt"

// ExponentialMovingAverage smooths y with s[0] = y[0] and
// s[i] = alpha*y[i] + (1-alpha)*s[i-1]. X values and length are preserved.
func ExponentialMovingAverage(points []Point, alpha float64) ([]Point, error) {
	if !(alpha > 0 && alpha <= 1) {
		return nil, fmt.Errorf("ema alpha %v: %w", alpha, ErrInvalidAlpha)
	}
	out := Clone(points)
	if alpha == 1 {
		return out, nil
	}
	for i := 1; i < len(out); i++ {
		out[i].Y = alpha*points[i].Y + (1-alpha)*out[i-1].Y
	}
	return out, nil
}

// CenteredMovingAverage replaces each y with the mean of the window
// [i-halfWindow, i+halfWindow] clipped to the sequence bounds.
func CenteredMovingAverage(points []Point, halfWindow int) ([]Point, error) {
	if halfWindow < 0 {
		return nil, fmt.Errorf("centered moving average window %d: %w", halfWindow, ErrInvalidWindow)
	}
	out := Clone(points)
	if halfWindow == 0 || len(points) == 0 {
		return out, nil
	}
	// prefix sums keep this O(n) for wide windows
	prefix := make([]float64, len(points)+1)
	for i, p := range points {
		prefix[i+1] = prefix[i] + p.Y
	}
	n := len(points)
	for i := range out {
		lo := i - halfWindow
		if lo < 0 {
			lo = 0
		}
		hi := i + halfWindow
		if hi > n-1 {
			hi = n - 1
		}
		out[i].Y = (prefix[hi+1] - prefix[lo]) / float64(hi-lo+1)
	}
	return out, nil
}
