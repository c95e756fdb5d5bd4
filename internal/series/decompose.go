package series

import (
	"fmt"
	"time"
)

// Decomposition is an additive split of a series into trend, seasonal and
// residual parts that sum back to the original y pointwise.
type Decomposition struct {
	Trend    []Point
	Seasonal []Point
	Residual []Point
}

// AdditiveDecompose computes, for every distinct key, the mean of y - trend
// over the points sharing it. Each point's seasonal value is the mean of its
// key; residual is y - trend - seasonal.
func AdditiveDecompose[K comparable](points, trend []Point, key func(Point) K) (Decomposition, error) {
	if len(points) != len(trend) {
		return Decomposition{}, fmt.Errorf("decompose: %d points vs %d trend points: %w", len(points), len(trend), ErrLengthMismatch)
	}
	type acc struct {
		sum float64
		n   int
	}
	groups := make(map[K]*acc)
	keys := make([]K, len(points))
	for i, p := range points {
		k := key(p)
		keys[i] = k
		a := groups[k]
		if a == nil {
			a = &acc{}
			groups[k] = a
		}
		a.sum += p.Y - trend[i].Y
		a.n++
	}

	d := Decomposition{
		Trend:    Clone(trend),
		Seasonal: make([]Point, len(points)),
		Residual: make([]Point, len(points)),
	}
	for i, p := range points {
		a := groups[keys[i]]
		s := a.sum / float64(a.n)
		d.Seasonal[i] = Point{X: p.X, Y: s}
		d.Residual[i] = Point{X: p.X, Y: p.Y - trend[i].Y - s}
	}
	return d, nil
}

// DayOfWeek keys a point by its weekday.
func DayOfWeek(p Point) time.Weekday { return p.X.Weekday() }
