// Package series holds the point types and the numeric preprocessing stages
// (normalization, smoothing, decomposition) that feed trend extraction.
package series

import (
	"errors"
	"time"
)

// Point is one observation of a labeled time series.
type Point struct {
	X time.Time `json:"x" yaml:"x"`
	Y float64   `json:"y" yaml:"y"`
}

// NumPoint is a Point whose x has been mapped onto the real line.
type NumPoint struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

var (
	// ErrInvalidAlpha is returned when an EMA smoothing factor lies outside (0,1].
	ErrInvalidAlpha = errors.New("alpha must be in (0,1]")
	// ErrInvalidWindow is returned for a negative moving-average half window.
	ErrInvalidWindow = errors.New("half window must be >= 0")
	// ErrLengthMismatch is returned when two series that must align differ in length.
	ErrLengthMismatch = errors.New("series length mismatch")
)

// Ys returns the y values of points in order.
func Ys(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Y
	}
	return out
}

// ToNumPoints maps x to elapsed seconds since the first point.
func ToNumPoints(points []Point) []NumPoint {
	out := make([]NumPoint, len(points))
	if len(points) == 0 {
		return out
	}
	origin := points[0].X
	for i, p := range points {
		out[i] = NumPoint{X: p.X.Sub(origin).Seconds(), Y: p.Y}
	}
	return out
}

// Clone returns a copy of points so callers can modify it freely.
func Clone(points []Point) []Point {
	out := make([]Point, len(points))
	copy(out, points)
	return out
}
