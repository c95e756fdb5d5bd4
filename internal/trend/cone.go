// Package trend extracts piecewise-linear trends from noisy series using the
// epsilon-cone variant of the Sklansky-Gonzalez algorithm, merges them by
// qualitative direction and fits overall regression lines.
//
// Reference: Kacprzyk, Wilbik, Zadrożny, "Linguistic summarization of time
// series using a fuzzy quantifier driven aggregation", Fuzzy Sets and
// Systems 159(12), 2008.
package trend

import (
	"math"

	"github.com/KaramelBytes/chartsense/internal/series"
)

// Cone is the interval of slope angles, in (-π/2, π/2], that a line through
// one point can take while passing within eps of another.
type Cone struct {
	StartAngleRad float64 `json:"start_angle_rad" yaml:"start_angle_rad"`
	EndAngleRad   float64 `json:"end_angle_rad" yaml:"end_angle_rad"`
}

// FullCone admits every non-vertical slope.
var FullCone = Cone{StartAngleRad: -math.Pi / 2, EndAngleRad: math.Pi / 2}

// MidAngle is the bisector of the cone.
func (c Cone) MidAngle() float64 { return (c.StartAngleRad + c.EndAngleRad) / 2 }

// Width is the angular extent of the cone.
func (c Cone) Width() float64 { return c.EndAngleRad - c.StartAngleRad }

// ComputeCone returns the slopes from p1 compatible with the eps-disc around p2.
//
// When p2 lies within eps of p1 every slope is compatible. The closed form
// divides by dx²-eps²; at or below zero the disc reaches the vertical through
// p1 and the compatible set wraps past ±π/2, so that case saturates as well.
func ComputeCone(p1, p2 series.NumPoint, eps float64) Cone {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	r2 := dx*dx + dy*dy
	e2 := eps * eps
	if r2 <= e2 {
		return FullCone
	}
	den := dx*dx - e2
	if den <= 0 {
		return FullCone
	}
	root := eps * math.Sqrt(r2-e2)
	a1 := math.Atan((dx*dy - root) / den)
	a2 := math.Atan((dx*dy + root) / den)
	if math.IsNaN(a1) || math.IsNaN(a2) {
		return FullCone
	}
	return Cone{StartAngleRad: math.Min(a1, a2), EndAngleRad: math.Max(a1, a2)}
}

// Intersect returns the common slopes of c1 and c2; ok is false when none exist.
func Intersect(c1, c2 Cone) (Cone, bool) {
	start := math.Max(c1.StartAngleRad, c2.StartAngleRad)
	end := math.Min(c1.EndAngleRad, c2.EndAngleRad)
	if start <= end {
		return Cone{StartAngleRad: start, EndAngleRad: end}, true
	}
	return Cone{}, false
}
