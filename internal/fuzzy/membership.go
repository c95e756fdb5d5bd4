// Package fuzzy provides trapezoidal membership functions and sigma-count
// evaluation of quantified propositions ("most of the weeks are ...").
package fuzzy

import (
	"errors"
	"fmt"
	"math"
)

// MembershipFunc maps a domain value to a truth degree in [0,1].
type MembershipFunc func(x float64) float64

// PointMembership grades an arbitrary item, usually by projecting it onto a
// number and applying a MembershipFunc.
type PointMembership[T any] func(item T) float64

// ErrInvalidBreakpoints is returned when breakpoints are not ordered a<=b<=c<=d.
var ErrInvalidBreakpoints = errors.New("membership breakpoints must be ordered")

// Trapezoid is 0 below a, ramps to 1 over [a,b], stays 1 over [b,c],
// ramps to 0 over [c,d] and is 0 above d.
func Trapezoid(a, b, c, d float64) (MembershipFunc, error) {
	if !(a <= b && b <= c && c <= d) {
		return nil, fmt.Errorf("trapezoid(%g, %g, %g, %g): %w", a, b, c, d, ErrInvalidBreakpoints)
	}
	return func(x float64) float64 {
		switch {
		case x >= b && x <= c:
			return 1
		case x <= a || x >= d:
			return 0
		case x < b:
			return clamp01((x - a) / (b - a))
		default:
			return clamp01((d - x) / (d - c))
		}
	}, nil
}

// RampUp is 0 below a, ramps to 1 over [a,b] and stays 1 above b.
func RampUp(a, b float64) (MembershipFunc, error) {
	if !(a <= b) {
		return nil, fmt.Errorf("ramp up(%g, %g): %w", a, b, ErrInvalidBreakpoints)
	}
	return func(x float64) float64 {
		switch {
		case x >= b:
			return 1
		case x <= a:
			return 0
		default:
			return clamp01((x - a) / (b - a))
		}
	}, nil
}

// RampDown is 1 below a, ramps to 0 over [a,b] and stays 0 above b.
func RampDown(a, b float64) (MembershipFunc, error) {
	if !(a <= b) {
		return nil, fmt.Errorf("ramp down(%g, %g): %w", a, b, ErrInvalidBreakpoints)
	}
	return func(x float64) float64 {
		switch {
		case x <= a:
			return 1
		case x >= b:
			return 0
		default:
			return clamp01((b - x) / (b - a))
		}
	}, nil
}

// MustTrapezoid is like Trapezoid but panics on invalid breakpoints.
// It is meant for literal presets.
func MustTrapezoid(a, b, c, d float64) MembershipFunc {
	return must(Trapezoid(a, b, c, d))
}

// MustRampUp is like RampUp but panics on invalid breakpoints.
func MustRampUp(a, b float64) MembershipFunc { return must(RampUp(a, b)) }

// MustRampDown is like RampDown but panics on invalid breakpoints.
func MustRampDown(a, b float64) MembershipFunc { return must(RampDown(a, b)) }

// Complement returns 1 - mf(x).
func Complement(mf MembershipFunc) MembershipFunc {
	return func(x float64) float64 { return 1 - mf(x) }
}

// Lift grades items by applying mf to project(item).
func Lift[T any](mf MembershipFunc, project func(T) float64) PointMembership[T] {
	return func(item T) float64 { return mf(project(item)) }
}

func must(mf MembershipFunc, err error) MembershipFunc {
	if err != nil {
		panic(err)
	}
	return mf
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
