package fuzzy

import (
	"errors"
	"fmt"
)

// ErrEmptyQuantification is returned when a quantified proposition is
// evaluated over zero items; the proportion would be undefined.
var ErrEmptyQuantification = errors.New("quantified proposition over empty set")

// SigmaCount evaluates "Q of the items are A": the mean of property over
// items is passed to quantifier.
func SigmaCount[T any](items []T, quantifier MembershipFunc, property PointMembership[T]) (float64, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("sigma count: %w", ErrEmptyQuantification)
	}
	var sum float64
	for _, it := range items {
		sum += clamp01(property(it))
	}
	return clamp01(quantifier(sum / float64(len(items)))), nil
}

// Option pairs a linguistic label with its membership function.
type Option[F any] struct {
	Label string
	Fn    F
}

// Standard relative quantifiers over proportions.
var (
	Most = MustRampUp(0.6, 0.7)
	Half = MustTrapezoid(0.3, 0.4, 0.6, 0.7)
	Few  = MustTrapezoid(0.05, 0.1, 0.3, 0.4)
)

// Quantifiers returns the standard quantifiers in most, half, few order.
func Quantifiers() []Option[MembershipFunc] {
	return []Option[MembershipFunc]{
		{Label: "most", Fn: Most},
		{Label: "half", Fn: Half},
		{Label: "few", Fn: Few},
	}
}

// WeightedSigmaCount is SigmaCount with per-item weights, so that "for most
// of the time" can count long segments more than short ones. The proportion
// is Σ w·A / Σ w; a zero total weight is treated like an empty set.
func WeightedSigmaCount[T any](items []T, weight func(T) float64, quantifier MembershipFunc, property PointMembership[T]) (float64, error) {
	var num, den float64
	for _, it := range items {
		w := weight(it)
		if w <= 0 {
			continue
		}
		num += w * clamp01(property(it))
		den += w
	}
	if den == 0 {
		return 0, fmt.Errorf("weighted sigma count: %w", ErrEmptyQuantification)
	}
	return clamp01(quantifier(num / den)), nil
}
