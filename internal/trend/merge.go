package trend

import (
	"github.com/KaramelBytes/chartsense/internal/fuzzy"
)

// Direction labels used by DirectionSet, in evaluation order.
const (
	Increased = "increased"
	Similar   = "similar"
	Decreased = "decreased"
)

// MapConeAngle grades a trend by applying mf to its cone's mid angle.
func MapConeAngle(mf fuzzy.MembershipFunc) fuzzy.PointMembership[PartialTrend] {
	return fuzzy.Lift(mf, func(t PartialTrend) float64 { return t.Cone.MidAngle() })
}

// DirectionSet builds increasing, similar and decreasing memberships over the
// cone angle, scaled by diagonal, the angle a chart's diagonal makes with the
// x axis.
func DirectionSet(diagonal float64) []fuzzy.Option[fuzzy.PointMembership[PartialTrend]] {
	d4, d8 := diagonal/4, diagonal/8
	return []fuzzy.Option[fuzzy.PointMembership[PartialTrend]]{
		{Label: Increased, Fn: MapConeAngle(fuzzy.MustRampUp(d8, d4))},
		{Label: Similar, Fn: MapConeAngle(fuzzy.MustTrapezoid(-d4, -d8, d8, d4))},
		{Label: Decreased, Fn: MapConeAngle(fuzzy.MustRampDown(-d4, -d8))},
	}
}

// Dominant returns the index of the direction with the highest membership;
// ties go to the first listed. It returns -1 when directions is empty.
func Dominant(t PartialTrend, directions []fuzzy.PointMembership[PartialTrend]) int {
	best, bestV := -1, -1.0
	for i, mf := range directions {
		if v := mf(t); v > bestV {
			best, bestV = i, v
		}
	}
	return best
}

// Merge joins consecutive trends that share a dominant direction. A merged
// trend spans the union of its parts, its PercentageSpan is the sum of their
// spans and its cone is their span-weighted mean, so re-evaluating the
// directions against it reflects the whole run.
func Merge(trends []PartialTrend, directions []fuzzy.PointMembership[PartialTrend]) []PartialTrend {
	if len(trends) == 0 {
		return nil
	}
	var out []PartialTrend
	start := 0
	dom := Dominant(trends[0], directions)
	for i := 1; i < len(trends); i++ {
		d := Dominant(trends[i], directions)
		if d == dom {
			continue
		}
		out = append(out, join(trends[start:i]))
		start, dom = i, d
	}
	return append(out, join(trends[start:]))
}

func join(run []PartialTrend) PartialTrend {
	first, last := run[0], run[len(run)-1]
	if len(run) == 1 {
		return first
	}
	var span, start, end float64
	for _, t := range run {
		span += t.PercentageSpan
	}
	for _, t := range run {
		w := 1 / float64(len(run))
		if span > 0 {
			w = t.PercentageSpan / span
		}
		start += w * t.Cone.StartAngleRad
		end += w * t.Cone.EndAngleRad
	}
	return PartialTrend{
		IndexStart:     first.IndexStart,
		IndexEnd:       last.IndexEnd,
		TimeStart:      first.TimeStart,
		TimeEnd:        last.TimeEnd,
		PercentageSpan: span,
		Cone:           Cone{StartAngleRad: start, EndAngleRad: end},
	}
}

// Functions strips the labels from a labeled direction set.
func Functions(opts []fuzzy.Option[fuzzy.PointMembership[PartialTrend]]) []fuzzy.PointMembership[PartialTrend] {
	out := make([]fuzzy.PointMembership[PartialTrend], len(opts))
	for i, o := range opts {
		out[i] = o.Fn
	}
	return out
}
