package series

// YScale selects how Normalize rescales y values.
type YScale int

const (
	// ShiftMin subtracts the minimum so the lowest y is 0 and keeps original units.
	ShiftMin YScale = iota
	// UnitRange maps y into [0,1].
	UnitRange
	// None keeps y untouched.
	None
)

// NormalizeOptions controls Normalize.
type NormalizeOptions struct {
	Y YScale
}

// DefaultNormalizeOptions keeps absolute y differences so later stages can
// reason in original units while x stays comparable across window lengths.
func DefaultNormalizeOptions() NormalizeOptions {
	return NormalizeOptions{Y: ShiftMin}
}

// Normalize maps x onto [0,1] over the time span of points and rescales y
// according to opt. Sequences of length <= 1 are returned as-is (x = 0).
func Normalize(points []Point, opt NormalizeOptions) []NumPoint {
	num := ToNumPoints(points)
	if len(num) <= 1 {
		return num
	}
	// ToNumPoints measures x from the first point, so the last x is the span.
	span := num[len(num)-1].X
	ys := make([]float64, len(num))
	for i, p := range num {
		ys[i] = p.Y
	}
	lo, hi := MinMax(ys)
	for i := range num {
		if span > 0 {
			num[i].X /= span
		} else {
			num[i].X = 0
		}
		switch opt.Y {
		case ShiftMin:
			num[i].Y -= lo
		case UnitRange:
			if hi > lo {
				num[i].Y = (num[i].Y - lo) / (hi - lo)
			} else {
				num[i].Y = 0
			}
		}
	}
	return num
}

// NormalizeY divides every y by the mean y so thresholds become unit-free.
// A zero mean leaves the points unchanged.
func NormalizeY(points []Point) []Point {
	out := Clone(points)
	m := Mean(Ys(points))
	if m == 0 {
		return out
	}
	for i := range out {
		out[i].Y /= m
	}
	return out
}
