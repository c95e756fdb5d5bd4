package trend

import (
	"math"

	"github.com/KaramelBytes/chartsense/internal/series"
)

// Regression is an ordinary least-squares line fit.
type Regression struct {
	Gradient     float64
	Intercept    float64
	AngleRad     float64
	Prediction   []series.NumPoint
	AbsErrorMean float64
	AbsErrorStd  float64
}

// LinearRegression fits y = Gradient*x + Intercept. With fewer than two
// distinct x values the fit is the horizontal line through the mean.
func LinearRegression(points []series.NumPoint) Regression {
	n := float64(len(points))
	if n == 0 {
		return Regression{}
	}
	var sx, sy, sxx, sxy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
		sxx += p.X * p.X
		sxy += p.X * p.Y
	}
	var grad float64
	if den := n*sxx - sx*sx; den != 0 {
		grad = (n*sxy - sx*sy) / den
	}
	icept := (sy - grad*sx) / n

	pred := make([]series.NumPoint, len(points))
	errs := make([]float64, len(points))
	for i, p := range points {
		y := grad*p.X + icept
		pred[i] = series.NumPoint{X: p.X, Y: y}
		errs[i] = math.Abs(p.Y - y)
	}
	return Regression{
		Gradient:     grad,
		Intercept:    icept,
		AngleRad:     math.Atan(grad),
		Prediction:   pred,
		AbsErrorMean: series.Mean(errs),
		AbsErrorStd:  series.Std(errs),
	}
}
