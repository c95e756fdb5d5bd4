package trend_test

import (
	"math"
	"testing"
	"time"

	"github.com/KaramelBytes/chartsense/internal/fuzzy"
	"github.com/KaramelBytes/chartsense/internal/series"
	"github.com/KaramelBytes/chartsense/internal/trend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2024, time.August, 20, 0, 0, 0, 0, time.UTC)

func daily(ys ...float64) []series.Point {
	out := make([]series.Point, len(ys))
	for i, y := range ys {
		out[i] = series.Point{X: day0.AddDate(0, 0, i), Y: y}
	}
	return out
}

func TestComputeCone_WithinTolerance(t *testing.T) {
	c := trend.ComputeCone(series.NumPoint{X: 0, Y: 0}, series.NumPoint{X: 0.002, Y: 0.002}, 0.005)
	assert.Equal(t, trend.FullCone, c)
}

func TestComputeCone_DegenerateDenominator(t *testing.T) {
	// dx² == eps² while the point is outside the disc
	c := trend.ComputeCone(series.NumPoint{X: 0, Y: 0}, series.NumPoint{X: 0.5, Y: 3}, 0.5)
	assert.Equal(t, trend.FullCone, c)
	assert.False(t, math.IsNaN(c.StartAngleRad))
}

func TestComputeCone_DiscCrossesVertical(t *testing.T) {
	// dx² < eps² < r²: p2 is outside the disc but the disc spans x = p1.X
	p1 := series.NumPoint{X: 0, Y: 0}
	p2 := series.NumPoint{X: 0.05, Y: 1}
	assert.Equal(t, trend.FullCone, trend.ComputeCone(p1, p2, 0.1))
	assert.Equal(t, trend.FullCone, trend.ComputeCone(p1, series.NumPoint{X: 0.05, Y: -1}, 0.1))

	// the same offset with dx just past eps gives a narrow, steep cone
	c := trend.ComputeCone(p1, series.NumPoint{X: 0.2, Y: 1}, 0.1)
	assert.NotEqual(t, trend.FullCone, c)
	assert.Greater(t, c.StartAngleRad, 0.0)
}

func TestComputeCone_ContainsExactSlope(t *testing.T) {
	p1 := series.NumPoint{X: 0, Y: 0}
	p2 := series.NumPoint{X: 1, Y: 1}
	c := trend.ComputeCone(p1, p2, 0.1)
	assert.LessOrEqual(t, c.StartAngleRad, c.EndAngleRad)
	assert.Less(t, c.StartAngleRad, math.Pi/4)
	assert.Greater(t, c.EndAngleRad, math.Pi/4)
	// symmetric around the direct slope
	assert.InDelta(t, math.Pi/4, c.MidAngle(), 1e-9)

	exact := trend.ComputeCone(p1, p2, 0)
	assert.InDelta(t, math.Pi/4, exact.StartAngleRad, 1e-12)
	assert.InDelta(t, 0, exact.Width(), 1e-12)
}

func TestIntersect(t *testing.T) {
	a := trend.Cone{StartAngleRad: -0.2, EndAngleRad: 0.5}
	b := trend.Cone{StartAngleRad: 0.1, EndAngleRad: 0.9}
	got, ok := trend.Intersect(a, b)
	require.True(t, ok)
	assert.Equal(t, trend.Cone{StartAngleRad: 0.1, EndAngleRad: 0.5}, got)

	touch, ok := trend.Intersect(a, trend.Cone{StartAngleRad: 0.5, EndAngleRad: 1})
	require.True(t, ok)
	assert.Equal(t, 0.0, touch.Width())

	_, ok = trend.Intersect(a, trend.Cone{StartAngleRad: 0.6, EndAngleRad: 1})
	assert.False(t, ok)
}

func TestExtractPartialTrends_Monotone(t *testing.T) {
	pts := daily(1, 2, 3, 4, 5)
	trends, err := trend.ExtractPartialTrends(pts, 0.01)
	require.NoError(t, err)
	require.Len(t, trends, 1)
	tr := trends[0]
	assert.Equal(t, 0, tr.IndexStart)
	assert.Equal(t, 4, tr.IndexEnd)
	assert.Equal(t, pts[0].X, tr.TimeStart)
	assert.Equal(t, pts[4].X, tr.TimeEnd)
	assert.InDelta(t, 1, tr.PercentageSpan, 1e-12)
	assert.LessOrEqual(t, tr.Cone.StartAngleRad, tr.Cone.EndAngleRad)
}

func TestExtractPartialTrends_ShortInput(t *testing.T) {
	for _, pts := range [][]series.Point{nil, daily(3)} {
		trends, err := trend.ExtractPartialTrends(pts, 0.01)
		require.NoError(t, err)
		assert.Empty(t, trends)
	}
	_, err := trend.ExtractPartialTrends(daily(1, 2), -1)
	assert.ErrorIs(t, err, trend.ErrInvalidEps)
}

func TestExtractPartialTrends_ZigZag(t *testing.T) {
	pts := daily(0, 4, 0, 4, 0)
	trends, err := trend.ExtractPartialTrends(pts, 0.01)
	require.NoError(t, err)
	require.Len(t, trends, 4)
	for i, tr := range trends {
		assert.Equal(t, i, tr.IndexStart)
		assert.Equal(t, i+1, tr.IndexEnd)
		assert.Less(t, tr.IndexStart, tr.IndexEnd)
		assert.InDelta(t, 0.25, tr.PercentageSpan, 1e-12)
	}
	assert.Greater(t, trends[0].Cone.MidAngle(), 0.0)
	assert.Less(t, trends[1].Cone.MidAngle(), 0.0)
}

func TestExtractPartialTrends_ContiguousCover(t *testing.T) {
	pts := daily(10, 12, 11, 9, 30, 29, 31, 30, 12, 8)
	trends, err := trend.ExtractPartialTrends(pts, 0.05)
	require.NoError(t, err)
	require.NotEmpty(t, trends)
	assert.Equal(t, 0, trends[0].IndexStart)
	assert.Equal(t, len(pts)-1, trends[len(trends)-1].IndexEnd)
	for i := 1; i < len(trends); i++ {
		assert.Equal(t, trends[i-1].IndexEnd, trends[i].IndexStart)
	}
}

func TestDominantAndMerge(t *testing.T) {
	dirs := trend.Functions(trend.DirectionSet(math.Pi / 4))
	up := trend.PartialTrend{IndexStart: 0, IndexEnd: 1, PercentageSpan: 0.25, Cone: trend.Cone{StartAngleRad: 1, EndAngleRad: 1.2}}
	up2 := trend.PartialTrend{IndexStart: 1, IndexEnd: 2, PercentageSpan: 0.25, Cone: trend.Cone{StartAngleRad: 0.4, EndAngleRad: 0.6}}
	flat := trend.PartialTrend{IndexStart: 2, IndexEnd: 3, PercentageSpan: 0.25, Cone: trend.Cone{StartAngleRad: -0.01, EndAngleRad: 0.01}}
	down := trend.PartialTrend{IndexStart: 3, IndexEnd: 4, PercentageSpan: 0.25, Cone: trend.Cone{StartAngleRad: -1, EndAngleRad: -0.8}}

	assert.Equal(t, 0, trend.Dominant(up, dirs))
	assert.Equal(t, 1, trend.Dominant(flat, dirs))
	assert.Equal(t, 2, trend.Dominant(down, dirs))
	assert.Equal(t, -1, trend.Dominant(up, nil))

	merged := trend.Merge([]trend.PartialTrend{up, up2, flat, down}, dirs)
	require.Len(t, merged, 3)
	assert.Equal(t, 0, merged[0].IndexStart)
	assert.Equal(t, 2, merged[0].IndexEnd)
	assert.InDelta(t, 0.5, merged[0].PercentageSpan, 1e-12)
	assert.InDelta(t, 0.8, merged[0].Cone.MidAngle(), 1e-12)
	assert.Equal(t, 0, trend.Dominant(merged[0], dirs))
	assert.Equal(t, flat, merged[1])
	assert.Equal(t, down, merged[2])

	assert.Empty(t, trend.Merge(nil, dirs))
}

func TestMerge_TiesGoToFirstDirection(t *testing.T) {
	always := func(trend.PartialTrend) float64 { return 0.5 }
	dirs := []fuzzy.PointMembership[trend.PartialTrend]{always, always}
	trs := []trend.PartialTrend{
		{IndexStart: 0, IndexEnd: 1, PercentageSpan: 0.5},
		{IndexStart: 1, IndexEnd: 2, PercentageSpan: 0.5},
	}
	assert.Equal(t, 0, trend.Dominant(trs[0], dirs))
	merged := trend.Merge(trs, dirs)
	require.Len(t, merged, 1)
	assert.Equal(t, 2, merged[0].IndexEnd)
	assert.Equal(t, 0, merged[0].IndexStart)
}

func TestLinearRegression(t *testing.T) {
	pts := []series.NumPoint{{X: 0, Y: 1}, {X: 1, Y: 3}, {X: 2, Y: 5}, {X: 3, Y: 7}}
	r := trend.LinearRegression(pts)
	assert.InDelta(t, 2, r.Gradient, 1e-12)
	assert.InDelta(t, 1, r.Intercept, 1e-12)
	assert.InDelta(t, math.Atan(2), r.AngleRad, 1e-12)
	assert.InDelta(t, 0, r.AbsErrorMean, 1e-12)
	require.Len(t, r.Prediction, 4)
	assert.InDelta(t, 7, r.Prediction[3].Y, 1e-12)

	flat := trend.LinearRegression([]series.NumPoint{{X: 1, Y: 2}, {X: 1, Y: 4}})
	assert.Equal(t, 0.0, flat.Gradient)
	assert.InDelta(t, 3, flat.Intercept, 1e-12)
	assert.InDelta(t, 1, flat.AbsErrorMean, 1e-12)

	assert.Equal(t, trend.Regression{}, trend.LinearRegression(nil))
}
