package summarize

import (
	"fmt"

	"github.com/KaramelBytes/chartsense/internal/fuzzy"
	"github.com/KaramelBytes/chartsense/internal/series"
	"github.com/KaramelBytes/chartsense/internal/trend"
)

// Stability memberships over the mean absolute regression error relative to
// the y range of the series.
var (
	uStable   = fuzzy.MustRampDown(0.05, 0.15)
	uVolatile = fuzzy.Complement(uStable)
)

// TrendOverall describes the direction of the whole smoothed series, how
// closely it follows a straight line, and for how much of the time each
// direction held.
type TrendOverall struct{}

func (TrendOverall) Kind() Kind     { return KindTrendOverall }
func (TrendOverall) Title() string { return "Trend Overall" }

func (s TrendOverall) Summarize(points []series.Point, cfg Config) ([]SummaryGroup, error) {
	cfg, err := prepare(cfg)
	if err != nil {
		return nil, err
	}
	group := SummaryGroup{Title: s.Title(), Summaries: []Summary{}}
	if len(points) <= 1 {
		return []SummaryGroup{group}, nil
	}

	smoothed, err := series.ExponentialMovingAverage(points, cfg.EMAAlpha)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Kind(), err)
	}
	normalized := series.Normalize(smoothed, series.DefaultNormalizeOptions())
	reg := trend.LinearRegression(normalized)

	first, last := points[0], points[len(points)-1]
	whole := trend.PartialTrend{
		IndexStart:     0,
		IndexEnd:       len(points) - 1,
		TimeStart:      first.X,
		TimeEnd:        last.X,
		PercentageSpan: 1,
		Cone:           trend.Cone{StartAngleRad: reg.AngleRad, EndAngleRad: reg.AngleRad},
	}
	start, end := bold(FormatX(first.X)), bold(FormatX(last.X))
	directions := trend.DirectionSet(cfg.DiagonalAngle)
	for _, dir := range directions {
		var text string
		switch dir.Label {
		case trend.Increased, trend.Decreased:
			pred := reg.Prediction
			diff := pred[len(pred)-1].Y - pred[0].Y
			if diff < 0 {
				diff = -diff
			}
			text = fmt.Sprintf("Overall, the %s from %s to %s %s.",
				cfg.MetricLabel, start, end, bold(fmt.Sprintf("%s by about %s", dir.Label, FormatY(diff))))
		default:
			text = fmt.Sprintf("Overall, the %s from %s to %s stayed %s.",
				cfg.MetricLabel, start, end, bold(fmt.Sprintf("%s around %s", dir.Label, FormatY(series.Mean(series.Ys(points))))))
		}
		group.Summaries = append(group.Summaries, Summary{Text: text, Validity: dir.Fn(whole)})
	}

	lo, hi := series.MinMax(series.Ys(smoothed))
	var relErr float64
	if hi > lo {
		relErr = reg.AbsErrorMean / (hi - lo)
	}
	group.Summaries = append(group.Summaries,
		Summary{
			Text:     fmt.Sprintf("The %s %s its overall trend.", cfg.MetricLabel, bold("closely follows")),
			Validity: uStable(relErr),
		},
		Summary{
			Text:     fmt.Sprintf("The %s %s around its overall trend.", cfg.MetricLabel, bold("fluctuates strongly")),
			Validity: uVolatile(relErr),
		},
	)

	merged, err := mergedTrends(points, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Kind(), err)
	}
	span := func(t trend.PartialTrend) float64 { return t.PercentageSpan }
	for _, q := range fuzzy.Quantifiers() {
		for _, dir := range directions {
			v, err := fuzzy.WeightedSigmaCount(merged, span, q.Fn, dir.Fn)
			if err != nil {
				// every point shares one timestamp; there is no time to quantify over
				continue
			}
			group.Summaries = append(group.Summaries, Summary{
				Text:     fmt.Sprintf("For %s of the time, the %s %s.", bold(timeQuantifier(q.Label)), cfg.MetricLabel, bold(directionPhrase(dir.Label))),
				Validity: v,
			})
		}
	}
	return []SummaryGroup{group}, nil
}

// timeQuantifier phrases a quantifier label for "For ... of the time".
func timeQuantifier(label string) string {
	if label == "few" {
		return "a little"
	}
	return label
}

func directionPhrase(label string) string {
	if label == trend.Similar {
		return "stayed similar"
	}
	return label
}
