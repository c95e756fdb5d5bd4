package summarize

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/chartsense/internal/series"
	"github.com/KaramelBytes/chartsense/internal/trend"
)

// TrendPartial describes each maximal increasing, flat or decreasing run of
// the smoothed series.
//
// Sample output:
//   - The active users from August 20 to August 21 increased by 24.
//   - The active users from August 21 to August 23 decreased by 135.
type TrendPartial struct{}

func (TrendPartial) Kind() Kind     { return KindTrendPartial }
func (TrendPartial) Title() string { return "Trend Partial Elaboration" }

// MergedTrends runs the smoothing, segmentation and merge stages and returns
// the merged runs. Exposed so callers can chart the same segments the
// sentences describe.
func (TrendPartial) MergedTrends(points []series.Point, cfg Config) ([]trend.PartialTrend, error) {
	cfg, err := prepare(cfg)
	if err != nil {
		return nil, err
	}
	return mergedTrends(points, cfg)
}

func mergedTrends(points []series.Point, cfg Config) ([]trend.PartialTrend, error) {
	smoothed, err := series.ExponentialMovingAverage(points, cfg.EMAAlpha)
	if err != nil {
		return nil, err
	}
	partial, err := trend.ExtractPartialTrends(smoothed, cfg.Eps)
	if err != nil {
		return nil, err
	}
	return trend.Merge(partial, trend.Functions(trend.DirectionSet(cfg.DiagonalAngle))), nil
}

func (s TrendPartial) Summarize(points []series.Point, cfg Config) ([]SummaryGroup, error) {
	cfg, err := prepare(cfg)
	if err != nil {
		return nil, err
	}
	merged, err := mergedTrends(points, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Kind(), err)
	}

	directions := trend.DirectionSet(cfg.DiagonalAngle)
	summaries := make([]Summary, 0, len(merged)*len(directions))
	for _, pt := range merged {
		start, end := FormatX(pt.TimeStart), FormatX(pt.TimeEnd)
		for _, dir := range directions {
			var text string
			switch dir.Label {
			case trend.Increased, trend.Decreased:
				diff := math.Abs(points[pt.IndexEnd].Y - points[pt.IndexStart].Y)
				text = fmt.Sprintf("The %s from %s to %s %s.",
					cfg.MetricLabel, bold(start), bold(end), bold(fmt.Sprintf("%s by %s", dir.Label, FormatY(diff))))
			default:
				avg := series.Mean(series.Ys(points[pt.IndexStart : pt.IndexEnd+1]))
				text = fmt.Sprintf("The %s from %s to %s is %s.",
					cfg.MetricLabel, bold(start), bold(end), bold(fmt.Sprintf("%s around %s", dir.Label, FormatY(avg))))
			}
			summaries = append(summaries, Summary{Text: text, Validity: dir.Fn(pt)})
		}
	}
	return []SummaryGroup{{Title: s.Title(), Summaries: summaries}}, nil
}
