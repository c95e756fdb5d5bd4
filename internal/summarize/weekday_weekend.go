package summarize

import (
	"fmt"
	"math"
	"time"

	"github.com/KaramelBytes/chartsense/internal/fuzzy"
	"github.com/KaramelBytes/chartsense/internal/series"
)

// minWeekPoints drops partial weeks at the edges of the series; weeks with
// fewer points belong to the neighbouring period rather than this one.
const minWeekPoints = 4

var (
	uEqualDiff   = fuzzy.Lift(fuzzy.MustRampDown(0.05, 0.1), pointY)
	uHigherDiff  = fuzzy.Lift(fuzzy.MustRampUp(1.2, 1.4), pointY)
	uSimilarDiff = fuzzy.Lift(fuzzy.MustTrapezoid(0.6, 0.8, 1.2, 1.4), pointY)
	uLowerDiff   = fuzzy.Lift(fuzzy.MustRampDown(0.6, 0.8), pointY)
)

func pointY(p series.Point) float64 { return p.Y }

// WeekendMembership grades how much a day counts as weekend.
// Friday is partially weekend.
func WeekendMembership(p series.Point) float64 {
	switch p.X.Weekday() {
	case time.Saturday, time.Sunday:
		return 1
	case time.Friday:
		return 0.2
	default:
		return 0
	}
}

// WeekdayMembership is the complement of WeekendMembership.
func WeekdayMembership(p series.Point) float64 { return 1 - WeekendMembership(p) }

func isWeekend(p series.Point) bool { return WeekendMembership(p) > 0.5 }
func isWeekday(p series.Point) bool { return WeekdayMembership(p) > 0.5 }

// WeekdayWeekendProperties are the derived values the weekday/weekend
// sentences are built from.
type WeekdayWeekendProperties struct {
	// EqualValidity is the truth of "in most weeks weekday and weekend
	// traffic are about equal".
	EqualValidity float64 `json:"equal_validity" yaml:"equal_validity"`
	// DiffPoints holds one point per retained week: x is the first day of
	// the week and y is |mean weekday seasonal - mean weekend seasonal|.
	DiffPoints []series.Point `json:"diff_points" yaml:"diff_points"`
}

// WeekdayWeekend contrasts weekday and weekend levels after removing the
// trend, one week at a time.
type WeekdayWeekend struct{}

func (WeekdayWeekend) Kind() Kind     { return KindWeekdayWeekend }
func (WeekdayWeekend) Title() string { return "Workday Holiday Relative" }

// Properties computes the per-week differences and the equal-traffic validity.
// With no usable week DiffPoints is empty and EqualValidity is 0.
func (WeekdayWeekend) Properties(points []series.Point, cfg Config) (WeekdayWeekendProperties, error) {
	cfg, err := prepare(cfg)
	if err != nil {
		return WeekdayWeekendProperties{}, err
	}
	return weekdayWeekendProperties(points, cfg)
}

func weekdayWeekendProperties(points []series.Point, cfg Config) (WeekdayWeekendProperties, error) {
	props := WeekdayWeekendProperties{DiffPoints: []series.Point{}}
	normalized := series.NormalizeY(points)
	trendPoints, err := series.CenteredMovingAverage(normalized, cfg.CenteredHalfWindow)
	if err != nil {
		return props, err
	}
	dec, err := series.AdditiveDecompose(normalized, trendPoints, series.DayOfWeek)
	if err != nil {
		return props, err
	}

	for _, week := range series.GroupByWeek(dec.Seasonal) {
		if len(week) < minWeekPoints {
			continue
		}
		var wdSum, weSum float64
		var wdN, weN int
		for _, p := range week {
			switch {
			case isWeekday(p):
				wdSum += p.Y
				wdN++
			case isWeekend(p):
				weSum += p.Y
				weN++
			}
		}
		if wdN == 0 || weN == 0 {
			continue
		}
		diff := math.Abs(wdSum/float64(wdN) - weSum/float64(weN))
		props.DiffPoints = append(props.DiffPoints, series.Point{X: week[0].X, Y: diff})
	}

	if len(props.DiffPoints) == 0 {
		return props, nil
	}
	props.EqualValidity, err = fuzzy.SigmaCount(props.DiffPoints, fuzzy.Most, uEqualDiff)
	return props, err
}

func (s WeekdayWeekend) Summarize(points []series.Point, cfg Config) ([]SummaryGroup, error) {
	cfg, err := prepare(cfg)
	if err != nil {
		return nil, err
	}
	props, err := weekdayWeekendProperties(points, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Kind(), err)
	}
	group := SummaryGroup{Title: s.Title(), Summaries: []Summary{}}
	if len(props.DiffPoints) == 0 {
		return []SummaryGroup{group}, nil
	}

	relations := []fuzzy.Option[fuzzy.PointMembership[series.Point]]{
		{Label: "higher than", Fn: uHigherDiff},
		{Label: "similar to", Fn: uSimilarDiff},
		{Label: "lower than", Fn: uLowerDiff},
	}
	for _, q := range fuzzy.Quantifiers() {
		for _, rel := range relations {
			v, err := fuzzy.SigmaCount(props.DiffPoints, q.Fn, rel.Fn)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", s.Kind(), err)
			}
			group.Summaries = append(group.Summaries, Summary{
				Text:     fmt.Sprintf("In %s of the weeks, weekdays have traffic %s weekends.", bold(q.Label), bold(rel.Label)),
				Validity: v,
			})
		}
	}
	group.Summaries = append(group.Summaries, Summary{
		Text:     fmt.Sprintf("In %s of the weeks, weekdays and weekends have %s.", bold("most"), bold("equal traffic")),
		Validity: props.EqualValidity,
	})
	return []SummaryGroup{group}, nil
}
