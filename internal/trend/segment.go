package trend

import (
	"errors"
	"fmt"
	"time"

	"github.com/KaramelBytes/chartsense/internal/series"
)

// ErrInvalidEps is returned for a negative segmentation tolerance.
var ErrInvalidEps = errors.New("eps must be >= 0")

// PartialTrend is one maximal run of points whose pairwise slopes stay
// mutually compatible within the tolerance.
type PartialTrend struct {
	IndexStart     int       `json:"index_start" yaml:"index_start"`
	IndexEnd       int       `json:"index_end" yaml:"index_end"`
	TimeStart      time.Time `json:"time_start" yaml:"time_start"`
	TimeEnd        time.Time `json:"time_end" yaml:"time_end"`
	PercentageSpan float64   `json:"percentage_span" yaml:"percentage_span"`
	Cone           Cone      `json:"cone" yaml:"cone"`
}

// ExtractPartialTrends normalizes points (x to [0,1], y shifted to a zero
// minimum) and segments them with tolerance eps.
func ExtractPartialTrends(points []series.Point, eps float64) ([]PartialTrend, error) {
	if eps < 0 {
		return nil, fmt.Errorf("extract partial trends: eps %v: %w", eps, ErrInvalidEps)
	}
	normalized := series.Normalize(points, series.DefaultNormalizeOptions())
	return Segment(points, normalized, eps), nil
}

// Segment runs the epsilon-cone segmentation over normalized points.
// original supplies the timestamps and must be index-aligned with normalized.
// Fewer than two points yield no trends.
func Segment(original []series.Point, normalized []series.NumPoint, eps float64) []PartialTrend {
	n := len(normalized)
	if n <= 1 {
		return nil
	}
	var trends []PartialTrend
	i, j := 0, 1
	for j < n {
		k := j
		cone := ComputeCone(normalized[i], normalized[k], eps)
		for {
			j = k
			k++
			if k == n {
				break
			}
			next, ok := Intersect(cone, ComputeCone(normalized[i], normalized[k], eps))
			if !ok {
				break
			}
			cone = next
		}
		trends = append(trends, PartialTrend{
			IndexStart:     i,
			IndexEnd:       j,
			TimeStart:      original[i].X,
			TimeEnd:        original[j].X,
			PercentageSpan: normalized[j].X - normalized[i].X,
			Cone:           cone,
		})
		i = j
		j = k
	}
	return trends
}
